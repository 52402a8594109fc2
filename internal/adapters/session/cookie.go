// Package session keeps the per-browser cart id in a cookie.
package session

import (
	"net/http"
	"time"

	"github.com/phenrril/brainbattle/internal/domain"
)

const (
	CookieName = "bbc_cart_id"
	CookieTTL  = 7 * 24 * time.Hour
)

// CartCookie builds request-scoped cart identities. The cookie value is the
// opaque remote cart id; it is not validated here.
type CartCookie struct {
	Secure bool
}

// For returns the identity of the browser that sent r. Writes are visible to
// later reads through the same identity.
func (c CartCookie) For(w http.ResponseWriter, r *http.Request) domain.CartIdentity {
	id := &identity{w: w, secure: c.Secure}
	if ck, err := r.Cookie(CookieName); err == nil && ck.Value != "" {
		id.value = ck.Value
		id.present = true
	}
	return id
}

type identity struct {
	w       http.ResponseWriter
	secure  bool
	value   string
	present bool
}

func (i *identity) Read() (string, bool) {
	return i.value, i.present
}

func (i *identity) Write(cartID string) {
	i.value, i.present = cartID, true
	http.SetCookie(i.w, &http.Cookie{
		Name:     CookieName,
		Value:    cartID,
		Path:     "/",
		MaxAge:   int(CookieTTL / time.Second),
		HttpOnly: true,
		Secure:   i.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (i *identity) Clear() {
	i.value, i.present = "", false
	http.SetCookie(i.w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   i.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
