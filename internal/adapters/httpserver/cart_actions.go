package httpserver

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/hlog"

	"github.com/phenrril/brainbattle/internal/domain"
)

// actionResult is the outcome of a cart form post: where to send the browser
// and, when the action failed, why.
type actionResult struct {
	Redirect string
	Err      error
}

func (s *Server) finish(w http.ResponseWriter, r *http.Request, action string, res actionResult) {
	if res.Err != nil {
		hlog.FromRequest(r).Error().Err(res.Err).Str("action", action).Msg("cart action")
	}
	target := res.Redirect
	if target == "" {
		target = "/cart"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	s.finish(w, r, "add", s.addToCart(r.Context(), w, r))
}

func (s *Server) handleCartUpdate(w http.ResponseWriter, r *http.Request) {
	s.finish(w, r, "update", s.updateCart(r.Context(), w, r))
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	s.finish(w, r, "remove", s.removeFromCart(r.Context(), w, r))
}

func (s *Server) addToCart(ctx context.Context, w http.ResponseWriter, r *http.Request) actionResult {
	if err := r.ParseForm(); err != nil {
		return actionResult{Redirect: "/cart", Err: err}
	}
	merchandiseID := strings.TrimSpace(r.PostFormValue("merchandiseId"))
	handle := strings.TrimSpace(r.PostFormValue("handle"))
	qty := 1
	if raw := strings.TrimSpace(r.PostFormValue("quantity")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			qty = n
		}
	}

	failure := "/cart"
	if handle != "" {
		failure = "/products/" + url.PathEscape(handle) + "?error=cart"
	}
	if _, err := s.carts.AddToSession(ctx, s.cookies.For(w, r), merchandiseID, qty); err != nil {
		return actionResult{Redirect: failure, Err: err}
	}
	return actionResult{Redirect: "/cart"}
}

func (s *Server) updateCart(ctx context.Context, w http.ResponseWriter, r *http.Request) actionResult {
	if err := r.ParseForm(); err != nil {
		return actionResult{Err: err}
	}
	cartID, ok := s.cookies.For(w, r).Read()
	if !ok {
		return actionResult{}
	}
	lineID := strings.TrimSpace(r.PostFormValue("lineId"))
	qty, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("quantity")))
	if err != nil {
		return actionResult{Err: domain.NewValidationError("quantity", "Quantity must be a number")}
	}
	if _, err := s.carts.UpdateLine(ctx, cartID, lineID, qty); err != nil {
		return actionResult{Err: err}
	}
	return actionResult{}
}

func (s *Server) removeFromCart(ctx context.Context, w http.ResponseWriter, r *http.Request) actionResult {
	if err := r.ParseForm(); err != nil {
		return actionResult{Err: err}
	}
	cartID, ok := s.cookies.For(w, r).Read()
	if !ok {
		return actionResult{}
	}
	if _, err := s.carts.RemoveLine(ctx, cartID, strings.TrimSpace(r.PostFormValue("lineId"))); err != nil {
		return actionResult{Err: err}
	}
	return actionResult{}
}
