// Package shopifytest provides an in-process fake of the Storefront GraphQL
// API covering the catalog and cart operations the store uses.
package shopifytest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

const Token = "test-storefront-token"

type Image struct {
	URL string
	Alt string
}

type Variant struct {
	ID     string
	Title  string
	Amount string
}

type Product struct {
	ID           string
	Title        string
	Handle       string
	Description  string
	Currency     string
	Image        *Image
	MissionLabel string
	MissionSlug  string
	Variants     []Variant
}

type collection struct {
	handle, title, description string
	products                   []string
}

type line struct {
	id            string
	merchandiseID string
	quantity      int
}

type cart struct {
	id    string
	lines []*line
}

type failure struct {
	status  int
	message string
}

type Server struct {
	*httptest.Server

	mu          sync.Mutex
	products    map[string]Product
	variants    map[string]string // variant id -> product handle
	collections map[string]collection
	carts       map[string]*cart
	seq         int
	calls       map[string]int
	failures    map[string]failure
}

func NewServer() *Server {
	s := &Server{
		products:    map[string]Product{},
		variants:    map[string]string{},
		collections: map[string]collection{},
		carts:       map[string]*cart{},
		calls:       map[string]int{},
		failures:    map[string]failure{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	return s
}

func (s *Server) AddProduct(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Currency == "" {
		p.Currency = "GBP"
	}
	s.products[p.Handle] = p
	for _, v := range p.Variants {
		s.variants[v.ID] = p.Handle
	}
}

func (s *Server) AddCollection(handle, title string, productHandles ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[handle] = collection{handle: handle, title: title, description: title + " collection", products: productHandles}
}

// ExpireCart forgets a cart, as the remote system does once it expires.
func (s *Server) ExpireCart(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, id)
}

// FailHTTP makes every call of op answer with the given HTTP status.
func (s *Server) FailHTTP(op string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = failure{status: status, message: "upstream unavailable"}
}

// FailGraphQL makes every call of op answer 200 with a GraphQL error list.
func (s *Server) FailGraphQL(op, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = failure{message: message}
}

func (s *Server) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *Server) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}

var opRe = regexp.MustCompile(`(?:query|mutation)\s+(\w+)`)

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	tok := r.Header.Get("X-Shopify-Storefront-Access-Token")
	if tok == "" {
		tok = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	}
	if tok != Token {
		http.Error(w, `{"errors":"[API] Invalid API key or access token"}`, http.StatusUnauthorized)
		return
	}
	var body struct {
		Query     string          `json:"query"`
		Variables json.RawMessage `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad body", http.StatusBadRequest)
		return
	}
	m := opRe.FindStringSubmatch(body.Query)
	if m == nil {
		writeJSON(w, map[string]any{"errors": []map[string]any{{"message": "unknown operation"}}})
		return
	}
	op := m[1]

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[op]++
	if f, ok := s.failures[op]; ok {
		if f.status != 0 {
			http.Error(w, f.message, f.status)
			return
		}
		writeJSON(w, map[string]any{"data": nil, "errors": []map[string]any{{"message": f.message}}})
		return
	}

	var data map[string]any
	switch op {
	case "GetCollectionByHandle":
		data = s.collection(body.Variables)
	case "GetProductByHandle":
		data = s.product(body.Variables)
	case "SearchProducts":
		data = s.search(body.Variables)
	case "getCart":
		data = s.getCart(body.Variables)
	case "cartCreate":
		data = s.cartCreate()
	case "cartLinesAdd":
		data = s.cartLinesAdd(body.Variables)
	case "cartLinesUpdate":
		data = s.cartLinesUpdate(body.Variables)
	case "cartLinesRemove":
		data = s.cartLinesRemove(body.Variables)
	default:
		writeJSON(w, map[string]any{"errors": []map[string]any{{"message": "unsupported operation " + op}}})
		return
	}
	writeJSON(w, map[string]any{"data": data})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func moneyJSON(amount, currency string) map[string]any {
	return map[string]any{"amount": amount, "currencyCode": currency}
}

func imageJSON(img *Image) any {
	if img == nil {
		return nil
	}
	var alt any
	if img.Alt != "" {
		alt = img.Alt
	}
	return map[string]any{"url": img.URL, "altText": alt}
}

func metafieldJSON(v string) any {
	if v == "" {
		return nil
	}
	return map[string]any{"value": v}
}

func (p Product) minPrice() string {
	lowest := ""
	var best decimal.Decimal
	for i, v := range p.Variants {
		d := decimal.RequireFromString(v.Amount)
		if i == 0 || d.LessThan(best) {
			best = d
			lowest = v.Amount
		}
	}
	if lowest == "" {
		return "0.0"
	}
	return lowest
}

func (p Product) json(withVariants bool) map[string]any {
	out := map[string]any{
		"id":                    p.ID,
		"title":                 p.Title,
		"handle":                p.Handle,
		"description":           p.Description,
		"priceRange":            map[string]any{"minVariantPrice": moneyJSON(p.minPrice(), p.Currency)},
		"featuredImage":         imageJSON(p.Image),
		"metafieldMissionLabel": metafieldJSON(p.MissionLabel),
		"metafieldMissionSlug":  metafieldJSON(p.MissionSlug),
	}
	if withVariants {
		edges := []map[string]any{}
		for _, v := range p.Variants {
			edges = append(edges, map[string]any{"node": map[string]any{
				"id": v.ID, "title": v.Title, "priceV2": moneyJSON(v.Amount, p.Currency),
			}})
		}
		out["variants"] = map[string]any{"edges": edges}
	}
	return out
}

func productEdges(ps []Product) map[string]any {
	edges := []map[string]any{}
	for _, p := range ps {
		edges = append(edges, map[string]any{"node": p.json(false)})
	}
	return map[string]any{"edges": edges}
}

func (s *Server) collection(raw json.RawMessage) map[string]any {
	var v struct {
		Handle string `json:"handle"`
		First  int    `json:"first"`
	}
	_ = json.Unmarshal(raw, &v)
	c, ok := s.collections[v.Handle]
	if !ok {
		return map[string]any{"collection": nil}
	}
	ps := []Product{}
	for _, h := range c.products {
		if p, ok := s.products[h]; ok && (v.First == 0 || len(ps) < v.First) {
			ps = append(ps, p)
		}
	}
	return map[string]any{"collection": map[string]any{
		"handle": c.handle, "title": c.title, "description": c.description, "products": productEdges(ps),
	}}
}

func (s *Server) product(raw json.RawMessage) map[string]any {
	var v struct {
		Handle string `json:"handle"`
	}
	_ = json.Unmarshal(raw, &v)
	p, ok := s.products[v.Handle]
	if !ok {
		return map[string]any{"product": nil}
	}
	return map[string]any{"product": p.json(true)}
}

func (s *Server) search(raw json.RawMessage) map[string]any {
	var v struct {
		Query string `json:"query"`
		First int    `json:"first"`
	}
	_ = json.Unmarshal(raw, &v)
	q := strings.ToLower(v.Query)
	ps := []Product{}
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Title), q) || strings.Contains(strings.ToLower(p.Description), q) {
			ps = append(ps, p)
		}
	}
	return map[string]any{"products": productEdges(ps)}
}

func (s *Server) cartJSON(c *cart) map[string]any {
	currency := "GBP"
	subtotal := decimal.Zero
	edges := []map[string]any{}
	for _, l := range c.lines {
		p := s.products[s.variants[l.merchandiseID]]
		currency = p.Currency
		var v Variant
		for _, pv := range p.Variants {
			if pv.ID == l.merchandiseID {
				v = pv
			}
		}
		price := decimal.RequireFromString(v.Amount)
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(l.quantity))))
		edges = append(edges, map[string]any{"node": map[string]any{
			"id":       l.id,
			"quantity": l.quantity,
			"merchandise": map[string]any{
				"id":    v.ID,
				"title": v.Title,
				"product": map[string]any{
					"handle":        p.Handle,
					"title":         p.Title,
					"featuredImage": imageJSON(p.Image),
				},
				"priceV2": moneyJSON(v.Amount, p.Currency),
			},
		}})
	}
	return map[string]any{
		"id":          c.id,
		"checkoutUrl": "https://checkout.example.test/cart/" + strings.TrimPrefix(c.id, "gid://shopify/Cart/"),
		"cost":        map[string]any{"subtotalAmount": moneyJSON(subtotal.StringFixed(2), currency)},
		"lines":       map[string]any{"edges": edges},
	}
}

func (s *Server) nextID(kind string) string {
	s.seq++
	return fmt.Sprintf("gid://shopify/%s/%d", kind, s.seq)
}

func userErrors(field, msg string) []map[string]any {
	return []map[string]any{{"field": []string{field}, "message": msg}}
}

func (s *Server) getCart(raw json.RawMessage) map[string]any {
	var v struct {
		CartID string `json:"cartId"`
	}
	_ = json.Unmarshal(raw, &v)
	c, ok := s.carts[v.CartID]
	if !ok {
		return map[string]any{"cart": nil}
	}
	return map[string]any{"cart": s.cartJSON(c)}
}

func (s *Server) cartCreate() map[string]any {
	c := &cart{id: s.nextID("Cart")}
	s.carts[c.id] = c
	return map[string]any{"cartCreate": map[string]any{"cart": s.cartJSON(c), "userErrors": []any{}}}
}

func (s *Server) cartLinesAdd(raw json.RawMessage) map[string]any {
	var v struct {
		CartID string `json:"cartId"`
		Lines  []struct {
			MerchandiseID string `json:"merchandiseId"`
			Quantity      int    `json:"quantity"`
		} `json:"lines"`
	}
	_ = json.Unmarshal(raw, &v)
	c, ok := s.carts[v.CartID]
	if !ok {
		return map[string]any{"cartLinesAdd": map[string]any{"cart": nil, "userErrors": userErrors("cartId", "The specified cart does not exist.")}}
	}
	for _, in := range v.Lines {
		if _, ok := s.variants[in.MerchandiseID]; !ok {
			return map[string]any{"cartLinesAdd": map[string]any{
				"cart":       s.cartJSON(c),
				"userErrors": userErrors("merchandiseId", "The merchandise with id "+in.MerchandiseID+" does not exist."),
			}}
		}
	}
	for _, in := range v.Lines {
		merged := false
		for _, l := range c.lines {
			if l.merchandiseID == in.MerchandiseID {
				l.quantity += in.Quantity
				merged = true
			}
		}
		if !merged {
			c.lines = append(c.lines, &line{id: s.nextID("CartLine"), merchandiseID: in.MerchandiseID, quantity: in.Quantity})
		}
	}
	return map[string]any{"cartLinesAdd": map[string]any{"cart": s.cartJSON(c), "userErrors": []any{}}}
}

func (s *Server) cartLinesUpdate(raw json.RawMessage) map[string]any {
	var v struct {
		CartID string `json:"cartId"`
		Lines  []struct {
			ID       string `json:"id"`
			Quantity int    `json:"quantity"`
		} `json:"lines"`
	}
	_ = json.Unmarshal(raw, &v)
	c, ok := s.carts[v.CartID]
	if !ok {
		return map[string]any{"cartLinesUpdate": map[string]any{"cart": nil, "userErrors": userErrors("cartId", "The specified cart does not exist.")}}
	}
	for _, in := range v.Lines {
		kept := c.lines[:0]
		for _, l := range c.lines {
			if l.id == in.ID {
				l.quantity = in.Quantity
			}
			if l.quantity > 0 {
				kept = append(kept, l)
			}
		}
		c.lines = kept
	}
	return map[string]any{"cartLinesUpdate": map[string]any{"cart": s.cartJSON(c), "userErrors": []any{}}}
}

func (s *Server) cartLinesRemove(raw json.RawMessage) map[string]any {
	var v struct {
		CartID  string   `json:"cartId"`
		LineIDs []string `json:"lineIds"`
	}
	_ = json.Unmarshal(raw, &v)
	c, ok := s.carts[v.CartID]
	if !ok {
		return map[string]any{"cartLinesRemove": map[string]any{"cart": nil, "userErrors": userErrors("cartId", "The specified cart does not exist.")}}
	}
	drop := map[string]bool{}
	for _, id := range v.LineIDs {
		drop[id] = true
	}
	kept := []*line{}
	for _, l := range c.lines {
		if !drop[l.id] {
			kept = append(kept, l)
		}
	}
	c.lines = kept
	return map[string]any{"cartLinesRemove": map[string]any{"cart": s.cartJSON(c), "userErrors": []any{}}}
}

// Seed loads a small catalog: two kits in the "kits" collection, one of
// them without an image or mission metafields.
func (s *Server) Seed() {
	s.AddProduct(Product{
		ID:           "gid://shop/Product/1",
		Title:        "11+ Maths Mission Kit",
		Handle:       "11-plus-maths-mission-kit",
		Description:  "Whiteboard, flash cards and daily maths missions.",
		Image:        &Image{URL: "https://cdn.example.test/maths.jpg", Alt: "Maths kit"},
		MissionLabel: "11+ Maths Mission",
		MissionSlug:  "maths-mission",
		Variants:     []Variant{{ID: "gid://shop/ProductVariant/1", Title: "Default Title", Amount: "14.99"}},
	})
	s.AddProduct(Product{
		ID:          "gid://shop/Product/2",
		Title:       "Focus & Fidget Kit",
		Handle:      "focus-fidget-kit",
		Description: "Quiet fidget tools for homework time.",
		Variants:    []Variant{{ID: "gid://shop/ProductVariant/2", Title: "Default Title", Amount: "9.5"}},
	})
	s.AddCollection("kits", "Study Kits", "11-plus-maths-mission-kit", "focus-fidget-kit")
}
