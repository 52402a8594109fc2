package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/phenrril/brainbattle/internal/domain"
	"github.com/phenrril/brainbattle/internal/usecase"
)

// Page reads never fail the request on remote errors: they log and render
// the page with an error notice.

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	data := map[string]any{"Missions": s.missions.List()}
	kits, err := s.catalog.Kits(r.Context())
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("home kits")
		data["Error"] = true
		kits = []domain.Product{}
	}
	data["Kits"] = kits
	s.render(w, http.StatusOK, "home.html", data)
}

func (s *Server) handleCollection(w http.ResponseWriter, r *http.Request) {
	page, ok := s.routes.CollectionPage(chi.URLParam(r, "collection"))
	if !ok {
		s.notFound(w, r)
		return
	}
	data := map[string]any{"Title": page.Title, "Description": page.Description, "Page": page}
	products := []domain.Product{}
	col, found, err := s.catalog.Collection(r.Context(), page.Handle, 0)
	switch {
	case err != nil:
		hlog.FromRequest(r).Error().Err(err).Str("handle", page.Handle).Msg("collection")
		data["Error"] = true
	case found:
		products = col.Products
	}
	data["Products"] = products
	s.render(w, http.StatusOK, "collection.html", data)
}

func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")
	view, err := s.catalog.Product(r.Context(), handle)
	if errors.Is(err, domain.ErrNotFound) {
		s.render(w, http.StatusNotFound, "notfound.html", map[string]any{
			"Title":   "Product not found",
			"Heading": "Product not found",
		})
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("handle", handle).Msg("product")
		s.render(w, http.StatusBadGateway, "notfound.html", map[string]any{
			"Title":   "Unavailable",
			"Heading": "Something went wrong",
			"Message": "We couldn't load this product right now. Please try again shortly.",
		})
		return
	}
	title := view.Product.Title
	if view.Bundle != nil {
		title = view.Bundle.DisplayName
	}
	s.render(w, http.StatusOK, "product.html", map[string]any{
		"Title":       title,
		"Description": view.Product.Description,
		"View":        view,
		"CartError":   r.URL.Query().Get("error") == "cart",
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	data := map[string]any{"Title": "Search", "Query": q}
	results, err := s.catalog.Search(r.Context(), q, 0)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("q", q).Msg("search")
		data["Error"] = true
		results = []domain.Product{}
	}
	data["Results"] = results
	s.render(w, http.StatusOK, "search.html", data)
}

func (s *Server) handleMissions(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "missions.html", map[string]any{
		"Title":    "Missions",
		"Missions": s.missions.List(),
	})
}

func (s *Server) handleMission(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	detail, err := s.missions.Detail(r.Context(), slug)
	if errors.Is(err, domain.ErrNotFound) {
		s.render(w, http.StatusNotFound, "notfound.html", map[string]any{
			"Title":   "Mission not found",
			"Heading": "Mission not found",
		})
		return
	}
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("slug", slug).Msg("mission kits")
		m, _ := s.missions.Content.Mission(slug)
		detail = &usecase.MissionDetail{Mission: m, Kits: []domain.Product{}}
	}
	s.render(w, http.StatusOK, "mission.html", map[string]any{
		"Title":       detail.Mission.Label,
		"Description": detail.Mission.Tagline,
		"Detail":      detail,
		"Error":       err != nil,
	})
}

func (s *Server) handleCart(w http.ResponseWriter, r *http.Request) {
	ident := s.cookies.For(w, r)
	data := map[string]any{"Title": "Your cart"}
	cart, err := s.carts.Current(r.Context(), ident)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("cart view")
		data["Error"] = true
	}
	data["Cart"] = cart
	s.render(w, http.StatusOK, "cart.html", data)
}
