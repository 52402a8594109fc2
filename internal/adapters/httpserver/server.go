package httpserver

import (
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/brainbattle/internal/adapters/session"
	"github.com/phenrril/brainbattle/internal/domain"
	"github.com/phenrril/brainbattle/internal/usecase"
)

// CollectionRoutes resolves site routes such as /kits to remote collections.
type CollectionRoutes interface {
	CollectionPage(route string) (domain.CollectionPage, bool)
	CollectionPages() []domain.CollectionPage
}

type Deps struct {
	Catalog  *usecase.CatalogUC
	Carts    *usecase.CartUC
	Missions *usecase.MissionUC
	Waitlist *usecase.WaitlistUC
	Routes   CollectionRoutes
	Cookies  session.CartCookie
	// AdminKey guards the waitlist export. Empty disables it.
	AdminKey string
	// PublicDir is served under /public/. Empty disables static files.
	PublicDir string
}

type Server struct {
	router   chi.Router
	tmpl     *template.Template
	catalog  *usecase.CatalogUC
	carts    *usecase.CartUC
	missions *usecase.MissionUC
	waitlist *usecase.WaitlistUC
	routes   CollectionRoutes
	cookies  session.CartCookie
	adminKey string
}

func New(t *template.Template, d Deps) http.Handler {
	s := &Server{
		router:   chi.NewRouter(),
		tmpl:     t,
		catalog:  d.Catalog,
		carts:    d.Carts,
		missions: d.Missions,
		waitlist: d.Waitlist,
		routes:   d.Routes,
		cookies:  d.Cookies,
		adminKey: d.AdminKey,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(hlog.NewHandler(log.Logger))
	s.router.Use(requestLogger)
	s.router.Use(hlog.AccessHandler(accessLog))
	s.router.Use(middleware.Recoverer)

	if d.PublicDir != "" {
		s.router.Handle("/public/*", http.StripPrefix("/public/", http.FileServer(http.Dir(d.PublicDir))))
	}
	s.mount()
	return s.router
}

func (s *Server) mount() {
	r := s.router

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/", s.handleHome)
	r.Get("/products/{handle}", s.handleProduct)
	r.Get("/search", s.handleSearch)
	r.Get("/missions", s.handleMissions)
	r.Get("/missions/{slug}", s.handleMission)

	r.Get("/cart", s.handleCart)
	r.Post("/cart/add", s.handleCartAdd)
	r.Post("/cart/update", s.handleCartUpdate)
	r.Post("/cart/remove", s.handleCartRemove)

	r.Post("/api/waitlist", s.apiWaitlist)
	r.Get("/admin/waitlist.xlsx", s.handleWaitlistExport)

	// Static routes above take precedence over this one.
	r.Get("/{collection}", s.handleCollection)

	r.NotFound(s.notFound)
}

// requestLogger tags the request logger with chi's request id.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			l := hlog.FromRequest(r)
			l.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("req_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}

func accessLog(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["Year"]; !ok {
		data["Year"] = time.Now().Year()
	}
	if _, ok := data["Nav"]; !ok && s.routes != nil {
		data["Nav"] = s.routes.CollectionPages()
	}
	for _, k := range []string{"Title", "Description", "Query"} {
		if _, ok := data[k]; !ok {
			data[k] = ""
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("tpl", name).Msg("render")
	}
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusNotFound, "notfound.html", map[string]any{"Title": "Not found"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
