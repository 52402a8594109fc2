package app

import (
	"context"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/phenrril/brainbattle/internal/adapters/cache"
	"github.com/phenrril/brainbattle/internal/adapters/commerce/shopify"
	"github.com/phenrril/brainbattle/internal/adapters/httpserver"
	"github.com/phenrril/brainbattle/internal/adapters/repo/postgres"
	"github.com/phenrril/brainbattle/internal/adapters/session"
	"github.com/phenrril/brainbattle/internal/content"
	"github.com/phenrril/brainbattle/internal/usecase"
)

type App struct {
	Config     Config
	DB         *gorm.DB
	Tmpl       *template.Template
	Content    *content.Catalog
	CatalogUC  *usecase.CatalogUC
	CartUC     *usecase.CartUC
	MissionUC  *usecase.MissionUC
	WaitlistUC *usecase.WaitlistUC

	closers []func() error
}

// NewApp wires the application. db may be nil, in which case waitlist
// signups are only logged.
func NewApp(ctx context.Context, cfg Config, db *gorm.DB) (*App, error) {
	catalog, err := content.Load()
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: db, Content: catalog}

	memory := func() *cache.Memory {
		ttl := cfg.Shopify.CacheTTL
		if ttl == 0 {
			ttl = shopify.DefaultCacheTTL
		}
		return cache.NewMemory(cfg.CacheSize, ttl)
	}
	var opts []shopify.Option
	switch {
	case cfg.Shopify.CacheTTL < 0:
		// caching disabled
	case cfg.RedisAddr != "":
		rc, err := cache.NewRedis(ctx, cache.RedisConfig{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, using in-memory cache")
			opts = append(opts, shopify.WithCache(memory()))
		} else {
			app.closers = append(app.closers, rc.Close)
			opts = append(opts, shopify.WithCache(rc))
		}
	default:
		opts = append(opts, shopify.WithCache(memory()))
	}
	client, err := shopify.NewClient(cfg.Shopify, opts...)
	if err != nil {
		return nil, err
	}

	app.CatalogUC = &usecase.CatalogUC{Catalog: client, Content: catalog}
	app.CartUC = &usecase.CartUC{Carts: client}
	app.MissionUC = &usecase.MissionUC{Content: catalog, Catalog: app.CatalogUC}
	app.WaitlistUC = &usecase.WaitlistUC{}
	if db != nil {
		app.WaitlistUC.Repo = postgres.NewWaitlistRepo(db)
	}

	tmpl, err := ParseTemplates(cfg.Dev())
	if err != nil {
		return nil, err
	}
	app.Tmpl = tmpl
	return app, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.Tmpl, httpserver.Deps{
		Catalog:   a.CatalogUC,
		Carts:     a.CartUC,
		Missions:  a.MissionUC,
		Waitlist:  a.WaitlistUC,
		Routes:    a.Content,
		Cookies:   session.CartCookie{Secure: a.Config.Production()},
		AdminKey:  a.Config.AdminAPIKey,
		PublicDir: a.Config.PublicDir,
	})
}

// Migrate creates the waitlist table when a database is configured.
func (a *App) Migrate() error {
	if a.DB == nil {
		return nil
	}
	return postgres.Migrate(a.DB)
}

func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
