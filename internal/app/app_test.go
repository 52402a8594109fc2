package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/phenrril/brainbattle/internal/adapters/commerce/shopify"
	"github.com/phenrril/brainbattle/internal/adapters/commerce/shopify/shopifytest"
)

func testConfig(endpoint string) Config {
	return Config{
		Env:     "test",
		Shopify: shopify.Config{Endpoint: endpoint, Token: shopifytest.Token},
	}
}

func TestNewApp_WithoutDatabase(t *testing.T) {
	shop := shopifytest.NewServer()
	defer shop.Close()
	shop.Seed()

	a, err := NewApp(context.Background(), testConfig(shop.URL), nil)
	require.NoError(t, err)
	defer a.Close()

	assert.NoError(t, a.Migrate())
	assert.False(t, a.WaitlistUC.Enabled())

	rec := httptest.NewRecorder()
	a.HTTPHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "11+ Maths Mission Kit")
}

func TestNewApp_WithDatabase(t *testing.T) {
	shop := shopifytest.NewServer()
	defer shop.Close()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	a, err := NewApp(context.Background(), testConfig(shop.URL), db)
	require.NoError(t, err)
	require.NoError(t, a.Migrate())
	assert.True(t, a.WaitlistUC.Enabled())

	require.NoError(t, a.WaitlistUC.Join(context.Background(), "Parent@Example.com", "maths-mission"))
	list, err := a.WaitlistUC.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "parent@example.com", list[0].Email)
}

func TestNewApp_CacheDisabled(t *testing.T) {
	shop := shopifytest.NewServer()
	defer shop.Close()
	shop.Seed()

	cfg := testConfig(shop.URL)
	cfg.Shopify.CacheTTL = -1
	a, err := NewApp(context.Background(), cfg, nil)
	require.NoError(t, err)

	h := a.HTTPHandler()
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/kits", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 2, shop.Calls("GetCollectionByHandle"))
}

func TestNewApp_MemoryCacheIsBounded(t *testing.T) {
	shop := shopifytest.NewServer()
	defer shop.Close()
	shop.Seed()

	cfg := testConfig(shop.URL)
	cfg.CacheSize = 2
	a, err := NewApp(context.Background(), cfg, nil)
	require.NoError(t, err)

	h := a.HTTPHandler()
	search := func(q string) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/search?q="+q, nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	search("maths")
	search("maths")
	assert.Equal(t, 1, shop.Calls("SearchProducts"))

	for _, q := range []string{"fidget", "kit", "focus"} {
		search(q)
	}
	search("maths")
	assert.Equal(t, 5, shop.Calls("SearchProducts"))
}

func TestNewApp_InvalidShopifyConfig(t *testing.T) {
	_, err := NewApp(context.Background(), Config{}, nil)
	assert.Error(t, err)
}

func TestParseTemplates(t *testing.T) {
	tmpl, err := ParseTemplates(false)
	require.NoError(t, err)
	for _, name := range []string{"home.html", "product.html", "cart.html", "mission.html", "notfound.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}
