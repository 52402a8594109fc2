package shopify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/brainbattle/internal/adapters/cache"
	"github.com/phenrril/brainbattle/internal/adapters/commerce/shopify/shopifytest"
	"github.com/phenrril/brainbattle/internal/domain"
)

func newTestClient(t *testing.T, opts ...Option) (*Client, *shopifytest.Server) {
	t.Helper()
	srv := shopifytest.NewServer()
	t.Cleanup(srv.Close)
	srv.Seed()
	c, err := NewClient(Config{Endpoint: srv.URL, Token: shopifytest.Token}, opts...)
	require.NoError(t, err)
	return c, srv
}

func TestNewClient_RequiresDomainAndToken(t *testing.T) {
	_, err := NewClient(Config{Token: "x"})
	assert.Error(t, err)

	_, err = NewClient(Config{StoreDomain: "shop.example.test"})
	assert.Error(t, err)

	c, err := NewClient(Config{StoreDomain: "shop.example.test/", Token: "x"})
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.test/api/2024-01/graphql.json", c.endpoint)
}

func TestConfig_EndpointVersion(t *testing.T) {
	cfg := Config{StoreDomain: "shop.example.test", APIVersion: "2024-04"}
	assert.Equal(t, "https://shop.example.test/api/2024-04/graphql.json", cfg.endpoint())

	cfg.Endpoint = "http://localhost:9999/graphql"
	assert.Equal(t, "http://localhost:9999/graphql", cfg.endpoint())
}

func TestClient_ProductByHandle(t *testing.T) {
	c, _ := newTestClient(t)

	p, err := c.ProductByHandle(context.Background(), "11-plus-maths-mission-kit")
	require.NoError(t, err)

	assert.Equal(t, "gid://shop/Product/1", p.ID)
	assert.Equal(t, "GBP 14.99", p.MinPrice.String())
	require.NotNil(t, p.FeaturedImage)
	assert.Equal(t, "Maths kit", p.FeaturedImage.AltText)
	require.NotNil(t, p.MissionSlug)
	assert.Equal(t, "maths-mission", *p.MissionSlug)
	require.Len(t, p.Variants, 1)
	assert.Equal(t, "gid://shop/ProductVariant/1", p.Variants[0].ID)
}

func TestClient_ProductWithoutOptionalFields(t *testing.T) {
	c, _ := newTestClient(t)

	p, err := c.ProductByHandle(context.Background(), "focus-fidget-kit")
	require.NoError(t, err)

	assert.Nil(t, p.FeaturedImage)
	assert.Nil(t, p.MissionLabel)
	assert.Nil(t, p.MissionSlug)
	assert.Equal(t, "GBP 9.50", p.MinPrice.String())
}

func TestClient_UnknownHandleIsNotFound(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	_, err := c.ProductByHandle(ctx, "does-not-exist")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = c.CollectionByHandle(ctx, "nope", 10)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_CollectionByHandle(t *testing.T) {
	c, _ := newTestClient(t)

	col, err := c.CollectionByHandle(context.Background(), "kits", 20)
	require.NoError(t, err)

	assert.Equal(t, "Study Kits", col.Title)
	require.Len(t, col.Products, 2)
	assert.Equal(t, "11-plus-maths-mission-kit", col.Products[0].Handle)
	assert.NotNil(t, col.Products[0].Variants)
	assert.Empty(t, col.Products[0].Variants)
}

func TestClient_SearchNoMatchesIsEmpty(t *testing.T) {
	c, _ := newTestClient(t)

	ps, err := c.SearchProducts(context.Background(), "telescope", 20)
	require.NoError(t, err)
	assert.NotNil(t, ps)
	assert.Empty(t, ps)
}

func TestClient_TransportErrorCarriesBody(t *testing.T) {
	c, srv := newTestClient(t)
	srv.FailHTTP("GetProductByHandle", http.StatusInternalServerError)

	_, err := c.ProductByHandle(context.Background(), "focus-fidget-kit")

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusInternalServerError, te.StatusCode)
	assert.Contains(t, te.Body, "upstream unavailable")
}

func TestClient_NetworkFailureIsTransportError(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	url := dead.URL
	dead.Close()

	c, err := NewClient(Config{Endpoint: url, Token: "x"})
	require.NoError(t, err)

	_, err = c.CreateCart(context.Background())
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 0, te.StatusCode)
}

func TestClient_GraphQLErrorsAreUpstreamErrors(t *testing.T) {
	c, srv := newTestClient(t)
	srv.FailGraphQL("SearchProducts", "Throttled")

	_, err := c.SearchProducts(context.Background(), "kit", 20)

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	require.Len(t, ue.Errors, 1)
	assert.Equal(t, "Throttled", ue.Errors[0].Message)
	assert.Contains(t, err.Error(), "graphql errors: Throttled")
}

func TestClient_WrongTokenRejected(t *testing.T) {
	srv := shopifytest.NewServer()
	defer srv.Close()
	c, err := NewClient(Config{Endpoint: srv.URL, Token: "wrong"})
	require.NoError(t, err)

	_, err = c.SearchProducts(context.Background(), "kit", 20)
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusUnauthorized, te.StatusCode)
}

func TestClient_BearerTokenHeader(t *testing.T) {
	srv := shopifytest.NewServer()
	defer srv.Close()
	srv.Seed()
	c, err := NewClient(Config{Endpoint: srv.URL, Token: shopifytest.Token, TokenHeader: "Authorization"})
	require.NoError(t, err)

	_, err = c.ProductByHandle(context.Background(), "focus-fidget-kit")
	assert.NoError(t, err)
}

func TestClient_CatalogReadsAreCached(t *testing.T) {
	c, srv := newTestClient(t, WithCache(cache.NewMemory(64, DefaultCacheTTL)))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := c.ProductByHandle(ctx, "focus-fidget-kit")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, srv.Calls("GetProductByHandle"))

	_, err := c.ProductByHandle(ctx, "11-plus-maths-mission-kit")
	require.NoError(t, err)
	assert.Equal(t, 2, srv.Calls("GetProductByHandle"))
}

func TestClient_FailuresAreNotCached(t *testing.T) {
	c, srv := newTestClient(t, WithCache(cache.NewMemory(64, DefaultCacheTTL)))
	ctx := context.Background()
	srv.FailGraphQL("SearchProducts", "Throttled")

	_, err := c.SearchProducts(ctx, "kit", 20)
	require.Error(t, err)
	_, err = c.SearchProducts(ctx, "kit", 20)
	require.Error(t, err)

	assert.Equal(t, 2, srv.Calls("SearchProducts"))
}

func TestClient_CartReadsAreNeverCached(t *testing.T) {
	c, srv := newTestClient(t, WithCache(cache.NewMemory(64, DefaultCacheTTL)))
	ctx := context.Background()

	cart, err := c.CreateCart(ctx)
	require.NoError(t, err)

	_, err = c.GetCart(ctx, cart.ID)
	require.NoError(t, err)
	_, err = c.AddLines(ctx, cart.ID, []domain.LineInput{{MerchandiseID: "gid://shop/ProductVariant/2", Quantity: 1}})
	require.NoError(t, err)
	got, err := c.GetCart(ctx, cart.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, srv.Calls("getCart"))
	assert.Equal(t, 1, got.TotalQuantity())
}

func TestCacheKey_DependsOnVariables(t *testing.T) {
	a := cacheKey(Request{Query: productQuery, Variables: map[string]any{"handle": "a"}})
	b := cacheKey(Request{Query: productQuery, Variables: map[string]any{"handle": "b"}})
	again := cacheKey(Request{Query: productQuery, Variables: map[string]any{"handle": "a"}})

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, again)
}

func TestDecodeData_NullIsNoop(t *testing.T) {
	var out struct{ X int }
	assert.NoError(t, decodeData([]byte("null"), &out))
	assert.NoError(t, decodeData(nil, &out))
	assert.Error(t, decodeData([]byte("{bad"), &out))
}
