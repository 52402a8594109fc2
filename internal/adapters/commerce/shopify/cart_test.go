package shopify

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/brainbattle/internal/domain"
)

func TestClient_CartLifecycle(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	cart, err := c.CreateCart(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, cart.ID)
	assert.True(t, cart.IsEmpty())
	assert.NotNil(t, cart.Lines)

	cart, err = c.AddLines(ctx, cart.ID, []domain.LineInput{{MerchandiseID: "gid://shop/ProductVariant/1", Quantity: 2}})
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	line := cart.Lines[0]
	assert.Equal(t, "11-plus-maths-mission-kit", line.Handle)
	assert.Equal(t, "GBP 29.98", cart.Subtotal.String())
	assert.Equal(t, "GBP 29.98", line.Total().String())
	assert.Contains(t, cart.CheckoutURL, "https://checkout.example.test/cart/")

	cart, err = c.UpdateLines(ctx, cart.ID, []domain.LineUpdate{{ID: line.ID, Quantity: 5}})
	require.NoError(t, err)
	assert.Equal(t, 5, cart.TotalQuantity())

	cart, err = c.RemoveLines(ctx, cart.ID, []string{line.ID})
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, "GBP 0.00", cart.Subtotal.String())
}

func TestClient_GetCartExpired(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	cart, err := c.CreateCart(ctx)
	require.NoError(t, err)
	srv.ExpireCart(cart.ID)

	_, err = c.GetCart(ctx, cart.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_GetCartRejectedIDIsNotFound(t *testing.T) {
	c, srv := newTestClient(t)
	srv.FailGraphQL("getCart", "Invalid global id 'garbage'")

	_, err := c.GetCart(context.Background(), "garbage")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_GetCartTransportFailurePropagates(t *testing.T) {
	c, srv := newTestClient(t)
	srv.FailHTTP("getCart", http.StatusBadGateway)

	_, err := c.GetCart(context.Background(), "gid://shopify/Cart/1")

	assert.NotErrorIs(t, err, domain.ErrNotFound)
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusBadGateway, te.StatusCode)
}

func TestClient_UserErrorsAreUpstreamErrors(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	cart, err := c.CreateCart(ctx)
	require.NoError(t, err)

	_, err = c.AddLines(ctx, cart.ID, []domain.LineInput{{MerchandiseID: "gid://shop/ProductVariant/404", Quantity: 1}})

	var ue *UpstreamError
	require.ErrorAs(t, err, &ue)
	require.Len(t, ue.Errors, 1)
	assert.Contains(t, ue.Errors[0].Message, "does not exist")
	assert.Equal(t, []any{"merchandiseId"}, ue.Errors[0].Path)
}

func TestCartPayload_NilCartIsNotFound(t *testing.T) {
	_, err := cartPayload{}.result("cartLinesAdd")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
