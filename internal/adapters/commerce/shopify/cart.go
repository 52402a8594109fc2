package shopify

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/brainbattle/internal/domain"
)

// Every cart mutation returns the whole updated cart, so no follow-up read
// is needed.

func (c *Client) CreateCart(ctx context.Context) (*domain.Cart, error) {
	var resp struct {
		Payload cartPayload `json:"cartCreate"`
	}
	if err := c.Do(ctx, Request{Query: cartCreateMutation}, &resp); err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return resp.Payload.result("cartCreate")
}

// GetCart returns domain.ErrNotFound when the id no longer resolves: an
// expired cart reads as null, a malformed or foreign id is rejected with a
// GraphQL error. Transport failures still propagate.
func (c *Client) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	var resp struct {
		Cart *rawCart `json:"cart"`
	}
	req := Request{Query: cartQuery, Variables: map[string]any{"cartId": cartID}}
	if err := c.Do(ctx, req, &resp); err != nil {
		var ue *UpstreamError
		if errors.As(err, &ue) {
			log.Warn().Err(err).Str("cart_id", cartID).Msg("cart id rejected")
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if resp.Cart == nil {
		return nil, domain.ErrNotFound
	}
	cart := normalizeCart(*resp.Cart)
	return &cart, nil
}

func (c *Client) AddLines(ctx context.Context, cartID string, lines []domain.LineInput) (*domain.Cart, error) {
	in := make([]map[string]any, 0, len(lines))
	for _, l := range lines {
		in = append(in, map[string]any{"merchandiseId": l.MerchandiseID, "quantity": l.Quantity})
	}
	var resp struct {
		Payload cartPayload `json:"cartLinesAdd"`
	}
	req := Request{Query: cartLinesAddMutation, Variables: map[string]any{"cartId": cartID, "lines": in}}
	if err := c.Do(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("add cart lines: %w", err)
	}
	return resp.Payload.result("cartLinesAdd")
}

func (c *Client) UpdateLines(ctx context.Context, cartID string, lines []domain.LineUpdate) (*domain.Cart, error) {
	in := make([]map[string]any, 0, len(lines))
	for _, l := range lines {
		in = append(in, map[string]any{"id": l.ID, "quantity": l.Quantity})
	}
	var resp struct {
		Payload cartPayload `json:"cartLinesUpdate"`
	}
	req := Request{Query: cartLinesUpdateMutation, Variables: map[string]any{"cartId": cartID, "lines": in}}
	if err := c.Do(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("update cart lines: %w", err)
	}
	return resp.Payload.result("cartLinesUpdate")
}

func (c *Client) RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*domain.Cart, error) {
	var resp struct {
		Payload cartPayload `json:"cartLinesRemove"`
	}
	req := Request{Query: cartLinesRemoveMutation, Variables: map[string]any{"cartId": cartID, "lineIds": lineIDs}}
	if err := c.Do(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("remove cart lines: %w", err)
	}
	return resp.Payload.result("cartLinesRemove")
}

func (p cartPayload) result(op string) (*domain.Cart, error) {
	if len(p.UserErrors) > 0 {
		errs := make([]GraphQLError, 0, len(p.UserErrors))
		for _, ue := range p.UserErrors {
			path := make([]any, 0, len(ue.Field))
			for _, f := range ue.Field {
				path = append(path, f)
			}
			errs = append(errs, GraphQLError{Message: ue.Message, Path: path})
		}
		log.Warn().Str("op", op).Interface("user_errors", p.UserErrors).Msg("shopify user errors")
		return nil, fmt.Errorf("%s: %w", op, &UpstreamError{Errors: errs})
	}
	if p.Cart == nil {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	cart := normalizeCart(*p.Cart)
	return &cart, nil
}

var (
	_ domain.CartAPI    = (*Client)(nil)
	_ domain.CatalogAPI = (*Client)(nil)
)
