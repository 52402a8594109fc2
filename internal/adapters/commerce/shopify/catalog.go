package shopify

import (
	"context"
	"fmt"

	"github.com/phenrril/brainbattle/internal/domain"
)

// CollectionByHandle returns domain.ErrNotFound when no collection has the handle.
func (c *Client) CollectionByHandle(ctx context.Context, handle string, first int) (*domain.Collection, error) {
	var resp struct {
		Collection *rawCollection `json:"collection"`
	}
	req := Request{
		Query:     collectionQuery,
		Variables: map[string]any{"handle": handle, "first": first},
		Cacheable: true,
	}
	if err := c.Do(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("collection %q: %w", handle, err)
	}
	if resp.Collection == nil {
		return nil, domain.ErrNotFound
	}
	col := normalizeCollection(*resp.Collection)
	return &col, nil
}

func (c *Client) ProductByHandle(ctx context.Context, handle string) (*domain.Product, error) {
	var resp struct {
		Product *rawProduct `json:"product"`
	}
	req := Request{
		Query:     productQuery,
		Variables: map[string]any{"handle": handle},
		Cacheable: true,
	}
	if err := c.Do(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("product %q: %w", handle, err)
	}
	if resp.Product == nil {
		return nil, domain.ErrNotFound
	}
	p := normalizeProduct(*resp.Product)
	return &p, nil
}

func (c *Client) SearchProducts(ctx context.Context, query string, first int) ([]domain.Product, error) {
	var resp struct {
		Products connection[rawProduct] `json:"products"`
	}
	req := Request{
		Query:     searchQuery,
		Variables: map[string]any{"query": query, "first": first},
		Cacheable: true,
	}
	if err := c.Do(ctx, req, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return normalizeProducts(resp.Products), nil
}
