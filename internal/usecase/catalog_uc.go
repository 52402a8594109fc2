package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/phenrril/brainbattle/internal/domain"
)

const (
	KitsCollection         = "kits"
	kitsPageSize           = 20
	defaultCollectionFirst = 50
	defaultSearchFirst     = 20
)

// ProductView is a product joined with the content kept in the repository.
type ProductView struct {
	Product domain.Product
	Bundle  *domain.BundleInfo
	Mission *domain.Mission
}

type CatalogUC struct {
	Catalog domain.CatalogAPI
	Content domain.ContentLookup
}

// Kits returns the products of the kits collection, empty when the
// collection does not exist.
func (uc *CatalogUC) Kits(ctx context.Context) ([]domain.Product, error) {
	col, found, err := uc.Collection(ctx, KitsCollection, kitsPageSize)
	if err != nil {
		return nil, err
	}
	if !found {
		return []domain.Product{}, nil
	}
	return col.Products, nil
}

func (uc *CatalogUC) Collection(ctx context.Context, handle string, first int) (*domain.Collection, bool, error) {
	if first <= 0 {
		first = defaultCollectionFirst
	}
	col, err := uc.Catalog.CollectionByHandle(ctx, handle, first)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return col, true, nil
}

// Product returns domain.ErrNotFound for unknown handles.
func (uc *CatalogUC) Product(ctx context.Context, handle string) (*ProductView, error) {
	if strings.TrimSpace(handle) == "" {
		return nil, domain.ErrNotFound
	}
	p, err := uc.Catalog.ProductByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	view := &ProductView{Product: *p}
	if uc.Content == nil {
		return view, nil
	}
	if b, ok := uc.Content.Bundle(p.Handle); ok {
		view.Bundle = &b
	}
	if p.MissionSlug != nil {
		if m, ok := uc.Content.Mission(*p.MissionSlug); ok {
			view.Mission = &m
		}
	}
	return view, nil
}

// Search skips the remote call for a blank query.
func (uc *CatalogUC) Search(ctx context.Context, q string, first int) ([]domain.Product, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []domain.Product{}, nil
	}
	if first <= 0 {
		first = defaultSearchFirst
	}
	return uc.Catalog.SearchProducts(ctx, q, first)
}
