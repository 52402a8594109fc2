package shopify

import (
	"github.com/phenrril/brainbattle/internal/domain"
)

// The normalizers are pure: no I/O, and equal input yields equal output.

func normalizeMoney(m money) domain.Money {
	return domain.Money{Amount: m.Amount, CurrencyCode: m.CurrencyCode}
}

func normalizeImage(img *image) *domain.Image {
	if img == nil || img.URL == "" {
		return nil
	}
	out := &domain.Image{URL: img.URL}
	if img.AltText != nil {
		out.AltText = *img.AltText
	}
	return out
}

func metafieldValue(m *metafield) *string {
	if m == nil {
		return nil
	}
	v := m.Value
	return &v
}

func normalizeProduct(raw rawProduct) domain.Product {
	p := domain.Product{
		ID:            raw.ID,
		Title:         raw.Title,
		Handle:        raw.Handle,
		Description:   raw.Description,
		MinPrice:      normalizeMoney(raw.PriceRange.MinVariantPrice),
		FeaturedImage: normalizeImage(raw.FeaturedImage),
		Variants:      []domain.Variant{},
		MissionLabel:  metafieldValue(raw.MissionLabel),
		MissionSlug:   metafieldValue(raw.MissionSlug),
	}
	if raw.Variants != nil {
		for _, e := range raw.Variants.Edges {
			p.Variants = append(p.Variants, domain.Variant{
				ID:    e.Node.ID,
				Title: e.Node.Title,
				Price: normalizeMoney(e.Node.PriceV2),
			})
		}
	}
	return p
}

func normalizeProducts(conn connection[rawProduct]) []domain.Product {
	out := make([]domain.Product, 0, len(conn.Edges))
	for _, e := range conn.Edges {
		out = append(out, normalizeProduct(e.Node))
	}
	return out
}

func normalizeCollection(raw rawCollection) domain.Collection {
	return domain.Collection{
		Handle:      raw.Handle,
		Title:       raw.Title,
		Description: raw.Description,
		Products:    normalizeProducts(raw.Products),
	}
}

func normalizeCart(raw rawCart) domain.Cart {
	c := domain.Cart{
		ID:          raw.ID,
		CheckoutURL: raw.CheckoutURL,
		Subtotal:    normalizeMoney(raw.Cost.SubtotalAmount),
		Lines:       make([]domain.CartLine, 0, len(raw.Lines.Edges)),
	}
	for _, e := range raw.Lines.Edges {
		n := e.Node
		c.Lines = append(c.Lines, domain.CartLine{
			ID:            n.ID,
			Quantity:      n.Quantity,
			MerchandiseID: n.Merchandise.ID,
			Title:         n.Merchandise.Product.Title,
			Handle:        n.Merchandise.Product.Handle,
			Image:         normalizeImage(n.Merchandise.Product.FeaturedImage),
			Price:         normalizeMoney(n.Merchandise.PriceV2),
		})
	}
	return c
}
