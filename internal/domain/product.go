package domain

import (
	"github.com/shopspring/decimal"
)

// Money is an amount in a given currency as reported by the commerce API.
type Money struct {
	Amount       decimal.Decimal
	CurrencyCode string
}

// String renders "{currency} {amount with two decimals}", e.g. "GBP 14.99".
func (m Money) String() string {
	return m.CurrencyCode + " " + m.Amount.StringFixed(2)
}

func (m Money) Times(qty int) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(int64(qty))), CurrencyCode: m.CurrencyCode}
}

type Image struct {
	URL     string
	AltText string
}

// AltOr returns the alt text, or fallback when the API sent none.
func (i *Image) AltOr(fallback string) string {
	if i == nil || i.AltText == "" {
		return fallback
	}
	return i.AltText
}

type Variant struct {
	ID    string
	Title string
	Price Money
}

// Product is a read-through projection of the remote catalog. FeaturedImage,
// MissionLabel and MissionSlug are nil when the API did not return them.
type Product struct {
	ID            string
	Title         string
	Handle        string
	Description   string
	MinPrice      Money
	FeaturedImage *Image
	Variants      []Variant
	MissionLabel  *string
	MissionSlug   *string
}

func (p Product) FirstVariant() (Variant, bool) {
	if len(p.Variants) == 0 {
		return Variant{}, false
	}
	return p.Variants[0], true
}

// HasMission reports whether the product is tagged with a mission slug.
func (p Product) HasMission(slug string) bool {
	return p.MissionSlug != nil && *p.MissionSlug == slug
}

type Collection struct {
	Handle      string
	Title       string
	Description string
	Products    []Product
}
