package shopify

import "github.com/shopspring/decimal"

// Wire shapes of the Storefront API. Optional members are pointers so a
// missing value is distinguishable from an empty one.

type money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

type image struct {
	URL     string  `json:"url"`
	AltText *string `json:"altText"`
}

type metafield struct {
	Value string `json:"value"`
}

type connection[T any] struct {
	Edges []edge[T] `json:"edges"`
}

type edge[T any] struct {
	Node T `json:"node"`
}

type rawVariant struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	PriceV2 money  `json:"priceV2"`
}

type rawProduct struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Handle      string `json:"handle"`
	Description string `json:"description"`
	PriceRange  struct {
		MinVariantPrice money `json:"minVariantPrice"`
	} `json:"priceRange"`
	FeaturedImage *image                  `json:"featuredImage"`
	Variants      *connection[rawVariant] `json:"variants"`
	MissionLabel  *metafield              `json:"metafieldMissionLabel"`
	MissionSlug   *metafield              `json:"metafieldMissionSlug"`
}

type rawCollection struct {
	Handle      string                 `json:"handle"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Products    connection[rawProduct] `json:"products"`
}

type rawCartLine struct {
	ID          string `json:"id"`
	Quantity    int    `json:"quantity"`
	Merchandise struct {
		ID      string `json:"id"`
		Title   string `json:"title"`
		Product struct {
			Handle        string `json:"handle"`
			Title         string `json:"title"`
			FeaturedImage *image `json:"featuredImage"`
		} `json:"product"`
		PriceV2 money `json:"priceV2"`
	} `json:"merchandise"`
}

type rawCart struct {
	ID          string `json:"id"`
	CheckoutURL string `json:"checkoutUrl"`
	Cost        struct {
		SubtotalAmount money `json:"subtotalAmount"`
	} `json:"cost"`
	Lines connection[rawCartLine] `json:"lines"`
}

type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// cartPayload is the common result of every cart mutation.
type cartPayload struct {
	Cart       *rawCart    `json:"cart"`
	UserErrors []userError `json:"userErrors"`
}
