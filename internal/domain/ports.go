package domain

import "context"

// CartAPI is the remote side of the cart. GetCart returns ErrNotFound when
// the remote system does not know the id.
type CartAPI interface {
	CreateCart(ctx context.Context) (*Cart, error)
	GetCart(ctx context.Context, cartID string) (*Cart, error)
	AddLines(ctx context.Context, cartID string, lines []LineInput) (*Cart, error)
	UpdateLines(ctx context.Context, cartID string, lines []LineUpdate) (*Cart, error)
	RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*Cart, error)
}

// CatalogAPI reads products and collections. Lookups by handle return
// ErrNotFound for unknown handles.
type CatalogAPI interface {
	CollectionByHandle(ctx context.Context, handle string, first int) (*Collection, error)
	ProductByHandle(ctx context.Context, handle string) (*Product, error)
	SearchProducts(ctx context.Context, query string, first int) ([]Product, error)
}

// CartIdentity holds the cart id of one browser session.
type CartIdentity interface {
	Read() (string, bool)
	Write(cartID string)
	Clear()
}

type ContentLookup interface {
	Bundle(handle string) (BundleInfo, bool)
	Mission(slug string) (Mission, bool)
	Missions() []Mission
}

type WaitlistRepo interface {
	Save(ctx context.Context, s *WaitlistSignup) error
	List(ctx context.Context) ([]WaitlistSignup, error)
}
