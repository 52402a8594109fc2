package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/phenrril/brainbattle/internal/domain"
)

// fakeCarts is an in-memory CartAPI that counts calls per operation.
type fakeCarts struct {
	mu     sync.Mutex
	carts  map[string]*domain.Cart
	prices map[string]domain.Money
	seq    int
	calls  map[string]int
	err    error
}

func newFakeCarts() *fakeCarts {
	return &fakeCarts{
		carts: map[string]*domain.Cart{},
		prices: map[string]domain.Money{
			"gid://shop/ProductVariant/1": {Amount: decimal.RequireFromString("14.99"), CurrencyCode: "GBP"},
			"gid://shop/ProductVariant/2": {Amount: decimal.RequireFromString("9.50"), CurrencyCode: "GBP"},
		},
		calls: map[string]int{},
	}
}

func (f *fakeCarts) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeCarts) snapshot(c *domain.Cart) *domain.Cart {
	out := *c
	out.Lines = append([]domain.CartLine{}, c.Lines...)
	sub := domain.Money{Amount: decimal.Zero, CurrencyCode: "GBP"}
	for _, l := range out.Lines {
		sub.Amount = sub.Amount.Add(l.Total().Amount)
	}
	out.Subtotal = sub
	return &out
}

func (f *fakeCarts) CreateCart(context.Context) (*domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["create"]++
	if f.err != nil {
		return nil, f.err
	}
	f.seq++
	c := &domain.Cart{ID: fmt.Sprintf("cart-%d", f.seq), Lines: []domain.CartLine{}}
	f.carts[c.ID] = c
	return f.snapshot(c), nil
}

func (f *fakeCarts) GetCart(_ context.Context, id string) (*domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["get"]++
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.carts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return f.snapshot(c), nil
}

func (f *fakeCarts) AddLines(_ context.Context, id string, lines []domain.LineInput) (*domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["add"]++
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.carts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	for _, in := range lines {
		f.seq++
		c.Lines = append(c.Lines, domain.CartLine{
			ID:            fmt.Sprintf("line-%d", f.seq),
			MerchandiseID: in.MerchandiseID,
			Quantity:      in.Quantity,
			Price:         f.prices[in.MerchandiseID],
		})
	}
	return f.snapshot(c), nil
}

func (f *fakeCarts) UpdateLines(_ context.Context, id string, lines []domain.LineUpdate) (*domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["update"]++
	c, ok := f.carts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	for _, u := range lines {
		for i := range c.Lines {
			if c.Lines[i].ID == u.ID {
				c.Lines[i].Quantity = u.Quantity
			}
		}
	}
	return f.snapshot(c), nil
}

func (f *fakeCarts) RemoveLines(_ context.Context, id string, lineIDs []string) (*domain.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["remove"]++
	c, ok := f.carts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	drop := map[string]bool{}
	for _, l := range lineIDs {
		drop[l] = true
	}
	kept := []domain.CartLine{}
	for _, l := range c.Lines {
		if !drop[l.ID] {
			kept = append(kept, l)
		}
	}
	c.Lines = kept
	return f.snapshot(c), nil
}

// memIdentity is a CartIdentity without a request behind it.
type memIdentity struct {
	id      string
	present bool
	writes  []string
	cleared int
}

func (m *memIdentity) Read() (string, bool) { return m.id, m.present }

func (m *memIdentity) Write(id string) {
	m.id, m.present = id, true
	m.writes = append(m.writes, id)
}

func (m *memIdentity) Clear() {
	m.id, m.present = "", false
	m.cleared++
}

type fakeCatalog struct {
	collections map[string]*domain.Collection
	products    map[string]*domain.Product
	searches    int
	lastFirst   int
	err         error
}

func (f *fakeCatalog) CollectionByHandle(_ context.Context, handle string, first int) (*domain.Collection, error) {
	f.lastFirst = first
	if f.err != nil {
		return nil, f.err
	}
	c, ok := f.collections[handle]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (f *fakeCatalog) ProductByHandle(_ context.Context, handle string) (*domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[handle]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeCatalog) SearchProducts(_ context.Context, q string, first int) ([]domain.Product, error) {
	f.searches++
	f.lastFirst = first
	out := []domain.Product{}
	for _, p := range f.products {
		if p.Title == q {
			out = append(out, *p)
		}
	}
	return out, nil
}

type memContent struct {
	bundles  map[string]domain.BundleInfo
	missions []domain.Mission
}

func (m memContent) Bundle(h string) (domain.BundleInfo, bool) {
	b, ok := m.bundles[h]
	return b, ok
}

func (m memContent) Mission(slug string) (domain.Mission, bool) {
	for _, ms := range m.missions {
		if ms.Slug == slug {
			return ms, true
		}
	}
	return domain.Mission{}, false
}

func (m memContent) Missions() []domain.Mission { return m.missions }

type memWaitlist struct {
	saved []domain.WaitlistSignup
	err   error
}

func (m *memWaitlist) Save(_ context.Context, s *domain.WaitlistSignup) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, *s)
	return nil
}

func (m *memWaitlist) List(context.Context) ([]domain.WaitlistSignup, error) {
	return m.saved, nil
}

func strPtr(s string) *string { return &s }
