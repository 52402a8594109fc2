package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/brainbattle/internal/domain"
)

// CartUC drives the remote cart. It keeps no state of its own; the cart id
// travels in the caller's identity and every mutation returns the full cart.
// Concurrent writes to the same cart are resolved by the remote system.
type CartUC struct {
	Carts domain.CartAPI
}

// ResolveOrCreateCart returns a cart id the remote system currently accepts,
// creating and storing a new cart when the stored one is missing or expired.
func (uc *CartUC) ResolveOrCreateCart(ctx context.Context, ident domain.CartIdentity) (string, error) {
	if id, ok := ident.Read(); ok {
		_, err := uc.Carts.GetCart(ctx, id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return "", err
		}
		log.Info().Str("cart_id", id).Msg("stored cart expired, creating a new one")
	}
	cart, err := uc.Carts.CreateCart(ctx)
	if err != nil {
		return "", err
	}
	ident.Write(cart.ID)
	return cart.ID, nil
}

func (uc *CartUC) AddLine(ctx context.Context, cartID, merchandiseID string, qty int) (*domain.Cart, error) {
	if merchandiseID == "" {
		return nil, domain.NewValidationError("merchandiseId", "Merchandise is required")
	}
	if qty < 1 {
		return nil, domain.NewValidationError("quantity", "Quantity must be at least 1")
	}
	return uc.Carts.AddLines(ctx, cartID, []domain.LineInput{{MerchandiseID: merchandiseID, Quantity: qty}})
}

// UpdateLine sets a line's quantity; anything below 1 removes the line.
func (uc *CartUC) UpdateLine(ctx context.Context, cartID, lineID string, qty int) (*domain.Cart, error) {
	if lineID == "" {
		return nil, domain.NewValidationError("lineId", "Line is required")
	}
	if qty < 1 {
		return uc.RemoveLine(ctx, cartID, lineID)
	}
	return uc.Carts.UpdateLines(ctx, cartID, []domain.LineUpdate{{ID: lineID, Quantity: qty}})
}

func (uc *CartUC) RemoveLine(ctx context.Context, cartID, lineID string) (*domain.Cart, error) {
	if lineID == "" {
		return nil, domain.NewValidationError("lineId", "Line is required")
	}
	return uc.Carts.RemoveLines(ctx, cartID, []string{lineID})
}

// GetCart reports found=false, with no error, when the remote system does not
// know the id.
func (uc *CartUC) GetCart(ctx context.Context, cartID string) (*domain.Cart, bool, error) {
	cart, err := uc.Carts.GetCart(ctx, cartID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cart, true, nil
}

// AddToSession resolves the session's cart, creating one if needed, and adds
// the merchandise to it.
func (uc *CartUC) AddToSession(ctx context.Context, ident domain.CartIdentity, merchandiseID string, qty int) (*domain.Cart, error) {
	if merchandiseID == "" {
		return nil, domain.NewValidationError("merchandiseId", "Merchandise is required")
	}
	if qty < 1 {
		return nil, domain.NewValidationError("quantity", "Quantity must be at least 1")
	}
	cartID, err := uc.ResolveOrCreateCart(ctx, ident)
	if err != nil {
		return nil, fmt.Errorf("resolve cart: %w", err)
	}
	return uc.AddLine(ctx, cartID, merchandiseID, qty)
}

// Current returns the session's cart for display. A session without a cart
// yields nil; an expired cart also clears the stored id.
func (uc *CartUC) Current(ctx context.Context, ident domain.CartIdentity) (*domain.Cart, error) {
	id, ok := ident.Read()
	if !ok {
		return nil, nil
	}
	cart, found, err := uc.GetCart(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		ident.Clear()
		return nil, nil
	}
	return cart, nil
}
