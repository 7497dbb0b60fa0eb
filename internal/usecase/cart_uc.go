package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/phenrril/resinwood/internal/cart"
	"github.com/phenrril/resinwood/internal/domain"
)

type CartUC struct {
	Sessions SessionStore
	Products domain.ProductAPI
}

func (uc *CartUC) Get(ctx context.Context, sid string) (cart.Cart, error) {
	sess, err := uc.Sessions.Get(ctx, sid)
	if errors.Is(err, domain.ErrNotFound) {
		return cart.Cart{}, nil
	}
	if err != nil {
		return cart.Cart{}, err
	}
	return sess.Cart, nil
}

// AddProduct adds a plain catalog product. Name, price and image come from
// the product API, never from the client.
func (uc *CartUC) AddProduct(ctx context.Context, sid, productID string, qty int) (cart.Cart, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return cart.Cart{}, errors.New("product id required")
	}
	if strings.HasPrefix(productID, cart.ConfiguredIDPrefix) {
		return cart.Cart{}, &ValidationError{Code: CodeInvalidProduct, Message: "product id is reserved for configured items"}
	}
	if err := checkQuantity(qty); err != nil {
		return cart.Cart{}, err
	}
	p, err := uc.Products.Get(ctx, productID)
	if err != nil {
		return cart.Cart{}, err
	}
	return uc.update(ctx, sid, func(c cart.Cart) cart.Cart {
		return c.AddPlainItem(p.CartItem(), qty)
	})
}

func (uc *CartUC) UpdateQuantity(ctx context.Context, sid, lineID string, qty int) (cart.Cart, error) {
	if err := checkQuantity(qty); err != nil {
		return cart.Cart{}, err
	}
	return uc.update(ctx, sid, func(c cart.Cart) cart.Cart {
		return c.UpdateQuantity(lineID, qty)
	})
}

func (uc *CartUC) Remove(ctx context.Context, sid, lineID string) (cart.Cart, error) {
	return uc.update(ctx, sid, func(c cart.Cart) cart.Cart {
		return c.RemoveItem(lineID)
	})
}

func (uc *CartUC) Clear(ctx context.Context, sid string) (cart.Cart, error) {
	return uc.update(ctx, sid, cart.Cart.Clear)
}

func (uc *CartUC) update(ctx context.Context, sid string, fn func(cart.Cart) cart.Cart) (cart.Cart, error) {
	sess, err := uc.Sessions.Update(ctx, sid, func(s *Session) error {
		s.Cart = fn(s.Cart)
		return nil
	})
	if err != nil {
		return cart.Cart{}, err
	}
	return sess.Cart, nil
}

func checkQuantity(qty int) error {
	if qty > cart.MaxQuantity {
		return &ValidationError{Code: CodeInvalidQuantity, Message: fmt.Sprintf("quantity must be at most %d", cart.MaxQuantity)}
	}
	return nil
}
