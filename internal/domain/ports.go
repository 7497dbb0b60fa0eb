package domain

import (
	"context"

	"github.com/google/uuid"
)

type OrderRepo interface {
	Save(ctx context.Context, o *Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByNumber(ctx context.Context, number string) (*Order, error)
	List(ctx context.Context, f OrderFilter) ([]Order, int64, error)
}

type CustomerRepo interface {
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	Save(ctx context.Context, c *Customer) error
}

type ProductAPI interface {
	List(ctx context.Context, f ProductFilter) (*ProductPage, error)
	Get(ctx context.Context, id string) (*Product, error)
}

// ImageStore serves stored images, optionally resized to a width in pixels.
type ImageStore interface {
	Image(ctx context.Context, name string, width int) ([]byte, string, error)
}
