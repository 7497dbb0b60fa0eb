package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/phenrril/resinwood/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ProductUC struct {
	Products domain.ProductAPI
}

func (uc *ProductUC) List(ctx context.Context, f domain.ProductFilter) (*domain.ProductPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = defaultPageSize
	}
	if f.Limit > maxPageSize {
		f.Limit = maxPageSize
	}
	f.Search = strings.TrimSpace(f.Search)
	for _, v := range []string{f.MinPrice, f.MaxPrice} {
		if v == "" {
			continue
		}
		if _, err := domain.ParseMoney(v); err != nil {
			return nil, &ValidationError{Code: CodeInvalidFilter, Message: "price filters must be numbers"}
		}
	}
	return uc.Products.List(ctx, f)
}

func (uc *ProductUC) Get(ctx context.Context, id string) (*domain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("empty product id")
	}
	return uc.Products.Get(ctx, id)
}
