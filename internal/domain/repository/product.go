package repository

import (
	"context"

	"github.com/polkiloo/furnirent/internal/domain/model"
)

// ProductRepository describes persistence operations with the catalog.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context, activeOnly bool) ([]model.Product, error)
}
