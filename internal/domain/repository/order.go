package repository

import (
	"context"

	"github.com/polkiloo/furnirent/internal/domain/model"
)

// OrderRepository describes persistence operations with rental orders.
//
// Create reserves stock for every line and fails with ErrInsufficientStock
// when any product runs short. Update is a compare-and-swap on Version: it
// fails with ErrVersionConflict when the stored version differs, and applies
// the given stock moves in the same transaction.
type OrderRepository interface {
	Create(ctx context.Context, order *model.RentalOrder) error
	GetByID(ctx context.Context, id string) (*model.RentalOrder, error)
	ListByRenter(ctx context.Context, renterID int64) ([]model.RentalOrder, error)
	List(ctx context.Context, status model.OrderStatus) ([]model.RentalOrder, error)
	Update(ctx context.Context, order *model.RentalOrder, moves ...model.StockMove) error
}
