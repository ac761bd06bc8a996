package repository

import (
	"context"

	"github.com/polkiloo/furnirent/internal/domain/model"
)

// PaymentRepository describes persistence operations with settlement records.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByRef(ctx context.Context, ref string) (*model.Payment, error)
	FindPending(ctx context.Context, orderID string, kind model.PaymentKind) (*model.Payment, error)
	ListByOrder(ctx context.Context, orderID string) ([]model.Payment, error)
	// SelectBatchForReconciliation locks pending payments that have waited
	// longest for a gateway check and stamps them as checked.
	SelectBatchForReconciliation(ctx context.Context, limit int) ([]model.Payment, error)
	// Settle stores the final payment status and, when order is not nil, the
	// updated order in one transaction. Payments that are no longer pending
	// are left untouched and reported with ErrAlreadyPaid.
	Settle(ctx context.Context, payment *model.Payment, order *model.RentalOrder) error
}
