package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/furnirent/internal/domain/errors"
	"github.com/polkiloo/furnirent/internal/domain/model"
	"github.com/polkiloo/furnirent/internal/domain/rental"
	"github.com/polkiloo/furnirent/internal/domain/repository"
)

// PaymentInput requests collection of one schedule leg.
type PaymentInput struct {
	Kind       model.PaymentKind
	Method     model.PaymentMethod
	CardNumber string
}

// PaymentUseCase opens charges for schedule legs and applies gateway reports.
type PaymentUseCase struct {
	payments repository.PaymentRepository
	orders   repository.OrderRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(payments repository.PaymentRepository, orders repository.OrderRepository, logger *slog.Logger) *PaymentUseCase {
	return &PaymentUseCase{payments: payments, orders: orders, logger: logger, now: time.Now}
}

// Initiate opens a pending charge for a collectable leg. A charge already
// waiting for the gateway is returned instead of a new one.
func (u *PaymentUseCase) Initiate(ctx context.Context, caller model.Identity, orderID string, in PaymentInput) (*model.Payment, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && order.RenterID != caller.UserID {
		return nil, domainErrors.ErrNotFound
	}

	op := rental.OpPayDeposit
	if in.Kind == model.PaymentKindBalance {
		op = rental.OpPayBalance
	}
	if err := rental.Authorize(caller.Party(), op); err != nil {
		return nil, err
	}
	if err := rental.EnsureCollectable(order, in.Kind); err != nil {
		return nil, err
	}

	pending, err := u.payments.FindPending(ctx, order.ID, in.Kind)
	switch {
	case err == nil:
		return pending, nil
	case !errors.Is(err, domainErrors.ErrNotFound):
		return nil, err
	}

	method := in.Method
	if method == "" {
		method = model.PaymentMethodCard
	}
	payment := &model.Payment{
		ID:             uuid.NewString(),
		OrderID:        order.ID,
		PayerID:        caller.UserID,
		Amount:         rental.LegAmount(order, in.Kind),
		Kind:           in.Kind,
		Method:         method,
		Status:         model.PaymentStatusPending,
		TransactionRef: newTransactionRef(),
		CardLast4:      lastDigits(in.CardNumber, 4),
		CreatedAt:      u.now().UTC(),
	}
	if err := u.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	u.logger.Info("payment initiated",
		slog.String("order_id", order.ID),
		slog.String("kind", string(payment.Kind)),
		slog.String("amount", payment.Amount.StringFixed(2)),
		slog.String("transaction_ref", payment.TransactionRef),
	)
	return payment, nil
}

// List returns payment history of an order visible to the caller.
func (u *PaymentUseCase) List(ctx context.Context, caller model.Identity, orderID string) ([]model.Payment, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && order.RenterID != caller.UserID {
		return nil, domainErrors.ErrNotFound
	}
	return u.payments.ListByOrder(ctx, order.ID)
}

// PendingPayments lists legs the renter can pay right now.
func (u *PaymentUseCase) PendingPayments(ctx context.Context, caller model.Identity) ([]model.DueLeg, error) {
	orders, err := u.orders.ListByRenter(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	var legs []model.DueLeg
	for i := range orders {
		legs = append(legs, rental.DueLegs(&orders[i])...)
	}
	return legs, nil
}

// PaymentsForReconciliation returns pending charges to poll at the gateway.
func (u *PaymentUseCase) PaymentsForReconciliation(ctx context.Context, limit int) ([]model.Payment, error) {
	return u.payments.SelectBatchForReconciliation(ctx, limit)
}

// ApplyChargeReport settles a pending payment from a gateway report.
// Reports for payments that are already settled are ignored.
func (u *PaymentUseCase) ApplyChargeReport(ctx context.Context, report *model.ChargeReport) error {
	payment, err := u.payments.GetByRef(ctx, report.TransactionRef)
	if err != nil {
		return err
	}
	if payment.Status != model.PaymentStatusPending || report.Status == model.PaymentStatusPending {
		return nil
	}
	if report.OrderID != "" && report.OrderID != payment.OrderID {
		return fmt.Errorf("%w: report for order %s does not match %s", domainErrors.ErrInvalidAmount, report.OrderID, payment.OrderID)
	}
	if report.Kind != "" && report.Kind != payment.Kind {
		return fmt.Errorf("%w: report for %s does not match %s", domainErrors.ErrInvalidAmount, report.Kind, payment.Kind)
	}
	if !report.Amount.Equal(payment.Amount) {
		return fmt.Errorf("%w: reported %s, expected %s", domainErrors.ErrInvalidAmount, report.Amount.StringFixed(2), payment.Amount.StringFixed(2))
	}

	at := u.now().UTC()
	switch report.Status {
	case model.PaymentStatusFailed:
		payment.Status = model.PaymentStatusFailed
		return u.settle(ctx, payment, nil)
	case model.PaymentStatusCompleted:
	default:
		return fmt.Errorf("unknown charge status %q", report.Status)
	}

	order, err := u.orders.GetByID(ctx, payment.OrderID)
	if err != nil {
		return err
	}
	payment.Status = model.PaymentStatusCompleted
	payment.PaidAt = &at

	if err := rental.MarkPaid(order, payment.Kind, at); err != nil {
		if !errors.Is(err, domainErrors.ErrAlreadyPaid) {
			return err
		}
		// the leg was settled by another charge; close this one without touching the order
		if settleErr := u.settle(ctx, payment, nil); settleErr != nil {
			return settleErr
		}
		return err
	}
	return u.settle(ctx, payment, order)
}

func (u *PaymentUseCase) settle(ctx context.Context, payment *model.Payment, order *model.RentalOrder) error {
	if err := u.payments.Settle(ctx, payment, order); err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyPaid) {
			u.logger.Debug("payment already settled", slog.String("transaction_ref", payment.TransactionRef))
			return nil
		}
		return err
	}
	u.logger.Info("payment settled",
		slog.String("order_id", payment.OrderID),
		slog.String("kind", string(payment.Kind)),
		slog.String("status", string(payment.Status)),
		slog.String("transaction_ref", payment.TransactionRef),
	)
	return nil
}

func newTransactionRef() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "TXN-" + strings.ToUpper(id[:8])
}

func lastDigits(card string, n int) string {
	digits := make([]byte, 0, len(card))
	for i := 0; i < len(card); i++ {
		if card[i] >= '0' && card[i] <= '9' {
			digits = append(digits, card[i])
		}
	}
	if len(digits) <= n {
		return string(digits)
	}
	return string(digits[len(digits)-n:])
}
