package rental

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/furnirent/internal/domain/errors"
	"github.com/polkiloo/furnirent/internal/domain/model"
)

var half = decimal.New(5, -1)

// OnConfirm splits the confirmed total into equal deposit and balance legs.
// Zero totals schedule nothing. Pay-on-delivery orders get amounts but no
// tracked legs.
func OnConfirm(order *model.RentalOrder) {
	if !order.Total.IsPositive() {
		return
	}
	share := order.Total.Mul(half).Round(2)
	order.Payment.DepositAmount = share
	order.Payment.BalanceAmount = share
	if order.Payment.PayOnDelivery {
		order.Payment.DepositStatus = model.LegStatusUntracked
		order.Payment.BalanceStatus = model.LegStatusUntracked
		return
	}
	order.Payment.DepositStatus = model.LegStatusPending
	order.Payment.BalanceStatus = model.LegStatusPending
}

// MarkDepositPaid settles the deposit leg.
func MarkDepositPaid(order *model.RentalOrder, at time.Time) error {
	return markPaid(&order.Payment.DepositStatus, &order.Payment.DepositPaidAt, model.PaymentKindDeposit, at)
}

// MarkBalancePaid settles the balance leg.
func MarkBalancePaid(order *model.RentalOrder, at time.Time) error {
	return markPaid(&order.Payment.BalanceStatus, &order.Payment.BalancePaidAt, model.PaymentKindBalance, at)
}

// MarkPaid settles the leg selected by kind.
func MarkPaid(order *model.RentalOrder, kind model.PaymentKind, at time.Time) error {
	switch kind {
	case model.PaymentKindDeposit:
		return MarkDepositPaid(order, at)
	case model.PaymentKindBalance:
		return MarkBalancePaid(order, at)
	default:
		return fmt.Errorf("%w: unknown payment kind %q", domainErrors.ErrNotTracked, kind)
	}
}

func markPaid(status *model.LegStatus, paidAt **time.Time, kind model.PaymentKind, at time.Time) error {
	switch *status {
	case model.LegStatusUntracked:
		return fmt.Errorf("%w: %s", domainErrors.ErrNotTracked, kind)
	case model.LegStatusPaid:
		return fmt.Errorf("%w: %s", domainErrors.ErrAlreadyPaid, kind)
	}
	ts := at
	*status = model.LegStatusPaid
	*paidAt = &ts
	return nil
}

// LegAmount returns the scheduled amount of a leg.
func LegAmount(order *model.RentalOrder, kind model.PaymentKind) decimal.Decimal {
	if kind == model.PaymentKindBalance {
		return order.Payment.BalanceAmount
	}
	return order.Payment.DepositAmount
}

// EnsureCollectable reports whether a leg may be charged now. The deposit is
// due once the order is confirmed, the balance once it is completed.
func EnsureCollectable(order *model.RentalOrder, kind model.PaymentKind) error {
	var status model.LegStatus
	var due bool
	switch kind {
	case model.PaymentKindDeposit:
		status = order.Payment.DepositStatus
		due = order.Status == model.OrderStatusConfirmed ||
			order.Status == model.OrderStatusInProgress ||
			order.Status == model.OrderStatusCompleted
	case model.PaymentKindBalance:
		status = order.Payment.BalanceStatus
		due = order.Status == model.OrderStatusCompleted
	default:
		return fmt.Errorf("%w: unknown payment kind %q", domainErrors.ErrNotTracked, kind)
	}

	switch status {
	case model.LegStatusUntracked:
		return fmt.Errorf("%w: %s", domainErrors.ErrNotTracked, kind)
	case model.LegStatusPaid:
		return fmt.Errorf("%w: %s", domainErrors.ErrAlreadyPaid, kind)
	}
	if !due {
		return fmt.Errorf("%w: %s is not due while order is %s", domainErrors.ErrInvalidTransition, kind, order.Status)
	}
	return nil
}

// DueLegs lists pending legs that can be collected right now.
func DueLegs(order *model.RentalOrder) []model.DueLeg {
	var legs []model.DueLeg
	for _, kind := range []model.PaymentKind{model.PaymentKindDeposit, model.PaymentKindBalance} {
		if EnsureCollectable(order, kind) == nil {
			legs = append(legs, model.DueLeg{OrderID: order.ID, Kind: kind, Amount: LegAmount(order, kind)})
		}
	}
	return legs
}
