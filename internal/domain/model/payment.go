package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LegStatus tracks one leg of the payment schedule. Empty means not tracked.
type LegStatus string

const (
	LegStatusUntracked LegStatus = ""
	LegStatusPending   LegStatus = "PENDING"
	LegStatusPaid      LegStatus = "PAID"
)

// PaymentSchedule holds deposit and balance obligations of an order.
type PaymentSchedule struct {
	DepositAmount decimal.Decimal
	BalanceAmount decimal.Decimal
	DepositStatus LegStatus
	BalanceStatus LegStatus
	DepositPaidAt *time.Time
	BalancePaidAt *time.Time
	PayOnDelivery bool
}

// PaymentKind selects a leg of the schedule.
type PaymentKind string

const (
	PaymentKindDeposit PaymentKind = "DEPOSIT"
	PaymentKindBalance PaymentKind = "BALANCE"
)

// PaymentStatus describes a settlement record state.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// PaymentMethod names an accepted way to pay.
type PaymentMethod string

const (
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
)

// Payment records one settlement event of an order leg.
type Payment struct {
	ID             string
	OrderID        string
	PayerID        int64
	Amount         decimal.Decimal
	Kind           PaymentKind
	Method         PaymentMethod
	Status         PaymentStatus
	PaidAt         *time.Time
	TransactionRef string
	CardLast4      string
	CreatedAt      time.Time
}

// ChargeReport is the gateway view of a charge.
type ChargeReport struct {
	TransactionRef string
	OrderID        string
	Kind           PaymentKind
	Amount         decimal.Decimal
	Status         PaymentStatus
}

// DueLeg is an outstanding, currently collectable payment leg.
type DueLeg struct {
	OrderID string
	Kind    PaymentKind
	Amount  decimal.Decimal
}
