package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes rental order lifecycle.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// TransportStatus describes the delivery cost negotiation state.
type TransportStatus string

const (
	TransportStatusNotRequired   TransportStatus = "NOT_REQUIRED"
	TransportStatusPending       TransportStatus = "PENDING"
	TransportStatusUserProposed  TransportStatus = "USER_PROPOSED"
	TransportStatusAdminProposed TransportStatus = "ADMIN_PROPOSED"
	TransportStatusAccepted      TransportStatus = "ACCEPTED"
	TransportStatusRejected      TransportStatus = "REJECTED"
)

// Party identifies a side of the transport negotiation.
type Party string

const (
	PartyUser  Party = "USER"
	PartyAdmin Party = "ADMIN"
)

// Transport holds negotiation fields of an order.
type Transport struct {
	Status            TransportStatus
	UserProposedCost  decimal.NullDecimal
	AdminProposedCost decimal.NullDecimal
	AcceptedCost      decimal.Decimal
	LastProposer      Party
	ProposedAt        *time.Time
}

// RentalOrder is the aggregate root of the rental lifecycle.
type RentalOrder struct {
	ID              string
	RenterID        int64
	RenterName      string
	RenterEmail     string
	Lines           []CartLine
	Total           decimal.Decimal
	Status          OrderStatus
	OrderedAt       time.Time
	StartDate       *time.Time
	EndDate         *time.Time
	DeliveryAddress string
	Notes           string
	Transport       Transport
	Payment         PaymentSchedule
	Version         int64
	UpdatedAt       time.Time
}

// Clone returns a deep copy safe for speculative mutation.
func (o *RentalOrder) Clone() *RentalOrder {
	c := *o
	c.Lines = append([]CartLine(nil), o.Lines...)
	c.StartDate = cloneTime(o.StartDate)
	c.EndDate = cloneTime(o.EndDate)
	c.Transport.ProposedAt = cloneTime(o.Transport.ProposedAt)
	c.Payment.DepositPaidAt = cloneTime(o.Payment.DepositPaidAt)
	c.Payment.BalancePaidAt = cloneTime(o.Payment.BalancePaidAt)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
