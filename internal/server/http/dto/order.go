package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest is a cart item of a checkout or line replacement.
type OrderItemRequest struct {
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"quantity"`
	RentalDays int    `json:"rental_days,omitempty"`
}

// PlaceOrderRequest describes checkout payload.
type PlaceOrderRequest struct {
	Items             []OrderItemRequest `json:"items"`
	StartDate         *Date              `json:"start_date,omitempty"`
	EndDate           *Date              `json:"end_date,omitempty"`
	DeliveryAddress   string             `json:"delivery_address"`
	Notes             string             `json:"notes"`
	TransportRequired bool               `json:"transport_required"`
	PayOnDelivery     bool               `json:"pay_on_delivery"`
}

// ReplaceLinesRequest replaces the cart of a pending order.
type ReplaceLinesRequest struct {
	Items []OrderItemRequest `json:"items"`
}

// ScheduleRequest moves the rental window.
type ScheduleRequest struct {
	StartDate Date `json:"start_date"`
	EndDate   Date `json:"end_date"`
}

// TransportProposalRequest carries a transport cost offer.
type TransportProposalRequest struct {
	Cost decimal.Decimal `json:"cost"`
}

// OrderLineResponse is a priced cart line.
type OrderLineResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	ImageURL    string `json:"image_url,omitempty"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	RentalDays  int    `json:"rental_days"`
	Subtotal    string `json:"subtotal"`
}

// TransportResponse exposes the negotiation state.
type TransportResponse struct {
	Status            string     `json:"status"`
	UserProposedCost  *string    `json:"user_proposed_cost,omitempty"`
	AdminProposedCost *string    `json:"admin_proposed_cost,omitempty"`
	AcceptedCost      string     `json:"accepted_cost"`
	LastProposer      string     `json:"last_proposer,omitempty"`
	ProposedAt        *time.Time `json:"proposed_at,omitempty"`
}

// PaymentScheduleResponse exposes deposit and balance legs.
type PaymentScheduleResponse struct {
	DepositAmount string     `json:"deposit_amount"`
	BalanceAmount string     `json:"balance_amount"`
	DepositStatus *string    `json:"deposit_status"`
	BalanceStatus *string    `json:"balance_status"`
	DepositPaidAt *time.Time `json:"deposit_paid_at,omitempty"`
	BalancePaidAt *time.Time `json:"balance_paid_at,omitempty"`
	PayOnDelivery bool       `json:"pay_on_delivery"`
}

// OrderResponse is an order snapshot.
type OrderResponse struct {
	ID                string                  `json:"id"`
	RenterID          int64                   `json:"renter_id"`
	RenterName        string                  `json:"renter_name,omitempty"`
	RenterEmail       string                  `json:"renter_email,omitempty"`
	Status            string                  `json:"status"`
	Lines             []OrderLineResponse     `json:"lines"`
	Total             string                  `json:"total"`
	OrderedAt         time.Time               `json:"ordered_at"`
	StartDate         *Date                   `json:"start_date,omitempty"`
	EndDate           *Date                   `json:"end_date,omitempty"`
	DeliveryAddress   string                  `json:"delivery_address,omitempty"`
	Notes             string                  `json:"notes,omitempty"`
	Transport         TransportResponse       `json:"transport"`
	Payment           PaymentScheduleResponse `json:"payment"`
	Version           int64                   `json:"version"`
	AllowedOperations []string                `json:"allowed_operations,omitempty"`
}
