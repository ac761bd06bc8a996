package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRequest asks to collect one schedule leg.
type PaymentRequest struct {
	Kind       string `json:"kind" binding:"required"`
	Method     string `json:"method"`
	CardNumber string `json:"card_number"`
}

// PaymentResponse describes a settlement record.
type PaymentResponse struct {
	ID             string     `json:"id"`
	OrderID        string     `json:"order_id"`
	Kind           string     `json:"kind"`
	Method         string     `json:"method"`
	Amount         string     `json:"amount"`
	Status         string     `json:"status"`
	TransactionRef string     `json:"transaction_ref"`
	CardLast4      string     `json:"card_last4,omitempty"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// DueLegResponse is an outstanding payment leg.
type DueLegResponse struct {
	OrderID string `json:"order_id"`
	Kind    string `json:"kind"`
	Amount  string `json:"amount"`
}

// ChargeReportRequest is the gateway callback payload.
type ChargeReportRequest struct {
	TransactionRef string          `json:"transaction_ref" binding:"required"`
	OrderID        string          `json:"order_id"`
	Kind           string          `json:"kind"`
	Amount         decimal.Decimal `json:"amount"`
	Status         string          `json:"status" binding:"required"`
}
