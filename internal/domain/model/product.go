package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a rentable catalog item.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Stock       int
	Active      bool
	CreatedAt   time.Time
}
