package model

import "github.com/shopspring/decimal"

// CartLine is an immutable catalog snapshot attached to an order.
type CartLine struct {
	ProductID   string
	ProductName string
	ImageURL    string
	UnitPrice   decimal.Decimal
	Quantity    int
	RentalDays  int
	Subtotal    decimal.Decimal
}

// StockMove adjusts available stock of a product by Delta units.
type StockMove struct {
	ProductID string
	Delta     int
}
