// Package rental holds the order lifecycle rules: pricing, transport cost
// negotiation, the deposit/balance schedule and the status machine gating them.
//
// Every operation works on a single *model.RentalOrder in memory. Operations
// validate first and mutate last, so a returned error always means the order
// was left untouched.
package rental

import (
	"github.com/shopspring/decimal"

	"github.com/polkiloo/furnirent/internal/domain/model"
)

// LineSubtotal returns unitPrice × quantity × rentalDays. Lines with a
// non-positive quantity or day count contribute nothing.
func LineSubtotal(line model.CartLine) decimal.Decimal {
	if line.Quantity <= 0 || line.RentalDays <= 0 {
		return decimal.Zero
	}
	return line.UnitPrice.
		Mul(decimal.NewFromInt(int64(line.Quantity))).
		Mul(decimal.NewFromInt(int64(line.RentalDays)))
}

// ComputeTotal sums line subtotals and the accepted transport cost.
func ComputeTotal(lines []model.CartLine, acceptedTransportCost decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(LineSubtotal(line))
	}
	return total.Add(acceptedTransportCost)
}

// Reprice recomputes every line subtotal and the order total.
func Reprice(order *model.RentalOrder) {
	for i := range order.Lines {
		order.Lines[i].Subtotal = LineSubtotal(order.Lines[i])
	}
	order.Total = ComputeTotal(order.Lines, order.Transport.AcceptedCost)
}
