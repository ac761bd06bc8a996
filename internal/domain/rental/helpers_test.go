package rental

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/furnirent/internal/domain/model"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newPendingOrder(transportRequired bool) *model.RentalOrder {
	start := testNow.AddDate(0, 0, 7)
	end := start.AddDate(0, 0, 3)
	order := &model.RentalOrder{
		ID:       "order-1",
		RenterID: 7,
		Status:   model.OrderStatusPending,
		Lines: []model.CartLine{
			{ProductID: "sofa", ProductName: "Sofa", UnitPrice: dec("20"), Quantity: 2, RentalDays: 3},
		},
		StartDate: &start,
		EndDate:   &end,
		OrderedAt: testNow,
	}
	if transportRequired {
		order.Transport.Status = model.TransportStatusPending
	} else {
		order.Transport.Status = model.TransportStatusNotRequired
	}
	Reprice(order)
	return order
}
