package usecase

import (
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/furnirent/internal/domain/model"
	testhelpers "github.com/polkiloo/furnirent/internal/test"
)

var (
	fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	renter   = model.Identity{UserID: 7, Role: model.RoleUser}
	stranger = model.Identity{UserID: 8, Role: model.RoleUser}
	admin    = model.Identity{UserID: 1, Role: model.RoleAdmin}
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type orderFixture struct {
	users    *testhelpers.UserRepositoryStub
	products *testhelpers.ProductRepositoryStub
	orders   *testhelpers.OrderRepositoryStub
	payments *testhelpers.PaymentRepositoryStub
	uc       *OrderUseCase
	pay      *PaymentUseCase
}

func newOrderFixture() *orderFixture {
	users := testhelpers.NewUserRepositoryStub()
	users.ByID[renter.UserID] = &model.User{ID: renter.UserID, Login: "ann", Name: "Ann", Email: "ann@example.com", Role: model.RoleUser}
	users.ByID[stranger.UserID] = &model.User{ID: stranger.UserID, Login: "bob", Role: model.RoleUser}

	products := testhelpers.NewProductRepositoryStub(
		model.Product{ID: "sofa", Name: "Sofa", Price: decimal.NewFromInt(20), ImageURL: "/sofa.png", Stock: 5, Active: true},
		model.Product{ID: "lamp", Name: "Lamp", Price: decimal.RequireFromString("4.50"), Stock: 10, Active: true},
		model.Product{ID: "old", Name: "Old chair", Price: decimal.NewFromInt(1), Stock: 3},
	)

	orders := testhelpers.NewOrderRepositoryStub()
	orders.Stock = map[string]int{"sofa": 5, "lamp": 10, "old": 3}
	payments := testhelpers.NewPaymentRepositoryStub(orders)

	uc := NewOrderUseCase(orders, products, users, discardLogger())
	uc.now = func() time.Time { return fixedNow }
	pay := NewPaymentUseCase(payments, orders, discardLogger())
	pay.now = func() time.Time { return fixedNow }

	return &orderFixture{users: users, products: products, orders: orders, payments: payments, uc: uc, pay: pay}
}

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
