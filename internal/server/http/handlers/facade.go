package handlers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/furnirent/internal/domain/model"
	"github.com/polkiloo/furnirent/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, in usecase.Registration) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (model.Identity, error)
}

// CatalogFacade exposes the product catalog.
type CatalogFacade interface {
	Products(ctx context.Context) ([]model.Product, error)
	Product(ctx context.Context, id string) (*model.Product, error)
	AddProduct(ctx context.Context, caller model.Identity, in usecase.ProductInput) (*model.Product, error)
}

// OrderFacade encapsulates rental order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, caller model.Identity, in usecase.PlaceOrderInput) (*model.RentalOrder, error)
	Order(ctx context.Context, caller model.Identity, id string) (*usecase.OrderView, error)
	Orders(ctx context.Context, caller model.Identity, status model.OrderStatus) ([]model.RentalOrder, error)
	ReplaceLines(ctx context.Context, caller model.Identity, id string, items []usecase.ItemInput) (*model.RentalOrder, error)
	Reschedule(ctx context.Context, caller model.Identity, id string, start, end time.Time) (*model.RentalOrder, error)
	ProposeTransport(ctx context.Context, caller model.Identity, id string, cost decimal.Decimal) (*model.RentalOrder, error)
	AcceptTransport(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error)
	RejectTransport(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error)
	ConfirmOrder(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error)
	StartOrder(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error)
	CompleteOrder(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error)
	CancelOrder(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error)
}

// PaymentFacade provides payment related operations.
type PaymentFacade interface {
	InitiatePayment(ctx context.Context, caller model.Identity, orderID string, in usecase.PaymentInput) (*model.Payment, error)
	Payments(ctx context.Context, caller model.Identity, orderID string) ([]model.Payment, error)
	PendingPayments(ctx context.Context, caller model.Identity) ([]model.DueLeg, error)
	ApplyChargeReport(ctx context.Context, report *model.ChargeReport) error
}

// RentalFacade aggregates the full set of operations used across handlers.
type RentalFacade interface {
	AuthFacade
	CatalogFacade
	OrderFacade
	PaymentFacade
}
