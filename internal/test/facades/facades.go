// Package facades holds stubs of the HTTP-facing application facade.
package facades

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/furnirent/internal/domain/model"
	"github.com/polkiloo/furnirent/internal/domain/rental"
	"github.com/polkiloo/furnirent/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, usecase.Registration) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (model.Identity, error)
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, in usecase.Registration) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, in)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

// ParseToken returns a renter identity unless overridden.
func (s AuthFacadeStub) ParseToken(token string) (model.Identity, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return model.Identity{UserID: 1, Role: model.RoleUser}, nil
}

// CatalogFacadeStub simulates catalog reads and writes.
type CatalogFacadeStub struct {
	ProductsFn func(context.Context) ([]model.Product, error)
	ProductFn  func(context.Context, string) (*model.Product, error)
	AddFn      func(context.Context, model.Identity, usecase.ProductInput) (*model.Product, error)
}

// Products returns configured catalog or a single item.
func (s CatalogFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return []model.Product{{ID: "p-1", Name: "Sofa", Price: decimal.NewFromInt(20), Stock: 1, Active: true}}, nil
}

// Product returns configured product or a default one.
func (s CatalogFacadeStub) Product(ctx context.Context, id string) (*model.Product, error) {
	if s.ProductFn != nil {
		return s.ProductFn(ctx, id)
	}
	return &model.Product{ID: id, Name: "Sofa", Price: decimal.NewFromInt(20), Active: true}, nil
}

// AddProduct echoes the input as a stored product.
func (s CatalogFacadeStub) AddProduct(ctx context.Context, caller model.Identity, in usecase.ProductInput) (*model.Product, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, caller, in)
	}
	return &model.Product{ID: "p-new", Name: in.Name, Price: in.Price, Stock: in.Stock, Active: true}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
// TransitionFn serves every operation that takes only the order id.
type OrderFacadeStub struct {
	PlaceFn      func(context.Context, model.Identity, usecase.PlaceOrderInput) (*model.RentalOrder, error)
	OrderFn      func(context.Context, model.Identity, string) (*usecase.OrderView, error)
	OrdersFn     func(context.Context, model.Identity, model.OrderStatus) ([]model.RentalOrder, error)
	ReplaceFn    func(context.Context, model.Identity, string, []usecase.ItemInput) (*model.RentalOrder, error)
	RescheduleFn func(context.Context, model.Identity, string, time.Time, time.Time) (*model.RentalOrder, error)
	ProposeFn    func(context.Context, model.Identity, string, decimal.Decimal) (*model.RentalOrder, error)
	TransitionFn func(context.Context, rental.Operation, model.Identity, string) (*model.RentalOrder, error)
}

func pendingOrder(id string) *model.RentalOrder {
	return &model.RentalOrder{ID: id, Status: model.OrderStatusPending, Transport: model.Transport{Status: model.TransportStatusNotRequired}}
}

// PlaceOrder delegates to provided function or returns a pending order.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, caller model.Identity, in usecase.PlaceOrderInput) (*model.RentalOrder, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, caller, in)
	}
	order := pendingOrder("o-1")
	order.RenterID = caller.UserID
	return order, nil
}

// Order returns configured view or a pending order.
func (s OrderFacadeStub) Order(ctx context.Context, caller model.Identity, id string) (*usecase.OrderView, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, caller, id)
	}
	return &usecase.OrderView{Order: pendingOrder(id), Allowed: []rental.Operation{rental.OpCancel}}, nil
}

// Orders returns predefined orders.
func (s OrderFacadeStub) Orders(ctx context.Context, caller model.Identity, status model.OrderStatus) ([]model.RentalOrder, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, caller, status)
	}
	return []model.RentalOrder{*pendingOrder("o-1")}, nil
}

// ReplaceLines delegates to provided function.
func (s OrderFacadeStub) ReplaceLines(ctx context.Context, caller model.Identity, id string, items []usecase.ItemInput) (*model.RentalOrder, error) {
	if s.ReplaceFn != nil {
		return s.ReplaceFn(ctx, caller, id, items)
	}
	return pendingOrder(id), nil
}

// Reschedule delegates to provided function.
func (s OrderFacadeStub) Reschedule(ctx context.Context, caller model.Identity, id string, start, end time.Time) (*model.RentalOrder, error) {
	if s.RescheduleFn != nil {
		return s.RescheduleFn(ctx, caller, id, start, end)
	}
	order := pendingOrder(id)
	order.StartDate, order.EndDate = &start, &end
	return order, nil
}

// ProposeTransport delegates to provided function.
func (s OrderFacadeStub) ProposeTransport(ctx context.Context, caller model.Identity, id string, cost decimal.Decimal) (*model.RentalOrder, error) {
	if s.ProposeFn != nil {
		return s.ProposeFn(ctx, caller, id, cost)
	}
	return pendingOrder(id), nil
}

func (s OrderFacadeStub) transition(ctx context.Context, op rental.Operation, caller model.Identity, id string) (*model.RentalOrder, error) {
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, op, caller, id)
	}
	return pendingOrder(id), nil
}

// AcceptTransport records an accept transition.
func (s OrderFacadeStub) AcceptTransport(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error) {
	return s.transition(ctx, rental.OpAcceptTransport, caller, id)
}

// RejectTransport records a reject transition.
func (s OrderFacadeStub) RejectTransport(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error) {
	return s.transition(ctx, rental.OpRejectTransport, caller, id)
}

// ConfirmOrder records a confirm transition.
func (s OrderFacadeStub) ConfirmOrder(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error) {
	return s.transition(ctx, rental.OpConfirm, caller, id)
}

// StartOrder records a start transition.
func (s OrderFacadeStub) StartOrder(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error) {
	return s.transition(ctx, rental.OpStart, caller, id)
}

// CompleteOrder records a complete transition.
func (s OrderFacadeStub) CompleteOrder(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error) {
	return s.transition(ctx, rental.OpComplete, caller, id)
}

// CancelOrder records a cancel transition.
func (s OrderFacadeStub) CancelOrder(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error) {
	return s.transition(ctx, rental.OpCancel, caller, id)
}

// PaymentFacadeStub simulates payment operations.
type PaymentFacadeStub struct {
	InitiateFn func(context.Context, model.Identity, string, usecase.PaymentInput) (*model.Payment, error)
	ListFn     func(context.Context, model.Identity, string) ([]model.Payment, error)
	PendingFn  func(context.Context, model.Identity) ([]model.DueLeg, error)
	ApplyFn    func(context.Context, *model.ChargeReport) error
}

// InitiatePayment returns a pending payment for the requested leg.
func (s PaymentFacadeStub) InitiatePayment(ctx context.Context, caller model.Identity, orderID string, in usecase.PaymentInput) (*model.Payment, error) {
	if s.InitiateFn != nil {
		return s.InitiateFn(ctx, caller, orderID, in)
	}
	return &model.Payment{ID: "pay-1", OrderID: orderID, Kind: in.Kind, Method: in.Method, Status: model.PaymentStatusPending, TransactionRef: "TXN-1"}, nil
}

// Payments returns configured payment history.
func (s PaymentFacadeStub) Payments(ctx context.Context, caller model.Identity, orderID string) ([]model.Payment, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, caller, orderID)
	}
	return []model.Payment{{ID: "pay-1", OrderID: orderID, Status: model.PaymentStatusCompleted}}, nil
}

// PendingPayments returns configured due legs.
func (s PaymentFacadeStub) PendingPayments(ctx context.Context, caller model.Identity) ([]model.DueLeg, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, caller)
	}
	return nil, nil
}

// ApplyChargeReport delegates to provided function.
func (s PaymentFacadeStub) ApplyChargeReport(ctx context.Context, report *model.ChargeReport) error {
	if s.ApplyFn != nil {
		return s.ApplyFn(ctx, report)
	}
	return nil
}

// RentalFacadeStub aggregates facade dependencies for HTTP layer tests.
type RentalFacadeStub struct {
	AuthFacadeStub
	CatalogFacadeStub
	OrderFacadeStub
	PaymentFacadeStub
}
