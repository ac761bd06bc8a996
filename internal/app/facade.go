package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/furnirent/internal/domain/model"
	"github.com/polkiloo/furnirent/internal/usecase"
)

type ChargeProvider interface {
	Fetch(ctx context.Context, ref string) (*model.ChargeReport, error)
}

// RentalFacade joins the use cases behind the HTTP handlers and the
// reconciliation worker.
type RentalFacade struct {
	auth     *usecase.AuthUseCase
	catalog  *usecase.CatalogUseCase
	orders   *usecase.OrderUseCase
	payments *usecase.PaymentUseCase
	charges  ChargeProvider
}

func NewRentalFacade(auth *usecase.AuthUseCase, catalog *usecase.CatalogUseCase, orders *usecase.OrderUseCase, payments *usecase.PaymentUseCase, charges ChargeProvider) *RentalFacade {
	return &RentalFacade{auth: auth, catalog: catalog, orders: orders, payments: payments, charges: charges}
}

func (f *RentalFacade) Register(ctx context.Context, in usecase.Registration) (string, error) {
	_, token, err := f.auth.Register(ctx, in)
	return token, err
}

func (f *RentalFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *RentalFacade) ParseToken(token string) (model.Identity, error) {
	return f.auth.ParseToken(token)
}

func (f *RentalFacade) EnsureAdmin(ctx context.Context, login, password string) error {
	return f.auth.EnsureAdmin(ctx, login, password)
}

func (f *RentalFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.catalog.Products(ctx)
}

func (f *RentalFacade) Product(ctx context.Context, id string) (*model.Product, error) {
	return f.catalog.Product(ctx, id)
}

func (f *RentalFacade) AddProduct(ctx context.Context, caller model.Identity, in usecase.ProductInput) (*model.Product, error) {
	return f.catalog.AddProduct(ctx, caller, in)
}

func (f *RentalFacade) PlaceOrder(ctx context.Context, caller model.Identity, in usecase.PlaceOrderInput) (*model.RentalOrder, error) {
	return f.orders.Place(ctx, caller, in)
}

func (f *RentalFacade) Order(ctx context.Context, caller model.Identity, id string) (*usecase.OrderView, error) {
	return f.orders.Get(ctx, caller, id)
}

func (f *RentalFacade) Orders(ctx context.Context, caller model.Identity, status model.OrderStatus) ([]model.RentalOrder, error) {
	return f.orders.List(ctx, caller, status)
}

func (f *RentalFacade) ReplaceLines(ctx context.Context, caller model.Identity, id string, items []usecase.ItemInput) (*model.RentalOrder, error) {
	return f.orders.ReplaceLines(ctx, caller, id, items)
}

func (f *RentalFacade) Reschedule(ctx context.Context, caller model.Identity, id string, start, end time.Time) (*model.RentalOrder, error) {
	return f.orders.Reschedule(ctx, caller, id, start, end)
}

func (f *RentalFacade) ProposeTransport(ctx context.Context, caller model.Identity, id string, cost decimal.Decimal) (*model.RentalOrder, error) {
	return f.orders.ProposeTransport(ctx, caller, id, cost)
}

func (f *RentalFacade) AcceptTransport(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error) {
	return f.orders.AcceptTransport(ctx, caller, id)
}

func (f *RentalFacade) RejectTransport(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error) {
	return f.orders.RejectTransport(ctx, caller, id)
}

func (f *RentalFacade) ConfirmOrder(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error) {
	return f.orders.Confirm(ctx, caller, id)
}

func (f *RentalFacade) StartOrder(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error) {
	return f.orders.Start(ctx, caller, id)
}

func (f *RentalFacade) CompleteOrder(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error) {
	return f.orders.Complete(ctx, caller, id)
}

func (f *RentalFacade) CancelOrder(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error) {
	return f.orders.Cancel(ctx, caller, id)
}

func (f *RentalFacade) InitiatePayment(ctx context.Context, caller model.Identity, orderID string, in usecase.PaymentInput) (*model.Payment, error) {
	return f.payments.Initiate(ctx, caller, orderID, in)
}

func (f *RentalFacade) Payments(ctx context.Context, caller model.Identity, orderID string) ([]model.Payment, error) {
	return f.payments.List(ctx, caller, orderID)
}

func (f *RentalFacade) PendingPayments(ctx context.Context, caller model.Identity) ([]model.DueLeg, error) {
	return f.payments.PendingPayments(ctx, caller)
}

func (f *RentalFacade) PaymentsForReconciliation(ctx context.Context, limit int) ([]model.Payment, error) {
	return f.payments.PaymentsForReconciliation(ctx, limit)
}

func (f *RentalFacade) ApplyChargeReport(ctx context.Context, report *model.ChargeReport) error {
	return f.payments.ApplyChargeReport(ctx, report)
}

func (f *RentalFacade) CheckCharge(ctx context.Context, ref string) (*model.ChargeReport, error) {
	return f.charges.Fetch(ctx, ref)
}
