package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/furnirent/internal/domain/errors"
	"github.com/polkiloo/furnirent/internal/domain/model"
	"github.com/polkiloo/furnirent/internal/domain/rental"
	"github.com/polkiloo/furnirent/internal/domain/repository"
)

// ItemInput is a requested cart item.
type ItemInput struct {
	ProductID  string
	Quantity   int
	RentalDays int
}

// PlaceOrderInput describes checkout of a cart.
type PlaceOrderInput struct {
	Items             []ItemInput
	StartDate         *time.Time
	EndDate           *time.Time
	DeliveryAddress   string
	Notes             string
	TransportRequired bool
	PayOnDelivery     bool
}

// OrderView is an order snapshot with operations available to the caller.
type OrderView struct {
	Order   *model.RentalOrder
	Allowed []rental.Operation
}

// OrderUseCase drives rental orders through their lifecycle.
type OrderUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	users    repository.UserRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, products repository.ProductRepository, users repository.UserRepository, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{orders: orders, products: products, users: users, logger: logger, now: time.Now}
}

// Place checks out a cart into a new PENDING order and reserves stock.
func (u *OrderUseCase) Place(ctx context.Context, caller model.Identity, in PlaceOrderInput) (*model.RentalOrder, error) {
	if caller.IsAdmin() {
		return nil, domainErrors.ErrForbidden
	}

	days := 0
	if in.StartDate != nil && in.EndDate != nil {
		if in.StartDate.After(*in.EndDate) {
			return nil, domainErrors.ErrInvalidDates
		}
		days = rental.RentalDays(*in.StartDate, *in.EndDate)
	}

	lines, err := u.snapshotLines(ctx, in.Items, days)
	if err != nil {
		return nil, err
	}

	renter, err := u.users.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("load renter: %w", err)
	}

	transport := model.TransportStatusNotRequired
	if in.TransportRequired {
		transport = model.TransportStatusPending
	}

	order := &model.RentalOrder{
		ID:              uuid.NewString(),
		RenterID:        renter.ID,
		RenterName:      renter.Name,
		RenterEmail:     renter.Email,
		Lines:           lines,
		Status:          model.OrderStatusPending,
		OrderedAt:       u.now().UTC(),
		StartDate:       in.StartDate,
		EndDate:         in.EndDate,
		DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
		Notes:           strings.TrimSpace(in.Notes),
		Transport:       model.Transport{Status: transport},
		Payment:         model.PaymentSchedule{PayOnDelivery: in.PayOnDelivery},
	}
	rental.Reprice(order)

	if err := u.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	u.logger.Info("order placed",
		slog.String("order_id", order.ID),
		slog.Int64("renter_id", order.RenterID),
		slog.String("total", order.Total.StringFixed(2)),
		slog.String("transport", string(order.Transport.Status)),
	)
	return order, nil
}

// Get returns an order visible to the caller.
func (u *OrderUseCase) Get(ctx context.Context, caller model.Identity, id string) (*OrderView, error) {
	order, err := u.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	return &OrderView{Order: order, Allowed: rental.AllowedOperations(order, caller.Party())}, nil
}

// List returns the caller's orders, or every order for administrators.
func (u *OrderUseCase) List(ctx context.Context, caller model.Identity, status model.OrderStatus) ([]model.RentalOrder, error) {
	if caller.IsAdmin() {
		return u.orders.List(ctx, status)
	}

	orders, err := u.orders.ListByRenter(ctx, caller.UserID)
	if err != nil || status == "" {
		return orders, err
	}
	filtered := orders[:0]
	for _, o := range orders {
		if o.Status == status {
			filtered = append(filtered, o)
		}
	}
	return filtered, nil
}

// ReplaceLines swaps the cart of a PENDING order and moves stock by the difference.
func (u *OrderUseCase) ReplaceLines(ctx context.Context, caller model.Identity, id string, items []ItemInput) (*model.RentalOrder, error) {
	return u.mutate(ctx, caller, id, rental.OpReplaceLines, func(order *model.RentalOrder) ([]model.StockMove, error) {
		days := 0
		if order.StartDate != nil && order.EndDate != nil {
			days = rental.RentalDays(*order.StartDate, *order.EndDate)
		}
		lines, err := u.snapshotLines(ctx, items, days)
		if err != nil {
			return nil, err
		}
		before := append([]model.CartLine(nil), order.Lines...)
		if err := rental.ReplaceLines(order, lines); err != nil {
			return nil, err
		}
		return stockDiff(before, order.Lines), nil
	})
}

// Reschedule moves the rental window.
func (u *OrderUseCase) Reschedule(ctx context.Context, caller model.Identity, id string, start, end time.Time) (*model.RentalOrder, error) {
	return u.mutate(ctx, caller, id, rental.OpReschedule, func(order *model.RentalOrder) ([]model.StockMove, error) {
		return nil, rental.Reschedule(order, start, end)
	})
}

// ProposeTransport records a delivery cost offer from the caller's side.
func (u *OrderUseCase) ProposeTransport(ctx context.Context, caller model.Identity, id string, cost decimal.Decimal) (*model.RentalOrder, error) {
	return u.mutate(ctx, caller, id, rental.OpProposeTransport, func(order *model.RentalOrder) ([]model.StockMove, error) {
		return nil, rental.Propose(order, caller.Party(), cost, u.now().UTC())
	})
}

// AcceptTransport accepts the counterparty offer.
func (u *OrderUseCase) AcceptTransport(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error) {
	return u.mutate(ctx, caller, id, rental.OpAcceptTransport, func(order *model.RentalOrder) ([]model.StockMove, error) {
		return nil, rental.Accept(order, caller.Party())
	})
}

// RejectTransport rejects the counterparty offer.
func (u *OrderUseCase) RejectTransport(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error) {
	return u.mutate(ctx, caller, id, rental.OpRejectTransport, func(order *model.RentalOrder) ([]model.StockMove, error) {
		return nil, rental.Reject(order, caller.Party())
	})
}

// Confirm freezes the total and builds the payment schedule.
func (u *OrderUseCase) Confirm(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error) {
	return u.mutate(ctx, caller, id, rental.OpConfirm, func(order *model.RentalOrder) ([]model.StockMove, error) {
		return nil, rental.Confirm(order)
	})
}

// Start hands the furniture over to the renter.
func (u *OrderUseCase) Start(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error) {
	return u.mutate(ctx, caller, id, rental.OpStart, func(order *model.RentalOrder) ([]model.StockMove, error) {
		return nil, rental.Start(order)
	})
}

// Complete closes the rental and returns the items to stock.
func (u *OrderUseCase) Complete(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error) {
	return u.mutate(ctx, caller, id, rental.OpComplete, func(order *model.RentalOrder) ([]model.StockMove, error) {
		if err := rental.Complete(order); err != nil {
			return nil, err
		}
		return releaseStock(order.Lines), nil
	})
}

// Cancel aborts the order and releases reserved stock.
func (u *OrderUseCase) Cancel(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error) {
	return u.mutate(ctx, caller, id, rental.OpCancel, func(order *model.RentalOrder) ([]model.StockMove, error) {
		if err := rental.Cancel(order, caller.Party()); err != nil {
			return nil, err
		}
		return releaseStock(order.Lines), nil
	})
}

type orderMutation func(order *model.RentalOrder) ([]model.StockMove, error)

func (u *OrderUseCase) mutate(ctx context.Context, caller model.Identity, id string, op rental.Operation, fn orderMutation) (*model.RentalOrder, error) {
	order, err := u.load(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := rental.Authorize(caller.Party(), op); err != nil {
		return nil, err
	}

	from := order.Status
	moves, err := fn(order)
	if err != nil {
		return nil, err
	}

	if err := u.orders.Update(ctx, order, moves...); err != nil {
		if errors.Is(err, domainErrors.ErrVersionConflict) {
			u.logger.Warn("concurrent order update", slog.String("order_id", id), slog.String("operation", string(op)))
		}
		return nil, err
	}

	u.logger.Info("order updated",
		slog.String("order_id", order.ID),
		slog.String("operation", string(op)),
		slog.String("party", string(caller.Party())),
		slog.String("from", string(from)),
		slog.String("to", string(order.Status)),
	)
	return order, nil
}

// load fetches an order and hides orders of other renters.
func (u *OrderUseCase) load(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin() && order.RenterID != caller.UserID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// snapshotLines copies catalog data into cart lines. A positive days value
// overrides per-item rental days.
func (u *OrderUseCase) snapshotLines(ctx context.Context, items []ItemInput, days int) ([]model.CartLine, error) {
	if len(items) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}

	lines := make([]model.CartLine, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity of %q must be positive", domainErrors.ErrInvalidLine, item.ProductID)
		}
		product, err := u.products.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown product %q", domainErrors.ErrInvalidLine, item.ProductID)
			}
			return nil, err
		}
		if !product.Active {
			return nil, fmt.Errorf("%w: product %q is not available", domainErrors.ErrInvalidLine, item.ProductID)
		}

		lineDays := days
		if lineDays <= 0 {
			lineDays = max(item.RentalDays, 1)
		}
		lines = append(lines, model.CartLine{
			ProductID:   product.ID,
			ProductName: product.Name,
			ImageURL:    product.ImageURL,
			UnitPrice:   product.Price,
			Quantity:    item.Quantity,
			RentalDays:  lineDays,
		})
	}

	if err := rental.ValidateLines(lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// stockDiff returns moves that release the old lines and reserve the new ones.
func stockDiff(before, after []model.CartLine) []model.StockMove {
	delta := make(map[string]int)
	var order []string
	add := func(id string, d int) {
		if _, seen := delta[id]; !seen {
			order = append(order, id)
		}
		delta[id] += d
	}
	for _, l := range before {
		add(l.ProductID, l.Quantity)
	}
	for _, l := range after {
		add(l.ProductID, -l.Quantity)
	}

	var moves []model.StockMove
	for _, id := range order {
		if delta[id] != 0 {
			moves = append(moves, model.StockMove{ProductID: id, Delta: delta[id]})
		}
	}
	return moves
}

func releaseStock(lines []model.CartLine) []model.StockMove {
	return stockDiff(lines, nil)
}
