package test

import (
	"context"
	"sort"
	"sync"

	domainErrors "github.com/polkiloo/furnirent/internal/domain/errors"
	"github.com/polkiloo/furnirent/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[user.Login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	created := *user
	created.ID = s.Next
	if created.Role == "" {
		created.Role = model.RoleUser
	}
	s.Next++
	s.Users[created.Login] = &created
	s.ByID[created.ID] = &created
	return &created, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ProductRepositoryStub keeps the catalog in memory.
type ProductRepositoryStub struct {
	Products map[string]*model.Product
	Err      error
}

// NewProductRepositoryStub seeds the stub with the given products.
func NewProductRepositoryStub(products ...model.Product) *ProductRepositoryStub {
	s := &ProductRepositoryStub{Products: make(map[string]*model.Product)}
	for i := range products {
		p := products[i]
		s.Products[p.ID] = &p
	}
	return s
}

func (s *ProductRepositoryStub) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Products == nil {
		s.Products = make(map[string]*model.Product)
	}
	if _, exists := s.Products[product.ID]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	created := *product
	s.Products[created.ID] = &created
	out := created
	return &out, nil
}

func (s *ProductRepositoryStub) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.Products[id]; ok {
		out := *p
		return &out, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *ProductRepositoryStub) List(ctx context.Context, activeOnly bool) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Product
	for _, p := range s.Products {
		if activeOnly && !p.Active {
			continue
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// OrderUpdateCall captures a single repository update.
type OrderUpdateCall struct {
	Order model.RentalOrder
	Moves []model.StockMove
}

// OrderRepositoryStub is an in-memory order store with version checks.
// When Stock is set, creation reserves and moves adjust it.
type OrderRepositoryStub struct {
	CreateFn func(context.Context, *model.RentalOrder) error
	UpdateFn func(context.Context, *model.RentalOrder, ...model.StockMove) error
	GetErr   error

	Orders  map[string]*model.RentalOrder
	Stock   map[string]int
	Updates []OrderUpdateCall

	mu sync.Mutex
}

// NewOrderRepositoryStub constructs stub repository with initialized maps.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[string]*model.RentalOrder)}
}

// Put stores an order as-is.
func (s *OrderRepositoryStub) Put(order *model.RentalOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Orders == nil {
		s.Orders = make(map[string]*model.RentalOrder)
	}
	s.Orders[order.ID] = order.Clone()
}

func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.RentalOrder) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.Orders[order.ID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	if s.Stock != nil {
		for _, line := range order.Lines {
			if s.Stock[line.ProductID] < line.Quantity {
				return domainErrors.ErrInsufficientStock
			}
		}
		for _, line := range order.Lines {
			s.Stock[line.ProductID] -= line.Quantity
		}
	}
	order.Version = 1
	if s.Orders == nil {
		s.Orders = make(map[string]*model.RentalOrder)
	}
	s.Orders[order.ID] = order.Clone()
	return nil
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.RentalOrder, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.Orders[id]; ok {
		return o.Clone(), nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) ListByRenter(ctx context.Context, renterID int64) ([]model.RentalOrder, error) {
	return s.filter(func(o *model.RentalOrder) bool { return o.RenterID == renterID })
}

func (s *OrderRepositoryStub) List(ctx context.Context, status model.OrderStatus) ([]model.RentalOrder, error) {
	return s.filter(func(o *model.RentalOrder) bool { return status == "" || o.Status == status })
}

func (s *OrderRepositoryStub) filter(keep func(*model.RentalOrder) bool) ([]model.RentalOrder, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.RentalOrder
	for _, o := range s.Orders {
		if keep(o) {
			result = append(result, *o.Clone())
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *OrderRepositoryStub) Update(ctx context.Context, order *model.RentalOrder, moves ...model.StockMove) error {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, order, moves...)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.Orders[order.ID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if stored.Version != order.Version {
		return domainErrors.ErrVersionConflict
	}
	if s.Stock != nil {
		for _, m := range moves {
			if s.Stock[m.ProductID]+m.Delta < 0 {
				return domainErrors.ErrInsufficientStock
			}
		}
		for _, m := range moves {
			s.Stock[m.ProductID] += m.Delta
		}
	}
	order.Version++
	s.Orders[order.ID] = order.Clone()
	s.Updates = append(s.Updates, OrderUpdateCall{Order: *order.Clone(), Moves: append([]model.StockMove(nil), moves...)})
	return nil
}

// PaymentRepositoryStub keeps payments in memory. Settle writes the order
// through Orders when it is set.
type PaymentRepositoryStub struct {
	SelectBatchFn func(context.Context, int) ([]model.Payment, error)
	SettleFn      func(context.Context, *model.Payment, *model.RentalOrder) error
	Err           error

	Orders   *OrderRepositoryStub
	Payments map[string]*model.Payment
	Settled  []model.Payment

	mu sync.Mutex
}

// NewPaymentRepositoryStub constructs stub repository bound to the order stub.
func NewPaymentRepositoryStub(orders *OrderRepositoryStub) *PaymentRepositoryStub {
	return &PaymentRepositoryStub{Orders: orders, Payments: make(map[string]*model.Payment)}
}

func (s *PaymentRepositoryStub) Create(ctx context.Context, payment *model.Payment) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Payments == nil {
		s.Payments = make(map[string]*model.Payment)
	}
	if _, exists := s.Payments[payment.TransactionRef]; exists {
		return domainErrors.ErrAlreadyExists
	}
	stored := *payment
	s.Payments[payment.TransactionRef] = &stored
	return nil
}

func (s *PaymentRepositoryStub) GetByRef(ctx context.Context, ref string) (*model.Payment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.Payments[ref]; ok {
		out := *p
		return &out, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *PaymentRepositoryStub) FindPending(ctx context.Context, orderID string, kind model.PaymentKind) (*model.Payment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.Payments {
		if p.OrderID == orderID && p.Kind == kind && p.Status == model.PaymentStatusPending {
			out := *p
			return &out, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

func (s *PaymentRepositoryStub) ListByOrder(ctx context.Context, orderID string) ([]model.Payment, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Payment
	for _, p := range s.Payments {
		if p.OrderID == orderID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TransactionRef < result[j].TransactionRef })
	return result, nil
}

func (s *PaymentRepositoryStub) SelectBatchForReconciliation(ctx context.Context, limit int) ([]model.Payment, error) {
	if s.SelectBatchFn != nil {
		return s.SelectBatchFn(ctx, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Payment
	for _, p := range s.Payments {
		if p.Status == model.PaymentStatusPending {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TransactionRef < result[j].TransactionRef })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *PaymentRepositoryStub) Settle(ctx context.Context, payment *model.Payment, order *model.RentalOrder) error {
	if s.SettleFn != nil {
		return s.SettleFn(ctx, payment, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.Payments[payment.TransactionRef]
	if !ok || stored.Status != model.PaymentStatusPending {
		return domainErrors.ErrAlreadyPaid
	}
	if order != nil && s.Orders != nil {
		if err := s.Orders.Update(ctx, order); err != nil {
			return err
		}
	}
	updated := *payment
	s.Payments[payment.TransactionRef] = &updated
	s.Settled = append(s.Settled, updated)
	return nil
}
