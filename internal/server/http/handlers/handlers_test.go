package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/furnirent/internal/domain/errors"
	"github.com/polkiloo/furnirent/internal/domain/model"
	"github.com/polkiloo/furnirent/internal/domain/rental"
	"github.com/polkiloo/furnirent/internal/server/http/dto"
	"github.com/polkiloo/furnirent/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/furnirent/internal/test"
	"github.com/polkiloo/furnirent/internal/test/facades"
	"github.com/polkiloo/furnirent/internal/usecase"
)

var (
	renter = model.Identity{UserID: 7, Role: model.RoleUser}
	admin  = model.Identity{UserID: 1, Role: model.RoleAdmin}
	jsonCT = map[string]string{"Content-Type": "application/json"}
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, route, target string, handler gin.HandlerFunc, caller *model.Identity, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if caller != nil {
			c.Set(middleware.IdentityContextKey, *caller)
		}
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCurrentIdentity(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentIdentity(c); got.UserID != 0 {
		t.Fatalf("expected empty identity when not set, got %+v", got)
	}

	c.Set(middleware.IdentityContextKey, admin)
	if got := CurrentIdentity(c); got != admin {
		t.Fatalf("expected admin identity, got %+v", got)
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domainErrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{domainErrors.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("%w: order o-1", domainErrors.ErrNotFound), http.StatusNotFound},
		{domainErrors.ErrInvalidTransition, http.StatusConflict},
		{domainErrors.ErrInvalidParty, http.StatusConflict},
		{domainErrors.ErrTransportNotResolved, http.StatusConflict},
		{domainErrors.ErrNotTracked, http.StatusConflict},
		{domainErrors.ErrAlreadyPaid, http.StatusConflict},
		{domainErrors.ErrVersionConflict, http.StatusConflict},
		{domainErrors.ErrAlreadyExists, http.StatusConflict},
		{domainErrors.ErrInsufficientStock, http.StatusConflict},
		{domainErrors.ErrInvalidAmount, http.StatusUnprocessableEntity},
		{domainErrors.ErrInvalidLine, http.StatusUnprocessableEntity},
		{domainErrors.ErrEmptyCart, http.StatusUnprocessableEntity},
		{domainErrors.ErrInvalidDates, http.StatusUnprocessableEntity},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := statusFor(tc.err); got != tc.want {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.want, got)
		}
	}
}

func TestAuthHandlerRegisterScenarioMatchesE2E(t *testing.T) {
	login := testhelpers.RandomASCIIString(7, 14)
	password := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.RegisterRequest{AuthRequest: dto.AuthRequest{Login: login, Password: password}, Name: "Ann"})
	handler := NewAuthHandler(facades.AuthFacadeStub{RegisterFn: func(ctx context.Context, in usecase.Registration) (string, error) {
		if in.Login != login || in.Password != password || in.Name != "Ann" {
			t.Fatalf("unexpected registration passed to facade: %+v", in)
		}
		return "session-token", nil
	}})
	resp := performRequest(t, http.MethodPost, "/register", "/register", handler.Register, nil, body, jsonCT)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", got)
	}
	result := resp.Result()
	t.Cleanup(func() {
		_ = result.Body.Close()
	})
	found := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "furnirent_token" && cookie.Value == "session-token" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected auth cookie named furnirent_token")
	}
}

func TestAuthHandlerFailures(t *testing.T) {
	failing := func(err error) facades.AuthFacadeStub {
		return facades.AuthFacadeStub{
			RegisterFn:     func(context.Context, usecase.Registration) (string, error) { return "", err },
			AuthenticateFn: func(context.Context, string, string) (string, error) { return "", err },
		}
	}
	tests := []struct {
		name     string
		facade   facades.AuthFacadeStub
		body     []byte
		register int
		login    int
	}{
		{name: "bad json", body: []byte("not json"), register: http.StatusBadRequest, login: http.StatusBadRequest},
		{name: "invalid credentials", facade: failing(domainErrors.ErrInvalidCredentials), body: []byte(`{"login":"a","password":"b"}`), register: http.StatusBadRequest, login: http.StatusUnauthorized},
		{name: "already exists", facade: failing(domainErrors.ErrAlreadyExists), body: []byte(`{"login":"a","password":"b"}`), register: http.StatusConflict, login: http.StatusConflict},
		{name: "internal", facade: failing(errors.New("boom")), body: []byte(`{"login":"a","password":"b"}`), register: http.StatusInternalServerError, login: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(tt.facade)
			if resp := performRequest(t, http.MethodPost, "/register", "/register", h.Register, nil, tt.body, jsonCT); resp.Code != tt.register {
				t.Fatalf("register: expected status %d, got %d", tt.register, resp.Code)
			}
			if resp := performRequest(t, http.MethodPost, "/login", "/login", h.Login, nil, tt.body, jsonCT); resp.Code != tt.login {
				t.Fatalf("login: expected status %d, got %d", tt.login, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(facades.AuthFacadeStub{}).Login, nil, []byte(`{"login":"a","password":"b"}`), jsonCT)
	if resp.Code != http.StatusOK || resp.Header().Get("Authorization") != "Bearer token" {
		t.Fatalf("unexpected login response %d %q", resp.Code, resp.Header().Get("Authorization"))
	}
}

func TestProductHandler(t *testing.T) {
	h := NewProductHandler(facades.CatalogFacadeStub{})

	resp := performRequest(t, http.MethodGet, "/products", "/products", h.List, nil, nil, nil)
	var list []dto.ProductResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &list); err != nil || resp.Code != http.StatusOK {
		t.Fatalf("unexpected list response %d: %s", resp.Code, resp.Body.String())
	}
	if len(list) != 1 || list[0].Price != "20.00" {
		t.Fatalf("unexpected products %+v", list)
	}

	resp = performRequest(t, http.MethodGet, "/products/:id", "/products/p-9", h.Get, nil, nil, nil)
	var one dto.ProductResponse
	_ = json.Unmarshal(resp.Body.Bytes(), &one)
	if resp.Code != http.StatusOK || one.ID != "p-9" {
		t.Fatalf("unexpected product response %d %+v", resp.Code, one)
	}

	missing := NewProductHandler(facades.CatalogFacadeStub{ProductFn: func(context.Context, string) (*model.Product, error) {
		return nil, domainErrors.ErrNotFound
	}})
	if resp := performRequest(t, http.MethodGet, "/products/:id", "/products/x", missing.Get, nil, nil, nil); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}

	broken := NewProductHandler(facades.CatalogFacadeStub{ProductsFn: func(context.Context) ([]model.Product, error) {
		return nil, errors.New("db down")
	}})
	if resp := performRequest(t, http.MethodGet, "/products", "/products", broken.List, nil, nil, nil); resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}

func TestProductHandlerCreate(t *testing.T) {
	var got usecase.ProductInput
	var caller model.Identity
	h := NewProductHandler(facades.CatalogFacadeStub{AddFn: func(ctx context.Context, c model.Identity, in usecase.ProductInput) (*model.Product, error) {
		got, caller = in, c
		return &model.Product{ID: "p-1", Name: in.Name, Price: in.Price, Stock: in.Stock}, nil
	}})

	resp := performRequest(t, http.MethodPost, "/admin/products", "/admin/products", h.Create, &admin, []byte(`{"name":"Desk","price":"12.5","stock":3}`), jsonCT)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if got.Name != "Desk" || !got.Price.Equal(decimal.RequireFromString("12.5")) || got.Stock != 3 || caller != admin {
		t.Fatalf("unexpected input %+v from %+v", got, caller)
	}

	if resp := performRequest(t, http.MethodPost, "/admin/products", "/admin/products", h.Create, &admin, []byte(`{"price":"abc"}`), jsonCT); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestOrderHandlerPlace(t *testing.T) {
	var got usecase.PlaceOrderInput
	h := NewOrderHandler(facades.OrderFacadeStub{PlaceFn: func(ctx context.Context, caller model.Identity, in usecase.PlaceOrderInput) (*model.RentalOrder, error) {
		got = in
		return &model.RentalOrder{ID: "o-1", RenterID: caller.UserID, Status: model.OrderStatusPending, Total: decimal.NewFromInt(120)}, nil
	}})

	body := []byte(`{"items":[{"product_id":" sofa ","quantity":2,"rental_days":3}],"start_date":"2026-03-10","end_date":"2026-03-13T00:00:00Z","transport_required":true}`)
	resp := performRequest(t, http.MethodPost, "/orders", "/orders", h.Place, &renter, body, jsonCT)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if len(got.Items) != 1 || got.Items[0].ProductID != "sofa" || got.Items[0].Quantity != 2 || !got.TransportRequired {
		t.Fatalf("unexpected input %+v", got)
	}
	if got.StartDate == nil || !got.StartDate.Equal(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)) || got.EndDate == nil {
		t.Fatalf("unexpected dates %v %v", got.StartDate, got.EndDate)
	}

	var order dto.OrderResponse
	_ = json.Unmarshal(resp.Body.Bytes(), &order)
	if order.Total != "120.00" || order.RenterID != renter.UserID {
		t.Fatalf("unexpected response %+v", order)
	}

	if resp := performRequest(t, http.MethodPost, "/orders", "/orders", h.Place, &renter, []byte(`{"start_date":"tomorrow"}`), jsonCT); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad date, got %d", resp.Code)
	}

	failing := NewOrderHandler(facades.OrderFacadeStub{PlaceFn: func(context.Context, model.Identity, usecase.PlaceOrderInput) (*model.RentalOrder, error) {
		return nil, domainErrors.ErrEmptyCart
	}})
	resp = performRequest(t, http.MethodPost, "/orders", "/orders", failing.Place, &renter, []byte(`{"items":[]}`), jsonCT)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
}

func TestOrderHandlerGetRendersSnapshot(t *testing.T) {
	paid := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	h := NewOrderHandler(facades.OrderFacadeStub{OrderFn: func(ctx context.Context, caller model.Identity, id string) (*usecase.OrderView, error) {
		return &usecase.OrderView{
			Order: &model.RentalOrder{
				ID:     id,
				Status: model.OrderStatusConfirmed,
				Total:  decimal.NewFromInt(150),
				Transport: model.Transport{
					Status:           model.TransportStatusAccepted,
					UserProposedCost: decimal.NewNullDecimal(decimal.NewFromInt(30)),
					AcceptedCost:     decimal.NewFromInt(30),
					LastProposer:     model.PartyUser,
				},
				Payment: model.PaymentSchedule{
					DepositAmount: decimal.NewFromInt(75),
					BalanceAmount: decimal.NewFromInt(75),
					DepositStatus: model.LegStatusPaid,
					BalanceStatus: model.LegStatusPending,
					DepositPaidAt: &paid,
				},
			},
			Allowed: []rental.Operation{rental.OpCancel, rental.OpStart},
		}, nil
	}})

	resp := performRequest(t, http.MethodGet, "/orders/:id", "/orders/o-5", h.Get, &admin, nil, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var order dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &order); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if order.ID != "o-5" || order.Total != "150.00" || order.Transport.AcceptedCost != "30.00" {
		t.Fatalf("unexpected order %+v", order)
	}
	if order.Transport.UserProposedCost == nil || *order.Transport.UserProposedCost != "30.00" || order.Transport.AdminProposedCost != nil {
		t.Fatalf("unexpected proposals %+v", order.Transport)
	}
	if order.Payment.DepositStatus == nil || *order.Payment.DepositStatus != "PAID" || order.Payment.DepositAmount != "75.00" {
		t.Fatalf("unexpected schedule %+v", order.Payment)
	}
	if len(order.AllowedOperations) != 2 || order.AllowedOperations[1] != "start" {
		t.Fatalf("unexpected allowed operations %v", order.AllowedOperations)
	}
}

func TestOrderHandlerPayOnDeliveryRendersNullLegs(t *testing.T) {
	h := NewOrderHandler(facades.OrderFacadeStub{OrdersFn: func(context.Context, model.Identity, model.OrderStatus) ([]model.RentalOrder, error) {
		return []model.RentalOrder{{ID: "o-1", Payment: model.PaymentSchedule{PayOnDelivery: true}}}, nil
	}})
	resp := performRequest(t, http.MethodGet, "/orders", "/orders", h.List, &renter, nil, nil)
	var raw []struct {
		Payment map[string]any `json:"payment"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &raw); err != nil || len(raw) != 1 {
		t.Fatalf("decode response: %v", err)
	}
	payment := raw[0].Payment
	if v, ok := payment["deposit_status"]; !ok || v != nil {
		t.Fatalf("expected null deposit status, got %v", payment)
	}
}

func TestOrderHandlerListPassesStatus(t *testing.T) {
	var status model.OrderStatus
	h := NewOrderHandler(facades.OrderFacadeStub{OrdersFn: func(ctx context.Context, caller model.Identity, s model.OrderStatus) ([]model.RentalOrder, error) {
		status = s
		return nil, nil
	}})
	resp := performRequest(t, http.MethodGet, "/orders", "/orders?status=confirmed", h.List, &admin, nil, nil)
	if resp.Code != http.StatusOK || resp.Body.String() != "[]" {
		t.Fatalf("unexpected response %d %s", resp.Code, resp.Body.String())
	}
	if status != model.OrderStatusConfirmed {
		t.Fatalf("expected CONFIRMED filter, got %q", status)
	}
}

func TestOrderHandlerTransitions(t *testing.T) {
	var calls []rental.Operation
	stub := facades.OrderFacadeStub{TransitionFn: func(ctx context.Context, op rental.Operation, caller model.Identity, id string) (*model.RentalOrder, error) {
		calls = append(calls, op)
		if id == "stale" {
			return nil, domainErrors.ErrVersionConflict
		}
		return &model.RentalOrder{ID: id}, nil
	}}
	h := NewOrderHandler(stub)

	routes := []struct {
		handler gin.HandlerFunc
		op      rental.Operation
	}{
		{h.Accept, rental.OpAcceptTransport},
		{h.Reject, rental.OpRejectTransport},
		{h.Confirm, rental.OpConfirm},
		{h.Start, rental.OpStart},
		{h.Complete, rental.OpComplete},
		{h.Cancel, rental.OpCancel},
	}
	for _, r := range routes {
		calls = nil
		if resp := performRequest(t, http.MethodPost, "/orders/:id/x", "/orders/o-1/x", r.handler, &admin, nil, nil); resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", r.op, resp.Code)
		}
		if len(calls) != 1 || calls[0] != r.op {
			t.Fatalf("expected %s call, got %v", r.op, calls)
		}
	}

	if resp := performRequest(t, http.MethodPost, "/orders/:id/confirm", "/orders/stale/confirm", h.Confirm, &admin, nil, nil); resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 for stale write, got %d", resp.Code)
	}
}

func TestOrderHandlerBodies(t *testing.T) {
	var cost decimal.Decimal
	var start, end time.Time
	var items []usecase.ItemInput
	h := NewOrderHandler(facades.OrderFacadeStub{
		ProposeFn: func(ctx context.Context, caller model.Identity, id string, c decimal.Decimal) (*model.RentalOrder, error) {
			cost = c
			return &model.RentalOrder{ID: id}, nil
		},
		RescheduleFn: func(ctx context.Context, caller model.Identity, id string, s, e time.Time) (*model.RentalOrder, error) {
			start, end = s, e
			return &model.RentalOrder{ID: id}, nil
		},
		ReplaceFn: func(ctx context.Context, caller model.Identity, id string, in []usecase.ItemInput) (*model.RentalOrder, error) {
			items = in
			return &model.RentalOrder{ID: id}, nil
		},
	})

	if resp := performRequest(t, http.MethodPost, "/orders/:id/p", "/orders/o-1/p", h.Propose, &renter, []byte(`{"cost":30.5}`), jsonCT); resp.Code != http.StatusOK {
		t.Fatalf("propose: expected 200, got %d", resp.Code)
	}
	if cost.StringFixed(2) != "30.50" {
		t.Fatalf("unexpected cost %s", cost)
	}

	if resp := performRequest(t, http.MethodPut, "/orders/:id/s", "/orders/o-1/s", h.Reschedule, &renter, []byte(`{"start_date":"2026-04-01","end_date":"2026-04-05"}`), jsonCT); resp.Code != http.StatusOK {
		t.Fatalf("reschedule: expected 200, got %d", resp.Code)
	}
	if start.Day() != 1 || end.Day() != 5 {
		t.Fatalf("unexpected window %v - %v", start, end)
	}
	if resp := performRequest(t, http.MethodPut, "/orders/:id/s", "/orders/o-1/s", h.Reschedule, &renter, []byte(`{"start_date":"2026-04-01"}`), jsonCT); resp.Code != http.StatusBadRequest {
		t.Fatalf("reschedule without end: expected 400, got %d", resp.Code)
	}

	if resp := performRequest(t, http.MethodPut, "/orders/:id/l", "/orders/o-1/l", h.ReplaceLines, &renter, []byte(`{"items":[{"product_id":"lamp","quantity":1}]}`), jsonCT); resp.Code != http.StatusOK {
		t.Fatalf("replace: expected 200, got %d", resp.Code)
	}
	if len(items) != 1 || items[0].ProductID != "lamp" {
		t.Fatalf("unexpected items %+v", items)
	}

	for _, handler := range []gin.HandlerFunc{h.Propose, h.Reschedule, h.ReplaceLines} {
		if resp := performRequest(t, http.MethodPost, "/orders/:id", "/orders/o-1", handler, &renter, []byte("{"), jsonCT); resp.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
		}
	}
}

func TestPaymentHandlerInitiate(t *testing.T) {
	var got usecase.PaymentInput
	h := NewPaymentHandler(facades.PaymentFacadeStub{InitiateFn: func(ctx context.Context, caller model.Identity, orderID string, in usecase.PaymentInput) (*model.Payment, error) {
		got = in
		return &model.Payment{OrderID: orderID, Kind: in.Kind, Amount: decimal.NewFromInt(60), Status: model.PaymentStatusPending, TransactionRef: "TXN-1"}, nil
	}})

	card := testhelpers.RandomCardNumber()
	body, _ := json.Marshal(dto.PaymentRequest{Kind: "deposit", CardNumber: card})
	resp := performRequest(t, http.MethodPost, "/orders/:id/payments", "/orders/o-1/payments", h.Initiate, &renter, body, jsonCT)
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", resp.Code)
	}
	if got.Kind != model.PaymentKindDeposit || got.CardNumber != card {
		t.Fatalf("unexpected input %+v", got)
	}
	var payment dto.PaymentResponse
	_ = json.Unmarshal(resp.Body.Bytes(), &payment)
	if payment.Amount != "60.00" || payment.TransactionRef != "TXN-1" {
		t.Fatalf("unexpected payment %+v", payment)
	}

	for _, body := range []string{`{"kind":"tip"}`, `{"kind":"deposit","method":"cash"}`, `{}`} {
		if resp := performRequest(t, http.MethodPost, "/orders/:id/payments", "/orders/o-1/payments", h.Initiate, &renter, []byte(body), jsonCT); resp.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, resp.Code)
		}
	}

	notTracked := NewPaymentHandler(facades.PaymentFacadeStub{InitiateFn: func(context.Context, model.Identity, string, usecase.PaymentInput) (*model.Payment, error) {
		return nil, domainErrors.ErrNotTracked
	}})
	if resp := performRequest(t, http.MethodPost, "/orders/:id/payments", "/orders/o-1/payments", notTracked.Initiate, &renter, []byte(`{"kind":"DEPOSIT"}`), jsonCT); resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
}

func TestPaymentHandlerListAndPending(t *testing.T) {
	h := NewPaymentHandler(facades.PaymentFacadeStub{})
	resp := performRequest(t, http.MethodGet, "/orders/:id/payments", "/orders/o-1/payments", h.List, &renter, nil, nil)
	var payments []dto.PaymentResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &payments); err != nil || len(payments) != 1 {
		t.Fatalf("unexpected payments %s", resp.Body.String())
	}

	if resp := performRequest(t, http.MethodGet, "/pending", "/pending", h.Pending, &renter, nil, nil); resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 without due legs, got %d", resp.Code)
	}

	due := NewPaymentHandler(facades.PaymentFacadeStub{PendingFn: func(context.Context, model.Identity) ([]model.DueLeg, error) {
		return []model.DueLeg{{OrderID: "o-1", Kind: model.PaymentKindDeposit, Amount: decimal.NewFromInt(75)}}, nil
	}})
	resp = performRequest(t, http.MethodGet, "/pending", "/pending", due.Pending, &renter, nil, nil)
	var legs []dto.DueLegResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &legs); err != nil || len(legs) != 1 || legs[0].Amount != "75.00" {
		t.Fatalf("unexpected legs %s", resp.Body.String())
	}
}

func TestPaymentHandlerCallback(t *testing.T) {
	var got *model.ChargeReport
	h := NewPaymentHandler(facades.PaymentFacadeStub{ApplyFn: func(ctx context.Context, report *model.ChargeReport) error {
		got = report
		if report.TransactionRef == "TXN-BAD" {
			return domainErrors.ErrInvalidAmount
		}
		return nil
	}})

	body := []byte(`{"transaction_ref":"TXN-1","order_id":"o-1","kind":"deposit","amount":"75.00","status":"completed"}`)
	if resp := performRequest(t, http.MethodPost, "/cb", "/cb", h.Callback, nil, body, jsonCT); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got.Kind != model.PaymentKindDeposit || got.Status != model.PaymentStatusCompleted || got.Amount.StringFixed(2) != "75.00" {
		t.Fatalf("unexpected report %+v", got)
	}

	if resp := performRequest(t, http.MethodPost, "/cb", "/cb", h.Callback, nil, []byte(`{"transaction_ref":"TXN-BAD","status":"COMPLETED"}`), jsonCT); resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
	if resp := performRequest(t, http.MethodPost, "/cb", "/cb", h.Callback, nil, []byte(`{"status":"COMPLETED"}`), jsonCT); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without ref, got %d", resp.Code)
	}
}
