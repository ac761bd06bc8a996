package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/furnirent/internal/domain/model"
	"github.com/polkiloo/furnirent/internal/domain/rental"
	"github.com/polkiloo/furnirent/internal/server/http/dto"
	"github.com/polkiloo/furnirent/internal/usecase"
)

// OrderHandler manages rental order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

type orderTransition func(ctx context.Context, caller model.Identity, id string) (*model.RentalOrder, error)

// Place handles POST /api/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), CurrentIdentity(c), usecase.PlaceOrderInput{
		Items:             toItemInputs(req.Items),
		StartDate:         req.StartDate.Ptr(),
		EndDate:           req.EndDate.Ptr(),
		DeliveryAddress:   req.DeliveryAddress,
		Notes:             req.Notes,
		TransportRequired: req.TransportRequired,
		PayOnDelivery:     req.PayOnDelivery,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(order, nil))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	status := model.OrderStatus(strings.ToUpper(strings.TrimSpace(c.Query("status"))))
	orders, err := h.facade.Orders(c.Request.Context(), CurrentIdentity(c), status)
	if err != nil {
		abortWithError(c, err)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		response = append(response, toOrderResponse(&orders[i], nil))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	view, err := h.facade.Order(c.Request.Context(), CurrentIdentity(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(view.Order, view.Allowed))
}

// ReplaceLines handles PUT /api/orders/:id/lines.
func (h *OrderHandler) ReplaceLines(c *gin.Context) {
	var req dto.ReplaceLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	order, err := h.facade.ReplaceLines(c.Request.Context(), CurrentIdentity(c), c.Param("id"), toItemInputs(req.Items))
	h.respond(c, order, err)
}

// Reschedule handles PUT /api/orders/:id/schedule.
func (h *OrderHandler) Reschedule(c *gin.Context) {
	var req dto.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.StartDate.IsZero() || req.EndDate.IsZero() {
		c.Status(http.StatusBadRequest)
		return
	}
	order, err := h.facade.Reschedule(c.Request.Context(), CurrentIdentity(c), c.Param("id"), req.StartDate.Time, req.EndDate.Time)
	h.respond(c, order, err)
}

// Propose handles POST /api/orders/:id/transport/proposals.
func (h *OrderHandler) Propose(c *gin.Context) {
	var req dto.TransportProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	order, err := h.facade.ProposeTransport(c.Request.Context(), CurrentIdentity(c), c.Param("id"), req.Cost)
	h.respond(c, order, err)
}

// Accept handles POST /api/orders/:id/transport/accept.
func (h *OrderHandler) Accept(c *gin.Context) { h.transition(c, h.facade.AcceptTransport) }

// Reject handles POST /api/orders/:id/transport/reject.
func (h *OrderHandler) Reject(c *gin.Context) { h.transition(c, h.facade.RejectTransport) }

// Confirm handles POST /api/orders/:id/confirm.
func (h *OrderHandler) Confirm(c *gin.Context) { h.transition(c, h.facade.ConfirmOrder) }

// Start handles POST /api/orders/:id/start.
func (h *OrderHandler) Start(c *gin.Context) { h.transition(c, h.facade.StartOrder) }

// Complete handles POST /api/orders/:id/complete.
func (h *OrderHandler) Complete(c *gin.Context) { h.transition(c, h.facade.CompleteOrder) }

// Cancel handles POST /api/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) { h.transition(c, h.facade.CancelOrder) }

func (h *OrderHandler) transition(c *gin.Context, fn orderTransition) {
	order, err := fn(c.Request.Context(), CurrentIdentity(c), c.Param("id"))
	h.respond(c, order, err)
}

func (h *OrderHandler) respond(c *gin.Context, order *model.RentalOrder, err error) {
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order, nil))
}

func toItemInputs(items []dto.OrderItemRequest) []usecase.ItemInput {
	inputs := make([]usecase.ItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, usecase.ItemInput{
			ProductID:  strings.TrimSpace(item.ProductID),
			Quantity:   item.Quantity,
			RentalDays: item.RentalDays,
		})
	}
	return inputs
}

func toOrderResponse(order *model.RentalOrder, allowed []rental.Operation) dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, dto.OrderLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			ImageURL:    l.ImageURL,
			UnitPrice:   l.UnitPrice.StringFixed(2),
			Quantity:    l.Quantity,
			RentalDays:  l.RentalDays,
			Subtotal:    l.Subtotal.StringFixed(2),
		})
	}

	t := order.Transport
	p := order.Payment
	resp := dto.OrderResponse{
		ID:              order.ID,
		RenterID:        order.RenterID,
		RenterName:      order.RenterName,
		RenterEmail:     order.RenterEmail,
		Status:          string(order.Status),
		Lines:           lines,
		Total:           order.Total.StringFixed(2),
		OrderedAt:       order.OrderedAt,
		StartDate:       dto.DateOf(order.StartDate),
		EndDate:         dto.DateOf(order.EndDate),
		DeliveryAddress: order.DeliveryAddress,
		Notes:           order.Notes,
		Transport: dto.TransportResponse{
			Status:       string(t.Status),
			AcceptedCost: t.AcceptedCost.StringFixed(2),
			LastProposer: string(t.LastProposer),
			ProposedAt:   t.ProposedAt,
		},
		Payment: dto.PaymentScheduleResponse{
			DepositAmount: p.DepositAmount.StringFixed(2),
			BalanceAmount: p.BalanceAmount.StringFixed(2),
			DepositStatus: legStatus(p.DepositStatus),
			BalanceStatus: legStatus(p.BalanceStatus),
			DepositPaidAt: p.DepositPaidAt,
			BalancePaidAt: p.BalancePaidAt,
			PayOnDelivery: p.PayOnDelivery,
		},
		Version: order.Version,
	}
	if t.UserProposedCost.Valid {
		v := t.UserProposedCost.Decimal.StringFixed(2)
		resp.Transport.UserProposedCost = &v
	}
	if t.AdminProposedCost.Valid {
		v := t.AdminProposedCost.Decimal.StringFixed(2)
		resp.Transport.AdminProposedCost = &v
	}
	if allowed != nil {
		resp.AllowedOperations = make([]string, 0, len(allowed))
		for _, op := range allowed {
			resp.AllowedOperations = append(resp.AllowedOperations, string(op))
		}
	}
	return resp
}

// legStatus renders untracked legs as null.
func legStatus(s model.LegStatus) *string {
	if s == model.LegStatusUntracked {
		return nil
	}
	v := string(s)
	return &v
}
