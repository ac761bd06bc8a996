package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/furnirent/internal/domain/model"
	"github.com/polkiloo/furnirent/internal/server/http/dto"
	"github.com/polkiloo/furnirent/internal/usecase"
)

// PaymentHandler manages payment endpoints and the gateway callback.
type PaymentHandler struct {
	facade PaymentFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Initiate handles POST /api/orders/:id/payments.
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	kind := model.PaymentKind(strings.ToUpper(req.Kind))
	if kind != model.PaymentKindDeposit && kind != model.PaymentKindBalance {
		c.Status(http.StatusBadRequest)
		return
	}
	method := model.PaymentMethod(strings.ToUpper(req.Method))
	if method != "" && method != model.PaymentMethodCard && method != model.PaymentMethodTransfer {
		c.Status(http.StatusBadRequest)
		return
	}

	payment, err := h.facade.InitiatePayment(c.Request.Context(), CurrentIdentity(c), c.Param("id"), usecase.PaymentInput{
		Kind:       kind,
		Method:     method,
		CardNumber: req.CardNumber,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, toPaymentResponse(*payment))
}

// List handles GET /api/orders/:id/payments.
func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.facade.Payments(c.Request.Context(), CurrentIdentity(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	response := make([]dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		response = append(response, toPaymentResponse(p))
	}
	c.JSON(http.StatusOK, response)
}

// Pending handles GET /api/user/payments/pending.
func (h *PaymentHandler) Pending(c *gin.Context) {
	legs, err := h.facade.PendingPayments(c.Request.Context(), CurrentIdentity(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if len(legs) == 0 {
		c.Status(http.StatusNoContent)
		return
	}
	response := make([]dto.DueLegResponse, 0, len(legs))
	for _, leg := range legs {
		response = append(response, dto.DueLegResponse{
			OrderID: leg.OrderID,
			Kind:    string(leg.Kind),
			Amount:  leg.Amount.StringFixed(2),
		})
	}
	c.JSON(http.StatusOK, response)
}

// Callback handles POST /api/payments/callback. The signature is checked by
// middleware before the body reaches this handler.
func (h *PaymentHandler) Callback(c *gin.Context) {
	var req dto.ChargeReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.ApplyChargeReport(c.Request.Context(), &model.ChargeReport{
		TransactionRef: req.TransactionRef,
		OrderID:        req.OrderID,
		Kind:           model.PaymentKind(strings.ToUpper(req.Kind)),
		Amount:         req.Amount,
		Status:         model.PaymentStatus(strings.ToUpper(req.Status)),
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func toPaymentResponse(p model.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:             p.ID,
		OrderID:        p.OrderID,
		Kind:           string(p.Kind),
		Method:         string(p.Method),
		Amount:         p.Amount.StringFixed(2),
		Status:         string(p.Status),
		TransactionRef: p.TransactionRef,
		CardLast4:      p.CardLast4,
		PaidAt:         p.PaidAt,
		CreatedAt:      p.CreatedAt,
	}
}
