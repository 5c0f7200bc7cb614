package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appbilling "github.com/storefront/backend/internal/application/billing"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// PaymentHandler serves the payment endpoints
type PaymentHandler struct {
	BaseHandler
	service *appbilling.PaymentService
}

// NewPaymentHandler creates a payment handler
func NewPaymentHandler(service *appbilling.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// RegisterRoutes registers payment and receiver routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payments := rg.Group("/payments")
	{
		payments.POST("", h.Create)
		payments.GET("/:id", h.GetByID)
		payments.POST("/:id/pay", h.Pay)
	}

	receivers := rg.Group("/receivers")
	{
		receivers.POST("", h.CreateReceiver)
		receivers.GET("", h.ListReceivers)
	}

	rg.GET("/orders/:id/payment", h.GetByOrder)
}

// Create opens a payment for an order
func (h *PaymentHandler) Create(c *gin.Context) {
	var req appbilling.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	payment, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, payment)
}

// Pay settles a payment with the tendered amount
func (h *PaymentHandler) Pay(c *gin.Context) {
	id, ok := h.bindID(c, "Invalid payment ID")
	if !ok {
		return
	}

	var req appbilling.PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	req.PaymentID = id

	payment, err := h.service.Pay(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// GetByID returns one payment
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c, "Invalid payment ID")
	if !ok {
		return
	}

	payment, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// GetByOrder returns the payment attached to an order
func (h *PaymentHandler) GetByOrder(c *gin.Context) {
	id, ok := h.bindID(c, "Invalid order ID")
	if !ok {
		return
	}

	payment, err := h.service.GetByOrder(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payment)
}

// CreateReceiver creates a payout account
func (h *PaymentHandler) CreateReceiver(c *gin.Context) {
	var req appbilling.CreateReceiverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	receiver, err := h.service.CreateReceiver(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, receiver)
}

// ListReceivers returns payout accounts
func (h *PaymentHandler) ListReceivers(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	filter := listReq.ToFilter()

	receivers, total, err := h.service.ListReceivers(c.Request.Context(), filter.Page, filter.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, receivers, total, filter.Page, filter.PageSize)
}

func (h *PaymentHandler) bindID(c *gin.Context, message string) (uuid.UUID, bool) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, message)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idReq.ID)
	if err != nil {
		h.BadRequest(c, message)
		return uuid.Nil, false
	}
	return id, true
}
