package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appordering "github.com/storefront/backend/internal/application/ordering"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// OrderHandler serves the order workflow endpoints
type OrderHandler struct {
	BaseHandler
	service *appordering.OrderService
}

// NewOrderHandler creates an order handler
func NewOrderHandler(service *appordering.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.POST("", h.Create)
		orders.GET("", h.List)
		orders.GET("/:id", h.GetByID)
		orders.POST("/:id/cancel", h.Cancel)
		orders.PUT("/:id/status", h.UpdateStatus)
	}
}

// Create creates an order, freezing prices and reserving stock
func (h *OrderHandler) Create(c *gin.Context) {
	var req appordering.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	order, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// GetByID returns one order
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	order, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List returns orders
func (h *OrderHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	filter := listReq.ToFilter()

	resp, err := h.service.List(c.Request.Context(), filter.Page, filter.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp.Orders, resp.Total, resp.Page, resp.Limit)
}

// Cancel cancels a pending order and releases its reserved stock
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	order, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdateStatusRequest is the input for a fulfilment status change
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus advances an order through its fulfilment workflow
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	target := ordering.OrderStatus(req.Status)
	if !target.IsValid() {
		h.BadRequest(c, "Unknown order status: "+req.Status)
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), id, target)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

func (h *OrderHandler) bindID(c *gin.Context) (uuid.UUID, bool) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idReq.ID)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return uuid.Nil, false
	}
	return id, true
}
