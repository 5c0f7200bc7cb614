package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/ordering"
)

// CreateOrderItemRequest is one requested order line
type CreateOrderItemRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// CreateOrderRequest is the input for creating an order
type CreateOrderRequest struct {
	UserID     uuid.UUID                `json:"user_id"`
	Maker      string                   `json:"maker,omitempty"`
	MakerEmail string                   `json:"maker_email,omitempty"`
	Items      []CreateOrderItemRequest `json:"items"`
}

// OrderItemResponse is one order line in a response
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductCode string          `json:"product_code"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// OrderUserResponse is the user projection embedded in order responses
type OrderUserResponse struct {
	ID        uuid.UUID           `json:"id"`
	Name      string              `json:"name"`
	Email     string              `json:"email"`
	Status    identity.UserStatus `json:"status"`
	Role      identity.UserRole   `json:"role"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// OrderResponse is the representation of an order returned to callers
type OrderResponse struct {
	ID          uuid.UUID            `json:"id"`
	Status      ordering.OrderStatus `json:"status"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
	Maker       string               `json:"maker,omitempty"`
	MakerEmail  string               `json:"maker_email,omitempty"`
	User        *OrderUserResponse   `json:"user,omitempty"`
	Items       []OrderItemResponse  `json:"items"`
	Version     int                  `json:"version"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// OrderListResponse is a paginated list of orders
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
}

// ToOrderResponse maps an order (and optionally its user) to a response
func ToOrderResponse(order *ordering.Order, user *identity.User) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ProductCode: item.ProductCode,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}

	resp := OrderResponse{
		ID:          order.ID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		Maker:       order.Maker,
		MakerEmail:  order.MakerEmail,
		Items:       items,
		Version:     order.Version,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
	if user != nil {
		resp.User = &OrderUserResponse{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Status:    user.Status,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
			UpdatedAt: user.UpdatedAt,
		}
	}
	return resp
}
