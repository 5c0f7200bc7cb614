package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/ordering"
)

// OrderModel is the persistence model for the Order aggregate root
type OrderModel struct {
	AggregateModel
	UserID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	Status      string           `gorm:"type:varchar(32);not null;default:'PENDING';index"`
	TotalAmount decimal.Decimal  `gorm:"type:decimal(15,2);not null;default:0"`
	Maker       string           `gorm:"type:varchar(255)"`
	MakerEmail  string           `gorm:"type:varchar(255)"`
	Items       []OrderItemModel `gorm:"foreignKey:OrderID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() *ordering.Order {
	order := &ordering.Order{
		BaseAggregateRoot: m.ToBaseAggregateRoot(),
		UserID:            m.UserID,
		Status:            ordering.OrderStatus(m.Status),
		TotalAmount:       m.TotalAmount,
		Maker:             m.Maker,
		MakerEmail:        m.MakerEmail,
		Items:             make([]ordering.OrderItem, len(m.Items)),
	}
	for i, item := range m.Items {
		order.Items[i] = *item.ToDomain()
	}
	return order
}

// FromDomain populates the persistence model from a domain Order
func (m *OrderModel) FromDomain(o *ordering.Order) {
	m.FromBaseAggregateRoot(o.BaseAggregateRoot)
	m.UserID = o.UserID
	m.Status = string(o.Status)
	m.TotalAmount = o.TotalAmount
	m.Maker = o.Maker
	m.MakerEmail = o.MakerEmail
	m.Items = make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = *OrderItemModelFromDomain(&item)
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order
func OrderModelFromDomain(o *ordering.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for order lines
type OrderItemModel struct {
	EntityModel
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	ProductCode string          `gorm:"type:varchar(64);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem
func (m *OrderItemModel) ToDomain() *ordering.OrderItem {
	return &ordering.OrderItem{
		BaseEntity:  m.ToBaseEntity(),
		OrderID:     m.OrderID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		ProductCode: m.ProductCode,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		TotalPrice:  m.TotalPrice,
	}
}

// OrderItemModelFromDomain creates a new persistence model from a domain OrderItem
func OrderItemModelFromDomain(item *ordering.OrderItem) *OrderItemModel {
	m := &OrderItemModel{}
	m.FromBaseEntity(item.BaseEntity)
	m.OrderID = item.OrderID
	m.ProductID = item.ProductID
	m.ProductName = item.ProductName
	m.ProductCode = item.ProductCode
	m.Quantity = item.Quantity
	m.UnitPrice = item.UnitPrice
	m.TotalPrice = item.TotalPrice
	return m
}
