package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/catalog"
)

// CategoryModel is the persistence model for categories
type CategoryModel struct {
	EntityModel
	Name        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Description string `gorm:"type:varchar(1024)"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseEntity:  m.ToBaseEntity(),
		Name:        m.Name,
		Description: m.Description,
	}
}

// FromDomain populates the persistence model from a domain Category
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Description = c.Description
}

// CategoryModelFromDomain creates a new persistence model from a domain Category
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{}
	m.FromDomain(c)
	return m
}

// ProductModel is the persistence model for the Product aggregate root
type ProductModel struct {
	AggregateModel
	Name            string          `gorm:"type:varchar(255);not null"`
	SKU             string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	Description     string          `gorm:"type:varchar(2048)"`
	CategoryID      *uuid.UUID      `gorm:"type:uuid;index"`
	RetailPrice     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	WholesalePrice  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	MinWholesaleQty int             `gorm:"not null;default:0"`
	QuantityInStock int             `gorm:"not null;default:0"`
	MinimumStock    int             `gorm:"not null;default:0"`
	Status          string          `gorm:"type:varchar(16);not null;default:'ACTIVE'"`
	Discount        *DiscountModel  `gorm:"foreignKey:ProductID;references:ID"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	product := &catalog.Product{
		BaseAggregateRoot: m.ToBaseAggregateRoot(),
		Name:              m.Name,
		SKU:               m.SKU,
		Description:       m.Description,
		CategoryID:        m.CategoryID,
		RetailPrice:       m.RetailPrice,
		WholesalePrice:    m.WholesalePrice,
		MinWholesaleQty:   m.MinWholesaleQty,
		QuantityInStock:   m.QuantityInStock,
		MinimumStock:      m.MinimumStock,
		Status:            catalog.ProductStatus(m.Status),
	}
	if m.Discount != nil {
		product.Discount = m.Discount.ToDomain()
	}
	return product
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromBaseAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.SKU = p.SKU
	m.Description = p.Description
	m.CategoryID = p.CategoryID
	m.RetailPrice = p.RetailPrice
	m.WholesalePrice = p.WholesalePrice
	m.MinWholesaleQty = p.MinWholesaleQty
	m.QuantityInStock = p.QuantityInStock
	m.MinimumStock = p.MinimumStock
	m.Status = string(p.Status)
	if p.Discount != nil {
		m.Discount = DiscountModelFromDomain(p.Discount)
	}
}

// ProductModelFromDomain creates a new persistence model from a domain Product
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// DiscountModel is the persistence model for product discounts
type DiscountModel struct {
	EntityModel
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Type      string          `gorm:"type:varchar(16);not null"`
	Value     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	BuyQty    int             `gorm:"not null;default:0"`
	GetQty    int             `gorm:"not null;default:0"`
	IsActive  bool            `gorm:"not null;default:true"`
	StartDate *time.Time
	EndDate   *time.Time
}

// TableName returns the table name for GORM
func (DiscountModel) TableName() string {
	return "discounts"
}

// ToDomain converts the persistence model to a domain Discount
func (m *DiscountModel) ToDomain() *catalog.Discount {
	return &catalog.Discount{
		BaseEntity: m.ToBaseEntity(),
		ProductID:  m.ProductID,
		Type:       catalog.DiscountType(m.Type),
		Value:      m.Value,
		BuyQty:     m.BuyQty,
		GetQty:     m.GetQty,
		IsActive:   m.IsActive,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
	}
}

// FromDomain populates the persistence model from a domain Discount
func (m *DiscountModel) FromDomain(d *catalog.Discount) {
	m.FromBaseEntity(d.BaseEntity)
	m.ProductID = d.ProductID
	m.Type = string(d.Type)
	m.Value = d.Value
	m.BuyQty = d.BuyQty
	m.GetQty = d.GetQty
	m.IsActive = d.IsActive
	m.StartDate = d.StartDate
	m.EndDate = d.EndDate
}

// DiscountModelFromDomain creates a new persistence model from a domain Discount
func DiscountModelFromDomain(d *catalog.Discount) *DiscountModel {
	m := &DiscountModel{}
	m.FromDomain(d)
	return m
}
