package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/billing"
)

// PaymentModel is the persistence model for the Payment aggregate root.
// The unique index on OrderID enforces the one-payment-per-order invariant
// at the storage layer.
type PaymentModel struct {
	AggregateModel
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	ReceiverID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	AmountPaid   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	AmountChange decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	PaymentDate  *time.Time
	Status       string `gorm:"type:varchar(16);not null;default:'PENDING'"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseAggregateRoot: m.ToBaseAggregateRoot(),
		OrderID:           m.OrderID,
		ReceiverID:        m.ReceiverID,
		Amount:            m.Amount,
		AmountPaid:        m.AmountPaid,
		AmountChange:      m.AmountChange,
		PaymentDate:       m.PaymentDate,
		Status:            billing.PaymentStatus(m.Status),
	}
}

// FromDomain populates the persistence model from a domain Payment
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromBaseAggregateRoot(p.BaseAggregateRoot)
	m.OrderID = p.OrderID
	m.ReceiverID = p.ReceiverID
	m.Amount = p.Amount
	m.AmountPaid = p.AmountPaid
	m.AmountChange = p.AmountChange
	m.PaymentDate = p.PaymentDate
	m.Status = string(p.Status)
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}

// ReceiverModel is the persistence model for payout accounts
type ReceiverModel struct {
	EntityModel
	Method            string `gorm:"type:varchar(32);not null"`
	Provider          string `gorm:"type:varchar(255)"`
	AccountNumber     string `gorm:"type:varchar(64)"`
	AccountHolderName string `gorm:"type:varchar(255);not null"`
}

// TableName returns the table name for GORM
func (ReceiverModel) TableName() string {
	return "receivers"
}

// ToDomain converts the persistence model to a domain Receiver
func (m *ReceiverModel) ToDomain() *billing.Receiver {
	return &billing.Receiver{
		BaseEntity:        m.ToBaseEntity(),
		Method:            billing.PaymentMethod(m.Method),
		Provider:          m.Provider,
		AccountNumber:     m.AccountNumber,
		AccountHolderName: m.AccountHolderName,
	}
}

// FromDomain populates the persistence model from a domain Receiver
func (m *ReceiverModel) FromDomain(r *billing.Receiver) {
	m.FromBaseEntity(r.BaseEntity)
	m.Method = string(r.Method)
	m.Provider = r.Provider
	m.AccountNumber = r.AccountNumber
	m.AccountHolderName = r.AccountHolderName
}

// ReceiverModelFromDomain creates a new persistence model from a domain Receiver
func ReceiverModelFromDomain(r *billing.Receiver) *ReceiverModel {
	m := &ReceiverModel{}
	m.FromDomain(r)
	return m
}
