package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/billing"
)

// CreatePaymentRequest is the input for creating a payment
type CreatePaymentRequest struct {
	OrderID    uuid.UUID `json:"order_id"`
	ReceiverID uuid.UUID `json:"receiver_id"`
}

// PayRequest is the input for settling a payment
type PayRequest struct {
	PaymentID  uuid.UUID       `json:"payment_id"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
}

// PaymentResponse is the representation of a payment returned to callers.
// The payout account is embedded as a projection rather than exposed as a
// bare foreign key.
type PaymentResponse struct {
	ID           uuid.UUID             `json:"id"`
	OrderID      uuid.UUID             `json:"order_id"`
	Receiver     *ReceiverResponse     `json:"receiver,omitempty"`
	Amount       decimal.Decimal       `json:"amount"`
	AmountPaid   decimal.Decimal       `json:"amount_paid"`
	AmountChange decimal.Decimal       `json:"amount_change"`
	PaymentDate  *time.Time            `json:"payment_date,omitempty"`
	Status       billing.PaymentStatus `json:"status"`
	Version      int                   `json:"version"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// ToPaymentResponse maps a payment (and its receiver, when loaded) to a
// response
func ToPaymentResponse(payment *billing.Payment, receiver *billing.Receiver) PaymentResponse {
	resp := PaymentResponse{
		ID:           payment.ID,
		OrderID:      payment.OrderID,
		Amount:       payment.Amount,
		AmountPaid:   payment.AmountPaid,
		AmountChange: payment.AmountChange,
		PaymentDate:  payment.PaymentDate,
		Status:       payment.Status,
		Version:      payment.Version,
		CreatedAt:    payment.CreatedAt,
		UpdatedAt:    payment.UpdatedAt,
	}
	if receiver != nil {
		r := ToReceiverResponse(receiver)
		resp.Receiver = &r
	}
	return resp
}

// CreateReceiverRequest is the input for creating a payout account
type CreateReceiverRequest struct {
	Method            billing.PaymentMethod `json:"method"`
	Provider          string                `json:"provider,omitempty"`
	AccountNumber     string                `json:"account_number,omitempty"`
	AccountHolderName string                `json:"account_holder_name"`
}

// ReceiverResponse is the representation of a payout account
type ReceiverResponse struct {
	ID                uuid.UUID             `json:"id"`
	Method            billing.PaymentMethod `json:"method"`
	Provider          string                `json:"provider,omitempty"`
	AccountNumber     string                `json:"account_number,omitempty"`
	AccountHolderName string                `json:"account_holder_name"`
	CreatedAt         time.Time             `json:"created_at"`
}

// ToReceiverResponse maps a receiver to a response
func ToReceiverResponse(receiver *billing.Receiver) ReceiverResponse {
	return ReceiverResponse{
		ID:                receiver.ID,
		Method:            receiver.Method,
		Provider:          receiver.Provider,
		AccountNumber:     receiver.AccountNumber,
		AccountHolderName: receiver.AccountHolderName,
		CreatedAt:         receiver.CreatedAt,
	}
}
