package billing

import (
	"strings"

	"github.com/storefront/backend/internal/domain/shared"
)

// PaymentMethod is the kind of payout channel a receiver uses
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "CASH"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodEWallet      PaymentMethod = "E_WALLET"
)

// IsValid checks if the method is a known value
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodBankTransfer, MethodEWallet:
		return true
	}
	return false
}

// Receiver is a payout account that payments are settled against
type Receiver struct {
	shared.BaseEntity
	Method            PaymentMethod `json:"method"`
	Provider          string        `json:"provider"`
	AccountNumber     string        `json:"account_number"`
	AccountHolderName string        `json:"account_holder_name"`
}

// NewReceiver creates a payout account
func NewReceiver(method PaymentMethod, provider, accountNumber, holderName string) (*Receiver, error) {
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "invalid payment method")
	}
	holderName = strings.TrimSpace(holderName)
	if holderName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "account holder name cannot be empty")
	}
	if method != MethodCash && strings.TrimSpace(accountNumber) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "account number is required for non-cash methods")
	}
	return &Receiver{
		BaseEntity:        shared.NewBaseEntity(),
		Method:            method,
		Provider:          strings.TrimSpace(provider),
		AccountNumber:     strings.TrimSpace(accountNumber),
		AccountHolderName: holderName,
	}, nil
}
