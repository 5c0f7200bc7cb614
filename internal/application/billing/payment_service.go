package billing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/billing"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/shared"
)

// PaymentService orchestrates the payment workflow. A payment is created
// against an existing order (at most one per order) and settles exactly
// once; completion is announced on the event bus so the ordering side can
// advance the paid order.
type PaymentService struct {
	paymentRepo  billing.PaymentRepository
	receiverRepo billing.ReceiverRepository
	orderRepo    ordering.OrderRepository
	eventBus     shared.EventPublisher
	logger       *zap.Logger
	now          func() time.Time
}

// NewPaymentService creates a PaymentService
func NewPaymentService(
	paymentRepo billing.PaymentRepository,
	receiverRepo billing.ReceiverRepository,
	orderRepo ordering.OrderRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		receiverRepo: receiverRepo,
		orderRepo:    orderRepo,
		eventBus:     eventBus,
		logger:       logger.Named("payment-service"),
		now:          time.Now,
	}
}

// Create opens a pending payment for an order. The amount due is copied
// from the order total at creation time. A second payment for the same
// order is rejected; the unique index on order_id backs this check up
// under concurrency.
func (s *PaymentService) Create(ctx context.Context, req CreatePaymentRequest) (*PaymentResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	existing, err := s.paymentRepo.FindByOrderID(ctx, req.OrderID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "order already has a payment")
	}

	receiver, err := s.receiverRepo.FindByID(ctx, req.ReceiverID)
	if err != nil {
		return nil, err
	}

	payment, err := billing.NewPayment(order.ID, req.ReceiverID, order.TotalMoney())
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	s.logger.Info("payment created",
		zap.String("payment_id", payment.ID.String()),
		zap.String("order_id", order.ID.String()),
		zap.String("amount", payment.Amount.String()))

	resp := ToPaymentResponse(payment, receiver)
	return &resp, nil
}

// toResponse builds a payment response with its receiver projection. A
// payment always references a receiver, so a failed lookup is logged and
// the projection left empty rather than failing the read.
func (s *PaymentService) toResponse(ctx context.Context, payment *billing.Payment) PaymentResponse {
	receiver, err := s.receiverRepo.FindByID(ctx, payment.ReceiverID)
	if err != nil {
		s.logger.Warn("failed to load payment receiver",
			zap.String("payment_id", payment.ID.String()),
			zap.String("receiver_id", payment.ReceiverID.String()),
			zap.Error(err))
	}
	return ToPaymentResponse(payment, receiver)
}

// Pay settles a pending payment with the tendered amount. The tendered
// amount must be positive and cover the amount due; settlement is one-way
// and records the change due back. PaymentCompleted is published after the
// payment is saved.
func (s *PaymentService) Pay(ctx context.Context, req PayRequest) (*PaymentResponse, error) {
	if !req.AmountPaid.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "amount paid must be positive")
	}

	payment, err := s.paymentRepo.FindByID(ctx, req.PaymentID)
	if err != nil {
		return nil, err
	}

	if err := payment.Pay(req.AmountPaid, s.now()); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	events := payment.GetDomainEvents()
	if len(events) > 0 {
		if err := s.eventBus.Publish(ctx, events...); err != nil {
			s.logger.Warn("failed to publish payment events",
				zap.String("payment_id", payment.ID.String()), zap.Error(err))
		}
		payment.ClearDomainEvents()
	}

	s.logger.Info("payment settled",
		zap.String("payment_id", payment.ID.String()),
		zap.String("order_id", payment.OrderID.String()),
		zap.String("amount_paid", payment.AmountPaid.String()),
		zap.String("change", payment.AmountChange.String()))

	resp := s.toResponse(ctx, payment)
	return &resp, nil
}

// GetByID returns a payment
func (s *PaymentService) GetByID(ctx context.Context, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(ctx, payment)
	return &resp, nil
}

// GetByOrder returns the payment attached to an order
func (s *PaymentService) GetByOrder(ctx context.Context, orderID uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(ctx, payment)
	return &resp, nil
}

// CreateReceiver registers a payout account
func (s *PaymentService) CreateReceiver(ctx context.Context, req CreateReceiverRequest) (*ReceiverResponse, error) {
	receiver, err := billing.NewReceiver(req.Method, req.Provider, req.AccountNumber, req.AccountHolderName)
	if err != nil {
		return nil, err
	}
	if err := s.receiverRepo.Create(ctx, receiver); err != nil {
		return nil, err
	}
	resp := ToReceiverResponse(receiver)
	return &resp, nil
}

// ListReceivers returns payout accounts with page/limit pagination
func (s *PaymentService) ListReceivers(ctx context.Context, page, limit int) ([]ReceiverResponse, int64, error) {
	filter := shared.Filter{Page: page, PageSize: limit}.Normalize()
	receivers, total, err := s.receiverRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]ReceiverResponse, 0, len(receivers))
	for _, r := range receivers {
		responses = append(responses, ToReceiverResponse(r))
	}
	return responses, total, nil
}
