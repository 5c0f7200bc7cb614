package ordering

import (
	"context"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/billing"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/shared"
)

// PaymentCompletedHandler moves a pending order into packaging once its
// payment settles. It is registered on the event bus wrapped in the
// idempotent-handler decorator so a redelivered event cannot advance the
// order twice.
type PaymentCompletedHandler struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewPaymentCompletedHandler creates the handler
func NewPaymentCompletedHandler(scope TransactionScope, logger *zap.Logger) *PaymentCompletedHandler {
	return &PaymentCompletedHandler{
		scope:  scope,
		logger: logger.Named("payment-completed-handler"),
	}
}

// EventTypes returns the event types this handler subscribes to
func (h *PaymentCompletedHandler) EventTypes() []string {
	return []string{billing.EventTypePaymentCompleted}
}

// Handle advances the paid order from PENDING to PACKAGING. Orders already
// past PENDING are left untouched.
func (h *PaymentCompletedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	completed, ok := event.(*billing.PaymentCompletedEvent)
	if !ok {
		return nil
	}

	return h.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, completed.OrderID)
		if err != nil {
			return err
		}
		if order.Status != ordering.OrderStatusPending {
			h.logger.Debug("order already advanced, skipping",
				zap.String("order_id", order.ID.String()),
				zap.String("status", string(order.Status)))
			return nil
		}
		if err := order.TransitionTo(ordering.OrderStatusPackaging); err != nil {
			return err
		}
		if err := repos.OrderRepo().Save(ctx, order); err != nil {
			return err
		}
		h.logger.Info("order moved to packaging after payment",
			zap.String("order_id", order.ID.String()),
			zap.String("payment_id", completed.AggregateID().String()))
		return nil
	})
}

var _ shared.EventHandler = (*PaymentCompletedHandler)(nil)
