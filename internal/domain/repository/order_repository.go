package repository

import (
	"context"
	"time"

	"vendora/internal/domain/entity"
)

type OrderRepository interface {
	// ReserveForOrder atomically reserves the order's listing and creates the
	// order document. The listing read, availability check, status write and
	// order creation execute as one serializable unit, so two concurrent
	// reservations on the same listing can never both succeed. A lapsed
	// reservation from an earlier buyer is treated as available and its
	// pending order is cancelled in the same transaction.
	ReserveForOrder(ctx context.Context, order *entity.Order, window time.Duration) error

	// ConfirmPayment atomically moves the order to paid_pending_shipment and
	// the listing to sold. Fails without mutation if the order is not
	// pending_payment; a reservation that lapsed before the confirmation
	// arrives cancels the order instead.
	ConfirmPayment(ctx context.Context, orderID string) (*entity.Order, error)

	// CancelReservation atomically cancels a pending_payment order and
	// releases its listing back to available.
	CancelReservation(ctx context.Context, orderID, reason string) (*entity.Order, error)

	GetByID(ctx context.Context, id string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	ListByUserID(ctx context.Context, userID string, role string, status string, limit, offset int) ([]*entity.Order, int64, error)
}
