package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendora/internal/domain/entity"
	"vendora/pkg/errors"
)

type orderEnv struct {
	store    *memStore
	checkout *CheckoutUseCase
	orders   *OrderUseCase
	notifier *fakeNotifier
}

func newOrderEnv() *orderEnv {
	store := newMemStore()
	notifier := &fakeNotifier{}

	return &orderEnv{
		store:    store,
		checkout: NewCheckoutUseCase(&memOrderRepo{store}, &memListingRepo{store}, &fakeGateway{}, 30*time.Minute),
		orders:   NewOrderUseCase(&memOrderRepo{store}, &memUserRepo{store}, notifier),
		notifier: notifier,
	}
}

func (env *orderEnv) seedUsers() {
	env.store.users["seller-1"] = &entity.User{ID: "seller-1", FCMToken: "token-seller"}
	env.store.users["buyer-1"] = &entity.User{ID: "buyer-1", FCMToken: "token-buyer"}
}

func (env *orderEnv) reserve(t *testing.T) *entity.Order {
	t.Helper()
	seedListing(env.store, "l1", "seller-1", 25.00)

	result, err := env.checkout.Reserve(context.Background(), "buyer-1", ReserveInput{
		ListingID:      "l1",
		DeliveryMethod: entity.DeliveryPickup,
	})
	require.NoError(t, err)
	return result.Order
}

func TestOrderFullLifecycle(t *testing.T) {
	env := newOrderEnv()
	env.seedUsers()
	order := env.reserve(t)

	ctx := context.Background()

	paid, err := env.orders.ConfirmPayment(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPaidPendingShipment, paid.Status)
	assert.Equal(t, entity.PaymentPaid, paid.PaymentStatus)
	assert.NotNil(t, paid.PaidAt)
	assert.Equal(t, entity.ListingSold, env.store.listings["l1"].Status)
	assert.Nil(t, env.store.listings["l1"].ReservedUntil)

	shipped, err := env.orders.Ship(ctx, "seller-1", order.ID, "TRACK-123")
	require.NoError(t, err)
	assert.Equal(t, entity.OrderShipped, shipped.Status)
	assert.Equal(t, "TRACK-123", shipped.TrackingNumber)
	assert.NotNil(t, shipped.ShippedAt)

	delivered, err := env.orders.ConfirmDelivery(ctx, "buyer-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderDelivered, delivered.Status)
	assert.NotNil(t, delivered.DeliveredAt)

	completed, err := env.orders.Complete(ctx, "buyer-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCompleted, completed.Status)
	assert.NotNil(t, completed.BuyerConfirmedAt)

	// Every transition pushed one notification to the counterparty.
	assert.Len(t, env.notifier.sent, 4)
}

func TestConfirmPaymentOnLapsedReservation(t *testing.T) {
	env := newOrderEnv()
	order := env.reserve(t)

	past := time.Now().Add(-time.Minute)
	env.store.listings["l1"].ReservedUntil = &past

	_, err := env.orders.ConfirmPayment(context.Background(), order.ID)
	assert.True(t, errors.Is(err, "INVALID_STATE_TRANSITION"))

	// The lapsed order is closed, not left dangling, and the listing never
	// becomes sold.
	assert.Equal(t, entity.OrderCancelled, env.store.orders[order.ID].Status)
	assert.Equal(t, entity.PaymentFailed, env.store.orders[order.ID].PaymentStatus)
	assert.NotEqual(t, entity.ListingSold, env.store.listings["l1"].Status)
}

func TestConfirmPaymentTwice(t *testing.T) {
	env := newOrderEnv()
	order := env.reserve(t)

	ctx := context.Background()

	_, err := env.orders.ConfirmPayment(ctx, order.ID)
	require.NoError(t, err)

	_, err = env.orders.ConfirmPayment(ctx, order.ID)
	assert.True(t, errors.Is(err, "INVALID_STATE_TRANSITION"))
}

func TestFailPaymentReleasesListing(t *testing.T) {
	env := newOrderEnv()
	order := env.reserve(t)

	cancelled, err := env.orders.FailPayment(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, cancelled.Status)
	assert.Equal(t, entity.PaymentFailed, cancelled.PaymentStatus)

	listing := env.store.listings["l1"]
	assert.Equal(t, entity.ListingAvailable, listing.Status)
	assert.Nil(t, listing.ReservedUntil)
}

func TestShipValidation(t *testing.T) {
	env := newOrderEnv()
	order := env.reserve(t)

	ctx := context.Background()

	// Not paid yet.
	_, err := env.orders.Ship(ctx, "seller-1", order.ID, "TRACK-123")
	assert.True(t, errors.Is(err, "INVALID_STATE_TRANSITION"))

	_, err = env.orders.ConfirmPayment(ctx, order.ID)
	require.NoError(t, err)

	_, err = env.orders.Ship(ctx, "buyer-1", order.ID, "TRACK-123")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, err = env.orders.Ship(ctx, "seller-1", order.ID, "")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = env.orders.Ship(ctx, "seller-1", order.ID, "TRACK-123")
	assert.NoError(t, err)
}

func TestCompleteSkipsDeliveryConfirmation(t *testing.T) {
	env := newOrderEnv()
	order := env.reserve(t)

	ctx := context.Background()

	_, err := env.orders.ConfirmPayment(ctx, order.ID)
	require.NoError(t, err)
	_, err = env.orders.Ship(ctx, "seller-1", order.ID, "TRACK-123")
	require.NoError(t, err)

	// The buyer may complete straight from shipped.
	completed, err := env.orders.Complete(ctx, "buyer-1", order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCompleted, completed.Status)
	assert.NotNil(t, completed.DeliveredAt)
	assert.NotNil(t, completed.BuyerConfirmedAt)
}

func TestCompleteAuthorization(t *testing.T) {
	env := newOrderEnv()
	order := env.reserve(t)

	ctx := context.Background()

	_, err := env.orders.ConfirmPayment(ctx, order.ID)
	require.NoError(t, err)
	_, err = env.orders.Ship(ctx, "seller-1", order.ID, "TRACK-123")
	require.NoError(t, err)

	_, err = env.orders.Complete(ctx, "seller-1", order.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	_, err = env.orders.Complete(ctx, "stranger", order.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestCompleteDisputedOrderIsAdminOnly(t *testing.T) {
	env := newOrderEnv()
	order := env.reserve(t)

	ctx := context.Background()

	_, err := env.orders.ConfirmPayment(ctx, order.ID)
	require.NoError(t, err)

	stored := env.store.orders[order.ID]
	stored.Status = entity.OrderDisputed

	_, err = env.orders.Complete(ctx, "buyer-1", order.ID)
	assert.True(t, errors.Is(err, "INVALID_STATE_TRANSITION"))
}

func TestGetOrderVisibility(t *testing.T) {
	env := newOrderEnv()
	order := env.reserve(t)

	ctx := context.Background()

	_, err := env.orders.GetOrderByID(ctx, "buyer-1", order.ID)
	assert.NoError(t, err)

	_, err = env.orders.GetOrderByID(ctx, "seller-1", order.ID)
	assert.NoError(t, err)

	_, err = env.orders.GetOrderByID(ctx, "stranger", order.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestNotifierFailureNeverBlocksTransition(t *testing.T) {
	env := newOrderEnv()
	env.seedUsers()
	env.notifier.err = fmt.Errorf("fcm unreachable")
	order := env.reserve(t)

	paid, err := env.orders.ConfirmPayment(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPaidPendingShipment, paid.Status)
}
