package entity

import (
	"time"
)

type OrderStatus string

const (
	OrderPendingPayment      OrderStatus = "pending_payment"
	OrderPaidPendingShipment OrderStatus = "paid_pending_shipment"
	OrderShipped             OrderStatus = "shipped"
	OrderDelivered           OrderStatus = "delivered"
	OrderCompleted           OrderStatus = "completed"
	OrderDisputed            OrderStatus = "disputed"
	OrderCancelled           OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

const (
	DeliveryDomicile = "domicile"
	DeliveryPickup   = "pickup"
)

// orderTransitions is the single source of truth for the order lifecycle.
// Forward path: pending_payment -> paid_pending_shipment -> shipped ->
// delivered -> completed. Side branches: any non-terminal state -> disputed,
// pending_payment -> cancelled, and disputed -> completed/cancelled for
// admin resolution.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderPendingPayment:      {OrderPaidPendingShipment, OrderCancelled, OrderDisputed},
	OrderPaidPendingShipment: {OrderShipped, OrderDisputed},
	OrderShipped:             {OrderDelivered, OrderCompleted, OrderDisputed},
	OrderDelivered:           {OrderCompleted, OrderDisputed},
	OrderDisputed:            {OrderCompleted, OrderCancelled},
}

// CanTransition reports whether the lifecycle permits moving from one order
// status to another.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

type ShippingAddress struct {
	Line1      string `json:"line1" firestore:"line1"`
	Line2      string `json:"line2,omitempty" firestore:"line2,omitempty"`
	City       string `json:"city" firestore:"city"`
	PostalCode string `json:"postal_code" firestore:"postalCode"`
	Country    string `json:"country" firestore:"country"`
}

type Order struct {
	ID        string `json:"id" firestore:"id"`
	ListingID string `json:"listing_id" firestore:"listingId"`
	SellerID  string `json:"seller_id" firestore:"sellerId"`
	BuyerID   string `json:"buyer_id" firestore:"buyerId"`

	// Snapshot of the listing at reservation time; never updated afterwards.
	ListingTitle string  `json:"listing_title" firestore:"listingTitle"`
	ListingImage string  `json:"listing_image,omitempty" firestore:"listingImage,omitempty"`
	PricePaid    float64 `json:"price_paid" firestore:"pricePaid"`

	Status         OrderStatus   `json:"status" firestore:"status"`
	PaymentStatus  PaymentStatus `json:"payment_status" firestore:"paymentStatus"`
	DeliveryMethod string        `json:"delivery_method" firestore:"deliveryMethod"` // domicile, pickup

	ShippingAddress *ShippingAddress `json:"shipping_address,omitempty" firestore:"shippingAddress,omitempty"`
	TrackingNumber  string           `json:"tracking_number,omitempty" firestore:"trackingNumber,omitempty"`

	BuyerReviewLeft bool `json:"buyer_review_left" firestore:"buyerReviewLeft"`

	CancellationReason string `json:"cancellation_reason,omitempty" firestore:"cancellationReason,omitempty"`

	CreatedAt        time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt        time.Time  `json:"updated_at" firestore:"updatedAt"`
	PaidAt           *time.Time `json:"paid_at,omitempty" firestore:"paidAt,omitempty"`
	ShippedAt        *time.Time `json:"shipped_at,omitempty" firestore:"shippedAt,omitempty"`
	DeliveredAt      *time.Time `json:"delivered_at,omitempty" firestore:"deliveredAt,omitempty"`
	BuyerConfirmedAt *time.Time `json:"buyer_confirmed_at,omitempty" firestore:"buyerConfirmedAt,omitempty"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty" firestore:"cancelledAt,omitempty"`
	DisputedAt       *time.Time `json:"disputed_at,omitempty" firestore:"disputedAt,omitempty"`
}
