package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"vendora/internal/domain/entity"
	"vendora/internal/domain/repository"
	"vendora/pkg/errors"
)

type firestoreOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &firestoreOrderRepository{
		client: client,
	}
}

func (r *firestoreOrderRepository) ReserveForOrder(ctx context.Context, order *entity.Order, window time.Duration) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}

	listingRef := r.client.Collection("listings").Doc(order.ListingID)
	orderRef := r.client.Collection("orders").Doc(order.ID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(listingRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Listing", err)
			}
			return errors.Internal("Failed to get listing", err)
		}

		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return errors.Internal("Failed to parse listing data", err)
		}

		now := time.Now()

		if listing.Status == entity.ListingSold {
			return errors.ListingSold(nil)
		}
		if listing.Status == entity.ListingReserved && !listing.ReservationExpired(now) {
			return errors.ListingReserved(nil)
		}

		// A lapsed reservation is implicitly cancelled by this attempt: the
		// stale pending order, if any, is closed in the same transaction.
		var staleOrders []*firestore.DocumentSnapshot
		if listing.Status == entity.ListingReserved {
			staleOrders, err = tx.Documents(r.client.Collection("orders").
				Where("listingId", "==", listing.ID).
				Where("status", "==", string(entity.OrderPendingPayment))).GetAll()
			if err != nil {
				return errors.Internal("Failed to query stale reservations", err)
			}
		}

		reservedUntil := now.Add(window)
		listing.Status = entity.ListingReserved
		listing.ReservedUntil = &reservedUntil
		listing.UpdatedAt = now

		if err := tx.Set(listingRef, listing); err != nil {
			return errors.Internal("Failed to reserve listing", err)
		}

		for _, staleDoc := range staleOrders {
			var stale entity.Order
			if err := staleDoc.DataTo(&stale); err != nil {
				return errors.Internal("Failed to parse stale order data", err)
			}
			stale.Status = entity.OrderCancelled
			stale.PaymentStatus = entity.PaymentFailed
			stale.CancellationReason = "reservation expired"
			stale.CancelledAt = &now
			stale.UpdatedAt = now
			if err := tx.Set(staleDoc.Ref, stale); err != nil {
				return errors.Internal("Failed to cancel stale order", err)
			}
		}

		// Snapshot comes from the listing read inside this transaction, so
		// the denormalized fields can never drift from what was reserved.
		order.SellerID = listing.SellerID
		order.ListingTitle = listing.Title
		order.PricePaid = listing.Price
		if len(listing.Images) > 0 {
			order.ListingImage = listing.Images[0]
		}
		order.Status = entity.OrderPendingPayment
		order.PaymentStatus = entity.PaymentPending
		order.CreatedAt = now
		order.UpdatedAt = now

		if err := tx.Set(orderRef, order); err != nil {
			return errors.Internal("Failed to create order", err)
		}

		return nil
	})

	return err
}

func (r *firestoreOrderRepository) ConfirmPayment(ctx context.Context, orderID string) (*entity.Order, error) {
	orderRef := r.client.Collection("orders").Doc(orderID)

	var confirmed entity.Order
	var lapsed bool

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		lapsed = false

		doc, err := tx.Get(orderRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Order", err)
			}
			return errors.Internal("Failed to get order", err)
		}

		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			return errors.Internal("Failed to parse order data", err)
		}

		if !entity.CanTransition(order.Status, entity.OrderPaidPendingShipment) {
			return errors.InvalidStateTransition(string(order.Status), string(entity.OrderPaidPendingShipment))
		}

		listingRef := r.client.Collection("listings").Doc(order.ListingID)
		listingDoc, err := tx.Get(listingRef)
		if err != nil {
			return errors.Internal("Failed to get listing", err)
		}

		var listing entity.Listing
		if err := listingDoc.DataTo(&listing); err != nil {
			return errors.Internal("Failed to parse listing data", err)
		}

		now := time.Now()

		// The confirmation arrived after the reservation window closed. The
		// order is lapsed, not payable: close it instead of selling. The
		// callback must return nil here or the cancellation write would be
		// discarded with the rest of the transaction buffer.
		if listing.ReservationExpired(now) {
			order.Status = entity.OrderCancelled
			order.PaymentStatus = entity.PaymentFailed
			order.CancellationReason = "reservation expired before payment confirmation"
			order.CancelledAt = &now
			order.UpdatedAt = now
			if err := tx.Set(orderRef, order); err != nil {
				return errors.Internal("Failed to cancel lapsed order", err)
			}
			lapsed = true
			return nil
		}

		order.Status = entity.OrderPaidPendingShipment
		order.PaymentStatus = entity.PaymentPaid
		order.PaidAt = &now
		order.UpdatedAt = now

		listing.Status = entity.ListingSold
		listing.ReservedUntil = nil
		listing.UpdatedAt = now

		if err := tx.Set(listingRef, listing); err != nil {
			return errors.Internal("Failed to mark listing sold", err)
		}
		if err := tx.Set(orderRef, order); err != nil {
			return errors.Internal("Failed to update order", err)
		}

		confirmed = order
		return nil
	})

	if err != nil {
		return nil, err
	}

	if lapsed {
		return nil, errors.InvalidStateTransition(string(entity.OrderPendingPayment), string(entity.OrderPaidPendingShipment))
	}

	return &confirmed, nil
}

func (r *firestoreOrderRepository) CancelReservation(ctx context.Context, orderID, reason string) (*entity.Order, error) {
	orderRef := r.client.Collection("orders").Doc(orderID)

	var cancelled entity.Order

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(orderRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Order", err)
			}
			return errors.Internal("Failed to get order", err)
		}

		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			return errors.Internal("Failed to parse order data", err)
		}

		if order.Status != entity.OrderPendingPayment {
			return errors.InvalidStateTransition(string(order.Status), string(entity.OrderCancelled))
		}

		listingRef := r.client.Collection("listings").Doc(order.ListingID)
		listingDoc, err := tx.Get(listingRef)
		if err != nil {
			return errors.Internal("Failed to get listing", err)
		}

		var listing entity.Listing
		if err := listingDoc.DataTo(&listing); err != nil {
			return errors.Internal("Failed to parse listing data", err)
		}

		now := time.Now()

		order.Status = entity.OrderCancelled
		order.PaymentStatus = entity.PaymentFailed
		order.CancellationReason = reason
		order.CancelledAt = &now
		order.UpdatedAt = now

		if listing.Status == entity.ListingReserved {
			listing.Status = entity.ListingAvailable
			listing.ReservedUntil = nil
			listing.UpdatedAt = now
			if err := tx.Set(listingRef, listing); err != nil {
				return errors.Internal("Failed to release listing", err)
			}
		}

		if err := tx.Set(orderRef, order); err != nil {
			return errors.Internal("Failed to cancel order", err)
		}

		cancelled = order
		return nil
	})

	if err != nil {
		return nil, err
	}

	return &cancelled, nil
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := r.client.Collection("orders").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Order", err)
		}
		return nil, errors.Internal("Failed to get order", err)
	}

	var order entity.Order
	if err := doc.DataTo(&order); err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}

	return &order, nil
}

func (r *firestoreOrderRepository) Update(ctx context.Context, order *entity.Order) error {
	order.UpdatedAt = time.Now()

	_, err := r.client.Collection("orders").Doc(order.ID).Set(ctx, order)
	if err != nil {
		return errors.Internal("Failed to update order", err)
	}

	return nil
}

func (r *firestoreOrderRepository) ListByUserID(ctx context.Context, userID string, role string, status string, limit, offset int) ([]*entity.Order, int64, error) {
	var field string
	if role == "buyer" {
		field = "buyerId"
	} else if role == "seller" {
		field = "sellerId"
	} else {
		return nil, 0, errors.BadRequest("Invalid role", nil)
	}

	query := r.client.Collection("orders").Where(field, "==", userID)

	if status != "" {
		query = query.Where("status", "==", status)
	}

	query = query.OrderBy("createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count orders", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var orders []*entity.Order

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate orders", err)
		}

		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			return nil, 0, errors.Internal("Failed to parse order data", err)
		}
		orders = append(orders, &order)
	}

	return orders, total, nil
}
