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

type firestoreReviewRepository struct {
	client *firestore.Client
}

func NewFirestoreReviewRepository(client *firestore.Client) repository.ReviewRepository {
	return &firestoreReviewRepository{
		client: client,
	}
}

func (r *firestoreReviewRepository) CreateWithAggregate(ctx context.Context, review *entity.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}

	orderRef := r.client.Collection("orders").Doc(review.OrderID)
	userRef := r.client.Collection("users").Doc(review.TargetID)
	reviewRef := r.client.Collection("reviews").Doc(review.ID)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		orderDoc, err := tx.Get(orderRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Order", err)
			}
			return errors.Internal("Failed to get order", err)
		}

		var order entity.Order
		if err := orderDoc.DataTo(&order); err != nil {
			return errors.Internal("Failed to parse order data", err)
		}

		if order.BuyerID != review.ReviewerID {
			return errors.Forbidden("Only the buyer can review this order", nil)
		}
		if order.Status != entity.OrderCompleted {
			return errors.BadRequest("Order must be completed before it can be reviewed", nil)
		}
		if order.BuyerReviewLeft {
			return errors.AlreadyReviewed()
		}

		userDoc, err := tx.Get(userRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("User", err)
			}
			return errors.Internal("Failed to get user", err)
		}

		var user entity.User
		if err := userDoc.DataTo(&user); err != nil {
			return errors.Internal("Failed to parse user data", err)
		}

		now := time.Now()
		review.CreatedAt = now

		// Running average recomputed inside the same transaction as the
		// review write, so concurrent submissions serialize.
		total := user.Rating * float64(user.ReviewCount)
		user.ReviewCount++
		user.Rating = (total + float64(review.Rating)) / float64(user.ReviewCount)
		user.UpdatedAt = now

		order.BuyerReviewLeft = true
		order.UpdatedAt = now

		if err := tx.Set(reviewRef, review); err != nil {
			return errors.Internal("Failed to create review", err)
		}
		if err := tx.Set(userRef, user); err != nil {
			return errors.Internal("Failed to update user rating", err)
		}
		if err := tx.Set(orderRef, order); err != nil {
			return errors.Internal("Failed to update order", err)
		}

		return nil
	})
}

func (r *firestoreReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	doc, err := r.client.Collection("reviews").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Review", err)
		}
		return nil, errors.Internal("Failed to get review", err)
	}

	var review entity.Review
	if err := doc.DataTo(&review); err != nil {
		return nil, errors.Internal("Failed to parse review data", err)
	}

	return &review, nil
}

func (r *firestoreReviewRepository) ListByTargetID(ctx context.Context, targetID string, limit, offset int) ([]*entity.Review, int64, error) {
	query := r.client.Collection("reviews").
		Where("targetId", "==", targetID).
		OrderBy("createdAt", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count reviews", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var reviews []*entity.Review

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate reviews", err)
		}

		var review entity.Review
		if err := doc.DataTo(&review); err != nil {
			return nil, 0, errors.Internal("Failed to parse review data", err)
		}
		reviews = append(reviews, &review)
	}

	return reviews, total, nil
}
