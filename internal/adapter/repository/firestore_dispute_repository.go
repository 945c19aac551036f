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

type firestoreDisputeRepository struct {
	client *firestore.Client
}

func NewFirestoreDisputeRepository(client *firestore.Client) repository.DisputeRepository {
	return &firestoreDisputeRepository{
		client: client,
	}
}

func (r *firestoreDisputeRepository) Create(ctx context.Context, dispute *entity.Dispute) error {
	if dispute.ID == "" {
		dispute.ID = uuid.New().String()
	}

	now := time.Now()
	dispute.CreatedAt = now
	dispute.UpdatedAt = now

	_, err := r.client.Collection("disputes").Doc(dispute.ID).Set(ctx, dispute)
	if err != nil {
		return errors.Internal("Failed to create dispute", err)
	}

	return nil
}

func (r *firestoreDisputeRepository) GetByID(ctx context.Context, id string) (*entity.Dispute, error) {
	doc, err := r.client.Collection("disputes").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Dispute", err)
		}
		return nil, errors.Internal("Failed to get dispute", err)
	}

	var dispute entity.Dispute
	if err := doc.DataTo(&dispute); err != nil {
		return nil, errors.Internal("Failed to parse dispute data", err)
	}

	return &dispute, nil
}

func (r *firestoreDisputeRepository) Update(ctx context.Context, dispute *entity.Dispute) error {
	dispute.UpdatedAt = time.Now()

	_, err := r.client.Collection("disputes").Doc(dispute.ID).Set(ctx, dispute)
	if err != nil {
		return errors.Internal("Failed to update dispute", err)
	}

	return nil
}

func (r *firestoreDisputeRepository) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Dispute, int64, error) {
	// A user sees disputes where they are either side. Firestore has no OR
	// on different fields in this client version, so run both queries.
	var disputes []*entity.Dispute

	for _, field := range []string{"buyerId", "sellerId"} {
		query := r.client.Collection("disputes").
			Where(field, "==", userID).
			OrderBy("createdAt", firestore.Desc)

		iter := query.Documents(ctx)
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return nil, 0, errors.Internal("Failed to iterate disputes", err)
			}

			var dispute entity.Dispute
			if err := doc.DataTo(&dispute); err != nil {
				return nil, 0, errors.Internal("Failed to parse dispute data", err)
			}
			disputes = append(disputes, &dispute)
		}
	}

	total := int64(len(disputes))

	if offset > 0 {
		if offset >= len(disputes) {
			return nil, total, nil
		}
		disputes = disputes[offset:]
	}
	if limit > 0 && limit < len(disputes) {
		disputes = disputes[:limit]
	}

	return disputes, total, nil
}
