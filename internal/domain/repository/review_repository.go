package repository

import (
	"context"

	"vendora/internal/domain/entity"
)

type ReviewRepository interface {
	// CreateWithAggregate writes the review, recomputes the target user's
	// running average and review count, and marks the order as reviewed, all
	// inside one serializable transaction. Concurrent submissions for the
	// same target never lose an update, and a double submit on the same
	// order fails without touching the aggregate.
	CreateWithAggregate(ctx context.Context, review *entity.Review) error

	GetByID(ctx context.Context, id string) (*entity.Review, error)
	ListByTargetID(ctx context.Context, targetID string, limit, offset int) ([]*entity.Review, int64, error)
}
