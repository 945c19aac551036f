package repository

import (
	"context"

	"vendora/internal/domain/entity"
)

type DisputeRepository interface {
	Create(ctx context.Context, dispute *entity.Dispute) error
	GetByID(ctx context.Context, id string) (*entity.Dispute, error)
	Update(ctx context.Context, dispute *entity.Dispute) error
	ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Dispute, int64, error)
}
