package repository

import (
	"context"

	"github.com/google/uuid"

	"movie-catalog-backend/internal/domains/membership/model"
)

type MembershipRepository interface {
	Exists(ctx context.Context, target model.ListTarget, movieID uuid.UUID) (bool, error)

	// Add insert membership, trả về false nếu row đã tồn tại (unique constraint)
	Add(ctx context.Context, membership *model.Membership) (bool, error)
}
