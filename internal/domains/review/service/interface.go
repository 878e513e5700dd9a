package service

import (
	"context"

	"github.com/google/uuid"

	"movie-catalog-backend/internal/domains/review/model"
)

type ServiceInterface interface {
	AddReview(ctx context.Context, movieID uuid.UUID, req model.CreateReviewRequest) (*model.ReviewResponse, error)
	ListReviews(ctx context.Context, movieID uuid.UUID) (*model.ListReviewsResponse, error)
}
