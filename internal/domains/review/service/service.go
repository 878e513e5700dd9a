package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"movie-catalog-backend/internal/domains/review/model"
	"movie-catalog-backend/internal/domains/review/repository"
	"movie-catalog-backend/internal/shared/apperror"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type reviewService struct {
	reviewRepo repository.ReviewRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository) ServiceInterface {
	return &reviewService{
		reviewRepo: reviewRepo,
	}
}

// =====================================================
// ADD REVIEW
// =====================================================

func (s *reviewService) AddReview(
	ctx context.Context,
	movieID uuid.UUID,
	req model.CreateReviewRequest,
) (*model.ReviewResponse, error) {
	// Step 1: Validate rating + text
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidationErrorWrap(err)
	}

	// Step 2: Build entity, rating làm tròn theo NUMERIC(4,2)
	review := &model.Review{
		ID:         uuid.New(),
		MovieID:    movieID,
		Rating:     req.Rating.Round(2),
		ReviewText: req.ReviewText,
		CreatedAt:  time.Now().UTC(),
	}

	// Step 3: Check movie + insert (một transaction)
	if err := s.reviewRepo.CreateForMovie(ctx, review); err != nil {
		if errors.Is(err, model.ErrMovieNotFound) {
			return nil, model.NewMovieNotFoundError()
		}
		return nil, apperror.NewInternalError(err)
	}

	return review.ToResponse(), nil
}

// =====================================================
// LIST REVIEWS
// =====================================================

func (s *reviewService) ListReviews(ctx context.Context, movieID uuid.UUID) (*model.ListReviewsResponse, error) {
	exists, err := s.reviewRepo.MovieExists(ctx, movieID)
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}
	if !exists {
		return nil, model.NewMovieNotFoundError()
	}

	reviews, err := s.reviewRepo.ListByMovie(ctx, movieID)
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}

	result := make([]*model.ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		result = append(result, r.ToResponse())
	}
	return &model.ListReviewsResponse{Reviews: result}, nil
}
