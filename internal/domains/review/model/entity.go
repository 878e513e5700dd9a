package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"movie-catalog-backend/internal/shared/utils"
)

// Review thuộc về đúng một movie (local id). Tạo một lần, không update/delete
// Không ảnh hưởng tới Movie.Rating
type Review struct {
	ID         uuid.UUID
	MovieID    uuid.UUID
	Rating     decimal.Decimal // NUMERIC(4,2), 0..10
	ReviewText string
	CreatedAt  time.Time
}

func (r *Review) ToResponse() *ReviewResponse {
	return &ReviewResponse{
		ID:         r.ID,
		MovieID:    r.MovieID,
		Rating:     r.Rating.InexactFloat64(),
		ReviewText: r.ReviewText,
		WordCount:  utils.WordCount(r.ReviewText),
		CreatedAt:  r.CreatedAt,
	}
}
