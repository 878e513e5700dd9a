package model

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const MaxReviewTextLength = 500

var (
	MinRating = decimal.Zero
	MaxRating = decimal.NewFromInt(10)
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateReviewRequest POST /api/movies/:movieId/reviews
// Rating nhận cả number lẫn string ("8.5")
type CreateReviewRequest struct {
	Rating     *decimal.Decimal `json:"rating"`
	ReviewText string           `json:"reviewText"`
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Rating,
			validation.NotNil.Error("rating is required"),
			validation.By(ratingInRange),
		),
		validation.Field(&r.ReviewText,
			// đếm theo ký tự, không phải byte
			validation.RuneLength(0, MaxReviewTextLength).Error("review text must not exceed 500 characters"),
		),
	)
}

func ratingInRange(value interface{}) error {
	d, _ := value.(*decimal.Decimal)
	if d == nil {
		return nil
	}
	if d.LessThan(MinRating) || d.GreaterThan(MaxRating) {
		return errors.New("rating must be between 0 and 10")
	}
	return nil
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	MovieID    uuid.UUID `json:"movieId"`
	Rating     float64   `json:"rating"`
	ReviewText string    `json:"reviewText"`
	WordCount  int       `json:"wordCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ListReviewsResponse struct {
	Reviews []*ReviewResponse `json:"reviews"`
}
