package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-catalog-backend/internal/domains/review/model"
	"movie-catalog-backend/internal/shared/apperror"
)

type memoryRepo struct {
	mu      sync.Mutex
	movies  map[uuid.UUID]bool
	reviews []*model.Review
}

func newMemoryRepo(movieIDs ...uuid.UUID) *memoryRepo {
	r := &memoryRepo{movies: make(map[uuid.UUID]bool)}
	for _, id := range movieIDs {
		r.movies[id] = true
	}
	return r
}

func (r *memoryRepo) CreateForMovie(ctx context.Context, review *model.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.movies[review.MovieID] {
		return model.ErrMovieNotFound
	}
	r.reviews = append(r.reviews, review)
	return nil
}

func (r *memoryRepo) ListByMovie(ctx context.Context, movieID uuid.UUID) ([]*model.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*model.Review, 0)
	for _, rv := range r.reviews {
		if rv.MovieID == movieID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *memoryRepo) MovieExists(ctx context.Context, movieID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.movies[movieID], nil
}

func rating(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func TestAddReview_RatingBounds(t *testing.T) {
	movieID := uuid.New()
	svc := NewReviewService(newMemoryRepo(movieID))

	for _, v := range []float64{-1, 11, 10.01} {
		_, err := svc.AddReview(context.Background(), movieID, model.CreateReviewRequest{Rating: rating(v)})
		assert.True(t, apperror.IsKind(err, apperror.KindValidation), "rating %v", v)
	}

	for _, v := range []float64{0, 10, 7.5} {
		resp, err := svc.AddReview(context.Background(), movieID, model.CreateReviewRequest{Rating: rating(v)})
		require.NoError(t, err, "rating %v", v)
		assert.Equal(t, v, resp.Rating)
	}
}

func TestAddReview_RequiresRating(t *testing.T) {
	movieID := uuid.New()
	svc := NewReviewService(newMemoryRepo(movieID))

	_, err := svc.AddReview(context.Background(), movieID, model.CreateReviewRequest{ReviewText: "no rating"})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestAddReview_TextLengthCountsCharacters(t *testing.T) {
	movieID := uuid.New()
	svc := NewReviewService(newMemoryRepo(movieID))

	// 500 ký tự có dấu (> 500 bytes) vẫn hợp lệ
	_, err := svc.AddReview(context.Background(), movieID, model.CreateReviewRequest{
		Rating:     rating(5),
		ReviewText: strings.Repeat("é", model.MaxReviewTextLength),
	})
	require.NoError(t, err)

	_, err = svc.AddReview(context.Background(), movieID, model.CreateReviewRequest{
		Rating:     rating(5),
		ReviewText: strings.Repeat("a", model.MaxReviewTextLength+1),
	})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestAddReview_MissingMovieIsNotFound(t *testing.T) {
	svc := NewReviewService(newMemoryRepo())

	_, err := svc.AddReview(context.Background(), uuid.New(), model.CreateReviewRequest{Rating: rating(8)})
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestAddReview_MultiplePerMovieKeepOrder(t *testing.T) {
	movieID := uuid.New()
	svc := NewReviewService(newMemoryRepo(movieID))

	_, err := svc.AddReview(context.Background(), movieID, model.CreateReviewRequest{Rating: rating(9), ReviewText: "first one"})
	require.NoError(t, err)
	_, err = svc.AddReview(context.Background(), movieID, model.CreateReviewRequest{Rating: rating(3), ReviewText: "second review here"})
	require.NoError(t, err)

	list, err := svc.ListReviews(context.Background(), movieID)
	require.NoError(t, err)
	require.Len(t, list.Reviews, 2)
	assert.Equal(t, "first one", list.Reviews[0].ReviewText)
	assert.Equal(t, 2, list.Reviews[0].WordCount)
	assert.Equal(t, 3, list.Reviews[1].WordCount)
}

func TestListReviews_MissingMovie(t *testing.T) {
	svc := NewReviewService(newMemoryRepo())

	_, err := svc.ListReviews(context.Background(), uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}
