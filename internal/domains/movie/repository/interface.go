package repository

import (
	"context"

	"github.com/google/uuid"

	"movie-catalog-backend/internal/domains/movie/model"
)

// =====================================================
// MOVIE REPOSITORY INTERFACE
// =====================================================

type MovieRepository interface {
	// ========================================
	// Canonical record
	// ========================================

	// FindByExternalID trả về model.ErrMovieNotFound nếu chưa có
	FindByExternalID(ctx context.Context, externalID int64) (*model.Movie, error)

	// ExistsByID dùng bởi membership để validate movie id local
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// Create trả về model.ErrDuplicateExternalID khi external_id đã tồn tại
	Create(ctx context.Context, movie *model.Movie) error

	// ========================================
	// Read paths
	// ========================================

	// SearchByGenreOrActor: ILIKE substring, AND khi có cả hai
	SearchByGenreOrActor(ctx context.Context, genre, actor string, limit int) ([]*model.Movie, error)

	// ListByMembership trả về movie của một list, sort theo filter
	ListByMembership(ctx context.Context, filter model.ListFilter) ([]*model.Movie, error)

	// TopRated trả về limit movies rating cao nhất kèm review đầu tiên
	TopRated(ctx context.Context, limit int) ([]*model.RatedMovie, error)
}
