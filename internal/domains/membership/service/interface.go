package service

import (
	"context"

	"github.com/google/uuid"

	"movie-catalog-backend/internal/domains/membership/model"
	movieModel "movie-catalog-backend/internal/domains/movie/model"
)

type ServiceInterface interface {
	// AddToList thêm movie đã có trong DB vào list
	AddToList(ctx context.Context, target model.ListTarget, movieID uuid.UUID) (*model.AddResult, error)

	// AddMovie: validate target → resolve TMDB id → AddToList
	// Đã là member thì trả về ConflictError
	AddMovie(ctx context.Context, target model.ListTarget, externalID int64) (*model.AddMovieResponse, error)
}

// =====================================================
// DEPENDENCIES
// =====================================================

// MovieResolver implemented by movie service.Reconciler
type MovieResolver interface {
	ResolveOrCreate(ctx context.Context, externalID int64) (*movieModel.Movie, error)
}

// MovieLookup implemented by movie repository
type MovieLookup interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

// CuratedListChecker implemented by curatedlist service
type CuratedListChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
