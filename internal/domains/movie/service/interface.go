package service

import (
	"context"

	"movie-catalog-backend/internal/domains/movie/model"
)

// Resolver trả về canonical Movie cho một TMDB id, fetch + persist nếu chưa có
type Resolver interface {
	ResolveOrCreate(ctx context.Context, externalID int64) (*model.Movie, error)
}

// ServiceInterface gom search qua provider và các read path local
type ServiceInterface interface {
	SearchMovies(ctx context.Context, req model.SearchMoviesRequest) (*model.SearchMoviesResponse, error)
	SearchByGenreOrActor(ctx context.Context, req model.SearchByGenreActorRequest) (*model.SearchByGenreActorResponse, error)
	SortList(ctx context.Context, req model.SortListRequest) (*model.SortListResponse, error)
	TopRated(ctx context.Context, req model.TopRatedRequest) (*model.TopRatedResponse, error)
}
