package service

import (
	"context"

	"movie-catalog-backend/internal/domains/movie/gateway"
	"movie-catalog-backend/internal/domains/movie/model"
	"movie-catalog-backend/internal/domains/movie/repository"
	"movie-catalog-backend/internal/shared/apperror"
	"movie-catalog-backend/internal/shared/utils"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type movieService struct {
	repo     repository.MovieRepository
	provider gateway.MetadataProvider
}

func NewMovieService(
	repo repository.MovieRepository,
	provider gateway.MetadataProvider,
) ServiceInterface {
	return &movieService{
		repo:     repo,
		provider: provider,
	}
}

// =====================================================
// SEARCH BY TITLE (provider)
// =====================================================

func (s *movieService) SearchMovies(ctx context.Context, req model.SearchMoviesRequest) (*model.SearchMoviesResponse, error) {
	// Step 1: Validate
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidationErrorWrap(err)
	}

	// Step 2: Gọi provider, không cache kết quả search
	movies, err := s.provider.SearchByTitle(ctx, req.Query)
	if err != nil {
		return nil, err
	}
	if movies == nil {
		movies = []gateway.MovieSummary{}
	}

	return &model.SearchMoviesResponse{Movies: movies}, nil
}

// =====================================================
// SEARCH BY GENRE / ACTOR (local)
// =====================================================

func (s *movieService) SearchByGenreOrActor(ctx context.Context, req model.SearchByGenreActorRequest) (*model.SearchByGenreActorResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidationErrorWrap(err)
	}

	movies, err := s.repo.SearchByGenreOrActor(ctx, req.Genre, req.Actor, model.SearchResultLimit)
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}

	return &model.SearchByGenreActorResponse{Movies: movies}, nil
}

// =====================================================
// SORT LIST (local)
// =====================================================

func (s *movieService) SortList(ctx context.Context, req model.SortListRequest) (*model.SortListResponse, error) {
	// Step 1: Validate toàn bộ params trước khi đụng tới DB
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidationErrorWrap(err)
	}

	// Step 2: Query
	movies, err := s.repo.ListByMembership(ctx, req.Filter())
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}

	// Step 3: Map sang response rows
	rows := make([]model.SortedMovie, 0, len(movies))
	for _, m := range movies {
		rows = append(rows, model.SortedMovie{
			Title:       m.Title,
			ExternalID:  m.ExternalID,
			Genre:       m.Genre,
			Actors:      m.Actors,
			ReleaseYear: m.ReleaseYear,
			Rating:      m.Rating,
		})
	}

	return &model.SortListResponse{Movies: rows}, nil
}

// =====================================================
// TOP RATED (local)
// =====================================================

func (s *movieService) TopRated(ctx context.Context, req model.TopRatedRequest) (*model.TopRatedResponse, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidationErrorWrap(err)
	}

	rated, err := s.repo.TopRated(ctx, req.Limit)
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}

	result := make([]model.TopRatedMovie, 0, len(rated))
	for _, rm := range rated {
		review := model.ReviewSummary{Text: model.NoReviewText, WordCount: 0}
		if rm.FirstReviewText != nil {
			review = model.ReviewSummary{
				Text:      *rm.FirstReviewText,
				WordCount: utils.WordCount(*rm.FirstReviewText),
			}
		}
		result = append(result, model.TopRatedMovie{
			Title:  rm.Title,
			Rating: rm.Rating,
			Review: review,
		})
	}

	return &model.TopRatedResponse{Movies: result}, nil
}
