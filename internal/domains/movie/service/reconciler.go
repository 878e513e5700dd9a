package service

import (
	"context"
	"errors"
	"fmt"

	"movie-catalog-backend/internal/domains/movie/gateway"
	"movie-catalog-backend/internal/domains/movie/model"
	"movie-catalog-backend/internal/domains/movie/repository"
	"movie-catalog-backend/internal/infrastructure/metrics"
	"movie-catalog-backend/internal/shared/apperror"
	"movie-catalog-backend/pkg/logger"
)

// Reconciler đảm bảo mỗi TMDB id chỉ có đúng một Movie row
// Không lock in-process: unique constraint trên external_id là cơ chế an toàn duy nhất
type Reconciler struct {
	repo     repository.MovieRepository
	provider gateway.MetadataProvider
}

func NewReconciler(repo repository.MovieRepository, provider gateway.MetadataProvider) *Reconciler {
	return &Reconciler{
		repo:     repo,
		provider: provider,
	}
}

var _ Resolver = (*Reconciler)(nil)

func (r *Reconciler) ResolveOrCreate(ctx context.Context, externalID int64) (*model.Movie, error) {
	if externalID <= 0 {
		return nil, model.NewInvalidExternalIDError(externalID)
	}

	// Step 1: Đã có trong DB thì trả về luôn, không refresh
	existing, err := r.repo.FindByExternalID(ctx, externalID)
	if err == nil {
		metrics.MovieResolutions.WithLabelValues("reused").Inc()
		return existing, nil
	}
	if !errors.Is(err, model.ErrMovieNotFound) {
		return nil, apperror.NewInternalError(fmt.Errorf("resolve movie %d: %w", externalID, err))
	}

	// Step 2: Fetch full details từ provider
	// Lỗi provider trả về nguyên vẹn, không persist gì
	detail, err := r.provider.FetchFullDetails(ctx, externalID)
	if err != nil {
		if apperror.IsKind(err, apperror.KindUpstream) {
			metrics.MovieResolutions.WithLabelValues("provider_error").Inc()
		}
		return nil, err
	}

	// Step 3: Persist
	movie := model.NewMovieFromDetail(detail)
	movie.ExternalID = externalID

	err = r.repo.Create(ctx, movie)
	switch {
	case err == nil:
		metrics.MovieResolutions.WithLabelValues("created").Inc()
		return movie, nil

	case errors.Is(err, model.ErrDuplicateExternalID):
		// Step 4: Request khác insert trước, đọc lại và trả về bản thắng
		logger.Info("Concurrent movie creation detected, using existing row", map[string]interface{}{
			"external_id": externalID,
		})
		winner, findErr := r.repo.FindByExternalID(ctx, externalID)
		if findErr != nil {
			return nil, apperror.NewInternalError(fmt.Errorf("re-read movie %d after conflict: %w", externalID, findErr))
		}
		metrics.MovieResolutions.WithLabelValues("race_lost").Inc()
		return winner, nil

	default:
		return nil, apperror.NewInternalError(fmt.Errorf("persist movie %d: %w", externalID, err))
	}
}
