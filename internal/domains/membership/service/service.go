package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"movie-catalog-backend/internal/domains/membership/model"
	"movie-catalog-backend/internal/domains/membership/repository"
	"movie-catalog-backend/internal/shared/apperror"
	"movie-catalog-backend/pkg/logger"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type membershipService struct {
	repo         repository.MembershipRepository
	resolver     MovieResolver
	movies       MovieLookup
	curatedLists CuratedListChecker
}

func NewMembershipService(
	repo repository.MembershipRepository,
	resolver MovieResolver,
	movies MovieLookup,
	curatedLists CuratedListChecker,
) ServiceInterface {
	return &membershipService{
		repo:         repo,
		resolver:     resolver,
		movies:       movies,
		curatedLists: curatedLists,
	}
}

// =====================================================
// ADD TO LIST
// =====================================================

func (s *membershipService) AddToList(ctx context.Context, target model.ListTarget, movieID uuid.UUID) (*model.AddResult, error) {
	// Step 1: Validate target
	if err := s.validateTarget(ctx, target); err != nil {
		return nil, err
	}

	// Step 2: Validate movie
	if movieID == uuid.Nil {
		return nil, model.NewInvalidTargetError(model.ErrMovieNotExists)
	}
	exists, err := s.movies.ExistsByID(ctx, movieID)
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}
	if !exists {
		return nil, model.NewInvalidTargetError(model.ErrMovieNotExists)
	}

	// Step 3: Đã là member thì không insert
	member, err := s.repo.Exists(ctx, target, movieID)
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}
	if member {
		return &model.AddResult{Created: false}, nil
	}

	// Step 4: Insert; thua race với request khác cũng coi là already member
	created, err := s.repo.Add(ctx, &model.Membership{
		ID:        uuid.New(),
		Target:    target,
		MovieID:   movieID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, apperror.NewInternalError(err)
	}

	return &model.AddResult{Created: created}, nil
}

// =====================================================
// ADD MOVIE (HTTP command)
// =====================================================

func (s *membershipService) AddMovie(ctx context.Context, target model.ListTarget, externalID int64) (*model.AddMovieResponse, error) {
	// Step 1: Validate target trước để không fetch provider vô ích
	if err := s.validateTarget(ctx, target); err != nil {
		return nil, err
	}

	// Step 2: Resolve canonical movie (fetch + persist nếu chưa có)
	movie, err := s.resolver.ResolveOrCreate(ctx, externalID)
	if err != nil {
		return nil, err
	}

	// Step 3: Add membership
	result, err := s.AddToList(ctx, target, movie.ID)
	if err != nil {
		return nil, err
	}
	if !result.Created {
		return nil, model.NewAlreadyMemberError(target.Kind)
	}

	logger.Info("Movie added to list", map[string]interface{}{
		"list":        target.String(),
		"movie_id":    movie.ID.String(),
		"external_id": externalID,
	})

	return &model.AddMovieResponse{
		MovieID:    movie.ID,
		ExternalID: movie.ExternalID,
		Title:      movie.Title,
		List:       target.Kind,
	}, nil
}

// =====================================================
// HELPERS
// =====================================================

func (s *membershipService) validateTarget(ctx context.Context, target model.ListTarget) error {
	if _, ok := model.ParseListKind(string(target.Kind)); !ok {
		return model.NewInvalidTargetError(model.ErrInvalidListKind)
	}
	if target.Kind != model.KindCurated {
		return nil
	}

	if target.CuratedListID == uuid.Nil {
		return model.NewInvalidTargetError(model.ErrCuratedListRequired)
	}
	exists, err := s.curatedLists.Exists(ctx, target.CuratedListID)
	if err != nil {
		return apperror.NewInternalError(err)
	}
	if !exists {
		return model.NewInvalidTargetError(model.ErrCuratedListNotExists)
	}
	return nil
}
