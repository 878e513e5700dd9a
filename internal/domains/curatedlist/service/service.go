package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"movie-catalog-backend/internal/domains/curatedlist/model"
	"movie-catalog-backend/internal/domains/curatedlist/repository"
	"movie-catalog-backend/internal/shared/apperror"
	"movie-catalog-backend/internal/shared/utils"
	"movie-catalog-backend/pkg/logger"
)

type curatedListService struct {
	repo repository.CuratedListRepository
}

func NewCuratedListService(repo repository.CuratedListRepository) ServiceInterface {
	return &curatedListService{repo: repo}
}

// =====================================================
// CREATE
// =====================================================

func (s *curatedListService) Create(ctx context.Context, req model.CreateCuratedListRequest) (*model.CuratedList, error) {
	// Step 1: Validate
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidationErrorWrap(err)
	}

	// Step 2: Build entity, slug suy ra từ name
	now := time.Now().UTC()
	list := &model.CuratedList{
		ID:          uuid.New(),
		Name:        req.Name,
		Slug:        utils.GenerateSlug(req.Name),
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Step 3: Persist
	if err := s.repo.Create(ctx, list); err != nil {
		return nil, apperror.NewInternalError(err)
	}

	logger.Info("Curated list created", map[string]interface{}{
		"curated_list_id": list.ID.String(),
		"slug":            list.Slug,
	})
	return list, nil
}

// =====================================================
// UPDATE
// =====================================================

func (s *curatedListService) Update(ctx context.Context, id uuid.UUID, req model.UpdateCuratedListRequest) (*model.CuratedList, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidationErrorWrap(err)
	}

	list := &model.CuratedList{
		ID:          id,
		Name:        req.Name,
		Slug:        utils.GenerateSlug(req.Name),
		Description: req.Description,
	}

	if err := s.repo.Update(ctx, list); err != nil {
		if errors.Is(err, model.ErrCuratedListNotFound) {
			return nil, model.NewCuratedListNotFoundError()
		}
		return nil, apperror.NewInternalError(err)
	}

	return list, nil
}

// =====================================================
// READ
// =====================================================

func (s *curatedListService) GetByID(ctx context.Context, id uuid.UUID) (*model.CuratedList, error) {
	list, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrCuratedListNotFound) {
			return nil, model.NewCuratedListNotFoundError()
		}
		return nil, apperror.NewInternalError(err)
	}
	return list, nil
}

func (s *curatedListService) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return false, apperror.NewInternalError(err)
	}
	return exists, nil
}
