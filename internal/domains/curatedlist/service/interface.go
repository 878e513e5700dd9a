package service

import (
	"context"

	"github.com/google/uuid"

	"movie-catalog-backend/internal/domains/curatedlist/model"
)

type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateCuratedListRequest) (*model.CuratedList, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateCuratedListRequest) (*model.CuratedList, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.CuratedList, error)

	// Exists dùng bởi membership để validate curated target
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
