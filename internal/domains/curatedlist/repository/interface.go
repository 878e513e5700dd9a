package repository

import (
	"context"

	"github.com/google/uuid"

	"movie-catalog-backend/internal/domains/curatedlist/model"
)

type CuratedListRepository interface {
	Create(ctx context.Context, list *model.CuratedList) error

	// Update trả về model.ErrCuratedListNotFound nếu id không tồn tại
	Update(ctx context.Context, list *model.CuratedList) error

	GetByID(ctx context.Context, id uuid.UUID) (*model.CuratedList, error)

	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}
