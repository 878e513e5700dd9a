package repository

import (
	"context"

	"github.com/google/uuid"

	"movie-catalog-backend/internal/domains/review/model"
)

// =====================================================
// REVIEW REPOSITORY INTERFACE
// =====================================================

type ReviewRepository interface {
	// CreateForMovie kiểm tra movie tồn tại và insert trong cùng transaction
	// Trả về model.ErrMovieNotFound nếu movie không tồn tại
	CreateForMovie(ctx context.Context, review *model.Review) error

	// ListByMovie trả về reviews theo thứ tự tạo (cũ nhất trước)
	ListByMovie(ctx context.Context, movieID uuid.UUID) ([]*model.Review, error)

	MovieExists(ctx context.Context, movieID uuid.UUID) (bool, error)
}
