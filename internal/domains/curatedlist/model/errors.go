package model

import (
	"errors"

	"movie-catalog-backend/internal/shared/apperror"
)

var ErrCuratedListNotFound = errors.New("curated list not found")

func NewCuratedListNotFoundError() *apperror.AppError {
	return apperror.NewNotFoundError("Curated list not found.", ErrCuratedListNotFound)
}
