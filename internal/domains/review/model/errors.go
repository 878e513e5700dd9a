package model

import (
	"errors"

	"movie-catalog-backend/internal/shared/apperror"
)

var ErrMovieNotFound = errors.New("movie not found")

func NewMovieNotFoundError() *apperror.AppError {
	return apperror.NewNotFoundError("Movie not found", ErrMovieNotFound)
}
