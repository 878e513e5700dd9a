package model

import (
	"errors"
	"fmt"

	"movie-catalog-backend/internal/shared/apperror"
)

// Repository sentinels
var (
	ErrMovieNotFound       = errors.New("movie not found")
	ErrDuplicateExternalID = errors.New("movie with this external id already exists")
)

// Error constructors
func NewInvalidExternalIDError(externalID int64) *apperror.AppError {
	return apperror.NewValidationError(fmt.Sprintf("invalid movie id: %d", externalID))
}
