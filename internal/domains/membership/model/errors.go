package model

import (
	"errors"
	"fmt"

	"movie-catalog-backend/internal/shared/apperror"
)

var (
	ErrInvalidListKind      = errors.New("invalid list kind")
	ErrCuratedListRequired  = errors.New("curated list id is required")
	ErrCuratedListNotExists = errors.New("curated list does not exist")
	ErrMovieNotExists       = errors.New("movie does not exist")
)

func NewInvalidTargetError(err error) *apperror.AppError {
	return &apperror.AppError{
		Kind:    apperror.KindValidation,
		Code:    apperror.CodeValidation,
		Message: err.Error(),
		Err:     err,
	}
}

// NewAlreadyMemberError message giữ nguyên format cũ: "Movie already exists in watchlist"
func NewAlreadyMemberError(kind ListKind) *apperror.AppError {
	return apperror.NewConflictError(fmt.Sprintf("Movie already exists in %s", kind.DisplayName()))
}
