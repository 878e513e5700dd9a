package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// AddMovieRequest body của POST /api/movies/watchlist và /wishlist
// MovieID là TMDB id
type AddMovieRequest struct {
	MovieID int64 `json:"movieId"`
}

func (r AddMovieRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MovieID,
			validation.Required.Error("movieId is required"),
			validation.Min(int64(1)).Error("movieId must be a positive integer"),
		),
	)
}

// AddToCuratedListRequest body của POST /api/movies/curated-list
type AddToCuratedListRequest struct {
	MovieID       int64  `json:"movieId"`
	CuratedListID string `json:"curatedListId"`
}

func (r AddToCuratedListRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.MovieID,
			validation.Required.Error("movieId is required"),
			validation.Min(int64(1)).Error("movieId must be a positive integer"),
		),
		validation.Field(&r.CuratedListID,
			validation.Required.Error("curatedListId is required"),
			is.UUID.Error("curatedListId must be a valid UUID"),
		),
	)
}

// ListID chỉ gọi sau khi Validate thành công
func (r AddToCuratedListRequest) ListID() uuid.UUID {
	return uuid.MustParse(r.CuratedListID)
}

// AddMovieResponse trả về sau khi thêm thành công
type AddMovieResponse struct {
	MovieID    uuid.UUID `json:"movieId"`
	ExternalID int64     `json:"externalId"`
	Title      string    `json:"title"`
	List       ListKind  `json:"list"`
}
