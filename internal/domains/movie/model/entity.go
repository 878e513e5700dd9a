package model

import (
	"time"

	"github.com/google/uuid"

	"movie-catalog-backend/internal/domains/movie/gateway"
)

// Movie là bản ghi canonical duy nhất cho mỗi TMDB id
// Không bao giờ được refresh sau khi insert
type Movie struct {
	ID          uuid.UUID `json:"id"`
	ExternalID  int64     `json:"externalId"`
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	Actors      string    `json:"actors"`
	ReleaseYear *int      `json:"releaseYear"`
	Rating      float64   `json:"rating"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewMovieFromDetail map provider detail sang Movie chưa persist
func NewMovieFromDetail(d *gateway.MovieDetail) *Movie {
	return &Movie{
		ID:          uuid.New(),
		ExternalID:  d.ExternalID,
		Title:       d.Title,
		Genre:       d.Genre,
		Actors:      d.Actors,
		ReleaseYear: d.ReleaseYear,
		Rating:      d.Rating,
		Description: d.Description,
		CreatedAt:   time.Now().UTC(),
	}
}

// RatedMovie là một row của top-rated query: movie + review đầu tiên (nếu có)
type RatedMovie struct {
	MovieID         uuid.UUID
	ExternalID      int64
	Title           string
	Rating          float64
	FirstReviewText *string
}
