package gateway

import (
	"context"
)

// =====================================================
// GATEWAY INTERFACES
// =====================================================

// MetadataProvider wraps the external movie metadata API (TMDB).
// Implementations never persist anything.
type MetadataProvider interface {
	// SearchByTitle searches by title and annotates each result with its acting cast.
	// Result order matches the provider's order.
	SearchByTitle(ctx context.Context, query string) ([]MovieSummary, error)

	// FetchFullDetails loads one movie with genre names and its top-billed actors.
	FetchFullDetails(ctx context.Context, externalID int64) (*MovieDetail, error)
}

// =====================================================
// NORMALIZED TYPES
// =====================================================

// MovieSummary is one title-search hit.
// Genre holds provider genre codes ("28, 878"), Actors every cast member known for acting.
type MovieSummary struct {
	Title       string  `json:"title"`
	ExternalID  int64   `json:"externalId"`
	Genre       string  `json:"genre"`
	Actors      string  `json:"actors"`
	ReleaseYear *int    `json:"releaseYear"`
	Rating      float64 `json:"rating"`
	Description string  `json:"description"`
}

// MovieDetail is the shape persisted as a canonical Movie.
// Genre holds genre names ("Action, Science Fiction"), Actors the first MaxDetailActors cast names.
type MovieDetail struct {
	Title       string
	ExternalID  int64
	Genre       string
	Actors      string
	ReleaseYear *int
	Rating      float64
	Description string
}

// MaxDetailActors caps the cast stored on a canonical movie.
const MaxDetailActors = 5
