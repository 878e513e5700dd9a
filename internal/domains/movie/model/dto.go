package model

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	membershipModel "movie-catalog-backend/internal/domains/membership/model"
	"movie-catalog-backend/internal/domains/movie/gateway"
)

const (
	// SearchResultLimit giới hạn kết quả genre/actor search
	SearchResultLimit = 10

	DefaultTopRatedLimit = 5
	MaxTopRatedLimit     = 50

	// NoReviewText là text sentinel khi movie chưa có review
	NoReviewText = "No review available"

	SortByRating      = "rating"
	SortByReleaseYear = "releaseYear"
	OrderAsc          = "ASC"
	OrderDesc         = "DESC"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// SearchMoviesRequest GET /api/movies/search?query=
type SearchMoviesRequest struct {
	Query string `form:"query"`
}

func (r SearchMoviesRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Query,
			validation.Required.Error("query parameter is required"),
			validation.Length(1, 200),
		),
	)
}

// SearchByGenreActorRequest GET /api/movies/searchByGenreAndActor?genre=&actor=
// Cần ít nhất một trong hai; có cả hai thì AND
type SearchByGenreActorRequest struct {
	Genre string `form:"genre"`
	Actor string `form:"actor"`
}

func (r *SearchByGenreActorRequest) Normalize() {
	r.Genre = strings.TrimSpace(r.Genre)
	r.Actor = strings.TrimSpace(r.Actor)
}

func (r SearchByGenreActorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Genre,
			validation.Required.When(r.Actor == "").Error("genre or actor is required"),
			validation.Length(0, 100),
		),
		validation.Field(&r.Actor,
			validation.Length(0, 100),
		),
	)
}

// TopRatedRequest GET /api/movies/top5?limit=
type TopRatedRequest struct {
	Limit int `form:"limit"`
}

func (r *TopRatedRequest) Normalize() {
	if r.Limit == 0 {
		r.Limit = DefaultTopRatedLimit
	}
}

func (r TopRatedRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Limit,
			validation.Min(1).Error("limit must be at least 1"),
			validation.Max(MaxTopRatedLimit).Error("limit must not exceed 50"),
		),
	)
}

// SortListRequest GET /api/movies/sort?list=&sortBy=&order=&curatedListId=
type SortListRequest struct {
	List          string `form:"list"`
	SortBy        string `form:"sortBy"`
	Order         string `form:"order"`
	CuratedListID string `form:"curatedListId"`
}

// Normalize cho phép order viết thường (asc/desc)
func (r *SortListRequest) Normalize() {
	r.List = strings.TrimSpace(r.List)
	r.SortBy = strings.TrimSpace(r.SortBy)
	r.Order = strings.ToUpper(strings.TrimSpace(r.Order))
	r.CuratedListID = strings.TrimSpace(r.CuratedListID)
}

func (r SortListRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.List,
			validation.Required.Error("list is required"),
			validation.In(
				string(membershipModel.KindWatchlist),
				string(membershipModel.KindWishlist),
				string(membershipModel.KindCurated),
			).Error("list must be one of: watchlist, wishlist, curated"),
		),
		validation.Field(&r.SortBy,
			validation.Required.Error("sortBy is required"),
			validation.In(SortByRating, SortByReleaseYear).Error("sortBy must be one of: rating, releaseYear"),
		),
		validation.Field(&r.Order,
			validation.Required.Error("order is required"),
			validation.In(OrderAsc, OrderDesc).Error("order must be ASC or DESC"),
		),
		validation.Field(&r.CuratedListID,
			is.UUID.Error("curatedListId must be a valid UUID"),
		),
	)
}

// Filter chỉ gọi sau khi Validate thành công
func (r SortListRequest) Filter() ListFilter {
	f := ListFilter{
		Kind:   membershipModel.ListKind(r.List),
		SortBy: r.SortBy,
		Order:  r.Order,
	}
	if r.CuratedListID != "" && f.Kind == membershipModel.KindCurated {
		id := uuid.MustParse(r.CuratedListID)
		f.CuratedListID = &id
	}
	return f
}

// ListFilter là input đã validate cho repository
// CuratedListID = nil với kind curated: lấy movie của mọi curated list (distinct)
type ListFilter struct {
	Kind          membershipModel.ListKind
	CuratedListID *uuid.UUID
	SortBy        string
	Order         string
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type SearchMoviesResponse struct {
	Movies []gateway.MovieSummary `json:"movies"`
}

type SearchByGenreActorResponse struct {
	Movies []*Movie `json:"movies"`
}

// SortedMovie là một row của sort response
type SortedMovie struct {
	Title       string  `json:"title"`
	ExternalID  int64   `json:"externalId"`
	Genre       string  `json:"genre"`
	Actors      string  `json:"actors"`
	ReleaseYear *int    `json:"releaseYear"`
	Rating      float64 `json:"rating"`
}

type SortListResponse struct {
	Movies []SortedMovie `json:"movies"`
}

type ReviewSummary struct {
	Text      string `json:"text"`
	WordCount int    `json:"wordCount"`
}

type TopRatedMovie struct {
	Title  string        `json:"title"`
	Rating float64       `json:"rating"`
	Review ReviewSummary `json:"review"`
}

type TopRatedResponse struct {
	Movies []TopRatedMovie `json:"movies"`
}
