package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	membershipModel "movie-catalog-backend/internal/domains/membership/model"
	"movie-catalog-backend/internal/domains/movie/gateway"
	"movie-catalog-backend/internal/domains/movie/model"
	"movie-catalog-backend/internal/shared/apperror"
)

func TestSearchMovies_RequiresQuery(t *testing.T) {
	provider := new(mockProvider)
	svc := NewMovieService(newMemoryRepo(), provider)

	_, err := svc.SearchMovies(context.Background(), model.SearchMoviesRequest{})
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	provider.AssertNotCalled(t, "SearchByTitle", mock.Anything, mock.Anything)
}

func TestSearchMovies_DelegatesToProvider(t *testing.T) {
	provider := new(mockProvider)
	provider.On("SearchByTitle", mock.Anything, "matrix").
		Return([]gateway.MovieSummary{{Title: "The Matrix", ExternalID: 603}}, nil)
	svc := NewMovieService(newMemoryRepo(), provider)

	resp, err := svc.SearchMovies(context.Background(), model.SearchMoviesRequest{Query: "matrix"})
	require.NoError(t, err)
	require.Len(t, resp.Movies, 1)
	assert.Equal(t, int64(603), resp.Movies[0].ExternalID)
}

func TestSearchByGenreOrActor_RequiresOneCriterion(t *testing.T) {
	svc := NewMovieService(newMemoryRepo(), new(mockProvider))

	_, err := svc.SearchByGenreOrActor(context.Background(), model.SearchByGenreActorRequest{Genre: "  "})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestSearchByGenreOrActor_AndsBothCriteria(t *testing.T) {
	repo := newMemoryRepo()
	a := newMovie(1, "Speed", 7)
	a.Genre, a.Actors = "Action, Thriller", "Keanu Reeves, Sandra Bullock"
	b := newMovie(2, "Gravity", 7.7)
	b.Genre, b.Actors = "Science Fiction, Thriller", "Sandra Bullock, George Clooney"
	repo.add(a)
	repo.add(b)
	svc := NewMovieService(repo, new(mockProvider))

	resp, err := svc.SearchByGenreOrActor(context.Background(), model.SearchByGenreActorRequest{Genre: "thriller", Actor: "keanu"})
	require.NoError(t, err)
	require.Len(t, resp.Movies, 1)
	assert.Equal(t, "Speed", resp.Movies[0].Title)

	resp, err = svc.SearchByGenreOrActor(context.Background(), model.SearchByGenreActorRequest{Actor: "sandra"})
	require.NoError(t, err)
	assert.Len(t, resp.Movies, 2)
}

func TestSortList_WatchlistByRatingDesc(t *testing.T) {
	repo := newMemoryRepo()
	repo.add(newMovie(1, "Three", 3), membershipModel.KindWatchlist)
	repo.add(newMovie(2, "Nine", 9), membershipModel.KindWatchlist)
	repo.add(newMovie(3, "Five", 5), membershipModel.KindWatchlist)
	repo.add(newMovie(4, "Elsewhere", 10), membershipModel.KindWishlist)
	svc := NewMovieService(repo, new(mockProvider))

	resp, err := svc.SortList(context.Background(), model.SortListRequest{List: "watchlist", SortBy: "rating", Order: "desc"})
	require.NoError(t, err)

	ratings := make([]float64, 0, len(resp.Movies))
	for _, m := range resp.Movies {
		ratings = append(ratings, m.Rating)
	}
	assert.Equal(t, []float64{9, 5, 3}, ratings)
}

func TestSortList_WishlistByReleaseYearKeepsMissingYearLast(t *testing.T) {
	repo := newMemoryRepo()
	repo.add(withYear(newMovie(1, "Heat", 8.3), 1995), membershipModel.KindWishlist)
	repo.add(newMovie(2, "Untitled", 6), membershipModel.KindWishlist)
	repo.add(withYear(newMovie(3, "Dune", 8), 2021), membershipModel.KindWishlist)
	repo.add(withYear(newMovie(4, "Alien", 8.5), 1979), membershipModel.KindWishlist)
	svc := NewMovieService(repo, new(mockProvider))

	titles := func(resp *model.SortListResponse) []string {
		out := make([]string, 0, len(resp.Movies))
		for _, m := range resp.Movies {
			out = append(out, m.Title)
		}
		return out
	}

	resp, err := svc.SortList(context.Background(), model.SortListRequest{List: "wishlist", SortBy: "releaseYear", Order: "ASC"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alien", "Heat", "Dune", "Untitled"}, titles(resp))

	resp, err = svc.SortList(context.Background(), model.SortListRequest{List: "wishlist", SortBy: "releaseYear", Order: "DESC"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Dune", "Heat", "Alien", "Untitled"}, titles(resp))
	assert.Nil(t, resp.Movies[3].ReleaseYear)
}

func TestSortList_RejectsInvalidParams(t *testing.T) {
	svc := NewMovieService(newMemoryRepo(), new(mockProvider))

	cases := []model.SortListRequest{
		{List: "favorites", SortBy: "rating", Order: "ASC"},
		{List: "watchlist", SortBy: "title", Order: "ASC"},
		{List: "watchlist", SortBy: "rating", Order: "UP"},
		{List: "curated", SortBy: "rating", Order: "ASC", CuratedListID: "not-a-uuid"},
	}
	for _, req := range cases {
		_, err := svc.SortList(context.Background(), req)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation), "%+v", req)
	}
}

func TestTopRated_FirstReviewOrSentinel(t *testing.T) {
	repo := newMemoryRepo()
	reviewed := newMovie(1, "Reviewed", 8.5)
	unreviewed := newMovie(2, "Unreviewed", 6)
	repo.add(reviewed)
	repo.add(unreviewed)
	repo.reviews[reviewed.ID] = []string{"Great  movie, loved it", "second review"}
	svc := NewMovieService(repo, new(mockProvider))

	resp, err := svc.TopRated(context.Background(), model.TopRatedRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Movies, 2)

	assert.Equal(t, "Reviewed", resp.Movies[0].Title)
	assert.Equal(t, "Great  movie, loved it", resp.Movies[0].Review.Text)
	assert.Equal(t, 4, resp.Movies[0].Review.WordCount)

	assert.Equal(t, "Unreviewed", resp.Movies[1].Title)
	assert.Equal(t, model.NoReviewText, resp.Movies[1].Review.Text)
	assert.Equal(t, 0, resp.Movies[1].Review.WordCount)
}

func TestTopRated_RejectsOutOfRangeLimit(t *testing.T) {
	svc := NewMovieService(newMemoryRepo(), new(mockProvider))

	_, err := svc.TopRated(context.Background(), model.TopRatedRequest{Limit: -1})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = svc.TopRated(context.Background(), model.TopRatedRequest{Limit: model.MaxTopRatedLimit + 1})
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}
