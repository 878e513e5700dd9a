package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-catalog-backend/internal/domains/membership/model"
	movieModel "movie-catalog-backend/internal/domains/movie/model"
	"movie-catalog-backend/internal/shared/apperror"
)

// =====================================================
// FAKES
// =====================================================

type memoryRepo struct {
	mu   sync.Mutex
	rows map[string]bool
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[string]bool)}
}

func rowKey(target model.ListTarget, movieID uuid.UUID) string {
	return target.String() + "/" + movieID.String()
}

func (r *memoryRepo) Exists(ctx context.Context, target model.ListTarget, movieID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[rowKey(target, movieID)], nil
}

func (r *memoryRepo) Add(ctx context.Context, m *model.Membership) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := rowKey(m.Target, m.MovieID)
	if r.rows[key] {
		return false, nil
	}
	r.rows[key] = true
	return true, nil
}

func (r *memoryRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type fakeCatalog struct {
	mu       sync.Mutex
	byExtID  map[int64]*movieModel.Movie
	resolves int
	err      error
}

func newFakeCatalog(movies ...*movieModel.Movie) *fakeCatalog {
	c := &fakeCatalog{byExtID: make(map[int64]*movieModel.Movie)}
	for _, m := range movies {
		c.byExtID[m.ExternalID] = m
	}
	return c
}

func (c *fakeCatalog) ResolveOrCreate(ctx context.Context, externalID int64) (*movieModel.Movie, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resolves++
	if c.err != nil {
		return nil, c.err
	}
	m, ok := c.byExtID[externalID]
	if !ok {
		m = &movieModel.Movie{ID: uuid.New(), ExternalID: externalID, Title: "Fetched"}
		c.byExtID[externalID] = m
	}
	return m, nil
}

func (c *fakeCatalog) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.byExtID {
		if m.ID == id {
			return true, nil
		}
	}
	return false, nil
}

type fakeCuratedLists map[uuid.UUID]bool

func (f fakeCuratedLists) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return f[id], nil
}

func newService(repo *memoryRepo, catalog *fakeCatalog, lists fakeCuratedLists) ServiceInterface {
	return NewMembershipService(repo, catalog, catalog, lists)
}

// =====================================================
// ADD TO LIST
// =====================================================

func TestAddToList_CreatedThenAlreadyMember(t *testing.T) {
	movie := &movieModel.Movie{ID: uuid.New(), ExternalID: 603}
	repo := newMemoryRepo()
	svc := newService(repo, newFakeCatalog(movie), fakeCuratedLists{})

	first, err := svc.AddToList(context.Background(), model.Watchlist(), movie.ID)
	require.NoError(t, err)
	assert.True(t, first.Created)

	second, err := svc.AddToList(context.Background(), model.Watchlist(), movie.ID)
	require.NoError(t, err)
	assert.False(t, second.Created)

	assert.Equal(t, 1, repo.count())
}

func TestAddToList_SameMovieInDifferentLists(t *testing.T) {
	movie := &movieModel.Movie{ID: uuid.New(), ExternalID: 603}
	listA, listB := uuid.New(), uuid.New()
	repo := newMemoryRepo()
	svc := newService(repo, newFakeCatalog(movie), fakeCuratedLists{listA: true, listB: true})

	for _, target := range []model.ListTarget{
		model.Watchlist(), model.Wishlist(), model.CuratedList(listA), model.CuratedList(listB),
	} {
		res, err := svc.AddToList(context.Background(), target, movie.ID)
		require.NoError(t, err)
		assert.True(t, res.Created, target.String())
	}
	assert.Equal(t, 4, repo.count())
}

func TestAddToList_InvalidTargets(t *testing.T) {
	movie := &movieModel.Movie{ID: uuid.New(), ExternalID: 603}
	svc := newService(newMemoryRepo(), newFakeCatalog(movie), fakeCuratedLists{})

	cases := map[string]model.ListTarget{
		"unknown kind":       {Kind: "favorites"},
		"curated without id": {Kind: model.KindCurated},
		"missing curated":    model.CuratedList(uuid.New()),
	}
	for name, target := range cases {
		_, err := svc.AddToList(context.Background(), target, movie.ID)
		assert.True(t, apperror.IsKind(err, apperror.KindValidation), name)
	}
}

func TestAddToList_UnknownMovie(t *testing.T) {
	svc := newService(newMemoryRepo(), newFakeCatalog(), fakeCuratedLists{})

	_, err := svc.AddToList(context.Background(), model.Wishlist(), uuid.New())
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))

	_, err = svc.AddToList(context.Background(), model.Wishlist(), uuid.Nil)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

// =====================================================
// ADD MOVIE
// =====================================================

func TestAddMovie_ResolvesThenAdds(t *testing.T) {
	repo := newMemoryRepo()
	catalog := newFakeCatalog()
	svc := newService(repo, catalog, fakeCuratedLists{})

	resp, err := svc.AddMovie(context.Background(), model.Watchlist(), 603)
	require.NoError(t, err)
	assert.Equal(t, int64(603), resp.ExternalID)
	assert.Equal(t, model.KindWatchlist, resp.List)

	_, err = svc.AddMovie(context.Background(), model.Watchlist(), 603)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))
	assert.Equal(t, "Movie already exists in watchlist", apperror.As(err).Message)

	assert.Equal(t, 1, repo.count())
}

func TestAddMovie_CuratedAlreadyMemberMessage(t *testing.T) {
	listID := uuid.New()
	svc := newService(newMemoryRepo(), newFakeCatalog(), fakeCuratedLists{listID: true})

	_, err := svc.AddMovie(context.Background(), model.CuratedList(listID), 27205)
	require.NoError(t, err)

	_, err = svc.AddMovie(context.Background(), model.CuratedList(listID), 27205)
	assert.Equal(t, "Movie already exists in curated list", apperror.As(err).Message)
}

func TestAddMovie_MissingCuratedListSkipsResolve(t *testing.T) {
	catalog := newFakeCatalog()
	svc := newService(newMemoryRepo(), catalog, fakeCuratedLists{})

	_, err := svc.AddMovie(context.Background(), model.CuratedList(uuid.New()), 603)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
	assert.Equal(t, 0, catalog.resolves)
}

func TestAddMovie_ResolverErrorPropagates(t *testing.T) {
	catalog := newFakeCatalog()
	upstream := apperror.NewUpstreamError("The resource you requested could not be found.", errors.New("status 404"))
	catalog.err = upstream
	repo := newMemoryRepo()
	svc := newService(repo, catalog, fakeCuratedLists{})

	_, err := svc.AddMovie(context.Background(), model.Wishlist(), 999999)
	assert.Same(t, upstream, apperror.As(err))
	assert.Equal(t, 0, repo.count())
}
