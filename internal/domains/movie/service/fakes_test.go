package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	membershipModel "movie-catalog-backend/internal/domains/membership/model"
	"movie-catalog-backend/internal/domains/movie/gateway"
	"movie-catalog-backend/internal/domains/movie/model"
)

// =====================================================
// MOCK PROVIDER
// =====================================================

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) SearchByTitle(ctx context.Context, query string) ([]gateway.MovieSummary, error) {
	args := m.Called(ctx, query)
	movies, _ := args.Get(0).([]gateway.MovieSummary)
	return movies, args.Error(1)
}

func (m *mockProvider) FetchFullDetails(ctx context.Context, externalID int64) (*gateway.MovieDetail, error) {
	args := m.Called(ctx, externalID)
	detail, _ := args.Get(0).(*gateway.MovieDetail)
	return detail, args.Error(1)
}

// =====================================================
// IN-MEMORY REPOSITORY
// =====================================================

// memoryRepo giữ unique external_id giống constraint của bảng movies
type memoryRepo struct {
	mu      sync.Mutex
	movies  map[int64]*model.Movie
	members map[membershipModel.ListKind][]uuid.UUID
	reviews map[uuid.UUID][]string

	// loseRace: Create giả lập một request khác đã insert trước
	loseRace bool
	findErr  error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		movies:  make(map[int64]*model.Movie),
		members: make(map[membershipModel.ListKind][]uuid.UUID),
		reviews: make(map[uuid.UUID][]string),
	}
}

func (r *memoryRepo) add(m *model.Movie, kinds ...membershipModel.ListKind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movies[m.ExternalID] = m
	for _, k := range kinds {
		r.members[k] = append(r.members[k], m.ID)
	}
}

func (r *memoryRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.movies)
}

func (r *memoryRepo) FindByExternalID(ctx context.Context, externalID int64) (*model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	m, ok := r.movies[externalID]
	if !ok {
		return nil, model.ErrMovieNotFound
	}
	return m, nil
}

func (r *memoryRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.movies {
		if m.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryRepo) Create(ctx context.Context, movie *model.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loseRace {
		winner := *movie
		winner.ID = uuid.New()
		r.movies[movie.ExternalID] = &winner
		r.loseRace = false
		return model.ErrDuplicateExternalID
	}
	if _, ok := r.movies[movie.ExternalID]; ok {
		return model.ErrDuplicateExternalID
	}
	r.movies[movie.ExternalID] = movie
	return nil
}

func (r *memoryRepo) SearchByGenreOrActor(ctx context.Context, genre, actor string, limit int) ([]*model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*model.Movie, 0)
	for _, m := range r.sortedByExternalID() {
		if genre != "" && !strings.Contains(strings.ToLower(m.Genre), strings.ToLower(genre)) {
			continue
		}
		if actor != "" && !strings.Contains(strings.ToLower(m.Actors), strings.ToLower(actor)) {
			continue
		}
		result = append(result, m)
		if len(result) == limit {
			break
		}
	}
	return result, nil
}

func (r *memoryRepo) ListByMembership(ctx context.Context, filter model.ListFilter) ([]*model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make(map[uuid.UUID]bool)
	for _, id := range r.members[filter.Kind] {
		ids[id] = true
	}
	result := make([]*model.Movie, 0)
	for _, m := range r.sortedByExternalID() {
		if ids[m.ID] {
			result = append(result, m)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return lessByFilter(result[i], result[j], filter)
	})
	return result, nil
}

// lessByFilter giống ORDER BY <col> <dir> NULLS LAST, title ASC của repository
func lessByFilter(a, b *model.Movie, filter model.ListFilter) bool {
	var cmp int
	switch filter.SortBy {
	case model.SortByReleaseYear:
		switch {
		case a.ReleaseYear == nil && b.ReleaseYear == nil:
		case a.ReleaseYear == nil:
			return false
		case b.ReleaseYear == nil:
			return true
		default:
			cmp = *a.ReleaseYear - *b.ReleaseYear
		}
	default:
		switch {
		case a.Rating < b.Rating:
			cmp = -1
		case a.Rating > b.Rating:
			cmp = 1
		}
	}
	if filter.Order == model.OrderDesc {
		cmp = -cmp
	}
	if cmp != 0 {
		return cmp < 0
	}
	return a.Title < b.Title
}

func (r *memoryRepo) TopRated(ctx context.Context, limit int) ([]*model.RatedMovie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sortedByExternalID()
	sort.SliceStable(all, func(i, j int) bool { return all[i].Rating > all[j].Rating })
	if len(all) > limit {
		all = all[:limit]
	}
	result := make([]*model.RatedMovie, 0, len(all))
	for _, m := range all {
		rm := &model.RatedMovie{MovieID: m.ID, ExternalID: m.ExternalID, Title: m.Title, Rating: m.Rating}
		if texts := r.reviews[m.ID]; len(texts) > 0 {
			first := texts[0]
			rm.FirstReviewText = &first
		}
		result = append(result, rm)
	}
	return result, nil
}

func (r *memoryRepo) sortedByExternalID() []*model.Movie {
	all := make([]*model.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ExternalID < all[j].ExternalID })
	return all
}

func withYear(m *model.Movie, year int) *model.Movie {
	m.ReleaseYear = &year
	return m
}

func newMovie(externalID int64, title string, rating float64) *model.Movie {
	return &model.Movie{
		ID:         uuid.New(),
		ExternalID: externalID,
		Title:      title,
		Rating:     rating,
	}
}
