package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	membershipModel "movie-catalog-backend/internal/domains/membership/model"
	"movie-catalog-backend/internal/domains/movie/model"
	"movie-catalog-backend/internal/infrastructure/metrics"
	"movie-catalog-backend/internal/shared/utils"
	"movie-catalog-backend/pkg/cache"
	"movie-catalog-backend/pkg/logger"
)

const (
	uniqueViolation        = "23505"
	externalIDConstraint   = "movies_external_id_key"
	movieColumns           = "m.id, m.external_id, m.title, m.genre, m.actors, m.release_year, m.rating, m.description, m.created_at"
	cacheKeyExternalPrefix = "movie:ext:"
	cacheKeyIDPrefix       = "movie:id:"
)

// sortColumns whitelist cho ORDER BY động
var sortColumns = map[string]string{
	model.SortByRating:      "rating",
	model.SortByReleaseYear: "release_year",
}

var sortDirections = map[string]string{
	model.OrderAsc:  "ASC",
	model.OrderDesc: "DESC",
}

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresMovieRepository struct {
	pool     *pgxpool.Pool
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewPostgresMovieRepository tạo repository với cache-aside
// Movie không bao giờ thay đổi sau khi insert nên cacheTTL <= 0 (không hết hạn) là hợp lệ
func NewPostgresMovieRepository(pool *pgxpool.Pool, c cache.Cache, cacheTTL time.Duration) MovieRepository {
	return &postgresMovieRepository{
		pool:     pool,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

func externalCacheKey(externalID int64) string {
	return fmt.Sprintf("%s%d", cacheKeyExternalPrefix, externalID)
}

func idCacheKey(id uuid.UUID) string {
	return cacheKeyIDPrefix + id.String()
}

// =====================================================
// CANONICAL RECORD
// =====================================================

func (r *postgresMovieRepository) FindByExternalID(ctx context.Context, externalID int64) (*model.Movie, error) {
	// STEP 1: Check cache
	cacheKey := externalCacheKey(externalID)
	if m, ok := r.fromCache(ctx, cacheKey); ok {
		return m, nil
	}

	// STEP 2: Cache miss → query database
	query := `SELECT ` + movieColumns + ` FROM movies m WHERE m.external_id = $1`
	m, err := scanMovie(r.pool.QueryRow(ctx, query, externalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrMovieNotFound
		}
		return nil, fmt.Errorf("find movie by external id: %w", err)
	}

	// STEP 3: Set cache
	r.toCache(ctx, m)
	return m, nil
}

func (r *postgresMovieRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.fromCache(ctx, idCacheKey(id)); ok {
		return true, nil
	}

	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM movies WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check movie exists: %w", err)
	}
	return exists, nil
}

func (r *postgresMovieRepository) Create(ctx context.Context, movie *model.Movie) error {
	query := `
		INSERT INTO movies (
			id, external_id, title, genre, actors,
			release_year, rating, description, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		movie.ID,
		movie.ExternalID,
		movie.Title,
		movie.Genre,
		movie.Actors,
		movie.ReleaseYear,
		movie.Rating,
		movie.Description,
		movie.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == externalIDConstraint {
			return model.ErrDuplicateExternalID
		}
		logger.Error("Create movie: database error", err)
		return fmt.Errorf("failed to create movie: %w", err)
	}

	r.toCache(ctx, movie)
	return nil
}

// =====================================================
// READ PATHS
// =====================================================

func (r *postgresMovieRepository) SearchByGenreOrActor(ctx context.Context, genre, actor string, limit int) ([]*model.Movie, error) {
	conditions := make([]string, 0, 2)
	args := make([]interface{}, 0, 3)

	if genre != "" {
		args = append(args, utils.ContainsPattern(genre))
		conditions = append(conditions, fmt.Sprintf(`m.genre ILIKE $%d ESCAPE '\'`, len(args)))
	}
	if actor != "" {
		args = append(args, utils.ContainsPattern(actor))
		conditions = append(conditions, fmt.Sprintf(`m.actors ILIKE $%d ESCAPE '\'`, len(args)))
	}
	if len(conditions) == 0 {
		return nil, errors.New("search by genre or actor: no criteria")
	}

	args = append(args, limit)
	query := fmt.Sprintf(`
		SELECT %s
		FROM movies m
		WHERE %s
		ORDER BY m.created_at ASC, m.id ASC
		LIMIT $%d
	`, movieColumns, utils.JoinWithAnd(conditions), len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search movies by genre/actor: %w", err)
	}
	defer rows.Close()

	return collectMovies(rows)
}

func (r *postgresMovieRepository) ListByMembership(ctx context.Context, filter model.ListFilter) ([]*model.Movie, error) {
	column, ok := sortColumns[filter.SortBy]
	if !ok {
		return nil, fmt.Errorf("list by membership: unsupported sort field %q", filter.SortBy)
	}
	direction, ok := sortDirections[filter.Order]
	if !ok {
		return nil, fmt.Errorf("list by membership: unsupported order %q", filter.Order)
	}

	var (
		from string
		args []interface{}
	)
	switch filter.Kind {
	case membershipModel.KindWatchlist:
		from = `movies m JOIN watchlist_items li ON li.movie_id = m.id`
	case membershipModel.KindWishlist:
		from = `movies m JOIN wishlist_items li ON li.movie_id = m.id`
	case membershipModel.KindCurated:
		if filter.CuratedListID != nil {
			from = `movies m JOIN curated_list_items li ON li.movie_id = m.id AND li.curated_list_id = $1`
			args = append(args, *filter.CuratedListID)
		} else {
			// Không có curatedListId: movie thuộc bất kỳ curated list nào, mỗi movie một lần
			from = `movies m WHERE EXISTS (SELECT 1 FROM curated_list_items li WHERE li.movie_id = m.id)`
		}
	default:
		return nil, fmt.Errorf("list by membership: %w: %q", membershipModel.ErrInvalidListKind, filter.Kind)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		ORDER BY m.%s %s NULLS LAST, m.title ASC
	`, movieColumns, from, pq.QuoteIdentifier(column), direction)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movies by membership: %w", err)
	}
	defer rows.Close()

	return collectMovies(rows)
}

func (r *postgresMovieRepository) TopRated(ctx context.Context, limit int) ([]*model.RatedMovie, error) {
	// LATERAL lấy review cũ nhất của từng movie (created_at, id để tie-break)
	query := `
		SELECT m.id, m.external_id, m.title, m.rating, fr.review_text
		FROM movies m
		LEFT JOIN LATERAL (
			SELECT r.review_text
			FROM reviews r
			WHERE r.movie_id = m.id
			ORDER BY r.created_at ASC, r.id ASC
			LIMIT 1
		) fr ON TRUE
		ORDER BY m.rating DESC, m.title ASC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top rated movies: %w", err)
	}
	defer rows.Close()

	result := make([]*model.RatedMovie, 0, limit)
	for rows.Next() {
		rm := &model.RatedMovie{}
		if err := rows.Scan(&rm.MovieID, &rm.ExternalID, &rm.Title, &rm.Rating, &rm.FirstReviewText); err != nil {
			return nil, fmt.Errorf("scan top rated movie: %w", err)
		}
		result = append(result, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top rated movies: %w", err)
	}
	return result, nil
}

// =====================================================
// HELPERS
// =====================================================

func (r *postgresMovieRepository) fromCache(ctx context.Context, key string) (*model.Movie, bool) {
	if r.cache == nil {
		return nil, false
	}
	var m model.Movie
	found, err := r.cache.Get(ctx, key, &m)
	if err != nil {
		logger.Warn("Movie cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
		return nil, false
	}
	if !found {
		metrics.MovieCacheMisses.Inc()
		return nil, false
	}
	metrics.MovieCacheHits.Inc()
	logger.Debug("Movie cache hit", map[string]interface{}{"key": key})
	return &m, true
}

// toCache lưu cả hai key; lỗi cache không làm fail request
func (r *postgresMovieRepository) toCache(ctx context.Context, m *model.Movie) {
	if r.cache == nil {
		return
	}
	_ = r.cache.Set(ctx, externalCacheKey(m.ExternalID), m, r.cacheTTL)
	_ = r.cache.Set(ctx, idCacheKey(m.ID), m, r.cacheTTL)
}

func scanMovie(row pgx.Row) (*model.Movie, error) {
	m := &model.Movie{}
	err := row.Scan(
		&m.ID,
		&m.ExternalID,
		&m.Title,
		&m.Genre,
		&m.Actors,
		&m.ReleaseYear,
		&m.Rating,
		&m.Description,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func collectMovies(rows pgx.Rows) ([]*model.Movie, error) {
	movies := make([]*model.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	return movies, nil
}
