package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"movie-catalog-backend/internal/domains/membership/model"
)

type postgresMembershipRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresMembershipRepository(pool *pgxpool.Pool) MembershipRepository {
	return &postgresMembershipRepository{pool: pool}
}

// =====================================================
// EXISTS
// =====================================================

func (r *postgresMembershipRepository) Exists(ctx context.Context, target model.ListTarget, movieID uuid.UUID) (bool, error) {
	var (
		query string
		args  []interface{}
	)
	switch target.Kind {
	case model.KindWatchlist:
		query = `SELECT EXISTS(SELECT 1 FROM watchlist_items WHERE movie_id = $1)`
		args = []interface{}{movieID}
	case model.KindWishlist:
		query = `SELECT EXISTS(SELECT 1 FROM wishlist_items WHERE movie_id = $1)`
		args = []interface{}{movieID}
	case model.KindCurated:
		query = `SELECT EXISTS(SELECT 1 FROM curated_list_items WHERE curated_list_id = $1 AND movie_id = $2)`
		args = []interface{}{target.CuratedListID, movieID}
	default:
		return false, fmt.Errorf("membership exists: %w: %q", model.ErrInvalidListKind, target.Kind)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check membership in %s: %w", target, err)
	}
	return exists, nil
}

// =====================================================
// ADD
// =====================================================

func (r *postgresMembershipRepository) Add(ctx context.Context, m *model.Membership) (bool, error) {
	var (
		query string
		args  []interface{}
	)
	// ON CONFLICT DO NOTHING: request song song cùng (list, movie) không lỗi, chỉ 0 rows
	switch m.Target.Kind {
	case model.KindWatchlist:
		query = `
			INSERT INTO watchlist_items (id, movie_id, created_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (movie_id) DO NOTHING
		`
		args = []interface{}{m.ID, m.MovieID, m.CreatedAt}
	case model.KindWishlist:
		query = `
			INSERT INTO wishlist_items (id, movie_id, created_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (movie_id) DO NOTHING
		`
		args = []interface{}{m.ID, m.MovieID, m.CreatedAt}
	case model.KindCurated:
		query = `
			INSERT INTO curated_list_items (id, curated_list_id, movie_id, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (curated_list_id, movie_id) DO NOTHING
		`
		args = []interface{}{m.ID, m.Target.CuratedListID, m.MovieID, m.CreatedAt}
	default:
		return false, fmt.Errorf("add membership: %w: %q", model.ErrInvalidListKind, m.Target.Kind)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to add movie to %s: %w", m.Target, err)
	}
	return tag.RowsAffected() == 1, nil
}
