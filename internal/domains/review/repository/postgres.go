package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"movie-catalog-backend/internal/domains/review/model"
	"movie-catalog-backend/pkg/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresReviewRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &postgresReviewRepository{pool: pool}
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresReviewRepository) CreateForMovie(ctx context.Context, review *model.Review) error {
	return database.WithTransaction(ctx, r.pool, func(tx pgx.Tx) error {
		// Step 1: Lock movie row (FOR SHARE) để movie không biến mất giữa check và insert
		var locked uuid.UUID
		err := tx.QueryRow(ctx, `SELECT id FROM movies WHERE id = $1 FOR SHARE`, review.MovieID).Scan(&locked)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrMovieNotFound
			}
			return fmt.Errorf("failed to check movie: %w", err)
		}

		// Step 2: Insert review
		query := `
			INSERT INTO reviews (id, movie_id, rating, review_text, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`
		_, err = tx.Exec(ctx, query,
			review.ID,
			review.MovieID,
			review.Rating,
			review.ReviewText,
			review.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}
		return nil
	})
}

// =====================================================
// LIST
// =====================================================

func (r *postgresReviewRepository) ListByMovie(ctx context.Context, movieID uuid.UUID) ([]*model.Review, error) {
	query := `
		SELECT id, movie_id, rating, review_text, created_at
		FROM reviews
		WHERE movie_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]*model.Review, 0)
	for rows.Next() {
		review := &model.Review{}
		if err := rows.Scan(
			&review.ID,
			&review.MovieID,
			&review.Rating,
			&review.ReviewText,
			&review.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reviews: %w", err)
	}

	return reviews, nil
}

func (r *postgresReviewRepository) MovieExists(ctx context.Context, movieID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM movies WHERE id = $1)`, movieID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check movie: %w", err)
	}
	return exists, nil
}
