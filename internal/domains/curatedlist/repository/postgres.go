package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"movie-catalog-backend/internal/domains/curatedlist/model"
)

type postgresCuratedListRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCuratedListRepository(pool *pgxpool.Pool) CuratedListRepository {
	return &postgresCuratedListRepository{pool: pool}
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresCuratedListRepository) Create(ctx context.Context, list *model.CuratedList) error {
	query := `
		INSERT INTO curated_lists (id, name, slug, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		list.ID,
		list.Name,
		list.Slug,
		list.Description,
		list.CreatedAt,
		list.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create curated list: %w", err)
	}

	return nil
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresCuratedListRepository) Update(ctx context.Context, list *model.CuratedList) error {
	query := `
		UPDATE curated_lists
		SET
			name = $2,
			slug = $3,
			description = $4,
			updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		list.ID,
		list.Name,
		list.Slug,
		list.Description,
	).Scan(&list.CreatedAt, &list.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrCuratedListNotFound
		}
		return fmt.Errorf("failed to update curated list: %w", err)
	}

	return nil
}

// =====================================================
// READ
// =====================================================

func (r *postgresCuratedListRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CuratedList, error) {
	query := `
		SELECT id, name, slug, description, created_at, updated_at
		FROM curated_lists
		WHERE id = $1
	`

	list := &model.CuratedList{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&list.ID,
		&list.Name,
		&list.Slug,
		&list.Description,
		&list.CreatedAt,
		&list.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCuratedListNotFound
		}
		return nil, fmt.Errorf("failed to get curated list: %w", err)
	}

	return list, nil
}

func (r *postgresCuratedListRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM curated_lists WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check curated list exists: %w", err)
	}
	return exists, nil
}
