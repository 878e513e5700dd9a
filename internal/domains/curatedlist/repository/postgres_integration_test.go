//go:build integration

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-catalog-backend/internal/domains/curatedlist/model"
	"movie-catalog-backend/internal/domains/curatedlist/repository"
	"movie-catalog-backend/internal/testinfra"
)

func TestPostgresCuratedListRepository(t *testing.T) {
	db := testinfra.NewPostgres(t)
	repo := repository.NewPostgresCuratedListRepository(db.Pool)
	ctx := context.Background()

	t.Run("create, get and update", func(t *testing.T) {
		testinfra.Truncate(t, db)
		created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
		list := &model.CuratedList{
			ID:          uuid.New(),
			Name:        "Film Noir",
			Slug:        "film-noir",
			Description: "shadows",
			CreatedAt:   created,
			UpdatedAt:   created,
		}
		require.NoError(t, repo.Create(ctx, list))

		got, err := repo.GetByID(ctx, list.ID)
		require.NoError(t, err)
		assert.Equal(t, "Film Noir", got.Name)
		assert.Equal(t, "film-noir", got.Slug)
		assert.True(t, got.CreatedAt.Equal(created))

		list.Name = "Neo Noir"
		list.Slug = "neo-noir"
		list.Description = ""
		require.NoError(t, repo.Update(ctx, list))
		assert.True(t, list.CreatedAt.Equal(created), "created_at must not change")
		assert.True(t, list.UpdatedAt.After(created))

		got, err = repo.GetByID(ctx, list.ID)
		require.NoError(t, err)
		assert.Equal(t, "Neo Noir", got.Name)
		assert.Equal(t, "neo-noir", got.Slug)
		assert.Empty(t, got.Description)
	})

	t.Run("same slug is allowed twice", func(t *testing.T) {
		testinfra.Truncate(t, db)
		for i := 0; i < 2; i++ {
			err := repo.Create(ctx, &model.CuratedList{
				ID: uuid.New(), Name: "Top", Slug: "top",
				CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
			})
			require.NoError(t, err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		testinfra.Truncate(t, db)
		id := uuid.New()

		_, err := repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, model.ErrCuratedListNotFound)

		err = repo.Update(ctx, &model.CuratedList{ID: id, Name: "x", Slug: "x"})
		assert.ErrorIs(t, err, model.ErrCuratedListNotFound)

		exists, err := repo.ExistsByID(ctx, id)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
