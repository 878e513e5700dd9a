//go:build integration

// Package testinfra khởi động dependency thật (PostgreSQL) bằng testcontainers cho integration tests.
//
// Usage:
//
//	go test -tags integration ./internal/...
package testinfra

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"movie-catalog-backend/internal/infrastructure/database"
)

const (
	// PostgresImage cùng major version với môi trường chạy thật
	PostgresImage = "postgres:16-alpine"

	postgresPort     = "5432/tcp"
	postgresUser     = "movie"
	postgresPassword = "movie"
	postgresDB       = "movie_catalog_test"
)

// PostgresOption tùy chỉnh container / kết nối
type PostgresOption func(*postgresConfig)

type postgresConfig struct {
	image        string
	autoMigrate  bool
	startTimeout time.Duration
}

func WithPostgresImage(image string) PostgresOption {
	return func(c *postgresConfig) {
		c.image = image
	}
}

// WithoutMigrations: connect nhưng không chạy goose up
func WithoutMigrations() PostgresOption {
	return func(c *postgresConfig) {
		c.autoMigrate = false
	}
}

// NewPostgres khởi động container PostgreSQL, connect qua database.PostgresDB
// và (mặc định) apply toàn bộ migrations. Container và pool được dọn trong t.Cleanup
// Test bị skip khi không có Docker
func NewPostgres(t *testing.T, opts ...PostgresOption) *database.PostgresDB {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	cfg := &postgresConfig{
		image:        PostgresImage,
		autoMigrate:  true,
		startTimeout: 90 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.startTimeout)
	defer cancel()

	// Step 1: Start container
	// Postgres log "ready" hai lần: lần đầu là init server tạm, lần hai mới nhận connection thật
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        cfg.image,
			ExposedPorts: []string{postgresPort},
			Env: map[string]string{
				"POSTGRES_USER":     postgresUser,
				"POSTGRES_PASSWORD": postgresPassword,
				"POSTGRES_DB":       postgresDB,
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
				wait.ForListeningPort(postgresPort),
			).WithStartupTimeout(cfg.startTimeout),
		},
		Started: true,
	})
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	// Step 2: Resolve mapped address
	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, postgresPort)
	require.NoError(t, err)

	// Step 3: Connect (+ migrate)
	db := database.NewPostgresDB(&database.DBConfig{
		Host:              host,
		Port:              port.Int(),
		Username:          postgresUser,
		Password:          postgresPassword,
		DBName:            postgresDB,
		SSLMode:           "disable",
		MaxConns:          5,
		MinConns:          1,
		MaxConnLifetime:   time.Hour,
		MaxConnIdleTime:   time.Minute,
		HealthCheckPeriod: time.Minute,
		MaxRetries:        5,
		RetryDelay:        500 * time.Millisecond,
		ConnectTimeout:    5 * time.Second,
		AutoMigrate:       cfg.autoMigrate,
	})
	require.NoError(t, db.Connect(ctx), "connect to postgres container")
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// Truncate xóa dữ liệu mọi bảng domain, giữ schema và goose_db_version
func Truncate(t *testing.T, db *database.PostgresDB) {
	t.Helper()
	_, err := db.Pool.Exec(context.Background(), `
		TRUNCATE reviews, curated_list_items, wishlist_items, watchlist_items, curated_lists, movies
	`)
	require.NoError(t, err, "truncate tables")
}
