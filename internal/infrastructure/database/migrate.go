package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// gooseLogger chuyển log của goose sang zerolog
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...interface{}) {
	log.Info().Msgf("[MIGRATE] "+format, v...)
}

func (gooseLogger) Fatalf(format string, v ...interface{}) {
	log.Fatal().Msgf("[MIGRATE] "+format, v...)
}

func init() {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{})
}

// sqlDB bọc pgxpool thành *sql.DB cho goose
// Tạo một lần và dùng lại; connections vẫn thuộc về pool
func (db *PostgresDB) sqlDB() (*sql.DB, error) {
	db.stdMu.Lock()
	defer db.stdMu.Unlock()

	if db.Pool == nil {
		return nil, fmt.Errorf("database pool is not initialized")
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if db.stdDB == nil {
		db.stdDB = stdlib.OpenDBFromPool(db.Pool)
	}
	return db.stdDB, nil
}

// MigrateUp apply tất cả migrations chưa chạy
func (db *PostgresDB) MigrateUp(ctx context.Context) error {
	sqlDB, err := db.sqlDB()
	if err != nil {
		return err
	}

	if err := goose.UpContext(ctx, sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("migrate up failed: %w", err)
	}
	return nil
}

// MigrateDown rollback migration gần nhất
func (db *PostgresDB) MigrateDown(ctx context.Context) error {
	sqlDB, err := db.sqlDB()
	if err != nil {
		return err
	}

	if err := goose.DownContext(ctx, sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("migrate down failed: %w", err)
	}
	return nil
}

// MigrateStatus in trạng thái từng migration qua logger
func (db *PostgresDB) MigrateStatus(ctx context.Context) error {
	sqlDB, err := db.sqlDB()
	if err != nil {
		return err
	}

	if err := goose.StatusContext(ctx, sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("migrate status failed: %w", err)
	}
	return nil
}

// SchemaVersion đọc version hiện tại từ bảng goose_db_version, chỉ SELECT
// Chưa migrate lần nào (chưa có bảng) → 0
// Không dùng goose.GetDBVersion vì hàm đó tự tạo bảng khi thiếu
func (db *PostgresDB) SchemaVersion(ctx context.Context) (int64, error) {
	if db.Pool == nil {
		return 0, fmt.Errorf("database pool is not initialized")
	}

	var tracked bool
	err := db.Pool.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, goose.TableName()).Scan(&tracked)
	if err != nil {
		return 0, fmt.Errorf("check migration table: %w", err)
	}
	if !tracked {
		return 0, nil
	}

	// Down xóa row của version bị rollback, nên MAX là version đang apply
	var version int64
	query := fmt.Sprintf(`SELECT COALESCE(MAX(version_id), 0) FROM %s WHERE is_applied`, goose.TableName())
	if err := db.Pool.QueryRow(ctx, query).Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}
