package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// TxFunc chạy trong một transaction. Trả error → rollback
type TxFunc func(tx pgx.Tx) error

// WithTransaction chạy fn trong một transaction trên pool
// Dùng cho các write cần check-rồi-insert nguyên tử (vd: lock movie FOR SHARE rồi insert review)
//
// fn lỗi hoặc panic → rollback, panic được re-throw sau khi rollback
// fn thành công → commit
func WithTransaction(ctx context.Context, pool *pgxpool.Pool, fn TxFunc) (err error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			rollback(ctx, tx)
			panic(p)
		}
		if err != nil {
			rollback(ctx, tx)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// rollback dùng context riêng: ctx của request có thể đã bị cancel
func rollback(ctx context.Context, tx pgx.Tx) {
	if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
		log.Warn().Err(rbErr).Msg("[DATABASE] Transaction rollback failed")
	}
}
