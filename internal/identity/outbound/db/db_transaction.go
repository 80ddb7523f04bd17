package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/careplus/woundtrack/internal/identity/entity"
	"github.com/jackc/pgx/v5"
)

// ReplacePendingCodes invalidates every pending code for the user and
// inserts the new one in a single transaction.
func (s *DB) ReplacePendingCodes(ctx context.Context, code entity.OneTimeCode) (err error) {
	ctx, span := s.startSpan(ctx, "ReplacePendingCodes")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	if _, err = tx.Exec(ctx, `
		UPDATE one_time_codes
		SET invalidated_at = now()
		WHERE user_id = $1 AND verified_at IS NULL AND invalidated_at IS NULL`,
		code.UserID); err != nil {
		return s.mapError(err)
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO one_time_codes (id, user_id, code, expires_at)
		VALUES ($1, $2, $3, $4)`,
		code.ID, code.UserID, code.Code, code.ExpiresAt); err != nil {
		return s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}
