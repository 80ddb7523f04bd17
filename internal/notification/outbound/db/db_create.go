package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/careplus/woundtrack/internal/notification/entity"
	"github.com/jackc/pgx/v5"
)

// CreateNotificationWithDeliveryLog inserts the notification and its first
// delivery log in one transaction and returns the delivery log id.
func (s *DB) CreateNotificationWithDeliveryLog(ctx context.Context, n entity.CreateNotification, dl entity.CreateDeliveryLog) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "CreateNotificationWithDeliveryLog")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rolback", "error", rErr)
		}
	}()

	if _, err = tx.Exec(ctx, `
		INSERT INTO notifications (id, user_id, trigger_key, data, metadata)
		VALUES ($1, $2, $3, $4, $5)`,
		n.ID, n.UserID, n.TriggerKey.String(), n.Data, n.Metadata); err != nil {
		return 0, s.mapError(err)
	}

	var logID int64
	if err = tx.QueryRow(ctx, `
		INSERT INTO notification_delivery_logs (notification_id, channel, status)
		VALUES ($1, $2, $3) RETURNING id`,
		dl.NotificationID, dl.Channel, dl.Status).Scan(&logID); err != nil {
		return 0, s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, s.mapError(err)
	}

	return logID, nil
}
