package db

import (
	"context"

	"github.com/careplus/woundtrack/internal/notification/entity"
)

func (s *DB) ListNotifications(ctx context.Context, userID int64, status entity.NotificationStatus, limit, offset int32) (_ []entity.NotificationItem, err error) {
	ctx, span := s.startSpan(ctx, "ListNotifications")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT id, trigger_key, data, metadata, read_at, created_at
		FROM notifications
		WHERE user_id = $1 AND deleted_at IS NULL`

	switch status {
	case entity.NotificationStatusUnread:
		query += ` AND read_at IS NULL`
	case entity.NotificationStatusRead:
		query += ` AND read_at IS NOT NULL`
	}

	query += ` ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`

	rows, err := s.conn.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	items := make([]entity.NotificationItem, 0, limit)
	for rows.Next() {
		var it entity.NotificationItem
		var triggerKey string
		if err = rows.Scan(&it.ID, &triggerKey, &it.Data, &it.Metadata, &it.ReadAt, &it.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		it.TriggerKey = entity.TriggerKey(triggerKey)
		items = append(items, it)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}

func (s *DB) CountUnreadNotifications(ctx context.Context, userID int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "CountUnreadNotifications")
	defer func() { s.endSpan(span, err) }()

	var count int64
	if err = s.conn.QueryRow(ctx, `
		SELECT count(*) FROM notifications
		WHERE user_id = $1 AND read_at IS NULL AND deleted_at IS NULL`, userID).Scan(&count); err != nil {
		return 0, s.mapError(err)
	}

	return count, nil
}
