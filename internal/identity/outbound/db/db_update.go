package db

import (
	"context"
	"time"
)

// MarkCodeVerified marks the code verified only while it is still pending
// and unexpired. It reports whether the row was actually updated.
func (s *DB) MarkCodeVerified(ctx context.Context, codeID int64, now time.Time) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "MarkCodeVerified")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE one_time_codes
		SET verified_at = $2
		WHERE id = $1 AND verified_at IS NULL AND invalidated_at IS NULL AND expires_at > $2`,
		codeID, now)
	if err != nil {
		return false, s.mapError(err)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *DB) UpdateLastLogin(ctx context.Context, userID int64, now time.Time) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateLastLogin")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `UPDATE users SET last_login_at = $2, updated_at = $2 WHERE id = $1`, userID, now)
	return s.mapError(err)
}
