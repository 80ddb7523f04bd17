package db

import "context"

func (s *DB) DeleteImage(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteImage")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `DELETE FROM wound_images WHERE id = $1`, id)
	return s.mapError(err)
}

func (s *DB) DeleteAssessment(ctx context.Context, id int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteAssessment")
	defer func() { s.endSpan(span, err) }()

	// assessment_images rows go with it via ON DELETE CASCADE
	_, err = s.conn.Exec(ctx, `DELETE FROM assessments WHERE id = $1`, id)
	return s.mapError(err)
}
