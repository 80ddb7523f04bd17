package db

import (
	"context"
	"errors"
	"log/slog"

	"github.com/careplus/woundtrack/internal/assessment/entity"
	"github.com/jackc/pgx/v5"
)

func (s *DB) CreateImage(ctx context.Context, in entity.WoundImage) (err error) {
	ctx, span := s.startSpan(ctx, "CreateImage")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO wound_images (id, patient_id, uploaded_by, object_key, content_type, size_bytes)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		in.ID, in.PatientID, in.UploadedBy, in.ObjectKey, in.ContentType, in.Size)
	return s.mapError(err)
}

// NewAssessment inserts the assessment and its image links in one transaction.
func (s *DB) NewAssessment(ctx context.Context, in entity.NewAssessment) (err error) {
	ctx, span := s.startSpan(ctx, "NewAssessment")
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
		INSERT INTO assessments (id, patient_id, author_id, description)
		VALUES ($1, $2, $3, $4)`,
		in.ID, in.PatientID, in.AuthorID, in.Description); err != nil {
		return s.mapError(err)
	}

	for _, imageID := range in.ImageIDs {
		if _, err = tx.Exec(ctx, `
			INSERT INTO assessment_images (assessment_id, image_id)
			VALUES ($1, $2)`, in.ID, imageID); err != nil {
			return s.mapError(err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return s.mapError(err)
	}

	return nil
}
