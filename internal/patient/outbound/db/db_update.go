package db

import (
	"context"

	"github.com/careplus/woundtrack/internal/patient/entity"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
)

func (s *DB) UpdatePatient(ctx context.Context, in entity.PatchPatient) (err error) {
	ctx, span := s.startSpan(ctx, "UpdatePatient")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `
		UPDATE patients
		SET first_name = $2, last_name = $3, date_of_birth = $4, gender = $5, notes = $6, updated_at = now()
		WHERE id = $1`,
		in.ID, in.FirstName, in.LastName, in.DateOfBirth, in.Gender, in.Notes)
	if err != nil {
		return s.mapError(err)
	}

	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}
