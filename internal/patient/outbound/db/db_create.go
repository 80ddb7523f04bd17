package db

import (
	"context"

	"github.com/careplus/woundtrack/internal/patient/entity"
)

func (s *DB) CreatePatient(ctx context.Context, in entity.NewPatient) (err error) {
	ctx, span := s.startSpan(ctx, "CreatePatient")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO patients (id, first_name, last_name, date_of_birth, gender, medical_record_number, notes, doctor_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		in.ID, in.FirstName, in.LastName, in.DateOfBirth, in.Gender, in.MedicalRecordNumber, in.Notes, in.DoctorID)
	return s.mapError(err)
}

func (s *DB) CreateAssignment(ctx context.Context, in entity.Assignment) (err error) {
	ctx, span := s.startSpan(ctx, "CreateAssignment")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx, `
		INSERT INTO patient_assignments (id, patient_id, nurse_id)
		VALUES ($1, $2, $3)`,
		in.ID, in.PatientID, in.NurseID)
	return s.mapError(err)
}
