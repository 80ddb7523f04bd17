package db

import (
	"context"

	"github.com/careplus/woundtrack/internal/patient/entity"
	"github.com/jackc/pgx/v5"
)

const patientColumns = `id, first_name, last_name, date_of_birth, gender, medical_record_number, notes, doctor_id, created_at, updated_at`

func scanPatient(row pgx.Row) (*entity.Patient, error) {
	var out entity.Patient
	if err := row.Scan(&out.ID, &out.FirstName, &out.LastName, &out.DateOfBirth, &out.Gender,
		&out.MedicalRecordNumber, &out.Notes, &out.DoctorID, &out.CreatedAt, &out.UpdatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *DB) GetPatientByID(ctx context.Context, id int64) (_ *entity.Patient, err error) {
	ctx, span := s.startSpan(ctx, "GetPatientByID")
	defer func() { s.endSpan(span, err) }()

	out, err := scanPatient(s.conn.QueryRow(ctx, `SELECT `+patientColumns+` FROM patients WHERE id = $1`, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return out, nil
}

func (s *DB) GetPatientList(ctx context.Context, filter entity.PatientListFilterData) (_ []entity.Patient, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetPatientList")
	defer func() { s.endSpan(span, err) }()

	where := ` WHERE 1=1`
	args := []any{}

	if filter.DoctorID > 0 {
		args = append(args, filter.DoctorID)
		where += ` AND p.doctor_id = $` + itoa(len(args))
	}

	if filter.NurseID > 0 {
		args = append(args, filter.NurseID)
		where += ` AND EXISTS (SELECT 1 FROM patient_assignments pa WHERE pa.patient_id = p.id AND pa.nurse_id = $` + itoa(len(args)) + `)`
	}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := itoa(len(args))
		where += ` AND (p.first_name ILIKE $` + n + ` OR p.last_name ILIKE $` + n + ` OR p.medical_record_number ILIKE $` + n + `)`
	}

	var total int64
	if err = s.conn.QueryRow(ctx, `SELECT count(*) FROM patients p`+where, args...).Scan(&total); err != nil {
		return nil, 0, s.mapError(err)
	}

	args = append(args, filter.Size, (filter.Page-1)*filter.Size)
	query := `SELECT p.id, p.first_name, p.last_name, p.date_of_birth, p.gender, p.medical_record_number, p.notes, p.doctor_id, p.created_at, p.updated_at
		FROM patients p` + where + ` ORDER BY p.created_at DESC, p.id DESC LIMIT $` + itoa(len(args)-1) + ` OFFSET $` + itoa(len(args))

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, s.mapError(err)
	}
	defer rows.Close()

	patients := make([]entity.Patient, 0, filter.Size)
	for rows.Next() {
		p, scanErr := scanPatient(rows)
		if scanErr != nil {
			err = scanErr
			return nil, 0, s.mapError(err)
		}
		patients = append(patients, *p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, s.mapError(err)
	}

	return patients, total, nil
}

func (s *DB) GetNurseByID(ctx context.Context, id int64) (_ *entity.Nurse, err error) {
	ctx, span := s.startSpan(ctx, "GetNurseByID")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `
		SELECT id, username, email, first_name, last_name, is_active
		FROM users WHERE id = $1 AND role = 2`, id)

	var out entity.Nurse
	if err = row.Scan(&out.ID, &out.Username, &out.Email, &out.FirstName, &out.LastName, &out.Active); err != nil {
		return nil, s.mapError(err)
	}

	return &out, nil
}

func (s *DB) GetNurseList(ctx context.Context) (_ []entity.Nurse, err error) {
	ctx, span := s.startSpan(ctx, "GetNurseList")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT id, username, email, first_name, last_name, is_active
		FROM users WHERE role = 2 ORDER BY first_name, last_name`)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	nurses := make([]entity.Nurse, 0)
	for rows.Next() {
		var n entity.Nurse
		if err = rows.Scan(&n.ID, &n.Username, &n.Email, &n.FirstName, &n.LastName, &n.Active); err != nil {
			return nil, s.mapError(err)
		}
		nurses = append(nurses, n)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return nurses, nil
}

func (s *DB) GetUserFullName(ctx context.Context, id int64) (_ string, err error) {
	ctx, span := s.startSpan(ctx, "GetUserFullName")
	defer func() { s.endSpan(span, err) }()

	var name string
	if err = s.conn.QueryRow(ctx, `
		SELECT trim(first_name || ' ' || last_name) FROM users WHERE id = $1`, id).Scan(&name); err != nil {
		return "", s.mapError(err)
	}

	return name, nil
}

func (s *DB) IsNurseAssigned(ctx context.Context, patientID, nurseID int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "IsNurseAssigned")
	defer func() { s.endSpan(span, err) }()

	var assigned bool
	if err = s.conn.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM patient_assignments WHERE patient_id = $1 AND nurse_id = $2)`,
		patientID, nurseID).Scan(&assigned); err != nil {
		return false, s.mapError(err)
	}

	return assigned, nil
}
