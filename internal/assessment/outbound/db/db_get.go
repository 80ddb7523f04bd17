package db

import (
	"context"

	"github.com/careplus/woundtrack/internal/assessment/entity"
)

func (s *DB) CanAccessPatient(ctx context.Context, patientID, userID int64) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "CanAccessPatient")
	defer func() { s.endSpan(span, err) }()

	var allowed bool
	if err = s.conn.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM patients p WHERE p.id = $1 AND p.doctor_id = $2
			UNION ALL
			SELECT 1 FROM patient_assignments pa WHERE pa.patient_id = $1 AND pa.nurse_id = $2
		)`, patientID, userID).Scan(&allowed); err != nil {
		return false, s.mapError(err)
	}

	return allowed, nil
}

func (s *DB) GetPatientDoctorID(ctx context.Context, patientID int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetPatientDoctorID")
	defer func() { s.endSpan(span, err) }()

	var doctorID int64
	if err = s.conn.QueryRow(ctx, `SELECT doctor_id FROM patients WHERE id = $1`, patientID).Scan(&doctorID); err != nil {
		return 0, s.mapError(err)
	}

	return doctorID, nil
}

const imageColumns = `id, patient_id, uploaded_by, object_key, content_type, size_bytes, created_at`

func (s *DB) GetImageByID(ctx context.Context, id int64) (_ *entity.WoundImage, err error) {
	ctx, span := s.startSpan(ctx, "GetImageByID")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+imageColumns+` FROM wound_images WHERE id = $1`, id)

	var out entity.WoundImage
	if err = row.Scan(&out.ID, &out.PatientID, &out.UploadedBy, &out.ObjectKey,
		&out.ContentType, &out.Size, &out.CreatedAt); err != nil {
		return nil, s.mapError(err)
	}

	return &out, nil
}

func (s *DB) GetImageList(ctx context.Context, patientID int64) (_ []entity.WoundImage, err error) {
	ctx, span := s.startSpan(ctx, "GetImageList")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT `+imageColumns+` FROM wound_images
		WHERE patient_id = $1 ORDER BY created_at DESC, id DESC`, patientID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	images := make([]entity.WoundImage, 0)
	for rows.Next() {
		var img entity.WoundImage
		if err = rows.Scan(&img.ID, &img.PatientID, &img.UploadedBy, &img.ObjectKey,
			&img.ContentType, &img.Size, &img.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		images = append(images, img)
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return images, nil
}

func (s *DB) GetAssessmentByID(ctx context.Context, id int64) (_ *entity.Assessment, err error) {
	ctx, span := s.startSpan(ctx, "GetAssessmentByID")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `
		SELECT id, patient_id, author_id, description, created_at
		FROM assessments WHERE id = $1`, id)

	var out entity.Assessment
	if err = row.Scan(&out.ID, &out.PatientID, &out.AuthorID, &out.Description, &out.CreatedAt); err != nil {
		return nil, s.mapError(err)
	}

	return &out, nil
}

func (s *DB) GetAssessmentList(ctx context.Context, patientID int64) (_ []entity.AssessmentDetail, err error) {
	ctx, span := s.startSpan(ctx, "GetAssessmentList")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx, `
		SELECT id, patient_id, author_id, description, created_at
		FROM assessments WHERE patient_id = $1 ORDER BY created_at DESC, id DESC`, patientID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer rows.Close()

	details := make([]entity.AssessmentDetail, 0)
	index := map[int64]int{}
	for rows.Next() {
		var a entity.Assessment
		if err = rows.Scan(&a.ID, &a.PatientID, &a.AuthorID, &a.Description, &a.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		index[a.ID] = len(details)
		details = append(details, entity.AssessmentDetail{Assessment: a, Images: []entity.WoundImage{}})
	}
	if err = rows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	if len(details) == 0 {
		return details, nil
	}

	imgRows, err := s.conn.Query(ctx, `
		SELECT ai.assessment_id, i.id, i.patient_id, i.uploaded_by, i.object_key, i.content_type, i.size_bytes, i.created_at
		FROM assessment_images ai
		JOIN wound_images i ON i.id = ai.image_id
		JOIN assessments a ON a.id = ai.assessment_id
		WHERE a.patient_id = $1
		ORDER BY i.created_at DESC, i.id DESC`, patientID)
	if err != nil {
		return nil, s.mapError(err)
	}
	defer imgRows.Close()

	for imgRows.Next() {
		var assessmentID int64
		var img entity.WoundImage
		if err = imgRows.Scan(&assessmentID, &img.ID, &img.PatientID, &img.UploadedBy, &img.ObjectKey,
			&img.ContentType, &img.Size, &img.CreatedAt); err != nil {
			return nil, s.mapError(err)
		}
		if i, ok := index[assessmentID]; ok {
			details[i].Images = append(details[i].Images, img)
		}
	}
	if err = imgRows.Err(); err != nil {
		return nil, s.mapError(err)
	}

	return details, nil
}

func (s *DB) CountImagesForPatient(ctx context.Context, patientID int64, imageIDs []int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "CountImagesForPatient")
	defer func() { s.endSpan(span, err) }()

	var count int64
	if err = s.conn.QueryRow(ctx, `
		SELECT count(*) FROM wound_images WHERE patient_id = $1 AND id = ANY($2)`,
		patientID, imageIDs).Scan(&count); err != nil {
		return 0, s.mapError(err)
	}

	return count, nil
}
