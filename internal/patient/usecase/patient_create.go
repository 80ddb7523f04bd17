package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/careplus/woundtrack/internal/patient/entity"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
)

type PatientCreateInput struct {
	FirstName           string    `validate:"required,min=1,max=100"`
	LastName            string    `validate:"required,min=1,max=100"`
	DateOfBirth         time.Time `validate:"required"`
	Gender              entity.Gender
	MedicalRecordNumber string `validate:"required,min=3,max=50"`
	Notes               string `validate:"max=2000"`
}

type PatientCreateOutput struct {
	Patient entity.Patient
}

func (s *Usecase) PatientCreate(ctx context.Context, in PatientCreateInput) (*PatientCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "PatientCreate")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "patients", "write")
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.DateOfBirth.After(s.clock.Now()) {
		return nil, goerror.NewBusiness("date of birth cannot be in the future", goerror.CodeBadRequest)
	}

	newPatient := entity.NewPatient{
		ID:                  s.uid.Generate(),
		FirstName:           in.FirstName,
		LastName:            in.LastName,
		DateOfBirth:         in.DateOfBirth,
		Gender:              in.Gender,
		MedicalRecordNumber: in.MedicalRecordNumber,
		Notes:               in.Notes,
		DoctorID:            clm.UserID,
	}

	if err := s.repoDB.CreatePatient(ctx, newPatient); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			slog.WarnContext(ctx, "medical record number already exists", "mrn", in.MedicalRecordNumber)
			return nil, goerror.NewBusiness("medical record number already exists", goerror.CodeConflict)
		}

		slog.ErrorContext(ctx, "failed to repo create patient", "doctor_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	patient, err := s.repoDB.GetPatientByID(ctx, newPatient.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get patient after create", "patient_id", newPatient.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &PatientCreateOutput{Patient: *patient}, nil
}
