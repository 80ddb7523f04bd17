package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/careplus/woundtrack/internal/patient/entity"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
)

type PatientDetailInput struct {
	PatientID int64 `validate:"required,gt=0"`
}

type PatientDetailOutput struct {
	Patient entity.Patient
}

func (s *Usecase) PatientDetail(ctx context.Context, in PatientDetailInput) (*PatientDetailOutput, error) {
	ctx, span := s.startSpan(ctx, "PatientDetail")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "patients", "read")
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	patient, err := s.repoDB.GetPatientByID(ctx, in.PatientID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "patient not found", "patient_id", in.PatientID)
		return nil, goerror.NewBusiness("patient not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get patient", "patient_id", in.PatientID, "error", err)
		return nil, goerror.NewServer(err)
	}

	ok, err := s.canAccessPatient(ctx, clm, patient)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check patient access", "patient_id", patient.ID, "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !ok {
		slog.WarnContext(ctx, "patient access denied", "patient_id", patient.ID, "user_id", clm.UserID)
		return nil, goerror.NewBusiness("patient not found", goerror.CodeNotFound)
	}

	return &PatientDetailOutput{Patient: *patient}, nil
}
