package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/careplus/woundtrack/internal/patient/entity"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
)

type PatientUpdateInput struct {
	PatientID   int64     `validate:"required,gt=0"`
	FirstName   string    `validate:"required,min=1,max=100"`
	LastName    string    `validate:"required,min=1,max=100"`
	DateOfBirth time.Time `validate:"required"`
	Gender      entity.Gender
	Notes       string `validate:"max=2000"`
}

// PatientUpdate modifies patient demographics. Only the owning doctor may
// update a record.
func (s *Usecase) PatientUpdate(ctx context.Context, in PatientUpdateInput) error {
	ctx, span := s.startSpan(ctx, "PatientUpdate")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "patients", "write")
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	patient, err := s.repoDB.GetPatientByID(ctx, in.PatientID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "patient not found", "patient_id", in.PatientID)
		return goerror.NewBusiness("patient not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get patient", "patient_id", in.PatientID, "error", err)
		return goerror.NewServer(err)
	}

	if patient.DoctorID != clm.UserID {
		slog.WarnContext(ctx, "patient update denied", "patient_id", patient.ID, "user_id", clm.UserID)
		return goerror.NewBusiness("patient not found", goerror.CodeNotFound)
	}

	if err := s.repoDB.UpdatePatient(ctx, entity.PatchPatient{
		ID:          in.PatientID,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		DateOfBirth: in.DateOfBirth,
		Gender:      in.Gender,
		Notes:       in.Notes,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo update patient", "patient_id", in.PatientID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
