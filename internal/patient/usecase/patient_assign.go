package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/careplus/woundtrack/internal/patient/entity"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
)

type PatientAssignInput struct {
	PatientID int64 `validate:"required,gt=0"`
	NurseID   int64 `validate:"required,gt=0"`
}

type PatientAssignOutput struct {
	AssignmentID int64
}

// PatientAssign links a nurse to a patient and notifies the nurse. Only the
// owning doctor may assign.
func (s *Usecase) PatientAssign(ctx context.Context, in PatientAssignInput) (*PatientAssignOutput, error) {
	ctx, span := s.startSpan(ctx, "PatientAssign")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "assignments", "write")
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

	if patient.DoctorID != clm.UserID {
		slog.WarnContext(ctx, "patient assign denied", "patient_id", patient.ID, "user_id", clm.UserID)
		return nil, goerror.NewBusiness("patient not found", goerror.CodeNotFound)
	}

	nurse, err := s.repoDB.GetNurseByID(ctx, in.NurseID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "nurse not found", "nurse_id", in.NurseID)
		return nil, goerror.NewBusiness("nurse not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get nurse", "nurse_id", in.NurseID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !nurse.Active {
		slog.WarnContext(ctx, "nurse account is disabled", "nurse_id", nurse.ID)
		return nil, goerror.NewBusiness("nurse account is disabled", goerror.CodeBadRequest)
	}

	assignment := entity.Assignment{
		ID:        s.uid.Generate(),
		PatientID: patient.ID,
		NurseID:   nurse.ID,
	}

	if err := s.repoDB.CreateAssignment(ctx, assignment); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			slog.WarnContext(ctx, "nurse already assigned", "patient_id", patient.ID, "nurse_id", nurse.ID)
			return nil, goerror.NewBusiness("nurse is already assigned to this patient", goerror.CodeConflict)
		}

		slog.ErrorContext(ctx, "failed to repo create assignment", "patient_id", patient.ID, "nurse_id", nurse.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	doctorName, err := s.repoDB.GetUserFullName(ctx, clm.UserID)
	if err != nil {
		slog.WarnContext(ctx, "failed to repo get doctor name", "user_id", clm.UserID, "error", err)
	}

	// the assignment stands even if publishing fails; the consumer side
	// handles missed notifications through redelivery.
	if err := s.repoMessaging.PublishPatientAssigned(ctx, PatientAssignedEvent{
		AssignmentID: assignment.ID,
		PatientID:    patient.ID,
		PatientName:  patient.FullName(),
		NurseID:      nurse.ID,
		NurseEmail:   nurse.Email,
		NurseName:    nurse.FullName(),
		DoctorID:     clm.UserID,
		DoctorName:   doctorName,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish patient assigned event", "assignment_id", assignment.ID, "error", err)
	}

	return &PatientAssignOutput{AssignmentID: assignment.ID}, nil
}
