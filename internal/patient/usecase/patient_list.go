package usecase

import (
	"context"
	"log/slog"

	"github.com/careplus/woundtrack/internal/identity/entity"
	patient "github.com/careplus/woundtrack/internal/patient/entity"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
)

type PatientListInput struct {
	Search string `validate:"max=100"`
	Size   int32  `validate:"gte=0,lte=100"`
	Page   int32  `validate:"gte=0"`
}

type PatientListOutput struct {
	Patients []patient.Patient
	Total    int64
	Size     int32
	Page     int32
}

// PatientList returns the patients visible to the caller: doctors see the
// patients they own, nurses see the patients they are assigned to.
func (s *Usecase) PatientList(ctx context.Context, in PatientListInput) (*PatientListOutput, error) {
	ctx, span := s.startSpan(ctx, "PatientList")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "patients", "read")
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.Size == 0 {
		in.Size = 20
	}
	if in.Page == 0 {
		in.Page = 1
	}

	filter := patient.PatientListFilterData{
		Search: in.Search,
		Size:   in.Size,
		Page:   in.Page,
	}

	switch entity.RoleFromString(clm.Role) {
	case entity.RoleDoctor:
		filter.DoctorID = clm.UserID
	case entity.RoleNurse:
		filter.NurseID = clm.UserID
	default:
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	patients, total, err := s.repoDB.GetPatientList(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get patient list", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &PatientListOutput{
		Patients: patients,
		Total:    total,
		Size:     in.Size,
		Page:     in.Page,
	}, nil
}
