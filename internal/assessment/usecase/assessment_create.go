package usecase

import (
	"context"
	"log/slog"

	"github.com/careplus/woundtrack/internal/assessment/entity"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
)

type AssessmentCreateInput struct {
	PatientID   int64  `validate:"required,gt=0"`
	Description string `validate:"required,min=1,max=5000"`
	ImageIDs    []int64
}

type AssessmentCreateOutput struct {
	AssessmentID int64
}

// AssessmentCreate records a wound assessment, optionally attaching images
// already uploaded for the same patient.
func (s *Usecase) AssessmentCreate(ctx context.Context, in AssessmentCreateInput) (*AssessmentCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "AssessmentCreate")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "assessments", "write")
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.ensurePatientAccess(ctx, clm, in.PatientID); err != nil {
		return nil, err
	}

	if len(in.ImageIDs) > 0 {
		count, err := s.repoDB.CountImagesForPatient(ctx, in.PatientID, in.ImageIDs)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo count patient images", "patient_id", in.PatientID, "error", err)
			return nil, goerror.NewServer(err)
		}
		if count != int64(len(in.ImageIDs)) {
			return nil, goerror.NewBusiness("one or more images do not belong to this patient", goerror.CodeBadRequest)
		}
	}

	newAssessment := entity.NewAssessment{
		ID:          s.uid.Generate(),
		PatientID:   in.PatientID,
		AuthorID:    clm.UserID,
		Description: in.Description,
		ImageIDs:    in.ImageIDs,
	}

	if err := s.repoDB.NewAssessment(ctx, newAssessment); err != nil {
		slog.ErrorContext(ctx, "failed to repo create assessment", "patient_id", in.PatientID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &AssessmentCreateOutput{AssessmentID: newAssessment.ID}, nil
}
