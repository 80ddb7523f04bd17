package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/careplus/woundtrack/internal/pkg/goerror"
)

type AssessmentDeleteInput struct {
	AssessmentID int64 `validate:"required,gt=0"`
}

// AssessmentDelete removes an assessment. Only its author may delete it.
// Attached images stay available for other assessments.
func (s *Usecase) AssessmentDelete(ctx context.Context, in AssessmentDeleteInput) error {
	ctx, span := s.startSpan(ctx, "AssessmentDelete")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "assessments", "write")
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	assessment, err := s.repoDB.GetAssessmentByID(ctx, in.AssessmentID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "assessment not found", "assessment_id", in.AssessmentID)
		return goerror.NewBusiness("assessment not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get assessment", "assessment_id", in.AssessmentID, "error", err)
		return goerror.NewServer(err)
	}

	if assessment.AuthorID != clm.UserID {
		slog.WarnContext(ctx, "assessment delete denied", "assessment_id", assessment.ID, "user_id", clm.UserID)
		return goerror.NewBusiness("assessment not found", goerror.CodeNotFound)
	}

	if err := s.repoDB.DeleteAssessment(ctx, assessment.ID); err != nil {
		slog.ErrorContext(ctx, "failed to repo delete assessment", "assessment_id", assessment.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
