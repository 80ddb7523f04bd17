package usecase

import (
	"context"
	"log/slog"

	"github.com/careplus/woundtrack/internal/assessment/entity"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
)

type AssessmentListInput struct {
	PatientID int64 `validate:"required,gt=0"`
}

type AssessmentWithImages struct {
	Assessment entity.Assessment
	Images     []ImageWithURL
}

type AssessmentListOutput struct {
	Assessments []AssessmentWithImages
}

func (s *Usecase) AssessmentList(ctx context.Context, in AssessmentListInput) (*AssessmentListOutput, error) {
	ctx, span := s.startSpan(ctx, "AssessmentList")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "assessments", "read")
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.ensurePatientAccess(ctx, clm, in.PatientID); err != nil {
		return nil, err
	}

	details, err := s.repoDB.GetAssessmentList(ctx, in.PatientID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get assessment list", "patient_id", in.PatientID, "error", err)
		return nil, goerror.NewServer(err)
	}

	bucket := s.cfg.GetString("storage.bucket")
	expiry := s.cfg.GetMinute("modules.assessment.presign_ttl_minutes")

	out := make([]AssessmentWithImages, 0, len(details))
	for _, d := range details {
		images := make([]ImageWithURL, 0, len(d.Images))
		for _, img := range d.Images {
			url, err := s.storage.PresignGet(ctx, bucket, img.ObjectKey, expiry)
			if err != nil {
				slog.ErrorContext(ctx, "failed to presign wound image", "image_id", img.ID, "error", err)
				return nil, goerror.NewServer(err)
			}
			images = append(images, ImageWithURL{Image: img, URL: url})
		}
		out = append(out, AssessmentWithImages{Assessment: d.Assessment, Images: images})
	}

	return &AssessmentListOutput{Assessments: out}, nil
}
