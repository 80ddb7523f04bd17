package usecase

import (
	"context"
	"log/slog"

	"github.com/careplus/woundtrack/internal/assessment/entity"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
)

type ImageListInput struct {
	PatientID int64 `validate:"required,gt=0"`
}

type ImageWithURL struct {
	Image entity.WoundImage
	URL   string
}

type ImageListOutput struct {
	Images []ImageWithURL
}

// ImageList returns the patient's wound images with short-lived download URLs.
func (s *Usecase) ImageList(ctx context.Context, in ImageListInput) (*ImageListOutput, error) {
	ctx, span := s.startSpan(ctx, "ImageList")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "images", "read")
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.ensurePatientAccess(ctx, clm, in.PatientID); err != nil {
		return nil, err
	}

	images, err := s.repoDB.GetImageList(ctx, in.PatientID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get image list", "patient_id", in.PatientID, "error", err)
		return nil, goerror.NewServer(err)
	}

	bucket := s.cfg.GetString("storage.bucket")
	expiry := s.cfg.GetMinute("modules.assessment.presign_ttl_minutes")

	out := make([]ImageWithURL, 0, len(images))
	for _, img := range images {
		url, err := s.storage.PresignGet(ctx, bucket, img.ObjectKey, expiry)
		if err != nil {
			slog.ErrorContext(ctx, "failed to presign wound image", "image_id", img.ID, "error", err)
			return nil, goerror.NewServer(err)
		}
		out = append(out, ImageWithURL{Image: img, URL: url})
	}

	return &ImageListOutput{Images: out}, nil
}
