package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/careplus/woundtrack/internal/assessment/entity"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
	"github.com/careplus/woundtrack/internal/pkg/storage"
)

type ImageUploadInput struct {
	PatientID int64 `validate:"required,gt=0"`
	File      io.Reader
}

type ImageUploadOutput struct {
	Image entity.WoundImage
}

var allowedImageExt = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
}

// ImageUpload stores a wound photo under wounds/YYYY/MM/DD/<id>.<ext>.
// Only PNG and JPEG files up to the configured size limit are accepted; the
// content type is sniffed from the bytes, not the request header.
func (s *Usecase) ImageUpload(ctx context.Context, in ImageUploadInput) (*ImageUploadOutput, error) {
	ctx, span := s.startSpan(ctx, "ImageUpload")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "images", "write")
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.File == nil {
		return nil, goerror.NewInvalidFormat("image file is required")
	}

	if err := s.ensurePatientAccess(ctx, clm, in.PatientID); err != nil {
		return nil, err
	}

	maxBytes := s.cfg.GetInt64("modules.assessment.max_image_mb") * 1024 * 1024

	data, err := io.ReadAll(io.LimitReader(in.File, maxBytes+1))
	if err != nil {
		slog.ErrorContext(ctx, "failed to read uploaded image", "patient_id", in.PatientID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if int64(len(data)) > maxBytes {
		return nil, goerror.NewBusiness("image exceeds the maximum allowed size", goerror.CodeBadRequest)
	}

	contentType := http.DetectContentType(data)
	ext, ok := allowedImageExt[contentType]
	if !ok {
		return nil, goerror.NewBusiness("only PNG and JPEG images are allowed", goerror.CodeBadRequest)
	}

	id := s.uid.Generate()
	now := s.clock.Now()
	key := fmt.Sprintf("wounds/%04d/%02d/%02d/%d.%s", now.Year(), now.Month(), now.Day(), id, ext)
	bucket := s.cfg.GetString("storage.bucket")

	if _, err := s.storage.PutObject(ctx, bucket, key, bytes.NewReader(data), storage.PutOptions{
		Size:        int64(len(data)),
		ContentType: contentType,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to store wound image", "patient_id", in.PatientID, "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	img := entity.WoundImage{
		ID:          id,
		PatientID:   in.PatientID,
		UploadedBy:  clm.UserID,
		ObjectKey:   key,
		ContentType: contentType,
		Size:        int64(len(data)),
		CreatedAt:   now,
	}

	if err := s.repoDB.CreateImage(ctx, img); err != nil {
		slog.ErrorContext(ctx, "failed to repo create wound image", "patient_id", in.PatientID, "error", err)

		if delErr := s.storage.DeleteObject(ctx, bucket, key); delErr != nil {
			slog.WarnContext(ctx, "failed to remove orphaned object", "key", key, "error", delErr)
		}

		return nil, goerror.NewServer(err)
	}

	return &ImageUploadOutput{Image: img}, nil
}
