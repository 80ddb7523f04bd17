package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/careplus/woundtrack/internal/pkg/goerror"
)

type ImageDeleteInput struct {
	ImageID int64 `validate:"required,gt=0"`
}

// ImageDelete removes a wound image. Only the uploader or the patient's
// doctor may delete it.
func (s *Usecase) ImageDelete(ctx context.Context, in ImageDeleteInput) error {
	ctx, span := s.startSpan(ctx, "ImageDelete")
	defer span.End()

	clm, err := s.authenticatedAndAuthorized(ctx, "images", "write")
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	img, err := s.repoDB.GetImageByID(ctx, in.ImageID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "wound image not found", "image_id", in.ImageID)
		return goerror.NewBusiness("image not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get wound image", "image_id", in.ImageID, "error", err)
		return goerror.NewServer(err)
	}

	if img.UploadedBy != clm.UserID {
		doctorID, err := s.repoDB.GetPatientDoctorID(ctx, img.PatientID)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo get patient doctor", "patient_id", img.PatientID, "error", err)
			return goerror.NewServer(err)
		}
		if doctorID != clm.UserID {
			slog.WarnContext(ctx, "wound image delete denied", "image_id", img.ID, "user_id", clm.UserID)
			return goerror.NewBusiness("image not found", goerror.CodeNotFound)
		}
	}

	err = s.repoDB.DeleteImage(ctx, img.ID)
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "wound image still referenced by an assessment", "image_id", img.ID)
		return goerror.NewBusiness("image is attached to an assessment", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete wound image", "image_id", img.ID, "error", err)
		return goerror.NewServer(err)
	}

	// delete the object after the row so a storage failure cannot leave a
	// row pointing at nothing.
	if err := s.storage.DeleteObject(ctx, s.cfg.GetString("storage.bucket"), img.ObjectKey); err != nil {
		slog.WarnContext(ctx, "failed to remove stored object", "key", img.ObjectKey, "error", err)
	}

	return nil
}
