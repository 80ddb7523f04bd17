package usecase

import (
	"context"
	"log/slog"

	"github.com/careplus/woundtrack/internal/pkg/goerror"
	"github.com/careplus/woundtrack/internal/pkg/jwt"
)

type MarkReadInput struct {
	NotificationID int64 `validate:"required,gt=0"`
}

func (s *Usecase) MarkRead(ctx context.Context, in MarkReadInput) error {
	ctx, span := s.startSpan(ctx, "MarkRead")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	ok, err := s.repoDB.MarkNotificationRead(ctx, clm.UserID, in.NotificationID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo mark notification read", "notification_id", in.NotificationID, "error", err)
		return goerror.NewServer(err)
	}
	if !ok {
		return goerror.NewBusiness("notification not found", goerror.CodeNotFound)
	}

	return nil
}

type MarkReadAllOutput struct {
	Updated int64
}

func (s *Usecase) MarkReadAll(ctx context.Context) (*MarkReadAllOutput, error) {
	ctx, span := s.startSpan(ctx, "MarkReadAll")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	updated, err := s.repoDB.MarkNotificationsReadAll(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo mark notifications read all", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &MarkReadAllOutput{Updated: updated}, nil
}
