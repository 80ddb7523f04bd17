package usecase

import (
	"context"
	"log/slog"

	"github.com/careplus/woundtrack/internal/notification/entity"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
	"github.com/careplus/woundtrack/internal/pkg/jwt"
)

type ListNotificationsInput struct {
	Status entity.NotificationStatus
	Size   int32 `validate:"gte=0,lte=100"`
	Page   int32 `validate:"gte=0"`
}

type ListNotificationsOutput struct {
	Notifications []entity.NotificationItem
	UnreadCount   int64
}

func (s *Usecase) ListNotifications(ctx context.Context, in ListNotificationsInput) (*ListNotificationsOutput, error) {
	ctx, span := s.startSpan(ctx, "ListNotifications")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
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
	if in.Status == "" {
		in.Status = entity.NotificationStatusAll
	}

	items, err := s.repoDB.ListNotifications(ctx, clm.UserID, in.Status, in.Size, (in.Page-1)*in.Size)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list notifications", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	unread, err := s.repoDB.CountUnreadNotifications(ctx, clm.UserID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo count unread notifications", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &ListNotificationsOutput{
		Notifications: items,
		UnreadCount:   unread,
	}, nil
}
