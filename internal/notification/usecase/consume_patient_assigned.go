package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/careplus/woundtrack/internal/notification/entity"
	"github.com/careplus/woundtrack/internal/pkg/idempotency"
	"github.com/careplus/woundtrack/internal/pkg/mail"
	"github.com/careplus/woundtrack/internal/pkg/valueobject"
	"github.com/sethvargo/go-retry"
)

type ConsumePatientAssignedInput struct {
	AssignmentID int64  `validate:"required,gt=0"`
	PatientID    int64  `validate:"required,gt=0"`
	PatientName  string `validate:"required"`
	NurseID      int64  `validate:"required,gt=0"`
	NurseEmail   string `validate:"required,email"`
	NurseName    string `validate:"required"`
	DoctorName   string
}

// ConsumePatientAssigned records an in-app notification for the nurse and
// emails them about the new assignment. Redeliveries of the same assignment
// are deduplicated through the idempotency tracker.
func (s *Usecase) ConsumePatientAssigned(ctx context.Context, in ConsumePatientAssignedInput) error {
	ctx, span := s.startSpan(ctx, "ConsumePatientAssigned")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	key := "patient_assigned:" + strconv.FormatInt(in.AssignmentID, 10)
	stateTTL := s.cfg.GetHour("modules.notification.dedupe_ttl_hours")

	err := s.idemp.Exec(ctx, key, func(ctx context.Context) error {
		return s.notifyPatientAssigned(ctx, in)
	}, idempotency.WithStateTTL(stateTTL))

	if errors.Is(err, idempotency.ErrAlreadyCompleted) || errors.Is(err, idempotency.ErrAlreadyInProgress) {
		slog.InfoContext(ctx, "patient assigned already handled", "assignment_id", in.AssignmentID)
		return nil
	}

	return err
}

func (s *Usecase) notifyPatientAssigned(ctx context.Context, in ConsumePatientAssignedInput) error {
	n := entity.CreateNotification{
		ID:         s.uid.Generate(),
		UserID:     in.NurseID,
		TriggerKey: entity.TriggerKeyPatientAssigned,
		Data: valueobject.JSONMap{
			"assignment_id": in.AssignmentID,
			"patient_id":    in.PatientID,
			"patient_name":  in.PatientName,
			"doctor_name":   in.DoctorName,
		},
		Metadata: valueobject.JSONMap{},
	}

	dl := entity.CreateDeliveryLog{
		NotificationID: n.ID,
		Channel:        entity.ChannelEmail,
		Status:         entity.DeliveryStatusQueued,
	}

	logID, err := s.repoDB.CreateNotificationWithDeliveryLog(ctx, n, dl)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create notification+log", "nurse_id", in.NurseID, "error", err)
		return err
	}

	body := fmt.Sprintf(
		"Hi %s,\n\nDr. %s assigned you to patient %s. Open the patient record to review the care plan.\n",
		in.NurseName, in.DoctorName, in.PatientName,
	)

	backoff := retry.WithCappedDuration(10*time.Second, retry.NewFibonacci(500*time.Millisecond))
	backoff = retry.WithMaxRetries(3, backoff)

	mailErr := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := s.repoMail.Send(ctx, mail.Message{
			To:       []string{in.NurseEmail},
			Subject:  "New patient assignment",
			TextBody: body,
		}); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})

	if mailErr == nil {
		if err := s.repoDB.UpdateDeliveryLogStatus(ctx, entity.UpdateDeliveryLog{
			ID:               logID,
			Status:           entity.DeliveryStatusSent,
			ProviderResponse: valueobject.JSONMap{},
		}); err != nil {
			slog.ErrorContext(ctx, "failed to repo update delivery log status sent", "log_id", logID, "error", err)
		}
		return nil
	}

	nextRetry := s.clock.Now().Add(s.cfg.GetMinute("modules.notification.email_retry_delay_minutes"))
	if err := s.repoDB.UpdateDeliveryLogStatus(ctx, entity.UpdateDeliveryLog{
		ID:               logID,
		Status:           entity.DeliveryStatusFailed,
		ProviderResponse: valueobject.JSONMap{"error": mailErr.Error()},
		NextRetryAt:      &nextRetry,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo update delivery log status failed", "log_id", logID, "error", err)
	}

	slog.ErrorContext(ctx, "failed to send assignment email", "log_id", logID, "nurse_id", in.NurseID, "error", mailErr)

	// the notification row exists and the failure is logged for the retry
	// sweep, so redelivery of the message is not needed.
	return nil
}
