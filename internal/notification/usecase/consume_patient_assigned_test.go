package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/careplus/woundtrack/internal/notification/entity"
	"github.com/careplus/woundtrack/internal/pkg/idempotency"
	"github.com/stretchr/testify/require"
)

func validConsumeInput() ConsumePatientAssignedInput {
	return ConsumePatientAssignedInput{
		AssignmentID: 55,
		PatientID:    10,
		PatientName:  "Ada Lovelace",
		NurseID:      7,
		NurseEmail:   "joy@careplus.dev",
		NurseName:    "Joy Wang",
		DoctorName:   "Greg House",
	}
}

func TestConsumePatientAssigned(t *testing.T) {
	t.Run("RecordsNotificationAndSendsEmail", func(t *testing.T) {
		f := newFixture(t)

		err := f.uc.ConsumePatientAssigned(context.Background(), validConsumeInput())

		require.NoError(t, err)
		require.Equal(t, []string{"patient_assigned:55"}, f.idem.keys)

		require.Len(t, f.db.created, 1)
		got := f.db.created[0]
		require.Equal(t, int64(7), got.notification.UserID)
		require.Equal(t, entity.TriggerKeyPatientAssigned, got.notification.TriggerKey)
		require.Equal(t, int64(55), got.notification.Data["assignment_id"])
		require.Equal(t, "Ada Lovelace", got.notification.Data["patient_name"])
		require.Equal(t, entity.ChannelEmail, got.deliveryLog.Channel)
		require.Equal(t, entity.DeliveryStatusQueued, got.deliveryLog.Status)

		require.Len(t, f.mail.sent, 1)
		require.Equal(t, []string{"joy@careplus.dev"}, f.mail.sent[0].To)
		require.Equal(t, "New patient assignment", f.mail.sent[0].Subject)
		require.Contains(t, f.mail.sent[0].TextBody, "Greg House")
		require.Contains(t, f.mail.sent[0].TextBody, "Ada Lovelace")

		require.Len(t, f.db.updates, 1)
		require.Equal(t, entity.DeliveryStatusSent, f.db.updates[0].Status)
	})

	t.Run("RedeliveryOfHandledAssignmentIsSilent", func(t *testing.T) {
		f := newFixture(t)
		f.idem.err = idempotency.ErrAlreadyCompleted

		err := f.uc.ConsumePatientAssigned(context.Background(), validConsumeInput())

		require.NoError(t, err)
		require.Empty(t, f.db.created)
		require.Empty(t, f.mail.sent)
	})

	t.Run("InFlightAssignmentIsSilent", func(t *testing.T) {
		f := newFixture(t)
		f.idem.err = idempotency.ErrAlreadyInProgress

		err := f.uc.ConsumePatientAssigned(context.Background(), validConsumeInput())

		require.NoError(t, err)
		require.Empty(t, f.db.created)
	})

	t.Run("EmailFailureMarksLogForRetry", func(t *testing.T) {
		f := newFixture(t)
		f.mail.err = errors.New("smtp: connection refused")

		err := f.uc.ConsumePatientAssigned(context.Background(), validConsumeInput())

		require.NoError(t, err)
		require.Len(t, f.db.created, 1)
		require.Len(t, f.db.updates, 1)
		require.Equal(t, entity.DeliveryStatusFailed, f.db.updates[0].Status)
		require.Contains(t, f.db.updates[0].ProviderResponse["error"], "connection refused")
		require.NotNil(t, f.db.updates[0].NextRetryAt)
		require.Equal(t, f.clock.now.Add(5*time.Minute), *f.db.updates[0].NextRetryAt)
	})

	t.Run("DatabaseFailureRequeuesMessage", func(t *testing.T) {
		f := newFixture(t)
		f.db.createErr = errors.New("connection reset")

		err := f.uc.ConsumePatientAssigned(context.Background(), validConsumeInput())

		require.Error(t, err)
		require.Empty(t, f.mail.sent)
	})

	t.Run("MalformedEventIsDropped", func(t *testing.T) {
		f := newFixture(t)

		in := validConsumeInput()
		in.NurseEmail = "not-an-email"
		err := f.uc.ConsumePatientAssigned(context.Background(), in)

		require.NoError(t, err)
		require.Empty(t, f.idem.keys)
		require.Empty(t, f.db.created)
	})
}
