package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/careplus/woundtrack/internal/notification/entity"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
	"github.com/stretchr/testify/require"
)

func TestListNotifications(t *testing.T) {
	t.Run("DefaultsToFirstPageOfAll", func(t *testing.T) {
		f := newFixture(t)
		f.db.listResult = []entity.NotificationItem{
			{ID: 1, TriggerKey: entity.TriggerKeyPatientAssigned, CreatedAt: time.Now()},
		}
		f.db.unread = 3

		out, err := f.uc.ListNotifications(asUser(7), ListNotificationsInput{})

		require.NoError(t, err)
		require.Equal(t, entity.NotificationStatusAll, f.db.lastStatus)
		require.Equal(t, int32(20), f.db.lastLimit)
		require.Equal(t, int32(0), f.db.lastOffset)
		require.Len(t, out.Notifications, 1)
		require.Equal(t, int64(3), out.UnreadCount)
	})

	t.Run("PassesStatusAndPaging", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.ListNotifications(asUser(7), ListNotificationsInput{
			Status: entity.NotificationStatusUnread,
			Size:   10,
			Page:   3,
		})

		require.NoError(t, err)
		require.Equal(t, entity.NotificationStatusUnread, f.db.lastStatus)
		require.Equal(t, int32(10), f.db.lastLimit)
		require.Equal(t, int32(20), f.db.lastOffset)
	})

	t.Run("RequiresAuthentication", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.ListNotifications(context.Background(), ListNotificationsInput{})

		requireBusinessCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("RejectsOversizePage", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.ListNotifications(asUser(7), ListNotificationsInput{Size: 500})

		var gerr *goerror.Error
		require.ErrorAs(t, err, &gerr)
		require.Equal(t, goerror.TypeValidation, gerr.Type())
	})
}

func TestMarkRead(t *testing.T) {
	t.Run("MarksOwnNotification", func(t *testing.T) {
		f := newFixture(t)

		err := f.uc.MarkRead(asUser(7), MarkReadInput{NotificationID: 42})

		require.NoError(t, err)
		require.Equal(t, [][2]int64{{7, 42}}, f.db.marked)
	})

	t.Run("UnknownNotificationIsNotFound", func(t *testing.T) {
		f := newFixture(t)
		f.db.markOK = false

		err := f.uc.MarkRead(asUser(7), MarkReadInput{NotificationID: 42})

		requireBusinessCode(t, err, goerror.CodeNotFound)
	})

	t.Run("RequiresAuthentication", func(t *testing.T) {
		f := newFixture(t)

		err := f.uc.MarkRead(context.Background(), MarkReadInput{NotificationID: 42})

		requireBusinessCode(t, err, goerror.CodeUnauthorized)
	})
}

func TestMarkReadAll(t *testing.T) {
	t.Run("ReportsUpdatedCount", func(t *testing.T) {
		f := newFixture(t)
		f.db.readAll = 4

		out, err := f.uc.MarkReadAll(asUser(7))

		require.NoError(t, err)
		require.Equal(t, int64(4), out.Updated)
	})

	t.Run("RequiresAuthentication", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.MarkReadAll(context.Background())

		requireBusinessCode(t, err, goerror.CodeUnauthorized)
	})
}
