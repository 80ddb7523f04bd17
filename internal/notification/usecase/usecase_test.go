package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/careplus/woundtrack/internal/notification/entity"
	"github.com/careplus/woundtrack/internal/pkg/config"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
	"github.com/careplus/woundtrack/internal/pkg/idempotency"
	"github.com/careplus/woundtrack/internal/pkg/instrument"
	"github.com/careplus/woundtrack/internal/pkg/jwt"
	"github.com/careplus/woundtrack/internal/pkg/mail"
	"github.com/careplus/woundtrack/internal/pkg/validator"
	"github.com/stretchr/testify/require"
)

type createdNotification struct {
	notification entity.CreateNotification
	deliveryLog  entity.CreateDeliveryLog
}

type fakeDB struct {
	created   []createdNotification
	updates   []entity.UpdateDeliveryLog
	createErr error

	listResult []entity.NotificationItem
	lastStatus entity.NotificationStatus
	lastLimit  int32
	lastOffset int32
	unread     int64

	markOK    bool
	marked    [][2]int64
	readAll   int64
	nextLogID int64
}

func (f *fakeDB) CreateNotificationWithDeliveryLog(_ context.Context, n entity.CreateNotification, dl entity.CreateDeliveryLog) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.created = append(f.created, createdNotification{notification: n, deliveryLog: dl})
	f.nextLogID++
	return f.nextLogID, nil
}

func (f *fakeDB) UpdateDeliveryLogStatus(_ context.Context, u entity.UpdateDeliveryLog) error {
	f.updates = append(f.updates, u)
	return nil
}

func (f *fakeDB) ListNotifications(_ context.Context, _ int64, status entity.NotificationStatus, limit, offset int32) ([]entity.NotificationItem, error) {
	f.lastStatus = status
	f.lastLimit = limit
	f.lastOffset = offset
	return f.listResult, nil
}

func (f *fakeDB) CountUnreadNotifications(context.Context, int64) (int64, error) {
	return f.unread, nil
}

func (f *fakeDB) MarkNotificationRead(_ context.Context, userID, notificationID int64) (bool, error) {
	f.marked = append(f.marked, [2]int64{userID, notificationID})
	return f.markOK, nil
}

func (f *fakeDB) MarkNotificationsReadAll(context.Context, int64) (int64, error) {
	return f.readAll, nil
}

type fakeMail struct {
	sent []mail.Message
	err  error
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

// fakeIdem runs the wrapped operation unless a terminal state is preset.
type fakeIdem struct {
	keys []string
	err  error
}

func (f *fakeIdem) Acquire(context.Context, string, time.Duration) (idempotency.State, error) {
	return idempotency.StateNone, nil
}

func (f *fakeIdem) MarkCompleted(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdem) MarkFailed(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdem) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	f.keys = append(f.keys, key)
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

type cfgStub struct {
	config.Config
}

func (cfgStub) GetHour(string) time.Duration { return 24 * time.Hour }

func (cfgStub) GetMinute(string) time.Duration { return 5 * time.Minute }

type stubClock struct{ now time.Time }

func (c stubClock) Now() time.Time { return c.now }

type stubNumberID struct{ next int64 }

func (s *stubNumberID) Generate() int64 {
	s.next++
	return s.next
}

type fixture struct {
	uc    *Usecase
	db    *fakeDB
	mail  *fakeMail
	idem  *fakeIdem
	clock stubClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := &fakeDB{markOK: true}
	ml := &fakeMail{}
	idem := &fakeIdem{}
	clk := stubClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	uc := NewNotification(Dependency{
		RepoDB:      db,
		RepoMail:    ml,
		Idempotency: idem,
		Config:      cfgStub{},
		UID:         &stubNumberID{next: 700},
		Clock:       clk,
		Validator:   v,
		Instrument:  instrument.NewNoop(),
	})

	return &fixture{uc: uc, db: db, mail: ml, idem: idem, clock: clk}
}

func asUser(id int64) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: id, Role: "NURSE"})
}

func requireBusinessCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, code, gerr.Code())
}
