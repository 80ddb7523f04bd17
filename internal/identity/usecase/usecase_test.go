package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/careplus/woundtrack/internal/identity/entity"
	"github.com/careplus/woundtrack/internal/pkg/config"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
	"github.com/careplus/woundtrack/internal/pkg/hash"
	"github.com/careplus/woundtrack/internal/pkg/instrument"
	"github.com/careplus/woundtrack/internal/pkg/jwt"
	"github.com/careplus/woundtrack/internal/pkg/validator"
	"github.com/stretchr/testify/require"
)

type fakeDB struct {
	logins  map[string]*entity.UserLoginInfo // keyed by email and username
	users   map[int64]*entity.User
	pending map[int64]*entity.OneTimeCode

	replaced   []entity.OneTimeCode
	lastLogin  map[int64]time.Time
	markResult bool
	markCalls  int
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		logins:     map[string]*entity.UserLoginInfo{},
		users:      map[int64]*entity.User{},
		pending:    map[int64]*entity.OneTimeCode{},
		lastLogin:  map[int64]time.Time{},
		markResult: true,
	}
}

func (f *fakeDB) GetUserLoginByEmail(_ context.Context, email string) (*entity.UserLoginInfo, error) {
	if u, ok := f.logins[email]; ok {
		return u, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) GetUserLoginByUsername(_ context.Context, username string) (*entity.UserLoginInfo, error) {
	if u, ok := f.logins[username]; ok {
		return u, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) GetUserByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) GetLatestPendingCode(_ context.Context, userID int64) (*entity.OneTimeCode, error) {
	if c, ok := f.pending[userID]; ok {
		return c, nil
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) ReplacePendingCodes(_ context.Context, code entity.OneTimeCode) error {
	f.replaced = append(f.replaced, code)
	f.pending[code.UserID] = &code
	return nil
}

func (f *fakeDB) MarkCodeVerified(_ context.Context, codeID int64, now time.Time) (bool, error) {
	f.markCalls++
	if !f.markResult {
		return false, nil
	}
	for _, c := range f.pending {
		if c.ID == codeID {
			c.VerifiedAt = &now
			delete(f.pending, c.UserID)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDB) UpdateLastLogin(_ context.Context, userID int64, now time.Time) error {
	f.lastLogin[userID] = now
	return nil
}

type fakeMail struct {
	sent []LoginCodeEmail
	err  error
}

func (f *fakeMail) SendLoginCode(_ context.Context, msg LoginCodeEmail) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeCache struct {
	revoked map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{revoked: map[string]time.Duration{}}
}

func (f *fakeCache) RevokeToken(_ context.Context, jti string, ttl time.Duration) error {
	f.revoked[jti] = ttl
	return nil
}

func (f *fakeCache) IsTokenRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := f.revoked[jti]
	return ok, nil
}

type cfgStub struct {
	config.Config
}

func (cfgStub) GetMinute(string) time.Duration { return 10 * time.Minute }

type stubClock struct{ now time.Time }

func (c stubClock) Now() time.Time { return c.now }

type stubNumberID struct{ next int64 }

func (s *stubNumberID) Generate() int64 {
	s.next++
	return s.next
}

type stubOTP struct {
	codes []string
	i     int
}

func (s *stubOTP) Generate() (string, error) {
	code := s.codes[s.i%len(s.codes)]
	s.i++
	return code, nil
}

type fixture struct {
	uc    *Usecase
	db    *fakeDB
	mail  *fakeMail
	cache *fakeCache
	clock *stubClock
	jwt   jwt.JWT
}

func newFixture(t *testing.T, codes ...string) *fixture {
	t.Helper()

	if len(codes) == 0 {
		codes = []string{"123456"}
	}

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	secret := make([]byte, 64)
	for i := range secret {
		secret[i] = byte(i)
	}
	clk := &stubClock{now: time.Now()}
	tokens, err := jwt.NewHS512(jwt.Config{
		Secret:     secret,
		Issuer:     "woundtrack-test",
		Audiences:  []string{"woundtrack-web"},
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 24 * time.Hour,
		Clock:      clk,
		UUID:       &stubStringID{},
	})
	require.NoError(t, err)

	db := newFakeDB()
	mail := &fakeMail{}
	cache := newFakeCache()

	uc := New(Dependency{
		RepoDB:     db,
		RepoMail:   mail,
		RepoCache:  cache,
		Validator:  v,
		Config:     cfgStub{},
		Bcrypt:     hash.NewBcrypt(4, ""),
		UID:        &stubNumberID{},
		OTP:        &stubOTP{codes: codes},
		Clock:      clk,
		JWT:        tokens,
		Instrument: instrument.NewNoop(),
	})

	return &fixture{uc: uc, db: db, mail: mail, cache: cache, clock: clk, jwt: tokens}
}

type stubStringID struct{ n int }

func (s *stubStringID) Generate() string {
	s.n++
	return "jti-" + string(rune('a'+s.n%26))
}

func (f *fixture) seedUser(t *testing.T, id int64, email, username, password string, role entity.Role, active bool) {
	t.Helper()

	hashed, err := hash.NewBcrypt(4, "").Hash(password)
	require.NoError(t, err)

	login := &entity.UserLoginInfo{
		ID:        id,
		Username:  username,
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		Active:    active,
		Password:  string(hashed),
	}
	f.db.logins[email] = login
	f.db.logins[username] = login
	f.db.users[id] = &entity.User{
		ID:        id,
		Username:  username,
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		Active:    active,
		CreatedAt: f.clock.now,
	}
}

func requireBusinessCode(t *testing.T, err error, code goerror.Code) {
	t.Helper()

	var appErr *goerror.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code())
}
