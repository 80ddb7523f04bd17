package db

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/careplus/woundtrack/internal/identity/entity"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
	"github.com/careplus/woundtrack/internal/pkg/instrument"
	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startTestDB boots a throwaway postgres container and applies the identity
// schema from the bundled migrations.
func startTestDB(t *testing.T) (*DB, *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("woundtrack_test"),
		postgres.WithUsername("woundtrack"),
		postgres.WithPassword("woundtrack"),
		testcontainers.WithWaitStrategy(wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort(nat.Port("5432/tcp")),
		).WithStartupTimeoutDefault(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, filename, _, _ := runtime.Caller(0)
	schema, err := os.ReadFile(filepath.Join(filepath.Dir(filename),
		"..", "..", "..", "app", "migrations", "000001_identity.up.sql"))
	require.NoError(t, err)

	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)

	return NewDB(pool, instrument.NewNoop()), pool
}

func seedUser(t *testing.T, pool *pgxpool.Pool, id int64, username, email string, role entity.Role) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `
		INSERT INTO users (id, username, email, password, first_name, last_name, role)
		VALUES ($1, $2, $3, 'hashed', 'Test', 'User', $4)`,
		id, username, email, int16(role))
	require.NoError(t, err)
}

func TestDB(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed tests in short mode")
	}

	s, pool := startTestDB(t)
	ctx := context.Background()

	seedUser(t, pool, 1, "ghouse", "House@CarePlus.dev", entity.RoleDoctor)
	seedUser(t, pool, 2, "jwang", "joy@careplus.dev", entity.RoleNurse)

	t.Run("GetUserLoginByEmailIgnoresCase", func(t *testing.T) {
		got, err := s.GetUserLoginByEmail(ctx, "house@careplus.dev")

		require.NoError(t, err)
		require.Equal(t, int64(1), got.ID)
		require.Equal(t, "ghouse", got.Username)
		require.Equal(t, entity.RoleDoctor, got.Role)
		require.True(t, got.Active)
	})

	t.Run("GetUserLoginByEmailUnknown", func(t *testing.T) {
		_, err := s.GetUserLoginByEmail(ctx, "nobody@careplus.dev")

		require.ErrorIs(t, err, goerror.ErrNotFound)
	})

	t.Run("GetUserLoginByUsername", func(t *testing.T) {
		got, err := s.GetUserLoginByUsername(ctx, "jwang")

		require.NoError(t, err)
		require.Equal(t, int64(2), got.ID)
		require.Equal(t, entity.RoleNurse, got.Role)
	})

	t.Run("GetUserByUsername", func(t *testing.T) {
		got, err := s.GetUserByUsername(ctx, "ghouse")

		require.NoError(t, err)
		require.Equal(t, int64(1), got.ID)
		require.Equal(t, entity.RoleDoctor, got.Role)
	})

	t.Run("DuplicateEmailDiffersOnlyInCase", func(t *testing.T) {
		_, err := pool.Exec(ctx, `
			INSERT INTO users (id, username, email, password, first_name, role)
			VALUES (3, 'dupe', 'HOUSE@careplus.dev', 'hashed', 'Dupe', 1)`)

		require.ErrorIs(t, s.mapError(err), goerror.ErrConflict)
	})

	t.Run("ReplacePendingCodesInvalidatesOlderOnes", func(t *testing.T) {
		expires := time.Now().Add(10 * time.Minute)

		require.NoError(t, s.ReplacePendingCodes(ctx, entity.OneTimeCode{
			ID: 100, UserID: 1, Code: "111111", ExpiresAt: expires,
		}))
		require.NoError(t, s.ReplacePendingCodes(ctx, entity.OneTimeCode{
			ID: 101, UserID: 1, Code: "222222", ExpiresAt: expires,
		}))

		got, err := s.GetLatestPendingCode(ctx, 1)
		require.NoError(t, err)
		require.Equal(t, int64(101), got.ID)
		require.Equal(t, "222222", got.Code)

		var pending int64
		require.NoError(t, pool.QueryRow(ctx, `
			SELECT count(*) FROM one_time_codes
			WHERE user_id = 1 AND verified_at IS NULL AND invalidated_at IS NULL`).Scan(&pending))
		require.Equal(t, int64(1), pending)
	})

	t.Run("MarkCodeVerifiedIsOneShot", func(t *testing.T) {
		expires := time.Now().Add(10 * time.Minute)
		require.NoError(t, s.ReplacePendingCodes(ctx, entity.OneTimeCode{
			ID: 102, UserID: 2, Code: "333333", ExpiresAt: expires,
		}))

		ok, err := s.MarkCodeVerified(ctx, 102, time.Now())
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = s.MarkCodeVerified(ctx, 102, time.Now())
		require.NoError(t, err)
		require.False(t, ok)

		_, err = s.GetLatestPendingCode(ctx, 2)
		require.ErrorIs(t, err, goerror.ErrNotFound)
	})

	t.Run("MarkCodeVerifiedRejectsExpired", func(t *testing.T) {
		require.NoError(t, s.ReplacePendingCodes(ctx, entity.OneTimeCode{
			ID: 103, UserID: 2, Code: "444444", ExpiresAt: time.Now().Add(-time.Minute),
		}))

		ok, err := s.MarkCodeVerified(ctx, 103, time.Now())
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("UpdateLastLogin", func(t *testing.T) {
		at := time.Now().UTC().Truncate(time.Microsecond)

		require.NoError(t, s.UpdateLastLogin(ctx, 1, at))

		got, err := s.GetUserByID(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, got.LastLoginAt)
		require.True(t, got.LastLoginAt.Equal(at))
	})
}
