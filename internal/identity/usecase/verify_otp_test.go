package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/careplus/woundtrack/internal/identity/entity"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
	"github.com/stretchr/testify/require"
)

func login(t *testing.T, f *fixture) {
	t.Helper()

	_, err := f.uc.Login(context.Background(), LoginInput{Identifier: "doc", Password: "s3cret"})
	require.NoError(t, err)
}

func TestVerifyOTP(t *testing.T) {
	t.Run("IssuesTokenPair", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, 1, "doc@careplus.dev", "doc", "s3cret", entity.RoleDoctor, true)
		login(t, f)

		out, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Identifier: "doc@careplus.dev",
			Code:       "123456",
		})

		require.NoError(t, err)
		require.NotEmpty(t, out.Tokens.AccessToken)
		require.NotEmpty(t, out.Tokens.RefreshToken)
		require.Equal(t, int64(1), out.User.ID)

		clm, err := f.jwt.Verify(out.Tokens.AccessToken)
		require.NoError(t, err)
		require.Equal(t, "DOCTOR", clm.Role)

		require.Equal(t, f.clock.now, f.db.lastLogin[1])
	})

	t.Run("IssuesTokenPairByUsernameIdentifier", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, 1, "doc@careplus.dev", "doc", "s3cret", entity.RoleDoctor, true)
		login(t, f)

		out, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Identifier: "doc",
			Code:       "123456",
		})

		require.NoError(t, err)
		require.NotEmpty(t, out.Tokens.AccessToken)
		require.Equal(t, int64(1), out.User.ID)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Identifier: "ghost@careplus.dev",
			Code:       "123456",
		})

		requireBusinessCode(t, err, goerror.CodeNotFound)
	})

	t.Run("NoPendingCode", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, 1, "doc@careplus.dev", "doc", "s3cret", entity.RoleDoctor, true)

		_, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Identifier: "doc@careplus.dev",
			Code:       "123456",
		})

		requireBusinessCode(t, err, goerror.CodeBadRequest)
	})

	t.Run("WrongCodeKeepsPendingCode", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, 1, "doc@careplus.dev", "doc", "s3cret", entity.RoleDoctor, true)
		login(t, f)

		_, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Identifier: "doc@careplus.dev",
			Code:       "654321",
		})

		requireBusinessCode(t, err, goerror.CodeBadRequest)
		require.Zero(t, f.db.markCalls, "a mismatched code must not be consumed")

		// the stored code is still usable
		_, err = f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Identifier: "doc@careplus.dev",
			Code:       "123456",
		})
		require.NoError(t, err)
	})

	t.Run("ExpiredCode", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, 1, "doc@careplus.dev", "doc", "s3cret", entity.RoleDoctor, true)
		login(t, f)

		f.clock.now = f.clock.now.Add(11 * time.Minute)

		_, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Identifier: "doc@careplus.dev",
			Code:       "123456",
		})

		requireBusinessCode(t, err, goerror.CodeBadRequest)
	})

	t.Run("MostRecentCodeWins", func(t *testing.T) {
		f := newFixture(t, "111111", "222222")
		f.seedUser(t, 1, "doc@careplus.dev", "doc", "s3cret", entity.RoleDoctor, true)
		login(t, f)
		login(t, f)

		_, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Identifier: "doc@careplus.dev",
			Code:       "111111",
		})
		requireBusinessCode(t, err, goerror.CodeBadRequest)

		_, err = f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Identifier: "doc@careplus.dev",
			Code:       "222222",
		})
		require.NoError(t, err)
	})

	t.Run("CodeVerifiesOnce", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, 1, "doc@careplus.dev", "doc", "s3cret", entity.RoleDoctor, true)
		login(t, f)

		_, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Identifier: "doc@careplus.dev",
			Code:       "123456",
		})
		require.NoError(t, err)

		_, err = f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Identifier: "doc@careplus.dev",
			Code:       "123456",
		})
		requireBusinessCode(t, err, goerror.CodeBadRequest)
	})

	t.Run("MarkRaceLosesCleanly", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, 1, "doc@careplus.dev", "doc", "s3cret", entity.RoleDoctor, true)
		login(t, f)
		f.db.markResult = false

		_, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Identifier: "doc@careplus.dev",
			Code:       "123456",
		})

		requireBusinessCode(t, err, goerror.CodeBadRequest)
	})

	t.Run("MalformedCode", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, 1, "doc@careplus.dev", "doc", "s3cret", entity.RoleDoctor, true)

		_, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
			Identifier: "doc@careplus.dev",
			Code:       "12ab56",
		})

		var appErr *goerror.Error
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, goerror.TypeValidation, appErr.Type())
	})
}
