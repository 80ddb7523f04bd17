package usecase

import (
	"context"
	"testing"

	"github.com/careplus/woundtrack/internal/identity/entity"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
	"github.com/careplus/woundtrack/internal/pkg/jwt"
	"github.com/stretchr/testify/require"
)

func issueTokens(t *testing.T, f *fixture) jwt.TokenPair {
	t.Helper()

	login(t, f)
	out, err := f.uc.VerifyOTP(context.Background(), VerifyOTPInput{
		Identifier: "doc@careplus.dev",
		Code:       "123456",
	})
	require.NoError(t, err)
	return out.Tokens
}

func TestRefreshToken(t *testing.T) {
	t.Run("IssuesNewPair", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, 1, "doc@careplus.dev", "doc", "s3cret", entity.RoleDoctor, true)
		tokens := issueTokens(t, f)

		out, err := f.uc.RefreshToken(context.Background(), RefreshTokenInput{
			RefreshToken: tokens.RefreshToken,
		})

		require.NoError(t, err)
		require.NotEmpty(t, out.Tokens.AccessToken)
		require.NotEmpty(t, out.Tokens.RefreshToken)
	})

	t.Run("RejectsAccessToken", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, 1, "doc@careplus.dev", "doc", "s3cret", entity.RoleDoctor, true)
		tokens := issueTokens(t, f)

		_, err := f.uc.RefreshToken(context.Background(), RefreshTokenInput{
			RefreshToken: tokens.AccessToken,
		})

		requireBusinessCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("RejectsGarbage", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.RefreshToken(context.Background(), RefreshTokenInput{
			RefreshToken: "not-a-token",
		})

		requireBusinessCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("RejectsRevokedToken", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, 1, "doc@careplus.dev", "doc", "s3cret", entity.RoleDoctor, true)
		tokens := issueTokens(t, f)

		clm, err := f.jwt.VerifyRefresh(tokens.RefreshToken)
		require.NoError(t, err)
		require.NoError(t, f.cache.RevokeToken(context.Background(), clm.ID, clm.ExpiresAt.Time.Sub(f.clock.now)))

		_, err = f.uc.RefreshToken(context.Background(), RefreshTokenInput{
			RefreshToken: tokens.RefreshToken,
		})

		requireBusinessCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("RejectsDisabledAccount", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, 1, "doc@careplus.dev", "doc", "s3cret", entity.RoleDoctor, true)
		tokens := issueTokens(t, f)

		f.db.users[1].Active = false

		_, err := f.uc.RefreshToken(context.Background(), RefreshTokenInput{
			RefreshToken: tokens.RefreshToken,
		})

		requireBusinessCode(t, err, goerror.CodeUnauthorized)
	})
}

func TestLogout(t *testing.T) {
	t.Run("RevokesRefreshToken", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, 1, "doc@careplus.dev", "doc", "s3cret", entity.RoleDoctor, true)
		tokens := issueTokens(t, f)

		clm, err := f.jwt.Verify(tokens.AccessToken)
		require.NoError(t, err)
		ctx := jwt.SetAuth(context.Background(), clm)

		require.NoError(t, f.uc.Logout(ctx, LogoutInput{RefreshToken: tokens.RefreshToken}))

		_, err = f.uc.RefreshToken(context.Background(), RefreshTokenInput{
			RefreshToken: tokens.RefreshToken,
		})
		requireBusinessCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("RequiresAuthentication", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, 1, "doc@careplus.dev", "doc", "s3cret", entity.RoleDoctor, true)
		tokens := issueTokens(t, f)

		err := f.uc.Logout(context.Background(), LogoutInput{RefreshToken: tokens.RefreshToken})

		requireBusinessCode(t, err, goerror.CodeUnauthorized)
	})
}
