package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/careplus/woundtrack/internal/identity/entity"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	t.Run("SendsCodeByEmailIdentifier", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, 1, "doc@careplus.dev", "doc", "s3cret", entity.RoleDoctor, true)

		out, err := f.uc.Login(context.Background(), LoginInput{
			Identifier: "doc@careplus.dev",
			Password:   "s3cret",
		})

		require.NoError(t, err)
		require.True(t, out.OTPRequired)
		require.Equal(t, "doc@careplus.dev", out.Email)

		require.Len(t, f.mail.sent, 1)
		require.Equal(t, "123456", f.mail.sent[0].Code)
		require.Equal(t, f.clock.now.Add(10*time.Minute), f.mail.sent[0].ExpiresAt)
	})

	t.Run("SendsCodeByUsernameIdentifier", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, 1, "doc@careplus.dev", "doc", "s3cret", entity.RoleDoctor, true)

		out, err := f.uc.Login(context.Background(), LoginInput{
			Identifier: "doc",
			Password:   "s3cret",
		})

		require.NoError(t, err)
		require.Equal(t, "doc@careplus.dev", out.Email)
	})

	t.Run("UnknownIdentifier", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.Login(context.Background(), LoginInput{
			Identifier: "ghost@careplus.dev",
			Password:   "whatever",
		})

		requireBusinessCode(t, err, goerror.CodeUnauthorized)
		require.Empty(t, f.mail.sent)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, 1, "doc@careplus.dev", "doc", "s3cret", entity.RoleDoctor, true)

		_, err := f.uc.Login(context.Background(), LoginInput{
			Identifier: "doc@careplus.dev",
			Password:   "not-it",
		})

		requireBusinessCode(t, err, goerror.CodeUnauthorized)
		require.Empty(t, f.mail.sent)
	})

	t.Run("DisabledAccount", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, 1, "doc@careplus.dev", "doc", "s3cret", entity.RoleDoctor, false)

		_, err := f.uc.Login(context.Background(), LoginInput{
			Identifier: "doc@careplus.dev",
			Password:   "s3cret",
		})

		requireBusinessCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("SecondLoginReplacesPendingCode", func(t *testing.T) {
		f := newFixture(t, "111111", "222222")
		f.seedUser(t, 1, "doc@careplus.dev", "doc", "s3cret", entity.RoleDoctor, true)

		_, err := f.uc.Login(context.Background(), LoginInput{Identifier: "doc", Password: "s3cret"})
		require.NoError(t, err)
		_, err = f.uc.Login(context.Background(), LoginInput{Identifier: "doc", Password: "s3cret"})
		require.NoError(t, err)

		require.Len(t, f.db.replaced, 2)
		require.Equal(t, "222222", f.db.pending[1].Code)
	})

	t.Run("MailFailure", func(t *testing.T) {
		f := newFixture(t)
		f.seedUser(t, 1, "doc@careplus.dev", "doc", "s3cret", entity.RoleDoctor, true)
		f.mail.err = errors.New("smtp down")

		_, err := f.uc.Login(context.Background(), LoginInput{
			Identifier: "doc@careplus.dev",
			Password:   "s3cret",
		})

		requireBusinessCode(t, err, goerror.CodeInternal)
	})

	t.Run("MissingFields", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.Login(context.Background(), LoginInput{})

		var appErr *goerror.Error
		require.ErrorAs(t, err, &appErr)
		require.Equal(t, goerror.TypeValidation, appErr.Type())
	})
}
