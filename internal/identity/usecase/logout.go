package usecase

import (
	"context"
	"log/slog"

	"github.com/careplus/woundtrack/internal/pkg/goerror"
	"github.com/careplus/woundtrack/internal/pkg/jwt"
)

type LogoutInput struct {
	RefreshToken string `validate:"required"`
}

// Logout revokes the presented refresh token until its natural expiry.
// Access tokens stay valid until they expire on their own.
func (s *Usecase) Logout(ctx context.Context, in LogoutInput) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if clm := jwt.GetAuth(ctx); clm == nil {
		return goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	clm, err := s.jwt.VerifyRefresh(in.RefreshToken)
	if err != nil {
		slog.WarnContext(ctx, "refresh token invalid on logout", "error", err)
		return goerror.NewBusiness("invalid refresh token", goerror.CodeUnauthorized)
	}

	if clm.ExpiresAt == nil {
		return nil
	}

	ttl := clm.ExpiresAt.Time.Sub(s.clock.Now())
	if ttl <= 0 {
		return nil
	}

	if err := s.repoCache.RevokeToken(ctx, clm.ID, ttl); err != nil {
		slog.ErrorContext(ctx, "failed to revoke refresh token", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
