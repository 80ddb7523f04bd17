package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"strings"

	"github.com/careplus/woundtrack/internal/identity/entity"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
	"github.com/careplus/woundtrack/internal/pkg/jwt"
)

type VerifyOTPInput struct {
	Identifier string `validate:"required"`
	Code       string `validate:"required,len=6,numeric"`
}

type VerifyOTPOutput struct {
	User   entity.User
	Tokens jwt.TokenPair
}

// VerifyOTP checks the one-time login code for the user and issues a token
// pair. A code verifies at most once; the mark step is conditional so two
// concurrent requests cannot both succeed.
func (s *Usecase) VerifyOTP(ctx context.Context, in VerifyOTPInput) (*VerifyOTPOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyOTP")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	// identifier resolution mirrors Login
	identifier := strings.TrimSpace(in.Identifier)

	var (
		user *entity.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.repoDB.GetUserByEmail(ctx, identifier)
	} else {
		user, err = s.repoDB.GetUserByUsername(ctx, identifier)
	}
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "identifier", identifier)
		return nil, goerror.NewBusiness("user not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user", "identifier", identifier, "error", err)
		return nil, goerror.NewServer(err)
	}

	otc, err := s.repoDB.GetLatestPendingCode(ctx, user.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "no pending login code", "user_id", user.ID)
		return nil, goerror.NewBusiness("no verification code requested", goerror.CodeBadRequest)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get pending login code", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	if now.After(otc.ExpiresAt) {
		slog.WarnContext(ctx, "login code expired", "user_id", user.ID)
		return nil, goerror.NewBusiness("verification code has expired", goerror.CodeBadRequest)
	}

	if subtle.ConstantTimeCompare([]byte(otc.Code), []byte(in.Code)) != 1 {
		slog.WarnContext(ctx, "login code mismatch", "user_id", user.ID)
		return nil, goerror.NewBusiness("invalid verification code", goerror.CodeBadRequest)
	}

	ok, err := s.repoDB.MarkCodeVerified(ctx, otc.ID, now)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo mark login code verified", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !ok {
		// raced with another verification or an invalidation
		slog.WarnContext(ctx, "login code no longer pending", "user_id", user.ID)
		return nil, goerror.NewBusiness("verification code is no longer valid", goerror.CodeBadRequest)
	}

	if err := s.repoDB.UpdateLastLogin(ctx, user.ID, now); err != nil {
		slog.WarnContext(ctx, "failed to repo update last login", "user_id", user.ID, "error", err)
	}

	tokens, err := s.jwt.GeneratePair(user.ID, user.Email, user.Role.String())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate token pair", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &VerifyOTPOutput{
		User:   *user,
		Tokens: tokens,
	}, nil
}
