package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/careplus/woundtrack/internal/identity/entity"
	"github.com/careplus/woundtrack/internal/pkg/goerror"
)

type LoginInput struct {
	Identifier string `validate:"required"`
	Password   string `validate:"required"`
}

type LoginOutput struct {
	OTPRequired bool
	Email       string
}

// Login validates credentials and sends a one-time login code by email.
// Tokens are only issued after the code is verified.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	identifier := strings.TrimSpace(in.Identifier)

	var (
		user *entity.UserLoginInfo
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.repoDB.GetUserLoginByEmail(ctx, identifier)
	} else {
		user, err = s.repoDB.GetUserLoginByUsername(ctx, identifier)
	}
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "identifier", identifier)
		return nil, goerror.NewBusiness("invalid credentials", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by identifier", "identifier", identifier, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !user.Active {
		slog.WarnContext(ctx, "user account is disabled", "user_id", user.ID)
		return nil, goerror.NewBusiness("account disabled", goerror.CodeUnauthorized)
	}

	if !s.bcrypt.Verify(user.Password, in.Password) {
		slog.WarnContext(ctx, "password user account not match", "user_id", user.ID)
		return nil, goerror.NewBusiness("invalid credentials", goerror.CodeUnauthorized)
	}

	code, err := s.otp.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate login code", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	expiresAt := s.clock.Now().Add(s.cfg.GetMinute("modules.identity.login_code_ttl_minutes"))

	// any earlier pending code for this user is invalidated in the same
	// transaction, so at most one code can be verified.
	if err := s.repoDB.ReplacePendingCodes(ctx, entity.OneTimeCode{
		ID:        s.uid.Generate(),
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: expiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo replace pending login codes", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if err := s.repoMail.SendLoginCode(ctx, LoginCodeEmail{
		Email:     user.Email,
		FullName:  user.FullName(),
		Code:      code,
		ExpiresAt: expiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to send login code email", "user_id", user.ID, "error", err)
		return nil, goerror.NewBusiness("failed to send verification code", goerror.CodeInternal)
	}

	return &LoginOutput{
		OTPRequired: true,
		Email:       user.Email,
	}, nil
}
