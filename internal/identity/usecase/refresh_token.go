package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/careplus/woundtrack/internal/pkg/goerror"
	"github.com/careplus/woundtrack/internal/pkg/jwt"
)

type RefreshTokenInput struct {
	RefreshToken string `validate:"required"`
}

type RefreshTokenOutput struct {
	Tokens jwt.TokenPair
}

func (s *Usecase) RefreshToken(ctx context.Context, in RefreshTokenInput) (*RefreshTokenOutput, error) {
	ctx, span := s.startSpan(ctx, "RefreshToken")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	clm, err := s.jwt.VerifyRefresh(in.RefreshToken)
	if errors.Is(err, jwt.ErrTokenExpired) {
		slog.WarnContext(ctx, "refresh token expired")
		return nil, goerror.NewBusiness("refresh token has expired", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.WarnContext(ctx, "refresh token invalid", "error", err)
		return nil, goerror.NewBusiness("invalid refresh token", goerror.CodeUnauthorized)
	}

	revoked, err := s.repoCache.IsTokenRevoked(ctx, clm.ID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check token revocation", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if revoked {
		slog.WarnContext(ctx, "refresh token is revoked", "user_id", clm.UserID)
		return nil, goerror.NewBusiness("invalid refresh token", goerror.CodeUnauthorized)
	}

	user, err := s.repoDB.GetUserByID(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "user_id", clm.UserID)
		return nil, goerror.NewBusiness("invalid refresh token", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !user.Active {
		slog.WarnContext(ctx, "user account is disabled", "user_id", user.ID)
		return nil, goerror.NewBusiness("account disabled", goerror.CodeUnauthorized)
	}

	tokens, err := s.jwt.GeneratePair(user.ID, user.Email, user.Role.String())
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate token pair", "user_id", user.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &RefreshTokenOutput{Tokens: tokens}, nil
}
