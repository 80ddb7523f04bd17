package db

import (
	"context"

	"github.com/careplus/woundtrack/internal/identity/entity"
)

const userLoginColumns = `id, username, email, first_name, last_name, role, is_active, password`

func (s *DB) GetUserLoginByEmail(ctx context.Context, email string) (_ *entity.UserLoginInfo, err error) {
	ctx, span := s.startSpan(ctx, "GetUserLoginByEmail")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+userLoginColumns+` FROM users WHERE lower(email) = lower($1)`, email)

	var out entity.UserLoginInfo
	if err = row.Scan(&out.ID, &out.Username, &out.Email, &out.FirstName, &out.LastName,
		&out.Role, &out.Active, &out.Password); err != nil {
		return nil, s.mapError(err)
	}

	return &out, nil
}

func (s *DB) GetUserLoginByUsername(ctx context.Context, username string) (_ *entity.UserLoginInfo, err error) {
	ctx, span := s.startSpan(ctx, "GetUserLoginByUsername")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+userLoginColumns+` FROM users WHERE username = $1`, username)

	var out entity.UserLoginInfo
	if err = row.Scan(&out.ID, &out.Username, &out.Email, &out.FirstName, &out.LastName,
		&out.Role, &out.Active, &out.Password); err != nil {
		return nil, s.mapError(err)
	}

	return &out, nil
}

const userColumns = `id, username, email, first_name, last_name, role, is_active, last_login_at, created_at`

func (s *DB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)

	var out entity.User
	if err = row.Scan(&out.ID, &out.Username, &out.Email, &out.FirstName, &out.LastName,
		&out.Role, &out.Active, &out.LastLoginAt, &out.CreatedAt); err != nil {
		return nil, s.mapError(err)
	}

	return &out, nil
}

func (s *DB) GetUserByUsername(ctx context.Context, username string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByUsername")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)

	var out entity.User
	if err = row.Scan(&out.ID, &out.Username, &out.Email, &out.FirstName, &out.LastName,
		&out.Role, &out.Active, &out.LastLoginAt, &out.CreatedAt); err != nil {
		return nil, s.mapError(err)
	}

	return &out, nil
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	var out entity.User
	if err = row.Scan(&out.ID, &out.Username, &out.Email, &out.FirstName, &out.LastName,
		&out.Role, &out.Active, &out.LastLoginAt, &out.CreatedAt); err != nil {
		return nil, s.mapError(err)
	}

	return &out, nil
}

func (s *DB) GetLatestPendingCode(ctx context.Context, userID int64) (_ *entity.OneTimeCode, err error) {
	ctx, span := s.startSpan(ctx, "GetLatestPendingCode")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, `
		SELECT id, user_id, code, expires_at, verified_at, invalidated_at, created_at
		FROM one_time_codes
		WHERE user_id = $1 AND verified_at IS NULL AND invalidated_at IS NULL
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, userID)

	var out entity.OneTimeCode
	if err = row.Scan(&out.ID, &out.UserID, &out.Code, &out.ExpiresAt,
		&out.VerifiedAt, &out.InvalidatedAt, &out.CreatedAt); err != nil {
		return nil, s.mapError(err)
	}

	return &out, nil
}
