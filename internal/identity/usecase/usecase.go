package usecase

import (
	"context"
	"time"

	"github.com/careplus/woundtrack/internal/identity/entity"
	"github.com/careplus/woundtrack/internal/pkg/clock"
	"github.com/careplus/woundtrack/internal/pkg/config"
	"github.com/careplus/woundtrack/internal/pkg/hash"
	"github.com/careplus/woundtrack/internal/pkg/instrument"
	"github.com/careplus/woundtrack/internal/pkg/jwt"
	"github.com/careplus/woundtrack/internal/pkg/otp"
	"github.com/careplus/woundtrack/internal/pkg/uid"
	"github.com/careplus/woundtrack/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type LoginCodeEmail struct {
	Email     string
	FullName  string
	Code      string
	ExpiresAt time.Time
}

type repoMail interface {
	SendLoginCode(ctx context.Context, msg LoginCodeEmail) error
}

type repoCache interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

type repoDB interface {
	GetUserLoginByEmail(ctx context.Context, email string) (*entity.UserLoginInfo, error)
	GetUserLoginByUsername(ctx context.Context, username string) (*entity.UserLoginInfo, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	GetLatestPendingCode(ctx context.Context, userID int64) (*entity.OneTimeCode, error)

	ReplacePendingCodes(ctx context.Context, code entity.OneTimeCode) error
	MarkCodeVerified(ctx context.Context, codeID int64, now time.Time) (bool, error)
	UpdateLastLogin(ctx context.Context, userID int64, now time.Time) error
}

type Usecase struct {
	repoDB    repoDB
	repoMail  repoMail
	repoCache repoCache
	validator validator.Validator
	cfg       config.Config
	bcrypt    hash.Hash
	uid       uid.NumberID
	otp       otp.Generator
	clock     clock.Clocker
	jwt       jwt.JWT
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	RepoMail   repoMail
	RepoCache  repoCache
	Validator  validator.Validator
	Config     config.Config
	Bcrypt     hash.Hash
	UID        uid.NumberID
	OTP        otp.Generator
	Clock      clock.Clocker
	JWT        jwt.JWT
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		repoMail:  dep.RepoMail,
		repoCache: dep.RepoCache,
		validator: dep.Validator,
		cfg:       dep.Config,
		bcrypt:    dep.Bcrypt,
		uid:       dep.UID,
		otp:       dep.OTP,
		clock:     dep.Clock,
		jwt:       dep.JWT,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}
