package identity

import (
	"github.com/careplus/woundtrack/internal/identity/inbound"
	"github.com/careplus/woundtrack/internal/identity/outbound/cache"
	"github.com/careplus/woundtrack/internal/identity/outbound/db"
	"github.com/careplus/woundtrack/internal/identity/outbound/email"
	"github.com/careplus/woundtrack/internal/identity/usecase"
	"github.com/careplus/woundtrack/internal/pkg/clock"
	"github.com/careplus/woundtrack/internal/pkg/config"
	"github.com/careplus/woundtrack/internal/pkg/hash"
	"github.com/careplus/woundtrack/internal/pkg/instrument"
	"github.com/careplus/woundtrack/internal/pkg/jwt"
	"github.com/careplus/woundtrack/internal/pkg/mail"
	"github.com/careplus/woundtrack/internal/pkg/otp"
	"github.com/careplus/woundtrack/internal/pkg/router"
	"github.com/careplus/woundtrack/internal/pkg/uid"
	"github.com/careplus/woundtrack/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	CacheConn  *redis.Client              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	OTP        otp.Generator              `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAuth := db.NewDB(dep.DBConn, dep.Instrument)
	repoMail := email.New(dep.Mail, dep.Instrument)
	repoCache := cache.NewCache(dep.CacheConn, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:     dbAuth,
		RepoMail:   repoMail,
		RepoCache:  repoCache,
		Validator:  dep.Validator,
		Config:     dep.Config,
		Bcrypt:     dep.Bcrypt,
		UID:        dep.UID,
		OTP:        dep.OTP,
		Clock:      dep.Clock,
		JWT:        dep.JWT,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
