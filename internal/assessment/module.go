package assessment

import (
	"github.com/careplus/woundtrack/internal/assessment/inbound"
	"github.com/careplus/woundtrack/internal/assessment/outbound/db"
	"github.com/careplus/woundtrack/internal/assessment/usecase"
	"github.com/careplus/woundtrack/internal/pkg/clock"
	"github.com/careplus/woundtrack/internal/pkg/config"
	"github.com/careplus/woundtrack/internal/pkg/instrument"
	"github.com/careplus/woundtrack/internal/pkg/router"
	"github.com/careplus/woundtrack/internal/pkg/storage"
	"github.com/careplus/woundtrack/internal/pkg/uid"
	"github.com/careplus/woundtrack/internal/pkg/validator"
	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Enforcer   *casbin.Enforcer           `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Storage    storage.Storage            `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAssessment := db.NewDB(dep.DBConn, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:     dbAssessment,
		Validator:  dep.Validator,
		Config:     dep.Config,
		Storage:    dep.Storage,
		UID:        dep.UID,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
		Enforcer:   dep.Enforcer,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
