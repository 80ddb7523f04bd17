package app

import (
	"context"
	"net/http"

	"github.com/careplus/woundtrack/internal/pkg/clock"
	"github.com/careplus/woundtrack/internal/pkg/config"
	"github.com/careplus/woundtrack/internal/pkg/goroutine"
	"github.com/careplus/woundtrack/internal/pkg/hash"
	"github.com/careplus/woundtrack/internal/pkg/instrument"
	"github.com/careplus/woundtrack/internal/pkg/jwt"
	"github.com/careplus/woundtrack/internal/pkg/mail"
	"github.com/careplus/woundtrack/internal/pkg/messaging"
	"github.com/careplus/woundtrack/internal/pkg/otp"
	"github.com/careplus/woundtrack/internal/pkg/router"
	"github.com/careplus/woundtrack/internal/pkg/storage"
	"github.com/careplus/woundtrack/internal/pkg/uid"
	"github.com/careplus/woundtrack/internal/pkg/validator"
	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	otp       otp.Generator
	jwt       jwt.JWT

	// resources
	dbConn    *pgxpool.Pool
	cacheConn *redis.Client
	mail      mail.Mail
	messaging messaging.Messaging
	storage   storage.Storage
	casbin    *casbin.Enforcer

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initMigration()
	app.initCache()
	app.initMail()
	app.initStorage()
	app.initMessaging()
	app.initCasbin()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
