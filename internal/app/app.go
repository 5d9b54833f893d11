package app

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/turftime/internal/pkg/clock"
	"github.com/shandysiswandi/turftime/internal/pkg/config"
	"github.com/shandysiswandi/turftime/internal/pkg/goroutine"
	"github.com/shandysiswandi/turftime/internal/pkg/hash"
	"github.com/shandysiswandi/turftime/internal/pkg/idempotency"
	"github.com/shandysiswandi/turftime/internal/pkg/instrument"
	"github.com/shandysiswandi/turftime/internal/pkg/jwt"
	"github.com/shandysiswandi/turftime/internal/pkg/mail"
	"github.com/shandysiswandi/turftime/internal/pkg/messaging"
	"github.com/shandysiswandi/turftime/internal/pkg/router"
	"github.com/shandysiswandi/turftime/internal/pkg/uid"
	"github.com/shandysiswandi/turftime/internal/pkg/validator"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	driverMongo    = "mongo"
	driverPostgres = "postgres"
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
	hmac      hash.Hash
	bcrypt    hash.Hash
	uuid      uid.StringID
	// accountID generates account ids: ObjectID on Mongo, UUID on Postgres.
	accountID uid.StringID
	jwt       jwt.JWT

	// resources
	mongoClient *mongo.Client
	mongoDB     *mongo.Database
	dbConn      *pgxpool.Pool
	cacheConn   *redis.Client
	idemp       idempotency.Idempotency
	mail        mail.Mail
	messaging   messaging.Messaging

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
	app.initCache()
	app.initMail()
	app.initMessaging()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
