package app

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/shandysiswandi/turftime/internal/auth/outbound/db"
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
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func (a *App) initConfig() {
	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "/config/config.yaml"
		if os.Getenv("LOCAL") == "true" {
			path = "./config/config.yaml"
		}
	}

	cfg, err := config.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("app.tz"))

	a.config = cfg
}

func (a *App) initInstrument() {
	ins, err := instrument.New(context.Background(), &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
	})
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		os.Exit(1)
	}
	a.ins = ins
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.goroutine = goroutine.NewManager(a.config.GetInt("app.server.max_goroutine"))
	a.hmac = hash.NewHMACSHA256(a.config.GetString("hash.hmac.secret"))
	a.bcrypt = hash.NewBcrypt(a.config.GetInt("hash.bcrypt.cost"), a.config.GetString("hash.bcrypt.pepper"))

	a.accountID = uid.NewObjectID()
	if a.databaseDriver() == driverPostgres {
		a.accountID = a.uuid
	}

	validator, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = validator
}

func (a *App) initJWT() {
	defaultJWT, err := newJWT(a.config, a.clock, a.uuid)
	if err != nil {
		slog.Error("failed to init jwt token", "error", err)
		os.Exit(1)
	}
	a.jwt = defaultJWT
}

func newJWT(cfg config.Config, clk clock.Clocker, id uid.StringID) (*jwt.Symmetric, error) {
	ttl := cfg.GetDay("jwt.ttl_days")
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	return jwt.NewHS512(jwt.Config{
		Secret:    []byte(cfg.GetString("jwt.secret")),
		Issuer:    cfg.GetString("jwt.issuer"),
		Audiences: cfg.GetArray("jwt.audiences"),
		TTL:       ttl,
		Clock:     clk,
		UUID:      id,
	})
}

func (a *App) databaseDriver() string {
	driver := strings.ToLower(strings.TrimSpace(a.config.GetString("database.driver")))
	if driver == "" {
		return driverMongo
	}
	return driver
}

func (a *App) initDatabase() {
	switch driver := a.databaseDriver(); driver {
	case driverMongo:
		a.initMongo()
	case driverPostgres:
		a.initPostgres()
	default:
		slog.Error("unknown database driver", "driver", driver)
		os.Exit(1)
	}
}

func (a *App) initMongo() {
	opts := options.Client().ApplyURI(a.config.GetString("database.mongo.uri"))
	if v := a.config.GetInt("database.mongo.max_pool_size"); v > 0 {
		opts.SetMaxPoolSize(uint64(v))
	}
	if v := a.config.GetSecond("database.mongo.connect_timeout_seconds"); v > 0 {
		opts.SetConnectTimeout(v)
	}

	client, err := mongo.Connect(a.ctx, opts)
	if err != nil {
		slog.Error("failed to connect to mongo", "error", err)
		os.Exit(1)
	}

	pingCtx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		slog.Error("failed to ping mongo", "error", err)
		os.Exit(1)
	}

	database := client.Database(a.config.GetString("database.mongo.name"))
	if err := db.NewMongo(database, a.clock, a.ins).EnsureIndexes(pingCtx); err != nil {
		slog.Error("failed to ensure mongo indexes", "error", err)
		os.Exit(1)
	}

	a.mongoClient = client
	a.mongoDB = database
}

func (a *App) initPostgres() {
	dsn := a.config.GetString("database.postgres.url")

	if a.config.GetBool("database.postgres.migrate") {
		if err := db.MigratePostgres(a.ctx, dsn); err != nil {
			slog.Error("failed to migrate DB", "error", err)
			os.Exit(1)
		}
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		slog.Error("failed to parse DB connection string.", "error", err)
		os.Exit(1)
	}

	//nolint:gosec // pool sizes are small config values
	config.MaxConns = int32(a.config.GetInt("database.postgres.pool.max_conns"))
	//nolint:gosec // pool sizes are small config values
	config.MinConns = int32(a.config.GetInt("database.postgres.pool.min_conns"))
	config.MaxConnLifetime = a.config.GetSecond("database.postgres.pool.max_conn_lifetime_seconds")
	config.MaxConnIdleTime = a.config.GetSecond("database.postgres.pool.max_conn_idle_seconds")
	config.HealthCheckPeriod = a.config.GetSecond("database.postgres.pool.health_check_period_seconds")

	pool, err := pgxpool.NewWithConfig(a.ctx, config)
	if err != nil {
		slog.Error("failed to create DB connection pool", "error", err)
		os.Exit(1)
	}

	pingCtx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		slog.Error("failed to ping DB", "error", err)
		os.Exit(1)
	}

	a.dbConn = pool
}

// initCache connects Redis only when idempotency keys are enabled.
func (a *App) initCache() {
	if !a.config.GetBool("redis.enabled") {
		return
	}

	opt, err := redis.ParseURL(a.config.GetString("redis.url"))
	if err != nil {
		slog.Error("failed to parse redis url", "error", err)
		os.Exit(1)
	}

	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Error("failed to init redis", "error", err)
		os.Exit(1)
	}

	a.cacheConn = rdb
	a.idemp = idempotency.New(a.cacheConn)
}

func (a *App) initMail() {
	mail, err := mail.NewSMTP(mail.SMTPConfig{
		Host:               a.config.GetString("mail.host"),
		Port:               a.config.GetInt("mail.port"),
		Username:           a.config.GetString("mail.username"),
		Password:           a.config.GetString("mail.password"),
		From:               a.config.GetString("mail.from"),
		Encryption:         a.config.GetString("mail.encryption"),
		InsecureSkipVerify: a.config.GetBool("mail.insecure_skip_verify"),
	})
	if err != nil {
		slog.Error("failed to init mail", "error", err)
		os.Exit(1)
	}

	a.mail = mail
}

// initMessaging connects NATS only when it is enabled. Without it issued codes
// go straight to the notification module.
func (a *App) initMessaging() {
	if !a.config.GetBool("messaging.enabled") {
		return
	}

	client, err := messaging.NewNATS(messaging.NATSConfig{
		URL:           a.config.GetString("messaging.nats.url"),
		Name:          a.config.GetString("messaging.nats.name"),
		ReconnectWait: a.config.GetSecond("messaging.nats.reconnect_wait_seconds"),
		MaxReconnects: a.config.GetInt("messaging.nats.max_reconnects"),
	})
	if err != nil {
		slog.Error("failed to init messaging", "error", err)
		os.Exit(1)
	}

	a.messaging = client
}

func (a *App) initHTTPServer() {
	a.router = router.NewRouter(router.Config{
		Config:      a.config,
		UUID:        a.uuid,
		JWT:         a.jwt,
		Instrument:  a.ins,
		Idempotency: a.idemp,
	})

	routerWithCORS := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("app.server.cors"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(a.router)

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.http.address"),
		Handler:           routerWithCORS,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}
}

func (a *App) initClosers() {
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
		{
			name: "Instrument",
			fn: func(ctx context.Context) error {
				return a.ins.Shutdown(ctx)
			},
		},
		{
			name: "Messaging",
			fn: func(context.Context) error {
				if a.messaging == nil {
					return nil
				}
				return a.messaging.Close()
			},
		},
		{
			name: "Mail",
			fn: func(context.Context) error {
				return a.mail.Close()
			},
		},
		{
			name: "Redis",
			fn: func(context.Context) error {
				if a.cacheConn == nil {
					return nil
				}
				return a.cacheConn.Close()
			},
		},
		{
			name: "Mongo",
			fn: func(ctx context.Context) error {
				if a.mongoClient == nil {
					return nil
				}
				return a.mongoClient.Disconnect(ctx)
			},
		},
		{
			name: "Database",
			fn: func(context.Context) error {
				if a.dbConn != nil {
					a.dbConn.Close()
				}

				return nil
			},
		},
		{
			name: "Config",
			fn: func(context.Context) error {
				return a.config.Close()
			},
		},
	}
}
