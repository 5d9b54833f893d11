package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/turftime/internal/auth"
	"github.com/shandysiswandi/turftime/internal/notification"
)

func (a *App) initModules() {
	// notification goes first: auth hands it issued codes when no broker is used.
	direct, err := notification.New(notification.Dependency{
		Ctx:        a.ctx,
		Messaging:  a.messaging,
		Config:     a.config,
		Instrument: a.ins,
		UUID:       a.uuid,
		Goroutine:  a.goroutine,
		Validator:  a.validator,
		Mail:       a.mail,
	})
	if err != nil {
		slog.Error("failed to init module notification", "error", err)
		os.Exit(1)
	}

	if err := auth.New(auth.Dependency{
		Mongo:      a.mongoDB,
		Postgres:   a.dbConn,
		Messaging:  a.messaging,
		Direct:     direct,
		Router:     a.router,
		Config:     a.config,
		Instrument: a.ins,
		UID:        a.accountID,
		HMAC:       a.hmac,
		Bcrypt:     a.bcrypt,
		Clock:      a.clock,
		Validator:  a.validator,
		JWT:        a.jwt,
	}); err != nil {
		slog.Error("failed to init module auth", "error", err)
		os.Exit(1)
	}
}
