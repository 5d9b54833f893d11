package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	libOTP "github.com/pquerna/otp"
	"github.com/shandysiswandi/turftime/internal/auth/challenge"
	"github.com/shandysiswandi/turftime/internal/auth/inbound"
	"github.com/shandysiswandi/turftime/internal/auth/outbound/db"
	"github.com/shandysiswandi/turftime/internal/auth/outbound/mq"
	"github.com/shandysiswandi/turftime/internal/auth/outbound/notifier"
	"github.com/shandysiswandi/turftime/internal/auth/usecase"
	"github.com/shandysiswandi/turftime/internal/pkg/clock"
	"github.com/shandysiswandi/turftime/internal/pkg/config"
	"github.com/shandysiswandi/turftime/internal/pkg/hash"
	"github.com/shandysiswandi/turftime/internal/pkg/instrument"
	"github.com/shandysiswandi/turftime/internal/pkg/jwt"
	"github.com/shandysiswandi/turftime/internal/pkg/messaging"
	"github.com/shandysiswandi/turftime/internal/pkg/otp"
	"github.com/shandysiswandi/turftime/internal/pkg/router"
	"github.com/shandysiswandi/turftime/internal/pkg/uid"
	"github.com/shandysiswandi/turftime/internal/pkg/validator"
	"github.com/shandysiswandi/turftime/internal/shared/event"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	NotifierDirect    = "direct"
	NotifierMessaging = "messaging"

	defaultOTPTTLMinutes = 5
)

var (
	ErrNoStore         = errors.New("auth: one of Mongo or Postgres is required")
	ErrNoNotifier      = errors.New("auth: notifier is not available")
	ErrUnknownNotifier = errors.New("auth: unknown notifier")
)

// DirectSender is the in-process receiver of issued codes, normally the
// notification module.
type DirectSender interface {
	SendOTP(ctx context.Context, msg event.OTPIssuedMessage) error
}

type Dependency struct {
	// Exactly one store is used; Mongo wins when both are set.
	Mongo    *mongo.Database
	Postgres *pgxpool.Pool

	// Messaging is required when modules.auth.notifier is "messaging",
	// Direct otherwise.
	Messaging messaging.Messaging
	Direct    DirectSender

	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.StringID               `validate:"required"`
	HMAC       hash.Hash                  `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	ttl := dep.Config.GetMinute("modules.auth.otp_ttl_minutes")
	if ttl <= 0 {
		ttl = defaultOTPTTLMinutes * time.Minute
	}

	ucDep := usecase.Dependency{
		Challenge:  challenge.NewEngine(otp.NewNumeric(libOTP.DigitsSix), dep.HMAC, dep.Clock, ttl),
		Validator:  dep.Validator,
		Password:   dep.Bcrypt,
		UID:        dep.UID,
		JWT:        dep.JWT,
		Instrument: dep.Instrument,
	}

	switch {
	case dep.Mongo != nil:
		ucDep.RepoDB = db.NewMongo(dep.Mongo, dep.Clock, dep.Instrument)
	case dep.Postgres != nil:
		ucDep.RepoDB = db.NewPostgres(dep.Postgres, dep.Clock, dep.Instrument)
	default:
		return ErrNoStore
	}

	switch name := strings.TrimSpace(dep.Config.GetString("modules.auth.notifier")); name {
	case NotifierMessaging:
		if dep.Messaging == nil {
			return ErrNoNotifier
		}
		ucDep.RepoNotifier = mq.NewMessaging(dep.Messaging, dep.Instrument)
	case NotifierDirect, "":
		if dep.Direct == nil {
			return ErrNoNotifier
		}
		ucDep.RepoNotifier = notifier.NewDirect(dep.Direct, dep.Instrument)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownNotifier, name)
	}

	inbound.RegisterHTTPEndpoint(dep.Router, usecase.New(ucDep))

	return nil
}
