package notification

import (
	"context"

	"github.com/shandysiswandi/turftime/internal/notification/inbound"
	"github.com/shandysiswandi/turftime/internal/notification/outbound/email"
	"github.com/shandysiswandi/turftime/internal/notification/usecase"
	"github.com/shandysiswandi/turftime/internal/pkg/config"
	"github.com/shandysiswandi/turftime/internal/pkg/goroutine"
	"github.com/shandysiswandi/turftime/internal/pkg/instrument"
	"github.com/shandysiswandi/turftime/internal/pkg/mail"
	"github.com/shandysiswandi/turftime/internal/pkg/messaging"
	"github.com/shandysiswandi/turftime/internal/pkg/uid"
	"github.com/shandysiswandi/turftime/internal/pkg/validator"
)

type Dependency struct {
	Ctx context.Context
	// Messaging is optional; without it only the in-process handler exists.
	Messaging  messaging.Messaging
	Config     config.Config
	Instrument instrument.Instrumentation
	UUID       uid.StringID
	Goroutine  *goroutine.Manager
	Validator  validator.Validator
	Mail       mail.Mail
}

// New wires the module and returns the in-process OTP handler, which the auth
// module uses when it is not publishing to the broker.
func New(dep Dependency) (*inbound.DirectHandler, error) {
	repoMail := email.New(dep.Mail, dep.Config.GetString("mail.from"), dep.Instrument)

	uc := usecase.NewNotification(usecase.Dependency{
		Config:     dep.Config,
		Validator:  dep.Validator,
		RepoMail:   repoMail,
		Instrument: dep.Instrument,
	})

	if dep.Ctx != nil && dep.Messaging != nil {
		inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)
	}

	return inbound.NewDirectHandler(uc, dep.Instrument), nil
}
