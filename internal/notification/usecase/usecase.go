package usecase

import (
	"bytes"
	"context"
	"html/template"

	"github.com/shandysiswandi/turftime/internal/notification/entity"
	"github.com/shandysiswandi/turftime/internal/pkg/config"
	"github.com/shandysiswandi/turftime/internal/pkg/instrument"
	"github.com/shandysiswandi/turftime/internal/pkg/mail"
	"github.com/shandysiswandi/turftime/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

type Usecase struct {
	validator validator.Validator
	repoMail  repoMail
	ins       instrument.Instrumentation
	templates map[entity.TriggerKey]entity.Template
}

type Dependency struct {
	Config     config.Config
	Validator  validator.Validator
	RepoMail   repoMail
	Instrument instrument.Instrumentation
}

// NewNotification builds the usecase with the built-in templates. A subject
// can be overridden with modules.notification.subject.<trigger_key>.
func NewNotification(dep Dependency) *Usecase {
	templates := entity.DefaultTemplates()
	if dep.Config != nil {
		for key, tpl := range templates {
			if subject := dep.Config.GetString("modules.notification.subject." + key.String()); subject != "" {
				tpl.Subject = subject
				templates[key] = tpl
			}
		}
	}

	return &Usecase{
		validator: dep.Validator,
		repoMail:  dep.RepoMail,
		ins:       dep.Instrument,
		templates: templates,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}

func (s *Usecase) renderTemplate(name, tpl string, data map[string]any) (string, error) {
	t, err := template.New(name).Option("missingkey=zero").Parse(tpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
