// Package db holds the account stores. Postgres and Mongo implement the same
// set of methods; the app picks one with database.driver.
package db

import (
	"errors"

	"github.com/shandysiswandi/turftime/internal/pkg/goerror"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "auth.outbound.db"

func endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
