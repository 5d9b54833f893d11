// Package config exposes read-only, typed access to service configuration.
//
// Values come from a YAML file and can be overridden by environment variables
// whose names are the upper-cased key with dots replaced by underscores
// (database.mongo.uri -> DATABASE_MONGO_URI).
package config

import (
	"io"
	"time"
)

// DurationConfig reads integer values and scales them to a time unit.
type DurationConfig interface {
	// GetSecond reads key as a number of seconds.
	GetSecond(key string) time.Duration
	// GetMinute reads key as a number of minutes.
	GetMinute(key string) time.Duration
	// GetHour reads key as a number of hours.
	GetHour(key string) time.Duration
	// GetDay reads key as a number of 24h days.
	GetDay(key string) time.Duration
}

// Config is the configuration source injected into every component.
// Missing keys yield the zero value of the requested type.
type Config interface {
	io.Closer
	DurationConfig

	GetBool(key string) bool
	GetInt(key string) int
	GetInt64(key string) int64
	GetFloat64(key string) float64
	GetString(key string) string

	// GetArray reads a comma separated value ("a,b,c"). Elements are trimmed
	// and empty elements dropped.
	GetArray(key string) []string
}
