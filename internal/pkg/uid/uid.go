// Package uid generates string identifiers for entities and correlation ids.
package uid

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}
