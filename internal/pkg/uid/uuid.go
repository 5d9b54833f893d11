package uid

import "github.com/google/uuid"

// UUID generates time-ordered UUIDv7 strings. They serve as correlation ids,
// token ids and, on the relational store, account ids.
type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

// Generate falls back to a random v4 when the v7 clock source fails.
func (*UUID) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
