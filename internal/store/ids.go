package store

import "github.com/google/uuid"

// IDGenerator assigns IDs to journal rows.
// Tests inject a deterministic generator.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-ordered UUIDv7 strings.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
