package runner

import "github.com/google/uuid"

// RunTokenGenerator mints the identifier attached to every log line of
// a run, so interleaved or archived logs can be grouped by run.
type RunTokenGenerator interface {
	NewRunToken() string
}

// UUIDv7Generator issues time-ordered UUIDs. Tokens from consecutive
// runs sort chronologically.
type UUIDv7Generator struct{}

func (UUIDv7Generator) NewRunToken() string {
	return uuid.Must(uuid.NewV7()).String()
}
