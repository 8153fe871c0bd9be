package runner

import "time"

// Clock supplies the timestamps used for per-case and total timing.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }
