package runner

import (
	"io"
	"log/slog"
	"os"

	"github.com/roach88/crucible/internal/compare"
	"github.com/roach88/crucible/internal/console"
	"github.com/roach88/crucible/internal/registry"
)

// Options carries the per-run settings resolved by the CLI layer from
// flags, configuration file, and defaults.
type Options struct {
	// Args are the raw command-line arguments, passed through to the
	// BeforeAll hook.
	Args []string

	// Filter selects instances by full name. Patterns are separated by
	// ':'; a '-' prefix negates a pattern; '?' matches one character
	// and '*' any substring. An empty filter selects everything.
	Filter string

	// AlsoRunDisabled runs cases whose name carries the DISABLED_
	// marker instead of only counting them.
	AlsoRunDisabled bool

	// Repeat is the number of iterations; negative means forever.
	Repeat int

	// Shuffle randomizes the execution order once per run, seeded by
	// RandomSeed. The same seed always yields the same order.
	Shuffle    bool
	RandomSeed int64

	// PrintTime appends per-case and total elapsed milliseconds to the
	// report.
	PrintTime bool

	// BreakOnFailure traps into the debugger on every recorded
	// assertion failure.
	BreakOnFailure bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput directs report and diagnostic text to w.
// Defaults to standard output.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

// WithColor forces colored output on or off, overriding terminal
// detection.
func WithColor(enabled bool) Option {
	return func(r *Runner) {
		r.colored = enabled
		r.coloredSet = true
	}
}

// WithClock replaces the time source. Used for testing.
func WithClock(c Clock) Option {
	return func(r *Runner) { r.clock = c }
}

// WithTokens replaces the run token generator. Used for testing.
func WithTokens(g RunTokenGenerator) Option {
	return func(r *Runner) { r.tokens = g }
}

// WithLogger attaches a structured logger for run tracing.
// The default logger discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithHook attaches lifecycle hooks.
func WithHook(h *Hook) Option {
	return func(r *Runner) { r.hook = h }
}

// WithBreakpoint replaces the debugger trap fired by break-on-failure.
// Used for testing.
func WithBreakpoint(fn func()) Option {
	return func(r *Runner) { r.breakpoint = fn }
}

// WithAbort replaces process termination on unrecoverable errors.
// Used for testing.
func WithAbort(fn func()) Option {
	return func(r *Runner) { r.abort = fn }
}

// New creates a runner over the given registries.
func New(reg *registry.Registry, types *compare.Registry, opts ...Option) *Runner {
	r := &Runner{
		reg:   reg,
		types: types,
		clock: systemClock{},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	if !r.coloredSet {
		r.colored = console.Colorable(r.out)
	}
	if r.tokens == nil {
		r.tokens = UUIDv7Generator{}
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}
