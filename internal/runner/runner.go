// Package runner drives registered case instances through their
// lifecycle and renders the console report.
//
// The run walks the registry's traversal order (or a seeded random
// permutation of it), dispatching each filter-matched instance through
// setup, body, and teardown under the fault guard. Failure always takes
// precedence over skip when both were recorded. The whole walk is
// sequential on one goroutine; cases must not assume any concurrency.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/crucible/internal/canon"
	"github.com/roach88/crucible/internal/compare"
	"github.com/roach88/crucible/internal/console"
	"github.com/roach88/crucible/internal/harness"
	"github.com/roach88/crucible/internal/registry"
)

// outcomeDigestDomain separates run outcome digests from every other
// hash use.
const outcomeDigestDomain = "crucible/outcome/v1"

// Runner executes registered cases. Create one with New.
type Runner struct {
	reg   *registry.Registry
	types *compare.Registry

	out        io.Writer
	colored    bool
	coloredSet bool
	clock      Clock
	tokens     RunTokenGenerator
	logger     *slog.Logger
	hook       *Hook
	breakpoint func()
	abort      func()
}

// Result aggregates a whole run across every iteration.
type Result struct {
	// Iterations is the number of completed iterations.
	Iterations int

	// Failed is the cumulative number of failed instances. Unlike a
	// per-iteration count, a failure in any iteration keeps the run
	// red.
	Failed int

	// Cancelled reports that the run stopped early through context
	// cancellation.
	Cancelled bool

	// Digests holds one canonical outcome digest per iteration. Equal
	// digests mean the iteration produced identical per-case outcomes.
	Digests []string

	// Flaky is set when iterations disagreed on at least one outcome.
	Flaky bool
}

// ExitCode maps the result onto the process exit status: zero only for
// a complete run in which every dispatched instance passed.
func (r Result) ExitCode() int {
	if r.Failed > 0 || r.Cancelled {
		return 1
	}
	return 0
}

// iterationResult collects one iteration's counters and per-case
// outcome records.
type iterationResult struct {
	counters  counters
	cancelled bool
	outcomes  []any
}

func (it *iterationResult) record() map[string]any {
	return map[string]any{"cases": it.outcomes}
}

// Run executes every selected instance, honoring repeat and shuffle,
// and returns the aggregated result. Cancelling ctx stops the run
// after the instance in flight.
func (r *Runner) Run(ctx context.Context, opts Options) Result {
	token := r.tokens.NewRunToken()
	logger := r.logger.With("run_id", token)

	cases := r.reg.Cases()
	if opts.Shuffle {
		shuffleCases(cases, newLCG(uint64(opts.RandomSeed)))
	}

	logger.Info("run starting",
		"registered", len(cases),
		"filter", opts.Filter,
		"repeat", opts.Repeat,
		"shuffle", opts.Shuffle,
		"seed", opts.RandomSeed)

	rep := newReporter(console.NewPrinter(r.out, r.colored), opts.PrintTime)

	r.callBeforeAll(opts.Args)

	res := Result{}
	if opts.Repeat != 0 {
		// Loop markers appear whenever more than one iteration can
		// happen, including repeat-forever.
		markers := opts.Repeat != 1
		for iteration := 1; ; iteration++ {
			if markers {
				rep.loopStart(iteration, opts.Repeat)
			}
			itr := r.runOnce(ctx, cases, opts, rep, logger)
			res.Iterations = iteration
			res.Failed += itr.counters.failed
			res.Cancelled = itr.cancelled
			if digest, err := canon.Digest(outcomeDigestDomain, itr.record()); err == nil {
				res.Digests = append(res.Digests, digest)
			} else {
				logger.Warn("outcome digest failed", "error", err)
			}
			last := itr.cancelled || (opts.Repeat > 0 && iteration >= opts.Repeat)
			if markers {
				rep.loopEnd(iteration, opts.Repeat, last)
			}
			if last {
				break
			}
		}
	}
	r.callAfterAll()

	// A cancelled iteration is partial; its digest cannot be compared
	// against complete ones.
	if !res.Cancelled {
		for _, d := range res.Digests {
			if d != res.Digests[0] {
				res.Flaky = true
				break
			}
		}
	}
	if res.Flaky {
		logger.Warn("case outcomes varied between iterations",
			"iterations", res.Iterations)
	}
	logger.Info("run finished",
		"iterations", res.Iterations,
		"failed", res.Failed,
		"cancelled", res.Cancelled)
	return res
}

// List prints every registered instance grouped by fixture instead of
// running anything.
func (r *Runner) List() {
	rep := newReporter(console.NewPrinter(r.out, r.colored), false)
	rep.list(r.reg.Cases(), r.types)
}

func (r *Runner) runOnce(ctx context.Context, cases []registry.Case, opts Options, rep *reporter, logger *slog.Logger) iterationResult {
	it := iterationResult{}
	rep.header(r.reg.Len())
	start := r.clock.Now()

	var failedNames []string
	for i := range cases {
		if err := ctx.Err(); err != nil {
			it.cancelled = true
			logger.Warn("run interrupted", "reason", err)
			break
		}

		c := &cases[i]
		name := c.FullName()
		if !matchesFilter(opts.Filter, name) {
			continue
		}
		it.counters.total++
		if c.Disabled() && !opts.AlsoRunDisabled {
			it.counters.disabled++
			continue
		}

		rep.caseStart(name)
		status, elapsed := r.runCase(c, opts)
		rep.caseResult(name, status, elapsed)
		logger.Debug("case finished",
			"case", name,
			"outcome", status.String(),
			"elapsed_ms", elapsed.Milliseconds())

		switch status {
		case statusFailed:
			it.counters.failed++
			failedNames = append(failedNames, name)
		case statusSkipped:
			it.counters.skipped++
		default:
			it.counters.passed++
		}
		it.outcomes = append(it.outcomes, map[string]any{
			"name":    name,
			"outcome": status.String(),
		})
	}

	rep.summary(it.counters, r.reg.Len(), r.clock.Now().Sub(start), failedNames)
	return it
}

// runCase drives one instance through its phases. Teardown runs
// whenever setup completed, regardless of how the body ended; a setup
// that aborted, skipped, or faulted suppresses both body and teardown.
func (r *Runner) runCase(c *registry.Case, opts Options) (caseStatus, time.Duration) {
	start := r.clock.Now()

	t := harness.NewT(harness.Info{
		Fixture:    c.Fixture,
		Case:       c.Name,
		ParamIndex: c.ParamIndex,
		Param:      c.Param,
		ParamCount: c.ParamCount,
	}, harness.Config{
		Out:            r.out,
		Types:          r.types,
		BreakOnFailure: opts.BreakOnFailure,
		Breakpoint:     r.breakpoint,
		Abort:          r.abort,
	})
	guard := &harness.Guard{}
	fixture, _ := r.reg.FixtureOf(c.Fixture)
	display := hookCaseName(c)

	setupOK := true
	if fixture.Setup != nil {
		outcome, fault := guard.Run(t, func(t *harness.T) {
			r.callBeforeSetup(c.Fixture)
			fixture.Setup(t)
		})
		if fault != nil {
			t.FailFault("setup", fault)
		}
		r.callAfterSetup(c.Fixture, outcome == harness.Completed)
		setupOK = outcome == harness.Completed
	}

	if setupOK {
		outcome, fault := guard.Run(t, func(t *harness.T) {
			r.callBeforeTest(c.Fixture, display)
			c.Body(t)
		})
		if fault != nil {
			t.FailFault("body", fault)
		}
		r.callAfterTest(c.Fixture, display, outcome == harness.Completed)

		if fixture.Teardown != nil {
			outcome, fault := guard.Run(t, func(t *harness.T) {
				r.callBeforeTeardown(c.Fixture)
				fixture.Teardown(t)
			})
			if fault != nil {
				t.FailFault("teardown", fault)
			}
			r.callAfterTeardown(c.Fixture, outcome == harness.Completed)
		}
	}

	elapsed := r.clock.Now().Sub(start)
	switch {
	case t.Failed():
		return statusFailed, elapsed
	case t.Skipped():
		return statusSkipped, elapsed
	default:
		return statusPassed, elapsed
	}
}

// hookCaseName is the case identifier passed to test hooks: the case
// name with the parameter suffix, without the fixture prefix.
func hookCaseName(c *registry.Case) string {
	if c.ParamCount > 0 {
		return fmt.Sprintf("%s/%d", c.Name, c.ParamIndex)
	}
	return c.Name
}
