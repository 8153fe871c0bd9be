// Package harness carries the per-instance state of a running test case
// and the guard that isolates case code from the run loop.
//
// A T is created for each case instance and handed to every phase of its
// lifecycle. Assertions, skips, and panics inside a phase never unwind
// past the guard; they are translated into an outcome the runner
// inspects.
package harness

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/roach88/crucible/internal/compare"
)

// Info identifies the case instance a T belongs to.
type Info struct {
	// Fixture and Case name the registered case.
	Fixture string
	Case    string

	// ParamIndex and Param carry the bound parameter for instances
	// expanded from a parameterized case. ParamCount is the total
	// number of instances the case expanded into; zero means the case
	// is not parameterized.
	ParamIndex int
	Param      any
	ParamCount int
}

// Config wires a T to its surroundings.
type Config struct {
	// Out receives assertion diagnostics. Required.
	Out io.Writer

	// Types resolves assertion operands. Required.
	Types *compare.Registry

	// BreakOnFailure traps into the debugger on every recorded
	// failure, before any abort.
	BreakOnFailure bool

	// Breakpoint replaces the debugger trap. Used for testing;
	// defaults to runtime.Breakpoint.
	Breakpoint func()

	// Abort replaces process termination for unrecoverable situations:
	// an unresolvable operand type, or an aborting call from a
	// goroutine the guard does not cover. Used for testing; defaults
	// to exiting the process with code 2.
	Abort func()
}

// T is the handle passed to every phase of a case instance.
//
// Thread-safety: T belongs to the goroutine the runner executes phases
// on. Expectations from other goroutines record the failure but cannot
// stop the phase; aborting calls (the Assert family and Skip) from
// other goroutines terminate the process, because the guard can only
// unwind its own stack.
type T struct {
	info Info

	out   io.Writer
	types *compare.Registry

	breakOnFailure bool
	breakpoint     func()
	abort          func()

	owner   int64
	failed  bool
	skipped bool
}

// NewT creates the handle for one case instance. The caller must invoke
// it on the goroutine that will run the instance's phases.
func NewT(info Info, cfg Config) *T {
	t := &T{
		info:           info,
		out:            cfg.Out,
		types:          cfg.Types,
		breakOnFailure: cfg.BreakOnFailure,
		breakpoint:     cfg.Breakpoint,
		abort:          cfg.Abort,
		owner:          goroutineID(),
	}
	if t.breakpoint == nil {
		t.breakpoint = runtime.Breakpoint
	}
	if t.abort == nil {
		t.abort = func() { os.Exit(2) }
	}
	return t
}

// Name returns the full instance name: "fixture.case" for plain cases,
// "fixture.case/index" for parameterized instances.
func (t *T) Name() string {
	if t.info.ParamCount > 0 {
		return fmt.Sprintf("%s.%s/%d", t.info.Fixture, t.info.Case, t.info.ParamIndex)
	}
	return fmt.Sprintf("%s.%s", t.info.Fixture, t.info.Case)
}

// FixtureName returns the fixture the instance belongs to.
func (t *T) FixtureName() string { return t.info.Fixture }

// CaseName returns the case name without the fixture prefix.
func (t *T) CaseName() string { return t.info.Case }

// Param returns the bound parameter, or nil for plain cases.
func (t *T) Param() any { return t.info.Param }

// ParamIndex returns the instance's parameter index, or -1 for plain
// cases.
func (t *T) ParamIndex() int {
	if t.info.ParamCount == 0 {
		return -1
	}
	return t.info.ParamIndex
}

// Failed reports whether any expectation or assertion has failed so
// far, or a phase faulted.
func (t *T) Failed() bool { return t.failed }

// Skipped reports whether Skip has been called.
func (t *T) Skipped() bool { return t.skipped }

// Skip marks the instance skipped and aborts the current phase.
// When called during setup, the body and teardown do not run.
func (t *T) Skip(args ...any) {
	t.skipped = true
	if len(args) > 0 {
		fmt.Fprintf(t.out, "%s: skipped: %s\n", callSite(2), fmt.Sprint(args...))
	}
	t.abortPhase()
}

// FailFault records a caught fault as a failure and writes its
// diagnostic: the panic value and the stack captured at recovery.
func (t *T) FailFault(phase string, f *Fault) {
	t.failed = true
	fmt.Fprintf(t.out, "panic during %s: %v\n%s", phase, f.Value, f.Stack)
}

// abortPhase unwinds the current phase through the guard. Calls from a
// goroutine other than the owner cannot reach the guard and terminate
// the process instead.
func (t *T) abortPhase() {
	if goroutineID() != t.owner {
		fmt.Fprintf(t.out, "fatal: phase aborted from a goroutine the guard does not cover\n")
		t.abort()
		return
	}
	panic(phaseAbort{})
}

// fatalConfig reports an unresolvable comparison and terminates.
// A missing comparator is a configuration error of the test binary, not
// a failure of the case under test.
func (t *T) fatalConfig(site string, err error) {
	fmt.Fprintf(t.out, "%s: cannot compare: %v\n", site, err)
	if names := t.types.Names(); len(names) > 0 {
		fmt.Fprintf(t.out, "  registered types: %v\n", names)
	}
	t.abort()
}

// callSite formats the caller's file and line, trimmed to the basename.
func callSite(skip int) string {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "???:0"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(file), line)
}
