package testutil

import (
	"fmt"

	"github.com/roach88/crucible/internal/runner"
)

// HookRecorder captures lifecycle hook invocations in order.
//
// Each invocation is rendered as one line naming the hook and its
// arguments, so tests can compare a whole sequence with a single
// assertion.
//
// Thread-safety: the runner fires all hooks from one goroutine; do not
// read Events while a run is in flight.
type HookRecorder struct {
	events []string
}

// Hook returns a hook set whose callbacks append to the recorder.
func (r *HookRecorder) Hook() *runner.Hook {
	return &runner.Hook{
		BeforeAll:      func(args []string) { r.record("before_all(%v)", args) },
		AfterAll:       func() { r.record("after_all()") },
		BeforeSetup:    func(fixture string) { r.record("before_setup(%s)", fixture) },
		AfterSetup:     func(fixture string, ok bool) { r.record("after_setup(%s, ok=%t)", fixture, ok) },
		BeforeTeardown: func(fixture string) { r.record("before_teardown(%s)", fixture) },
		AfterTeardown:  func(fixture string, ok bool) { r.record("after_teardown(%s, ok=%t)", fixture, ok) },
		BeforeTest:     func(fixture, caseName string) { r.record("before_test(%s, %s)", fixture, caseName) },
		AfterTest:      func(fixture, caseName string, ok bool) { r.record("after_test(%s, %s, ok=%t)", fixture, caseName, ok) },
	}
}

// Events returns the recorded invocations in order.
func (r *HookRecorder) Events() []string {
	return r.events
}

func (r *HookRecorder) record(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}
