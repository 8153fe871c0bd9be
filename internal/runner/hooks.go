package runner

// Hook receives lifecycle notifications during a run. Every field is
// optional; nil fields are skipped. Hooks observe the run, they do not
// alter it: return values are not consulted and a hook has no way to
// fail a case.
//
// Setup and teardown hooks fire only for fixtures that declare the
// corresponding procedure, mirroring the phases that actually execute.
type Hook struct {
	// BeforeAll runs once before the first iteration, with the
	// command-line arguments of the run. AfterAll runs once after the
	// last iteration; it is not called if the run never started.
	BeforeAll func(args []string)
	AfterAll  func()

	// BeforeSetup and AfterSetup bracket a fixture's setup procedure.
	// ok is false when setup aborted, skipped, or faulted.
	BeforeSetup func(fixture string)
	AfterSetup  func(fixture string, ok bool)

	// BeforeTeardown and AfterTeardown bracket a fixture's teardown.
	BeforeTeardown func(fixture string)
	AfterTeardown  func(fixture string, ok bool)

	// BeforeTest and AfterTest bracket the case body. The case name
	// carries the parameter suffix ("parse/2") for parameterized
	// instances. ok reports whether the body ran to completion;
	// recorded expectation failures do not make it false.
	BeforeTest func(fixture, caseName string)
	AfterTest  func(fixture, caseName string, ok bool)
}

func (r *Runner) callBeforeAll(args []string) {
	if r.hook != nil && r.hook.BeforeAll != nil {
		r.hook.BeforeAll(args)
	}
}

func (r *Runner) callAfterAll() {
	if r.hook != nil && r.hook.AfterAll != nil {
		r.hook.AfterAll()
	}
}

func (r *Runner) callBeforeSetup(fixture string) {
	if r.hook != nil && r.hook.BeforeSetup != nil {
		r.hook.BeforeSetup(fixture)
	}
}

func (r *Runner) callAfterSetup(fixture string, ok bool) {
	if r.hook != nil && r.hook.AfterSetup != nil {
		r.hook.AfterSetup(fixture, ok)
	}
}

func (r *Runner) callBeforeTeardown(fixture string) {
	if r.hook != nil && r.hook.BeforeTeardown != nil {
		r.hook.BeforeTeardown(fixture)
	}
}

func (r *Runner) callAfterTeardown(fixture string, ok bool) {
	if r.hook != nil && r.hook.AfterTeardown != nil {
		r.hook.AfterTeardown(fixture, ok)
	}
}

func (r *Runner) callBeforeTest(fixture, caseName string) {
	if r.hook != nil && r.hook.BeforeTest != nil {
		r.hook.BeforeTest(fixture, caseName)
	}
}

func (r *Runner) callAfterTest(fixture, caseName string, ok bool) {
	if r.hook != nil && r.hook.AfterTest != nil {
		r.hook.AfterTest(fixture, caseName, ok)
	}
}
