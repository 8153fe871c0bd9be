// Package crucible is a self-registering test framework for standalone
// test binaries.
//
// Cases declare themselves against a Suite, are collected into an
// ordered registry, and run under a harness that isolates each case so
// a panic in one does not abort the rest. The run entry point parses
// GoogleTest-style flags, executes every selected instance, renders a
// colorized report, and returns the process exit code.
//
// # Declaring Tests
//
// A case belongs to a fixture group named by its first argument. The
// fixture may optionally declare shared setup and teardown, which run
// freshly around every case of the group:
//
//	s := crucible.New()
//	s.Fixture("math", crucible.FixtureFuncs{
//		Setup:    func(t *crucible.T) { /* runs before each case */ },
//		Teardown: func(t *crucible.T) { /* runs after each case */ },
//	})
//	s.Test("math", "add", func(t *crucible.T) {
//		t.AssertEq(2+2, 4)
//	})
//	os.Exit(s.Run(os.Args, os.Stdout, nil))
//
// A parameterized case expands into one independent instance per
// value; each instance observes its own value and index:
//
//	s.TestP("math", "double", []int{1, 2, 3}, func(t *crucible.T) {
//		n := t.Param().(int)
//		t.ExpectEq(n*2, n+n)
//	})
//
// The package-level functions mirror the Suite methods on a shared
// default suite, so a test binary can be assembled across files
// without threading a Suite value through them; crucible.Main runs the
// default suite and exits.
//
// # Assertions
//
// T carries two assertion families: Expect records a failure and
// continues the phase, Assert records a failure and aborts it.
// Operands resolve through a type registry seeded with the builtin
// scalars; custom types plug in with RegisterType. Floating-point
// equality is tolerant within 4 ULPs.
//
// # Run Control
//
// The generated binary understands --test_filter, --test_shuffle,
// --test_repeat, --test_also_run_disabled_tests, --test_list_tests,
// --test_print_time, --test_random_seed, --test_break_on_failure,
// --test_logfile, and --config; see --help for details. Case names
// prefixed DISABLED_ are registered and reported but only run on
// request.
package crucible
