package crucible

import (
	"io"
	"os"
	"reflect"

	"github.com/roach88/crucible/internal/cli"
	"github.com/roach88/crucible/internal/compare"
	"github.com/roach88/crucible/internal/harness"
	"github.com/roach88/crucible/internal/registry"
	"github.com/roach88/crucible/internal/runner"
)

// T is the handle passed to every phase of a case instance. It carries
// the Expect and Assert assertion families, Skip, and the instance's
// identity and parameter.
type T = harness.T

// Hook receives lifecycle notifications around the run and around each
// phase. Any field may be nil.
type Hook = runner.Hook

// FixtureFuncs declares the shared lifecycle of a fixture group.
// Either function may be nil. Setup and teardown run freshly around
// every case of the group; a skip or failure during setup suppresses
// the body and teardown.
type FixtureFuncs struct {
	Setup    func(*T)
	Teardown func(*T)
}

// Suite collects test declarations and runs them.
//
// Declarations are rejected with recorded errors rather than panics;
// a suite with registration errors refuses to run and exits with the
// command-error code, listing every rejected declaration.
//
// Thread-safety: declare from one goroutine. Declarations normally
// happen during an explicit initialization pass before Run.
type Suite struct {
	reg   *registry.Registry
	types *compare.Registry
	errs  []error
}

// New creates an empty suite.
func New() *Suite {
	return &Suite{
		reg:   registry.New(),
		types: compare.NewRegistry(),
	}
}

var defaultSuite = New()

// Default returns the shared suite the package-level declaration
// functions operate on.
func Default() *Suite { return defaultSuite }

func (s *Suite) record(err error) {
	if err != nil {
		s.errs = append(s.errs, err)
	}
}

// Fixture declares the setup and teardown shared by every case of the
// named group. Declaring a fixture is optional; cases may name a group
// that has no declared lifecycle. Declaring the same fixture twice is
// an error.
func (s *Suite) Fixture(name string, f FixtureFuncs) {
	s.record(s.reg.DeclareFixture(registry.Fixture{
		Name:     name,
		Setup:    f.Setup,
		Teardown: f.Teardown,
	}))
}

// Test declares a case. Its full name is "fixture.name"; declaring the
// same full name twice is an error.
func (s *Suite) Test(fixture, name string, body func(*T)) {
	s.record(s.reg.DeclareCase(fixture, name, body))
}

// TestP declares a parameterized case. params must be a slice or
// array; the case expands into one instance per element, named
// "fixture.name/0" through "fixture.name/N-1", each observing its own
// value through T.Param. An empty params block declares nothing.
func (s *Suite) TestP(fixture, name string, params any, body func(*T)) {
	values, ok := expandParams(params)
	if !ok {
		s.record(registry.NewBadParamBlockError(fixture, name, params))
		return
	}
	s.record(s.reg.DeclareParamCase(fixture, name, values, body))
}

func expandParams(params any) ([]any, bool) {
	if params == nil {
		return nil, false
	}
	rv := reflect.ValueOf(params)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	values := make([]any, rv.Len())
	for i := range values {
		values[i] = rv.Index(i).Interface()
	}
	return values, true
}

// RegisterType plugs a custom type into the assertion machinery. The
// type is keyed by the prototype's dynamic type name; assertion
// operands of that type dispatch to cmp, which must return a negative,
// zero, or positive ordering. dump renders values in failure
// diagnostics and may be nil for the default format.
//
// Registering a type that is already registered is a no-op; the first
// comparator stays in effect.
func (s *Suite) RegisterType(prototype any, cmp func(a, b any) int, dump func(w io.Writer, v any) (int, error)) {
	if prototype == nil {
		s.record(compare.NewInvalidDescriptorError("", "prototype must not be nil"))
		return
	}
	s.record(s.types.Register(compare.Descriptor{
		Name:    reflect.TypeOf(prototype).String(),
		Compare: cmp,
		Dump:    dump,
	}))
}

// Errors returns the declarations rejected so far.
func (s *Suite) Errors() []error {
	out := make([]error, len(s.errs))
	copy(out, s.errs)
	return out
}

// Run parses argv, executes the suite, and returns the process exit
// code: 0 when every dispatched instance passed, 1 when any failed or
// the run was interrupted, 2 on bad invocation or registration errors.
// out receives the report and defaults to standard output when nil.
// hook may be nil.
func (s *Suite) Run(argv []string, out io.Writer, hook *Hook) int {
	return cli.Main(cli.Params{
		Registry:           s.reg,
		Types:              s.types,
		Hook:               hook,
		RegistrationErrors: s.errs,
		Out:                out,
	}, argv)
}

// Fixture declares a fixture group on the default suite.
func Fixture(name string, f FixtureFuncs) { defaultSuite.Fixture(name, f) }

// Test declares a case on the default suite.
func Test(fixture, name string, body func(*T)) { defaultSuite.Test(fixture, name, body) }

// TestP declares a parameterized case on the default suite.
func TestP(fixture, name string, params any, body func(*T)) {
	defaultSuite.TestP(fixture, name, params, body)
}

// RegisterType registers a custom comparison type on the default
// suite.
func RegisterType(prototype any, cmp func(a, b any) int, dump func(w io.Writer, v any) (int, error)) {
	defaultSuite.RegisterType(prototype, cmp, dump)
}

// Run executes the default suite.
func Run(argv []string, out io.Writer, hook *Hook) int {
	return defaultSuite.Run(argv, out, hook)
}

// Main executes the default suite against os.Args and exits the
// process with the resulting code.
func Main(hook *Hook) {
	os.Exit(defaultSuite.Run(os.Args, os.Stdout, hook))
}
