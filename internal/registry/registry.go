// Package registry holds the declared cases and fixtures of a suite.
//
// The registry is populated by an explicit initialization pass before
// the run starts. Parameterized cases expand at declaration time: a
// case declared with N parameter values registers N independent
// instances, each carrying its own value and index. Traversal order is
// fixed by the composite key (fixture, case, param index), regardless
// of declaration order; the declaration sequence number is kept on each
// instance for diagnostics.
package registry

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/roach88/crucible/internal/harness"
	"github.com/roach88/crucible/internal/rbtree"
)

// Case is one runnable instance.
type Case struct {
	// Fixture and Name identify the declaration the instance came from.
	Fixture string
	Name    string

	// ParamIndex, Param, and ParamCount describe parameterized
	// expansion. Plain cases have index 0 and count 0.
	ParamIndex int
	Param      any
	ParamCount int

	// Seq is the declaration sequence number, assigned in the order
	// declarations were made.
	Seq uint64

	// Body is the case procedure.
	Body func(*harness.T)
}

// FullName returns the display name used in reports and filters:
// "fixture.case", with a "/index" suffix for parameterized instances.
func (c Case) FullName() string {
	if c.ParamCount > 0 {
		return fmt.Sprintf("%s.%s/%d", c.Fixture, c.Name, c.ParamIndex)
	}
	return fmt.Sprintf("%s.%s", c.Fixture, c.Name)
}

// Disabled reports whether the case name carries the disabled marker
// prefix. Disabled cases are registered and listed but only run on
// request.
func (c Case) Disabled() bool {
	return strings.HasPrefix(c.Name, "DISABLED_")
}

// Fixture holds the shared lifecycle procedures of a fixture group.
// Either procedure may be nil.
type Fixture struct {
	Name     string
	Setup    func(*harness.T)
	Teardown func(*harness.T)
}

// caseKey orders instances by fixture, then case, then param index.
type caseKey struct {
	fixture string
	name    string
	index   int
}

func compareCaseKeys(a, b any) int {
	ka, kb := a.(caseKey), b.(caseKey)
	if c := strings.Compare(ka.fixture, kb.fixture); c != 0 {
		return c
	}
	if c := strings.Compare(ka.name, kb.name); c != 0 {
		return c
	}
	return ka.index - kb.index
}

// Registry stores declared cases and fixtures.
//
// Thread-safety: declarations happen during the single-goroutine
// initialization pass; once the run starts the registry is read-only.
type Registry struct {
	cases    *rbtree.Tree
	fixtures *rbtree.Tree
	seq      atomic.Uint64
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		cases: rbtree.New(compareCaseKeys),
		fixtures: rbtree.New(func(a, b any) int {
			return strings.Compare(a.(string), b.(string))
		}),
	}
}

// DeclareFixture records the setup and teardown of a fixture group.
// Declaring the same fixture twice is rejected. Cases may reference a
// fixture that was never declared; they run without setup or teardown.
func (r *Registry) DeclareFixture(f Fixture) error {
	if f.Name == "" {
		return NewInvalidNameError(f.Name, "")
	}
	if err := r.fixtures.Insert(f.Name, f); err != nil {
		if errors.Is(err, rbtree.ErrDuplicateKey) {
			return NewDuplicateFixtureError(f.Name)
		}
		return err
	}
	return nil
}

// DeclareCase registers a plain case.
func (r *Registry) DeclareCase(fixture, name string, body func(*harness.T)) error {
	if fixture == "" || name == "" {
		return NewInvalidNameError(fixture, name)
	}
	if body == nil {
		return NewNilBodyError(fixture, name)
	}
	return r.insert(Case{
		Fixture: fixture,
		Name:    name,
		Body:    body,
	})
}

// DeclareParamCase registers a parameterized case, expanding it into
// one instance per parameter value. All instances share the body and
// the fixture lifecycle but observe their own value and index. An
// empty parameter list registers nothing.
func (r *Registry) DeclareParamCase(fixture, name string, params []any, body func(*harness.T)) error {
	if fixture == "" || name == "" {
		return NewInvalidNameError(fixture, name)
	}
	if body == nil {
		return NewNilBodyError(fixture, name)
	}
	if len(params) == 0 {
		return nil
	}
	if _, ok := r.cases.Find(caseKey{fixture, name, 0}); ok {
		return NewDuplicateCaseError(fixture, name)
	}
	for i, p := range params {
		err := r.insert(Case{
			Fixture:    fixture,
			Name:       name,
			ParamIndex: i,
			Param:      p,
			ParamCount: len(params),
			Body:       body,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Registry) insert(c Case) error {
	c.Seq = r.seq.Add(1)
	k := caseKey{c.Fixture, c.Name, c.ParamIndex}
	if err := r.cases.Insert(k, c); err != nil {
		if errors.Is(err, rbtree.ErrDuplicateKey) {
			return NewDuplicateCaseError(c.Fixture, c.Name)
		}
		return err
	}
	return nil
}

// Len returns the number of registered case instances.
func (r *Registry) Len() int {
	return r.cases.Len()
}

// Cases returns every instance in key order.
func (r *Registry) Cases() []Case {
	out := make([]Case, 0, r.cases.Len())
	r.cases.InOrder(func(_, value any) bool {
		out = append(out, value.(Case))
		return true
	})
	return out
}

// Find returns the instance registered under the exact key.
func (r *Registry) Find(fixture, name string, paramIndex int) (Case, bool) {
	v, ok := r.cases.Find(caseKey{fixture, name, paramIndex})
	if !ok {
		return Case{}, false
	}
	return v.(Case), true
}

// FixtureOf returns the declared lifecycle of a fixture, if any.
func (r *Registry) FixtureOf(name string) (Fixture, bool) {
	v, ok := r.fixtures.Find(name)
	if !ok {
		return Fixture{}, false
	}
	return v.(Fixture), true
}

// FixtureNames returns the distinct fixture names that have at least
// one registered case, in sorted order.
func (r *Registry) FixtureNames() []string {
	var names []string
	r.cases.InOrder(func(key, _ any) bool {
		f := key.(caseKey).fixture
		if len(names) == 0 || names[len(names)-1] != f {
			names = append(names, f)
		}
		return true
	})
	return names
}
