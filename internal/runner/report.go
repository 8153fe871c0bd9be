package runner

import (
	"reflect"
	"time"

	"github.com/roach88/crucible/internal/compare"
	"github.com/roach88/crucible/internal/console"
	"github.com/roach88/crucible/internal/registry"
)

// caseStatus is the final state of one dispatched instance.
type caseStatus int

const (
	statusPassed caseStatus = iota
	statusSkipped
	statusFailed
)

func (s caseStatus) String() string {
	switch s {
	case statusSkipped:
		return "skipped"
	case statusFailed:
		return "failed"
	default:
		return "passed"
	}
}

// counters aggregates one iteration. total counts filter-matched
// instances, including disabled ones; passed, skipped, and failed
// partition the instances that actually ran.
type counters struct {
	total    int
	disabled int
	passed   int
	skipped  int
	failed   int
}

// reporter renders the console protocol of a run. Tags are colored
// when the output supports it; all other text is plain.
type reporter struct {
	p         *console.Printer
	printTime bool
}

func newReporter(p *console.Printer, printTime bool) *reporter {
	return &reporter{p: p, printTime: printTime}
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

func (r *reporter) header(registered int) {
	r.p.Printf("[==========] total %d test%s registered.\n", registered, plural(registered))
}

func (r *reporter) caseStart(name string) {
	r.p.Colorf(console.Green, "[ RUN      ]")
	r.p.Printf(" %s\n", name)
}

func (r *reporter) caseResult(name string, status caseStatus, elapsed time.Duration) {
	switch status {
	case statusFailed:
		r.p.Colorf(console.Red, "[  FAILED  ]")
	case statusSkipped:
		r.p.Colorf(console.Yellow, "[   SKIP   ]")
	default:
		r.p.Colorf(console.Green, "[       OK ]")
	}
	r.p.Printf(" %s", name)
	if r.printTime {
		r.p.Printf(" (%d ms)", elapsed.Milliseconds())
	}
	r.p.Printf("\n")
}

func (r *reporter) summary(c counters, registered int, elapsed time.Duration, failedNames []string) {
	r.p.Printf("[==========] %d/%d test case%s ran.", c.total, registered, plural(c.total))
	if r.printTime {
		r.p.Printf(" (%d ms total)", elapsed.Milliseconds())
	}
	r.p.Printf("\n")

	if c.disabled > 0 {
		r.p.Colorf(console.Green, "[ DISABLED ]")
		r.p.Printf(" %d test%s.\n", c.disabled, plural(c.disabled))
	}
	if c.skipped > 0 {
		r.p.Colorf(console.Yellow, "[ BYPASSED ]")
		r.p.Printf(" %d test%s.\n", c.skipped, plural(c.skipped))
	}
	if c.passed > 0 {
		r.p.Colorf(console.Green, "[  PASSED  ]")
		r.p.Printf(" %d test%s.\n", c.passed, plural(c.passed))
	}
	if c.failed == 0 {
		return
	}
	r.p.Colorf(console.Red, "[  FAILED  ]")
	r.p.Printf(" %d test%s, listed below:\n", c.failed, plural(c.failed))
	for _, name := range failedNames {
		r.p.Colorf(console.Red, "[  FAILED  ]")
		r.p.Printf(" %s\n", name)
	}
}

func (r *reporter) loopStart(iteration, total int) {
	r.p.Colorf(console.Yellow, "[==========]")
	r.p.Printf(" start loop: %d/%d\n", iteration, total)
}

func (r *reporter) loopEnd(iteration, total int, last bool) {
	r.p.Colorf(console.Yellow, "[==========]")
	r.p.Printf(" end loop (%d/%d)\n", iteration, total)
	if !last {
		r.p.Printf("\n")
	}
}

// list prints every registered instance grouped by fixture, without
// running anything. Parameterized instances show their index, the
// parameter's type, and its value.
func (r *reporter) list(cases []registry.Case, types *compare.Registry) {
	lastFixture := ""
	for _, c := range cases {
		if c.Fixture != lastFixture {
			lastFixture = c.Fixture
			r.p.Printf("%s.\n", c.Fixture)
		}
		if c.ParamCount > 0 {
			r.p.Printf("  %s/%d  # <%s> %s\n", c.Name, c.ParamIndex, paramTypeName(c.Param), types.FormatValue(c.Param))
		} else {
			r.p.Printf("  %s\n", c.Name)
		}
	}
}

func paramTypeName(p any) string {
	if p == nil {
		return "nil"
	}
	return reflect.TypeOf(p).String()
}
