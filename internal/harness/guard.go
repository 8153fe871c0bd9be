package harness

import "runtime/debug"

// Outcome classifies how a guarded phase ended.
type Outcome int

const (
	// Completed means the phase ran to the end of its function.
	Completed Outcome = iota

	// Aborted means the phase was cut short through the guard: a
	// failed assertion or a skip. The T flags say which.
	Aborted

	// FaultCaught means the phase panicked with a value that did not
	// come from the harness. The fault carries the panic value and
	// stack.
	FaultCaught
)

// String returns the outcome name used in logs.
func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case Aborted:
		return "aborted"
	case FaultCaught:
		return "fault"
	default:
		return "unknown"
	}
}

// Fault is a panic recovered by the guard.
type Fault struct {
	// Value is the value the phase panicked with.
	Value any

	// Stack is the goroutine stack captured at the recovery point.
	Stack []byte
}

// phaseAbort is the sentinel the harness panics with to unwind a phase.
// The guard swallows it; any other panic value is a fault.
type phaseAbort struct{}

// Guard is the single recovery slot of a run.
//
// Exactly one phase may execute under the guard at a time. The slot is
// owned by the runner and re-armed for each phase; arming an armed
// guard is a programming error inside the harness and panics
// immediately rather than corrupting the slot.
type Guard struct {
	armed bool
}

// Run executes one phase under the guard and reports how it ended.
// The fault return is non-nil only for FaultCaught.
func (g *Guard) Run(t *T, phase func(*T)) (Outcome, *Fault) {
	if g.armed {
		panic("harness: guard armed twice")
	}
	g.armed = true
	defer func() { g.armed = false }()
	return g.call(t, phase)
}

func (g *Guard) call(t *T, phase func(*T)) (outcome Outcome, fault *Fault) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if _, ok := r.(phaseAbort); ok {
			outcome = Aborted
			return
		}
		outcome = FaultCaught
		fault = &Fault{Value: r, Stack: debug.Stack()}
	}()
	phase(t)
	return Completed, nil
}
