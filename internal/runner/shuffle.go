package runner

import (
	"sort"
	"strings"

	"github.com/roach88/crucible/internal/registry"
)

// lcg is the deterministic random source behind shuffling. The
// multiplier is the MMIX constant; discarding the low 33 bits leaves
// the well-mixed high bits.
type lcg struct {
	state uint64
}

func newLCG(seed uint64) *lcg {
	return &lcg{state: seed - 1}
}

func (l *lcg) Next() uint64 {
	l.state = l.state*6364136223846793005 + 1
	return l.state >> 33
}

// shuffleCases reorders cases in place by freshly drawn random keys.
// Keys are assigned in the slice's current order and ties fall back to
// the canonical case ordering, so a given seed always produces the same
// permutation. The registry itself is never touched.
func shuffleCases(cases []registry.Case, rng *lcg) {
	keys := make([]uint64, len(cases))
	for i := range keys {
		keys[i] = rng.Next()
	}
	order := make([]int, len(cases))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ia, ib := order[a], order[b]
		if keys[ia] != keys[ib] {
			return keys[ia] < keys[ib]
		}
		return lessCanonical(cases[ia], cases[ib])
	})

	out := make([]registry.Case, len(cases))
	for i, idx := range order {
		out[i] = cases[idx]
	}
	copy(cases, out)
}

func lessCanonical(a, b registry.Case) bool {
	if c := strings.Compare(a.Fixture, b.Fixture); c != 0 {
		return c < 0
	}
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c < 0
	}
	return a.ParamIndex < b.ParamIndex
}
