package compare

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	x, y int
}

func pointDescriptor() Descriptor {
	return Descriptor{
		Name: "compare.point",
		Compare: func(a, b any) int {
			pa, pb := a.(point), b.(point)
			if c := compareInt64(int64(pa.x), int64(pb.x)); c != 0 {
				return c
			}
			return compareInt64(int64(pa.y), int64(pb.y))
		},
		Dump: func(w io.Writer, v any) (int, error) {
			p := v.(point)
			return fmt.Fprintf(w, "(%d,%d)", p.x, p.y)
		},
	}
}

func TestRegistry_CompareScalars(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name     string
		a, b     any
		order    int
		typeName string
	}{
		{name: "ints equal", a: 3, b: 3, order: 0, typeName: "int64"},
		{name: "ints less", a: 2, b: 3, order: -1, typeName: "int64"},
		{name: "narrow int widens", a: int8(7), b: int64(9), order: -1, typeName: "int64"},
		{name: "uints greater", a: uint16(9), b: uint64(4), order: 1, typeName: "uint64"},
		{name: "uintptr is unsigned", a: uintptr(1), b: uint(2), order: -1, typeName: "uint64"},
		{name: "strings lexicographic", a: "apple", b: "banana", order: -1, typeName: "string"},
		{name: "bools false before true", a: false, b: true, order: -1, typeName: "bool"},
		{name: "float64 tolerance", a: 0.1 + 0.2, b: 0.3, order: 0, typeName: "float64"},
		{name: "float32 ordering", a: float32(1.5), b: float32(0.5), order: 1, typeName: "float32"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Compare(tt.a, tt.b)
			require.NoError(t, err)
			assert.Equal(t, tt.order, got.Order)
			assert.Equal(t, tt.typeName, got.TypeName)

			swapped, err := r.Compare(tt.b, tt.a)
			require.NoError(t, err)
			assert.Equal(t, -tt.order, swapped.Order, "swapping operands must negate the order")
		})
	}
}

func TestRegistry_ComparePointers(t *testing.T) {
	r := NewRegistry()
	a, b := new(int), new(int)

	same, err := r.Compare(a, a)
	require.NoError(t, err)
	assert.Equal(t, 0, same.Order, "a pointer should equal itself")
	assert.Equal(t, "pointer", same.TypeName)

	diff, err := r.Compare(a, b)
	require.NoError(t, err)
	assert.NotEqual(t, 0, diff.Order, "distinct allocations should not compare equal")
}

func TestRegistry_CompareMismatchedOperands(t *testing.T) {
	r := NewRegistry()

	_, err := r.Compare(1, "one")
	te, ok := AsTypeError(err)
	require.True(t, ok, "mismatched operands should produce a TypeError")
	assert.Equal(t, CodeMismatchedOperands, te.Code)
	assert.Equal(t, "int64", te.TypeName)

	_, err = r.Compare(int64(1), uint64(1))
	te, ok = AsTypeError(err)
	require.True(t, ok)
	assert.Equal(t, CodeMismatchedOperands, te.Code, "signed and unsigned are distinct tags")
}

func TestRegistry_CompareNilOperand(t *testing.T) {
	r := NewRegistry()

	_, err := r.Compare(nil, 1)
	te, ok := AsTypeError(err)
	require.True(t, ok)
	assert.Equal(t, CodeNilOperand, te.Code)
}

func TestRegistry_CompareUnregisteredType(t *testing.T) {
	r := NewRegistry()

	_, err := r.Compare(point{1, 2}, point{3, 4})
	te, ok := AsTypeError(err)
	require.True(t, ok)
	assert.Equal(t, CodeUnregisteredType, te.Code)
	assert.Equal(t, "compare.point", te.TypeName)
}

func TestRegistry_CompareCustomType(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(pointDescriptor()))

	got, err := r.Compare(point{1, 2}, point{1, 5})
	require.NoError(t, err)
	assert.Equal(t, -1, got.Order)
	assert.Equal(t, "compare.point", got.TypeName)

	got, err = r.Compare(point{2, 0}, point{2, 0})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Order)
}

func TestRegistry_RegisterFirstWins(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(pointDescriptor()))

	reversed := pointDescriptor()
	reversed.Compare = func(a, b any) int {
		pa, pb := a.(point), b.(point)
		return compareInt64(int64(pb.x), int64(pa.x))
	}
	require.NoError(t, r.Register(reversed), "re-registration is not an error")

	got, err := r.Compare(point{1, 0}, point{2, 0})
	require.NoError(t, err)
	assert.Equal(t, -1, got.Order, "the first registered comparator should stay in effect")
}

func TestRegistry_RegisterBuiltinName(t *testing.T) {
	r := NewRegistry()

	err := r.Register(Descriptor{
		Name:    "float64",
		Compare: func(_, _ any) int { return 0 },
	})
	require.NoError(t, err, "registering a builtin name is an idempotent no-op")

	assert.True(t, r.Registered("float64"))
	assert.Empty(t, r.Names(), "builtin names should not appear as custom registrations")

	got, err := r.Compare(1.0, 2.0)
	require.NoError(t, err)
	assert.Equal(t, -1, got.Order, "the builtin comparator should stay in effect")
}

func TestRegistry_RegisterInvalidDescriptor(t *testing.T) {
	r := NewRegistry()

	err := r.Register(Descriptor{Compare: func(_, _ any) int { return 0 }})
	te, ok := AsTypeError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidDescriptor, te.Code)

	err = r.Register(Descriptor{Name: "compare.point"})
	te, ok = AsTypeError(err)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidDescriptor, te.Code)
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Descriptor{Name: "zz.last", Compare: func(_, _ any) int { return 0 }}))
	require.NoError(t, r.Register(Descriptor{Name: "aa.first", Compare: func(_, _ any) int { return 0 }}))

	assert.Equal(t, []string{"aa.first", "zz.last"}, r.Names(), "names should come back sorted")
}

func TestRegistry_FormatValue(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(pointDescriptor()))

	assert.Equal(t, "42", r.FormatValue(42))
	assert.Equal(t, `"hi"`, r.FormatValue("hi"))
	assert.Equal(t, "true", r.FormatValue(true))
	assert.Equal(t, "1.5", r.FormatValue(1.5))
	assert.Equal(t, "<nil>", r.FormatValue(nil))
	assert.Equal(t, "(3,4)", r.FormatValue(point{3, 4}), "registered dump should render the value")
	assert.Contains(t, r.FormatValue(struct{ z int }{1}), "{1}", "unregistered types fall back to fmt")
}
