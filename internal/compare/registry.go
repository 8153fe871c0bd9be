package compare

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/roach88/crucible/internal/rbtree"
)

// Descriptor registers a comparator for one non-scalar type.
type Descriptor struct {
	// Name is the dynamic type name the descriptor binds to, as
	// produced by reflect.Type.String (for example "geometry.Point").
	Name string

	// Compare orders two values of the type: negative, zero, or
	// positive. Both arguments are guaranteed to have the registered
	// dynamic type.
	Compare func(a, b any) int

	// Dump renders a value of the type for diagnostics. Optional; when
	// nil the value is rendered with the fmt default format.
	Dump func(w io.Writer, v any) (int, error)
}

// Comparison is the outcome of resolving and ordering two operands.
type Comparison struct {
	// Order is the three-way result: -1, 0, or +1.
	Order int

	// TypeName is the builtin tag or registered type the operands
	// resolved to.
	TypeName string
}

// Registry resolves operand types to comparators.
//
// Builtin scalar tags are resolved first and cannot be replaced.
// Every other type must be registered before it is compared.
// Registration is idempotent and first-wins.
//
// Thread-safety: Registry is not safe for concurrent use. Types are
// registered during the initialization pass, before any case runs.
type Registry struct {
	tree *rbtree.Tree
}

// NewRegistry creates an empty type registry.
func NewRegistry() *Registry {
	return &Registry{
		tree: rbtree.New(func(a, b any) int {
			return strings.Compare(a.(string), b.(string))
		}),
	}
}

// Register adds a type descriptor.
//
// Registering a name that is already present, including the builtin tag
// names, keeps the earlier registration and returns nil. A descriptor
// with an empty name or a nil compare function is rejected.
func (r *Registry) Register(d Descriptor) error {
	if d.Name == "" {
		return NewInvalidDescriptorError("", "descriptor name is empty")
	}
	if d.Compare == nil {
		return NewInvalidDescriptorError(d.Name, "descriptor has no compare function")
	}
	if isBuiltinTagName(d.Name) {
		return nil
	}
	if err := r.tree.Insert(d.Name, d); err != nil {
		if errors.Is(err, rbtree.ErrDuplicateKey) {
			return nil
		}
		return fmt.Errorf("registering type %s: %w", d.Name, err)
	}
	return nil
}

// Registered reports whether name has a comparator, builtin or custom.
func (r *Registry) Registered(name string) bool {
	if isBuiltinTagName(name) {
		return true
	}
	_, ok := r.tree.Find(name)
	return ok
}

// Names returns all custom registered type names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, r.tree.Len())
	r.tree.InOrder(func(key, _ any) bool {
		names = append(names, key.(string))
		return true
	})
	return names
}

// Compare resolves both operands and orders them.
//
// Scalar operands resolve through the builtin tags; both must share a
// tag. Other operands must share a dynamic type with a registered
// descriptor. Resolution failures return a TypeError, which callers
// treat as a configuration fault rather than an assertion failure.
func (r *Registry) Compare(a, b any) (Comparison, error) {
	if a == nil || b == nil {
		return Comparison{}, NewNilOperandError()
	}

	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	ta, tb := tagOf(va), tagOf(vb)
	if ta != TagNone || tb != TagNone {
		if ta != tb {
			return Comparison{}, NewMismatchedOperandsError(operandName(ta, va), operandName(tb, vb))
		}
		return Comparison{Order: compareTagged(ta, va, vb), TypeName: ta.String()}, nil
	}

	if va.Type() != vb.Type() {
		return Comparison{}, NewMismatchedOperandsError(va.Type().String(), vb.Type().String())
	}
	name := va.Type().String()
	d, ok := r.lookup(name)
	if !ok {
		return Comparison{}, NewUnregisteredTypeError(name)
	}
	return Comparison{Order: d.Compare(a, b), TypeName: name}, nil
}

// FormatValue renders an operand for diagnostics, using the registered
// Dump function when one exists.
func (r *Registry) FormatValue(v any) string {
	if v == nil {
		return "<nil>"
	}
	rv := reflect.ValueOf(v)
	if tag := tagOf(rv); tag != TagNone {
		return formatTagged(tag, rv)
	}
	if d, ok := r.lookup(rv.Type().String()); ok && d.Dump != nil {
		var sb strings.Builder
		if _, err := d.Dump(&sb, v); err == nil {
			return sb.String()
		}
	}
	return fmt.Sprintf("%v", v)
}

func (r *Registry) lookup(name string) (Descriptor, bool) {
	v, ok := r.tree.Find(name)
	if !ok {
		return Descriptor{}, false
	}
	return v.(Descriptor), true
}

func isBuiltinTagName(name string) bool {
	switch name {
	case TagInt.String(), TagUint.String(), TagFloat32.String(),
		TagFloat64.String(), TagString.String(), TagBool.String(), TagPointer.String():
		return true
	default:
		return false
	}
}

// operandName names one side of a mismatched comparison: the tag name
// for scalars, the dynamic type name otherwise.
func operandName(tag Tag, v reflect.Value) string {
	if tag != TagNone {
		return tag.String()
	}
	return v.Type().String()
}
