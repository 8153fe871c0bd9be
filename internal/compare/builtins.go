package compare

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Tag identifies one of the builtin scalar comparison families.
type Tag int

const (
	// TagNone marks a kind outside the builtin set. Such operands are
	// resolved through the type registry instead.
	TagNone Tag = iota
	TagInt
	TagUint
	TagFloat32
	TagFloat64
	TagString
	TagBool
	TagPointer
)

// String returns the tag name used in diagnostics.
func (t Tag) String() string {
	switch t {
	case TagInt:
		return "int64"
	case TagUint:
		return "uint64"
	case TagFloat32:
		return "float32"
	case TagFloat64:
		return "float64"
	case TagString:
		return "string"
	case TagBool:
		return "bool"
	case TagPointer:
		return "pointer"
	default:
		return "none"
	}
}

// tagOf classifies a reflect kind into a builtin tag.
// Signed integer kinds widen to int64, unsigned kinds to uint64, and
// pointers compare by address. Everything else maps to TagNone.
func tagOf(v reflect.Value) Tag {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return TagInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return TagUint
	case reflect.Float32:
		return TagFloat32
	case reflect.Float64:
		return TagFloat64
	case reflect.String:
		return TagString
	case reflect.Bool:
		return TagBool
	case reflect.Ptr, reflect.UnsafePointer:
		return TagPointer
	default:
		return TagNone
	}
}

// compareTagged orders two values that share a builtin tag.
func compareTagged(tag Tag, a, b reflect.Value) int {
	switch tag {
	case TagInt:
		return compareInt64(a.Int(), b.Int())
	case TagUint:
		return compareUint64(a.Uint(), b.Uint())
	case TagFloat32:
		return compareFloat32(float32(a.Float()), float32(b.Float()))
	case TagFloat64:
		return compareFloat64(a.Float(), b.Float())
	case TagString:
		return strings.Compare(a.String(), b.String())
	case TagBool:
		return compareBool(a.Bool(), b.Bool())
	case TagPointer:
		return compareUint64(uint64(a.Pointer()), uint64(b.Pointer()))
	default:
		return 0
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// compareBool orders false before true.
func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// formatTagged renders a builtin-tagged value for diagnostics.
func formatTagged(tag Tag, v reflect.Value) string {
	switch tag {
	case TagInt:
		return strconv.FormatInt(v.Int(), 10)
	case TagUint:
		return strconv.FormatUint(v.Uint(), 10)
	case TagFloat32:
		return strconv.FormatFloat(v.Float(), 'g', -1, 32)
	case TagFloat64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	case TagString:
		return strconv.Quote(v.String())
	case TagBool:
		return strconv.FormatBool(v.Bool())
	case TagPointer:
		return fmt.Sprintf("%#x", v.Pointer())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
