package compare

import (
	"errors"
	"fmt"
)

// Error codes reported by operand resolution.
const (
	// CodeUnregisteredType means an operand's type has no registered
	// comparator and is not covered by a builtin tag.
	CodeUnregisteredType = "T100"

	// CodeMismatchedOperands means the two operands resolved to
	// different tags or different dynamic types.
	CodeMismatchedOperands = "T101"

	// CodeNilOperand means an operand was an untyped nil.
	CodeNilOperand = "T102"

	// CodeInvalidDescriptor means a type descriptor was rejected at
	// registration time.
	CodeInvalidDescriptor = "T103"
)

// TypeError describes a failure to resolve assertion operands.
type TypeError struct {
	// TypeName is the type the error refers to, when known.
	TypeName string

	// Code is one of the T1xx constants above.
	Code string

	// Message is a human-readable description.
	Message string
}

func (e *TypeError) Error() string {
	if e.TypeName != "" {
		return fmt.Sprintf("%s: %s (%s)", e.TypeName, e.Message, e.Code)
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// NewUnregisteredTypeError reports a comparison attempt against a type
// that has no comparator.
func NewUnregisteredTypeError(typeName string) *TypeError {
	return &TypeError{
		TypeName: typeName,
		Code:     CodeUnregisteredType,
		Message:  "no comparator registered for type",
	}
}

// NewMismatchedOperandsError reports operands of two different types.
func NewMismatchedOperandsError(left, right string) *TypeError {
	return &TypeError{
		TypeName: left,
		Code:     CodeMismatchedOperands,
		Message:  fmt.Sprintf("cannot compare against operand of type %s", right),
	}
}

// NewNilOperandError reports an untyped nil operand.
func NewNilOperandError() *TypeError {
	return &TypeError{
		Code:    CodeNilOperand,
		Message: "operand is untyped nil",
	}
}

// NewInvalidDescriptorError reports a descriptor rejected at
// registration time.
func NewInvalidDescriptorError(typeName, reason string) *TypeError {
	return &TypeError{
		TypeName: typeName,
		Code:     CodeInvalidDescriptor,
		Message:  reason,
	}
}

// AsTypeError extracts a TypeError from err's chain.
func AsTypeError(err error) (*TypeError, bool) {
	var te *TypeError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}
