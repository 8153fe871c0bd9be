package registry

import (
	"errors"
	"fmt"
)

// Error codes reported by case and fixture declaration.
const (
	// CodeDuplicateCase means the (fixture, case, param index) key is
	// already registered.
	CodeDuplicateCase = "R100"

	// CodeDuplicateFixture means the fixture name is already declared.
	CodeDuplicateFixture = "R101"

	// CodeInvalidName means a fixture or case name is empty.
	CodeInvalidName = "R102"

	// CodeNilBody means a case was declared without a body.
	CodeNilBody = "R103"

	// CodeBadParamBlock means a parameterized declaration supplied a
	// value that is not a slice or array.
	CodeBadParamBlock = "R104"
)

// RegistrationError describes a rejected declaration. Declarations are
// programming errors of the test binary, so the run must fail at
// start-up when one occurs.
type RegistrationError struct {
	// Fixture and Case identify the declaration, when known.
	Fixture string
	Case    string

	// Code is one of the R1xx constants above.
	Code string

	// Message is a human-readable description.
	Message string
}

func (e *RegistrationError) Error() string {
	switch {
	case e.Fixture != "" && e.Case != "":
		return fmt.Sprintf("%s.%s: %s (%s)", e.Fixture, e.Case, e.Message, e.Code)
	case e.Fixture != "":
		return fmt.Sprintf("%s: %s (%s)", e.Fixture, e.Message, e.Code)
	default:
		return fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
}

// NewDuplicateCaseError reports a case key collision.
func NewDuplicateCaseError(fixture, name string) *RegistrationError {
	return &RegistrationError{
		Fixture: fixture,
		Case:    name,
		Code:    CodeDuplicateCase,
		Message: "case is already registered",
	}
}

// NewDuplicateFixtureError reports a fixture declared twice.
func NewDuplicateFixtureError(name string) *RegistrationError {
	return &RegistrationError{
		Fixture: name,
		Code:    CodeDuplicateFixture,
		Message: "fixture is already declared",
	}
}

// NewInvalidNameError reports an empty fixture or case name.
func NewInvalidNameError(fixture, name string) *RegistrationError {
	return &RegistrationError{
		Fixture: fixture,
		Case:    name,
		Code:    CodeInvalidName,
		Message: "fixture and case names must not be empty",
	}
}

// NewNilBodyError reports a case without a body.
func NewNilBodyError(fixture, name string) *RegistrationError {
	return &RegistrationError{
		Fixture: fixture,
		Case:    name,
		Code:    CodeNilBody,
		Message: "case body must not be nil",
	}
}

// NewBadParamBlockError reports a parameter block that is not a slice
// or array.
func NewBadParamBlockError(fixture, name string, got any) *RegistrationError {
	return &RegistrationError{
		Fixture: fixture,
		Case:    name,
		Code:    CodeBadParamBlock,
		Message: fmt.Sprintf("parameters must be a slice or array, got %T", got),
	}
}

// AsRegistrationError extracts a RegistrationError from err's chain.
func AsRegistrationError(err error) (*RegistrationError, bool) {
	var re *RegistrationError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}
