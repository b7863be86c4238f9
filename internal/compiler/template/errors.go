package template

import (
	"encoding/json"
	"fmt"
)

// ErrorCode identifies an instantiation failure.
type ErrorCode string

const (
	// ErrNotATemplate indicates instantiation of a non-parameterized entity.
	ErrNotATemplate ErrorCode = "GEN200"
	// ErrValidationFailed indicates the generic's validator rejected the arguments.
	ErrValidationFailed ErrorCode = "GEN201"
	// ErrUnknownType indicates the generic type identity resolves to nothing.
	ErrUnknownType ErrorCode = "GEN202"
	// ErrUnknownFunction indicates the generic function identity resolves to nothing.
	ErrUnknownFunction ErrorCode = "GEN203"
	// ErrParentNotInstantiated indicates a nested declaration was instantiated before its parent.
	ErrParentNotInstantiated ErrorCode = "GEN204"
	// ErrArityMismatch indicates the argument count does not match the parameter count.
	ErrArityMismatch ErrorCode = "GEN205"
)

// InstantiationError reports a failed generic instantiation.
type InstantiationError struct {
	Code       ErrorCode `json:"code"`
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	Generic    string    `json:"generic,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
}

// Error implements the error interface.
func (e *InstantiationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// ToJSON returns the error as a JSON string for tooling consumption.
func (e *InstantiationError) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// NewNotATemplate creates a GEN200 error.
func NewNotATemplate(name string) *InstantiationError {
	return &InstantiationError{
		Code:    ErrNotATemplate,
		Type:    "not_a_template",
		Message: fmt.Sprintf("%s is not a generic and cannot be instantiated", name),
		Generic: name,
	}
}

// NewValidationFailed creates a GEN201 error carrying the validator's
// message.
func NewValidationFailed(name, reason string) *InstantiationError {
	return &InstantiationError{
		Code:    ErrValidationFailed,
		Type:    "validation_failed",
		Message: fmt.Sprintf("cannot instantiate %s: %s", name, reason),
		Generic: name,
	}
}

// NewUnknownType creates a GEN202 error.
func NewUnknownType(name string) *InstantiationError {
	return &InstantiationError{
		Code:    ErrUnknownType,
		Type:    "unknown_type",
		Message: fmt.Sprintf("unknown type %s", name),
		Generic: name,
	}
}

// NewUnknownFunction creates a GEN203 error.
func NewUnknownFunction(name string) *InstantiationError {
	return &InstantiationError{
		Code:    ErrUnknownFunction,
		Type:    "unknown_function",
		Message: fmt.Sprintf("unknown function %s", name),
		Generic: name,
	}
}

// NewParentNotInstantiated creates a GEN204 error.
func NewParentNotInstantiated(child, parent string) *InstantiationError {
	return &InstantiationError{
		Code:       ErrParentNotInstantiated,
		Type:       "parent_not_instantiated",
		Message:    fmt.Sprintf("cannot instantiate %s: parent generic %s has no instance for these arguments", child, parent),
		Generic:    child,
		Suggestion: "Instantiate the parent generic with the same type arguments first",
	}
}

// NewArityMismatch creates a GEN205 error.
func NewArityMismatch(name string, want, got int) *InstantiationError {
	return &InstantiationError{
		Code:    ErrArityMismatch,
		Type:    "arity_mismatch",
		Message: fmt.Sprintf("%s takes %d type argument(s), got %d", name, want, got),
		Generic: name,
	}
}
