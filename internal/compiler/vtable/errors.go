package vtable

import (
	"encoding/json"
	"fmt"
)

// ErrorCode identifies a table construction failure.
type ErrorCode string

const (
	// ErrCircularInheritance indicates a class appears in its own base chain.
	ErrCircularInheritance ErrorCode = "VTB300"
	// ErrUnknownLink indicates a base class or interface identity resolves
	// to nothing.
	ErrUnknownLink ErrorCode = "VTB301"
)

// BuildError reports a failed vtable construction.
type BuildError struct {
	Code    ErrorCode `json:"code"`
	Type    string    `json:"type"`
	Message string    `json:"message"`
	Class   string    `json:"class,omitempty"`
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// ToJSON returns the error as a JSON string for tooling consumption.
func (e *BuildError) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// NewCircularInheritance creates a VTB300 error.
func NewCircularInheritance(class string) *BuildError {
	return &BuildError{
		Code:    ErrCircularInheritance,
		Type:    "circular_inheritance",
		Message: fmt.Sprintf("class %s inherits from itself", class),
		Class:   class,
	}
}

// NewUnknownBase creates a VTB301 error for a dangling base class link.
func NewUnknownBase(class, base string) *BuildError {
	return &BuildError{
		Code:    ErrUnknownLink,
		Type:    "unknown_base",
		Message: fmt.Sprintf("class %s has unknown base class %s", class, base),
		Class:   class,
	}
}

// NewUnknownInterface creates a VTB301 error for a dangling interface link.
func NewUnknownInterface(class, iface string) *BuildError {
	return &BuildError{
		Code:    ErrUnknownLink,
		Type:    "unknown_interface",
		Message: fmt.Sprintf("class %s implements unknown interface %s", class, iface),
		Class:   class,
	}
}
