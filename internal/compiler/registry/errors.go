package registry

import "fmt"

// ErrorCode identifies a registration failure.
type ErrorCode string

const (
	// ErrDuplicateSymbol indicates a type or function hash was registered twice.
	ErrDuplicateSymbol ErrorCode = "REG001"
	// ErrUnknownSymbol indicates registration referenced an entity that does not exist.
	ErrUnknownSymbol ErrorCode = "REG002"
)

// RegistrationError reports a failed registry mutation.
type RegistrationError struct {
	Code    ErrorCode `json:"code"`
	Type    string    `json:"type"`
	Message string    `json:"message"`
	Symbol  string    `json:"symbol,omitempty"`
}

// Error implements the error interface.
func (e *RegistrationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// NewDuplicateSymbol creates a REG001 error.
func NewDuplicateSymbol(kind, name string) *RegistrationError {
	return &RegistrationError{
		Code:    ErrDuplicateSymbol,
		Type:    "duplicate_symbol",
		Message: fmt.Sprintf("%s %s is already registered", kind, name),
		Symbol:  name,
	}
}

// NewUnknownSymbol creates a REG002 error.
func NewUnknownSymbol(kind, name string) *RegistrationError {
	return &RegistrationError{
		Code:    ErrUnknownSymbol,
		Type:    "unknown_symbol",
		Message: fmt.Sprintf("%s %s is not registered", kind, name),
		Symbol:  name,
	}
}
