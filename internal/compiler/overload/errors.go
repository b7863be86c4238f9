package overload

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorCode identifies a resolution failure.
type ErrorCode string

const (
	// ErrNoMatch indicates no candidate accepted the argument list.
	ErrNoMatch ErrorCode = "RES100"
	// ErrAmbiguous indicates several candidates tied at the best cost.
	ErrAmbiguous ErrorCode = "RES101"
	// ErrConstViolation indicates a const object has only non-const candidates.
	ErrConstViolation ErrorCode = "RES102"
	// ErrInternal indicates the resolver was invoked in a broken state.
	ErrInternal ErrorCode = "RES190"
)

// ResolutionError reports a failed overload resolution with enough
// context to print a useful diagnostic: the call as written and the
// candidate declarations that were considered.
type ResolutionError struct {
	Code       ErrorCode `json:"code"`
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	Call       string    `json:"call,omitempty"`
	Candidates []string  `json:"candidates,omitempty"`
	Suggestion string    `json:"suggestion,omitempty"`
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	return e.Format()
}

// Format returns a human-readable multi-line message for terminal
// output.
func (e *ResolutionError) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if len(e.Candidates) > 0 {
		b.WriteString("\n  Candidates:")
		for _, c := range e.Candidates {
			fmt.Fprintf(&b, "\n    %s", c)
		}
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  Suggestion: %s", e.Suggestion)
	}
	return b.String()
}

// ToJSON returns the error as a JSON string for tooling consumption.
func (e *ResolutionError) ToJSON() (string, error) {
	bytes, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// NewNoMatch creates a RES100 error.
func NewNoMatch(call string, candidates []string) *ResolutionError {
	return &ResolutionError{
		Code:       ErrNoMatch,
		Type:       "no_matching_overload",
		Message:    fmt.Sprintf("No matching overload for %s", call),
		Call:       call,
		Candidates: candidates,
	}
}

// NewAmbiguous creates a RES101 error listing the tied candidates.
func NewAmbiguous(call string, tied []string) *ResolutionError {
	return &ResolutionError{
		Code:       ErrAmbiguous,
		Type:       "ambiguous_overload",
		Message:    fmt.Sprintf("Ambiguous call %s", call),
		Call:       call,
		Candidates: tied,
		Suggestion: "Add an explicit cast to one of the arguments to pick a candidate",
	}
}

// NewConstViolation creates a RES102 error.
func NewConstViolation(call, receiver string, candidates []string) *ResolutionError {
	return &ResolutionError{
		Code:       ErrConstViolation,
		Type:       "const_violation",
		Message:    fmt.Sprintf("Cannot call %s on const %s: no const overload exists", call, receiver),
		Call:       call,
		Candidates: candidates,
		Suggestion: "Mark the method const, or call it through a non-const reference",
	}
}

// NewInternal creates a RES190 error.
func NewInternal(message string) *ResolutionError {
	return &ResolutionError{
		Code:    ErrInternal,
		Type:    "internal_error",
		Message: message,
	}
}
