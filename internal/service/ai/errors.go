package ai

import "fmt"

// Kind classifies completion failures.
type Kind string

const (
	KindConfig    Kind = "config"
	KindNetwork   Kind = "network"
	KindProvider  Kind = "provider"
	KindRateLimit Kind = "rate_limit"
	KindEmpty     Kind = "empty_response"
)

// Error describes a failed completion attempt.
type Error struct {
	Kind     Kind
	Provider string
	Status   int
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ai %s %s error: %s: %v", e.Provider, e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("ai %s %s error: %s", e.Provider, e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }
