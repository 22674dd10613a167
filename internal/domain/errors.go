package domain

import (
	"errors"
	"fmt"
)

// FailureKind classifies why an operation failed, so callers can tell a
// transport problem apart from a backend business rejection or a local
// precondition violation.
type FailureKind string

const (
	FailureNetwork    FailureKind = "NETWORK_FAILURE"
	FailureBusiness   FailureKind = "BUSINESS_REJECTION"
	FailureValidation FailureKind = "VALIDATION_FAILURE"
	FailureEncoding   FailureKind = "ENCODING_FAILURE"
)

// Failure is the error type every component of the rental session manager
// returns. Message carries the user-facing text; for business rejections it
// is the backend message verbatim.
type Failure struct {
	Kind    FailureKind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func NewNetworkFailure(msg string, err error) *Failure {
	return &Failure{Kind: FailureNetwork, Message: msg, Err: err}
}

func NewBusinessRejection(msg string) *Failure {
	return &Failure{Kind: FailureBusiness, Message: msg}
}

func NewValidationFailure(msg string) *Failure {
	return &Failure{Kind: FailureValidation, Message: msg}
}

func NewEncodingFailure(msg string, err error) *Failure {
	return &Failure{Kind: FailureEncoding, Message: msg, Err: err}
}

// IsKind reports whether err is (or wraps) a Failure of the given kind.
func IsKind(err error, kind FailureKind) bool {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind == kind
	}
	return false
}

// UserMessage extracts the displayable message from err. Every failure
// degrades to a message; nothing crash-propagates.
func UserMessage(err error) string {
	var f *Failure
	if errors.As(err, &f) {
		return f.Message
	}
	return err.Error()
}
