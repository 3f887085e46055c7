package service

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField            = errors.New("missing required field")
	ErrMalformedField          = errors.New("malformed field")
	ErrTooManyFiles            = errors.New("too many files")
	ErrApplicationNotFound     = errors.New("no KYC application found for this email")
	ErrInvalidStatus           = errors.New("invalid status")
	ErrContentRequired         = errors.New("content is required")
	ErrQueryRequired           = errors.New("query is required")
	ErrNotificationFailed      = errors.New("notification could not be sent")
	ErrUnsupportedInvestorType = errors.New("unsupported investor type or missing data")
)

// MalformedFieldError reports a form field that could not be decoded. It
// matches both ErrMalformedField and the decoder error.
type MalformedFieldError struct {
	Field string
	Err   error
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("invalid JSON in %s: %v", e.Field, e.Err)
}

func (e *MalformedFieldError) Unwrap() []error {
	return []error{ErrMalformedField, e.Err}
}
