package flow

import (
	"errors"
	"fmt"

	"github.com/bitrise-io/ai-deobfuscator/model"
)

var (
	// ErrEmptyInput is returned when empty code is submitted and empty input is rejected
	ErrEmptyInput = errors.New("flow: empty input")
	// ErrChatUnavailable is returned when the chat flow has no configured model client
	ErrChatUnavailable = errors.New("flow: chat is not configured")
)

// TransportError is returned when the outbound model call could not complete
type TransportError struct {
	Flow       string
	Provider   string
	StatusCode int // 0 when no HTTP response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("flow '%s': provider '%s' call failed (status %d): %v", e.Flow, e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("flow '%s': provider '%s' call failed: %v", e.Flow, e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MissingFieldError is returned when a declared reply field is absent
type MissingFieldError struct {
	Shape string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("reply '%s': missing required field '%s'", e.Shape, e.Field)
}

// MalformedReplyError is returned when the reply is not a JSON object or a
// declared field has the wrong type
type MalformedReplyError struct {
	Shape    string
	Field    string // empty when the reply as a whole is malformed
	Expected model.FieldType
	Got      string
	Reason   string
}

func (e *MalformedReplyError) Error() string {
	switch {
	case e.Field == "":
		return fmt.Sprintf("reply '%s': %s", e.Shape, e.Reason)
	case e.Reason != "":
		return fmt.Sprintf("reply '%s': field '%s': %s", e.Shape, e.Field, e.Reason)
	}
	return fmt.Sprintf("reply '%s': field '%s' should be %s, got %s", e.Shape, e.Field, e.Expected, e.Got)
}

// IsReplyError reports whether err means the model replied with the wrong shape
func IsReplyError(err error) bool {
	var missing *MissingFieldError
	var malformed *MalformedReplyError
	return errors.As(err, &missing) || errors.As(err, &malformed)
}

// IsTransportError reports whether err means the model could not be reached
func IsTransportError(err error) bool {
	var transport *TransportError
	return errors.As(err, &transport)
}
