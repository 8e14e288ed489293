package receiver

import (
	"errors"
	"fmt"
)

// Failures of the receive loop fall in four classes:
//
//   - *ConnectionError: the device can't be opened or is lost. Fatal.
//   - ErrParseSkip: a line is not a record or can't be written. The line
//     is skipped and the loop continues.
//   - ErrInterrupted: the user stopped the receiver.
//   - *UnexpectedError: anything else. Fatal.

var (
	// ErrInterrupted is returned by Run when the context is canceled.
	ErrInterrupted = errors.New("interrupted")
	// ErrParseSkip matches every error that only skips the current line.
	ErrParseSkip = errors.New("line skipped")
	// ErrInvalidEncoding indicates received bytes are not valid UTF-8.
	ErrInvalidEncoding = errors.New("invalid UTF-8")
)

// ConnectionError indicates the serial device is unusable.
type ConnectionError struct {
	Op     string
	Device string
	Err    error
}

// Error implements error.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("could not %s port %s: %v", e.Op, e.Device, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// SkipError wraps the reason a line was skipped.
type SkipError struct {
	Line string
	Err  error
}

// Error implements error.
func (e *SkipError) Error() string {
	return fmt.Sprintf("skip %q: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *SkipError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrParseSkip) true.
func (e *SkipError) Is(target error) bool {
	return target == ErrParseSkip
}

// UnexpectedError wraps any other fatal failure.
type UnexpectedError struct {
	Err error
}

// Error implements error.
func (e *UnexpectedError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *UnexpectedError) Unwrap() error {
	return e.Err
}
