package pixelio

import "errors"

// Errors returned by the pixel accessor and the analysis routines. They are
// wrapped with context, so compare with errors.Is.
var (
	ErrOutOfRange       = errors.New("value out of range")
	ErrRange            = errors.New("channel outside [0,1]")
	ErrNotSupported     = errors.New("pixel layout not supported")
	ErrEmptySet         = errors.New("no pixel values in range")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrConvergence      = errors.New("refinement did not converge")
)
