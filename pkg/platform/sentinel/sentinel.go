// Package sentinel holds infrastructure facts that engines report and the
// store layer translates into coded errors.
package sentinel

import "errors"

var (
	// ErrConflict means an optimistic transaction lost a race with a
	// concurrent writer and nothing was written.
	ErrConflict = errors.New("conflict")
	// ErrUnavailable means the engine could not be reached or locked.
	ErrUnavailable = errors.New("unavailable")
)
