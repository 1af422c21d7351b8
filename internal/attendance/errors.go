package attendance

import "errors"

// Failure kinds surfaced by the engine. Handlers map these to HTTP statuses;
// anything else is an infrastructure failure. Each operation's failure set is
// closed: the engine never converts one kind into another.
var (
	ErrNoSchedule      = errors.New("no class schedule found")
	ErrOutOfWindow     = errors.New("outside the scheduled class window")
	ErrSessionInactive = errors.New("session is not active")
	ErrAlreadyMarked   = errors.New("attendance already marked")
	ErrWifiMismatch    = errors.New("wifi location mismatch")
	ErrInvalidMethod   = errors.New("invalid method")
	ErrInvalidCode     = errors.New("invalid code")
	ErrScopeMismatch   = errors.New("class is for a different department or section")
	ErrNotFound        = errors.New("session not found")
	ErrForbidden       = errors.New("not authorized")
)
