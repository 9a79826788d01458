// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// string matching on driver errors.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrEmailExists is returned by user creation when the email address is
// already registered.
var ErrEmailExists = errors.New("email already exists")

// ErrCourtNotFound is returned when a court lookup matches no row.
var ErrCourtNotFound = errors.New("court not found")

// ErrReservationNotFound is returned when a reservation lookup matches
// no row.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrSlotTaken is returned by the conflict-safe reservation writer when
// an active reservation already occupies the requested (court, date,
// start) slot. Exactly one of any set of racing creation attempts for
// the same slot commits; all others observe this error. Handlers should
// translate it into an HTTP 409 telling the user to pick another slot.
var ErrSlotTaken = errors.New("slot already taken")
