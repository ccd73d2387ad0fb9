// Package repository implements the reservation domain logic on top of the
// storage gateway.  The sentinel errors below let handlers map failures to
// HTTP responses without inspecting message text.
package repository

import "errors"

// ErrConflict is returned when a create or edit would produce a second
// active reservation for the same (seat, date, slot) triple.  Handlers
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("seat already reserved for this time slot")

// ErrNotFound is returned when an operation names a reservation id or seat
// id that does not exist.  Handlers translate this into an HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrPastSlot is returned when a reservation targets a time slot whose
// start has already passed on the requested day.
var ErrPastSlot = errors.New("time slot is in the past")

// ErrInvalidRequest is returned for requests that fail static validation,
// such as an unknown duration or a blank user name.  The wrapped message
// carries the detail.
var ErrInvalidRequest = errors.New("invalid request")
