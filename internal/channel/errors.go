package channel

import "errors"

// Domain errors for the channel package. Resolution failures surface
// as plan.ErrNoMatch wrapped with the channel's context.
var (
	// ErrMissingField is returned when a descriptor lacks a field the
	// construction path requires.
	ErrMissingField = errors.New("channel: required field missing")

	// ErrAddDropMismatch is returned when a device-state descriptor's
	// add and drop blocks disagree on port or attenuation.
	ErrAddDropMismatch = errors.New("channel: add and drop blocks do not match")
)
