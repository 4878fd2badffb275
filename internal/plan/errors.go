package plan

import "errors"

// Domain errors for the plan package.
//
// These errors can be checked using errors.Is():
//
//	if errors.Is(err, plan.ErrNoMatch) {
//	    // descriptor does not correspond to any grid slot
//	}
var (
	// ErrNoMatch is returned when a descriptor cannot be resolved
	// against any plan entry, either by name or by frequency window.
	ErrNoMatch = errors.New("plan: no matching entry")

	// ErrInvalidPlan is returned when a plan violates its structural
	// invariants (empty name, duplicate name, or a non-positive
	// frequency window).
	ErrInvalidPlan = errors.New("plan: invalid plan")
)
