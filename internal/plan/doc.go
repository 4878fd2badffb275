// Package plan models the channel plan of a CzechLight ROADM: the
// fixed, device-defined grid of named frequency slots that every media
// channel must align to.
//
// A Plan is built once per device run from the channel-plan document
// the automation runner fetched from the element, and is then shared
// read-only by every channel constructed during that run.
//
// # Resolution
//
// Descriptors reference the grid in one of two ways, and the Plan
// resolves both against the same entries:
//
//   - By frequency window: the operator intent supplies a centre
//     frequency (THz) and a span (GHz). The window is converted into
//     the plan's native units and matched exactly against an entry's
//     lower/upper bounds. Exact float equality is intentional: the
//     grid is the single source of truth and an intent that does not
//     land precisely on a slot is a mistake, not a rounding problem.
//   - By name: the device's live state names the slot directly, and
//     the span/centre are derived from the entry's bounds.
//
// # Invariants
//
// Entry names are unique within a plan and every entry has
// lower < upper; both are enforced when the Plan is built. Entries are
// scanned in declared order, so if a malformed plan ever carried two
// entries with the same window the first-listed entry would win. That
// is policy, not an accident.
package plan
