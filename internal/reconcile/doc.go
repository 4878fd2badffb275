// Package reconcile computes the difference between a device's live
// media-channel configuration and an operator proposal that share one
// channel plan, and derives the final authoritative channel set under
// merge or replace semantics.
//
// Channels are matched by resolved plan-slot name, which is unique
// within a well-formed collection. A collection containing two
// channels with the same name is a caller error and is not diagnosed
// here.
//
// Diff is a pure function: it never mutates its inputs, holds no
// state between calls, and given identical inputs produces identical,
// deterministically ordered results.
package reconcile
