// Package summary renders a reconciliation result into the four
// human-reviewable YAML documents an operator checks before a config
// is pushed: added channels, removed channels, changed channels and
// the final configuration.
//
// Channels are presented in the same shape the operator writes in the
// proposal document (leaf_port, attenuation, frequency_span,
// frequency_center), with the frequency units called out as end-of-line
// comments. A changed channel is shown field by field: unchanged
// fields carry the proposed value, differing fields carry a literal
// "<current> -> <proposed>" transition string.
//
// An empty category still produces a document, with an explicit
// placeholder line, so a reviewer can tell "nothing in this category"
// apart from "summary not generated".
package summary
