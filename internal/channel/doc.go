// Package channel models a single media channel of a CzechLight ROADM:
// one optical channel routed through an add and a drop port with an
// associated attenuation, aligned to a slot of the device's channel
// plan.
//
// A Channel is built from exactly one of two descriptor shapes and is
// immutable afterwards:
//
//   - FromDeviceState: the element's live configuration names the plan
//     slot directly and carries symmetric add/drop blocks.
//   - FromIntent: the operator's proposal supplies a port, attenuation
//     and a centre/span frequency window that must land on a slot.
//
// Either way all frequency fields are completed against the shared
// plan at construction time, so downstream code never sees a channel
// with partially resolved frequencies.
//
// # The C-band sentinel
//
// A channel named "C-band" represents the whole-band broadcast and
// monitoring path. It has no discrete add/drop ports, so it is exempt
// from the port/attenuation presence rules and from field-wise
// equality: two C-band channels are equal by name alone, and a C-band
// channel is never equal to a per-slot channel.
package channel
