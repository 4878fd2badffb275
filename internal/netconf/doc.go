// Package netconf is the XML boundary of the reconciliation core.
//
// On the way in it parses the two documents the automation runner
// fetched from the network element, the channel-plan reply and the
// media-channels reply (both NETCONF <data> payloads), into validated
// typed entities. Malformed structure or non-numeric frequency fields
// are rejected here, so the rest of the core only ever sees
// well-formed plans and channels.
//
// On the way out Render serialises a final channel set into the
// <config> payload the runner applies to the element. Rendering is
// verbatim: the caller's list order is preserved and nothing is
// filtered or deduplicated.
//
// The core performs no network I/O. Fetching these documents from the
// element and pushing the rendered config back (including any
// backup-before-write step) is the runner's job.
package netconf
