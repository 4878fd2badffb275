package netconf

import "errors"

// Domain errors for the netconf package.
var (
	// ErrMalformedDocument is returned when a device document cannot
	// be parsed into its expected structure, or a numeric field does
	// not parse as a number.
	ErrMalformedDocument = errors.New("netconf: malformed document")
)
