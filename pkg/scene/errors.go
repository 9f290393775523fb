package scene

import "errors"

var (
	// ErrInvalidArgument reports construction-time misuse such as a polygon
	// with fewer than three vertices or an unknown light type.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidContext reports a render call without a usable Surface.
	ErrInvalidContext = errors.New("invalid drawing context")

	// ErrUnknownAttrib reports a polygon attribute key outside the
	// recognized set.
	ErrUnknownAttrib = errors.New("unknown attribute")
)
