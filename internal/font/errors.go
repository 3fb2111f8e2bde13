package font

import "errors"

// Errors returned by font operations.
var (
	// ErrUnresolvableFontSpec indicates a spec cannot produce a descriptor.
	ErrUnresolvableFontSpec = errors.New("unresolvable font spec")

	// ErrMixedRepresentation indicates a foreign font exposes too little to
	// derive a descriptor from.
	ErrMixedRepresentation = errors.New("font in foreign representation cannot be introspected")

	// ErrInvalidPointSize indicates a point size that is not positive.
	ErrInvalidPointSize = errors.New("point size must be positive")

	// ErrUnknownTextStyle indicates a text style name that is not recognized.
	ErrUnknownTextStyle = errors.New("unknown text style")

	// ErrUnknownWeight indicates a weight name that is not recognized.
	ErrUnknownWeight = errors.New("unknown font weight")

	// ErrUnknownWidth indicates a width name that is not recognized.
	ErrUnknownWidth = errors.New("unknown font width")
)
