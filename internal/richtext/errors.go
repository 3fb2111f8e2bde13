package richtext

import "errors"

// Errors returned by Text operations.
var (
	// ErrRangeOutOfBounds indicates a range that extends past the text.
	ErrRangeOutOfBounds = errors.New("range out of bounds")

	// ErrRangeInvalid indicates a range whose end precedes its start.
	ErrRangeInvalid = errors.New("invalid range")

	// ErrInvalidRuns indicates runs that do not partition the text.
	ErrInvalidRuns = errors.New("runs do not partition text")

	// ErrAttributeType indicates a value of the wrong type for a key.
	ErrAttributeType = errors.New("attribute value has wrong type")

	// ErrUnknownKey indicates an attribute key that does not exist.
	ErrUnknownKey = errors.New("unknown attribute key")
)
