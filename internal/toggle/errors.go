package toggle

import "errors"

// ErrUnknownAxis indicates an axis name or value that does not exist.
var ErrUnknownAxis = errors.New("unknown style axis")

// ErrInvalidScriptMetrics indicates a non-positive scale ratio.
var ErrInvalidScriptMetrics = errors.New("invalid script metrics")
