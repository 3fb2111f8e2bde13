package platform

import "errors"

// ErrMalformed indicates platform rich text that cannot be imported.
var ErrMalformed = errors.New("malformed platform rich text")
