package store

import "errors"

// ErrMalformed is wrapped by every structural load failure: truncated
// files, inconsistent headers, out-of-range neighbor ids. I/O failures are
// returned unwrapped so callers can tell the two classes apart.
var ErrMalformed = errors.New("malformed input file")
