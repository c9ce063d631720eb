package scheme

import "errors"

// ErrMalformed is the cause of every error a strict Transformer returns.
var ErrMalformed = errors.New("malformed input")
