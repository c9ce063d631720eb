package canon

import (
	"github.com/wippyai/utfstream"
	"github.com/wippyai/utfstream/errors"
)

// LiftChar converts a flat char value into a rune. Surrogates and values
// past U+10FFFF are rejected.
func LiftChar(v uint32) (rune, error) {
	r := rune(v)
	if v > uint32(utfstream.MaxCodePoint) || !utfstream.IsCodePoint(r) {
		return 0, errors.New(errors.PhaseLift, errors.KindMalformed).
			Value(v).
			Detail("char value %#x is not a Unicode scalar value", v).
			Build()
	}
	return r, nil
}

// LowerChar converts r into a flat char value.
func LowerChar(r rune) (uint32, error) {
	if !utfstream.IsCodePoint(r) {
		return 0, errors.New(errors.PhaseLower, errors.KindMalformed).
			Value(r).
			Detail("rune %#x is not a Unicode scalar value", r).
			Build()
	}
	return uint32(r), nil
}
