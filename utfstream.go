package utfstream

// CodeUnit is the closed set of code-unit types: byte for UTF-8, uint16 for
// UTF-16 and rune for UTF-32.
type CodeUnit interface {
	byte | uint16 | rune
}

const (
	// ReplacementChar is substituted for every ill-formed sequence.
	ReplacementChar rune = 0xFFFD
	// ZeroWidthNoBreakSpace is the code point used as a byte order mark.
	ZeroWidthNoBreakSpace rune = 0xFEFF
	// BOM is the byte order mark.
	BOM = ZeroWidthNoBreakSpace

	// Surrogate ranges. A high surrogate followed by a low surrogate
	// encodes one supplementary code point in UTF-16.
	FirstHighSurrogate rune = 0xD800
	LastHighSurrogate  rune = 0xDBFF
	FirstLowSurrogate  rune = 0xDC00
	LastLowSurrogate   rune = 0xDFFF

	// MaxCodePoint is the largest Unicode code point.
	MaxCodePoint rune = 0x10FFFF
	// CodePointBits is the number of bits needed to hold any code point.
	CodePointBits = 21
)

// Form is one of the three Unicode encoding forms.
type Form uint8

const (
	UTF8 Form = iota
	UTF16
	UTF32
)

func (f Form) String() string {
	switch f {
	case UTF8:
		return "UTF-8"
	case UTF16:
		return "UTF-16"
	case UTF32:
		return "UTF-32"
	default:
		return "unknown"
	}
}

// UnitSize returns the size of one code unit in bytes.
func (f Form) UnitSize() int {
	switch f {
	case UTF16:
		return 2
	case UTF32:
		return 4
	default:
		return 1
	}
}

// LongestSequence returns the maximum number of code units a single code
// point occupies in this form.
func (f Form) LongestSequence() int {
	switch f {
	case UTF8:
		return 4
	case UTF16:
		return 2
	default:
		return 1
	}
}

// FormOf returns the encoding form carried by code-unit type T.
func FormOf[T CodeUnit]() Form {
	var zero T
	switch any(zero).(type) {
	case byte:
		return UTF8
	case uint16:
		return UTF16
	default:
		return UTF32
	}
}

// LongestSequence returns FormOf[T]().LongestSequence().
func LongestSequence[T CodeUnit]() int {
	return FormOf[T]().LongestSequence()
}

// IsHighSurrogate reports whether r is in [U+D800, U+DBFF].
func IsHighSurrogate(r rune) bool {
	return r >= FirstHighSurrogate && r <= LastHighSurrogate
}

// IsLowSurrogate reports whether r is in [U+DC00, U+DFFF].
func IsLowSurrogate(r rune) bool {
	return r >= FirstLowSurrogate && r <= LastLowSurrogate
}

// IsSurrogate reports whether r is a high or low surrogate.
func IsSurrogate(r rune) bool {
	return r >= FirstHighSurrogate && r <= LastLowSurrogate
}

// IsCodePoint reports whether r is a Unicode scalar value.
func IsCodePoint(r rune) bool {
	return r >= 0 && r <= MaxCodePoint && !IsSurrogate(r)
}

// IsCodePointStart reports whether c can begin a code point in its form:
// any byte that is not a continuation byte, any UTF-16 unit that is not a
// low surrogate, any UTF-32 unit that is a scalar value.
func IsCodePointStart[T CodeUnit](c T) bool {
	switch v := any(c).(type) {
	case byte:
		return v&0xC0 != 0x80
	case uint16:
		return !IsLowSurrogate(rune(v))
	case rune:
		return IsCodePoint(v)
	}
	return false
}
