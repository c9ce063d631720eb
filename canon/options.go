package canon

// StringEncoding is the string-encoding canonical option of a component
// function.
type StringEncoding uint8

const (
	UTF8 StringEncoding = iota
	UTF16
	// CompactUTF16 is the latin1+utf16 encoding: Latin-1 when every code
	// point fits in a byte, otherwise UTF-16 with UTF16Tag set in the
	// length.
	CompactUTF16
)

func (e StringEncoding) String() string {
	switch e {
	case UTF8:
		return "utf8"
	case UTF16:
		return "utf16"
	case CompactUTF16:
		return "latin1+utf16"
	default:
		return "unknown"
	}
}

const (
	// UTF16Tag marks a CompactUTF16 length as counting UTF-16 code units.
	UTF16Tag uint32 = 1 << 31

	// MaxStringByteLength bounds the encoded size of any string.
	MaxStringByteLength = 1<<31 - 1
)

// Options holds the canonical options that affect strings.
type Options struct {
	Memory   Memory
	Realloc  Allocator
	Encoding StringEncoding

	// Lossy replaces ill-formed guest strings and ill-formed Go strings
	// with U+FFFD instead of failing.
	Lossy bool
}

func (e StringEncoding) align() uint32 {
	if e == UTF8 {
		return 1
	}
	return 2
}
