package transcoder

import (
	"github.com/wippyai/utfstream"
)

// UTF32ToUTF16 encodes code points as UTF-16, splitting supplementary
// code points into a surrogate pair.
type UTF32ToUTF16 struct {
	illFormed bool
}

func (t *UTF32ToUTF16) Transcode(dst []uint16, c rune) []uint16 {
	switch {
	case !utfstream.IsCodePoint(c):
		t.illFormed = true
		return append(dst, uint16(utfstream.ReplacementChar))
	case c <= 0xFFFF:
		return append(dst, uint16(c))
	}
	// 0xD7C0 is FirstHighSurrogate - (0x10000 >> 10).
	return append(dst,
		uint16(0xD7C0+(c>>10)),
		uint16(utfstream.FirstLowSurrogate+(c&0x3FF)))
}

func (t *UTF32ToUTF16) Flush(dst []uint16) []uint16 { return dst }
func (t *UTF32ToUTF16) WellFormed() bool            { return !t.illFormed }
func (t *UTF32ToUTF16) Partial() bool               { return false }
func (t *UTF32ToUTF16) Reset()                      { *t = UTF32ToUTF16{} }

// UTF16ToUTF32 joins surrogate pairs. A high surrogate is held until the
// next unit arrives.
type UTF16ToUTF32 struct {
	high      uint16 // high surrogate minus FirstHighSurrogate, 10 bits
	hasHigh   bool
	illFormed bool
}

func (t *UTF16ToUTF32) Transcode(dst []rune, c uint16) []rune {
	r := rune(c)
	if !t.hasHigh {
		if utfstream.IsHighSurrogate(r) {
			t.high = uint16(r - utfstream.FirstHighSurrogate)
			t.hasHigh = true
			return dst
		}
		if utfstream.IsLowSurrogate(r) {
			t.illFormed = true
			r = utfstream.ReplacementChar
		}
		return append(dst, r)
	}

	if utfstream.IsLowSurrogate(r) {
		cp := rune(t.high)<<10 + (r - utfstream.FirstLowSurrogate) + 0x10000
		t.high, t.hasHigh = 0, false
		return append(dst, cp)
	}

	t.illFormed = true
	if utfstream.IsHighSurrogate(r) {
		// The new high surrogate replaces the stranded one.
		t.high = uint16(r - utfstream.FirstHighSurrogate)
		return append(dst, utfstream.ReplacementChar)
	}
	t.high, t.hasHigh = 0, false
	return append(dst, utfstream.ReplacementChar, r)
}

// Flush turns a dangling high surrogate into U+FFFD.
func (t *UTF16ToUTF32) Flush(dst []rune) []rune {
	if !t.hasHigh {
		return dst
	}
	t.high, t.hasHigh = 0, false
	t.illFormed = true
	return append(dst, utfstream.ReplacementChar)
}

func (t *UTF16ToUTF32) WellFormed() bool { return !t.illFormed }
func (t *UTF16ToUTF32) Partial() bool    { return t.hasHigh }
func (t *UTF16ToUTF32) Reset()           { *t = UTF16ToUTF32{} }
