package transcoder

import (
	"github.com/wippyai/utfstream"
)

// The composed transcoders decode to code points with one direct
// transcoder and re-encode with another. A single input unit yields at most
// two code points (replacement plus the unit that broke a surrogate pair),
// so the intermediate buffer holds two.

// chainStep feeds c to in and routes every code point it produces through
// out.
func chainStep[From, To utfstream.CodeUnit](in Transcoder[From, rune], out Transcoder[rune, To], dst []To, c From) []To {
	var inter [2]rune
	for _, cp := range in.Transcode(inter[:0], c) {
		dst = out.Transcode(dst, cp)
	}
	return dst
}

// chainFlush flushes in and routes what it produces through out.
func chainFlush[From, To utfstream.CodeUnit](in Transcoder[From, rune], out Transcoder[rune, To], dst []To) []To {
	var inter [2]rune
	for _, cp := range in.Flush(inter[:0]) {
		dst = out.Transcode(dst, cp)
	}
	return dst
}

// UTF8ToUTF16 converts UTF-8 to UTF-16.
type UTF8ToUTF16 struct {
	in  UTF8ToUTF32
	out UTF32ToUTF16
}

func (t *UTF8ToUTF16) Transcode(dst []uint16, c byte) []uint16 {
	return chainStep[byte, uint16](&t.in, &t.out, dst, c)
}

func (t *UTF8ToUTF16) Flush(dst []uint16) []uint16 {
	return chainFlush[byte, uint16](&t.in, &t.out, dst)
}

func (t *UTF8ToUTF16) WellFormed() bool { return t.in.WellFormed() && t.out.WellFormed() }
func (t *UTF8ToUTF16) Partial() bool    { return t.in.Partial() }
func (t *UTF8ToUTF16) Reset()           { *t = UTF8ToUTF16{} }

// UTF16ToUTF8 converts UTF-16 to UTF-8.
type UTF16ToUTF8 struct {
	in  UTF16ToUTF32
	out UTF32ToUTF8
}

func (t *UTF16ToUTF8) Transcode(dst []byte, c uint16) []byte {
	return chainStep[uint16, byte](&t.in, &t.out, dst, c)
}

func (t *UTF16ToUTF8) Flush(dst []byte) []byte {
	return chainFlush[uint16, byte](&t.in, &t.out, dst)
}

func (t *UTF16ToUTF8) WellFormed() bool { return t.in.WellFormed() && t.out.WellFormed() }
func (t *UTF16ToUTF8) Partial() bool    { return t.in.Partial() }
func (t *UTF16ToUTF8) Reset()           { *t = UTF16ToUTF8{} }

// UTF8ToUTF8 validates UTF-8, rewriting every ill-formed sequence as the
// UTF-8 encoding of U+FFFD.
type UTF8ToUTF8 struct {
	in  UTF8ToUTF32
	out UTF32ToUTF8
}

func (t *UTF8ToUTF8) Transcode(dst []byte, c byte) []byte {
	return chainStep[byte, byte](&t.in, &t.out, dst, c)
}

func (t *UTF8ToUTF8) Flush(dst []byte) []byte {
	return chainFlush[byte, byte](&t.in, &t.out, dst)
}

func (t *UTF8ToUTF8) WellFormed() bool { return t.in.WellFormed() && t.out.WellFormed() }
func (t *UTF8ToUTF8) Partial() bool    { return t.in.Partial() }
func (t *UTF8ToUTF8) Reset()           { *t = UTF8ToUTF8{} }

// UTF16ToUTF16 validates UTF-16, replacing unpaired surrogates.
type UTF16ToUTF16 struct {
	in  UTF16ToUTF32
	out UTF32ToUTF16
}

func (t *UTF16ToUTF16) Transcode(dst []uint16, c uint16) []uint16 {
	return chainStep[uint16, uint16](&t.in, &t.out, dst, c)
}

func (t *UTF16ToUTF16) Flush(dst []uint16) []uint16 {
	return chainFlush[uint16, uint16](&t.in, &t.out, dst)
}

func (t *UTF16ToUTF16) WellFormed() bool { return t.in.WellFormed() && t.out.WellFormed() }
func (t *UTF16ToUTF16) Partial() bool    { return t.in.Partial() }
func (t *UTF16ToUTF16) Reset()           { *t = UTF16ToUTF16{} }
