package transcoder

import (
	"github.com/wippyai/utfstream"
	"github.com/wippyai/utfstream/transcoder/internal/dfa"
)

// UTF32ToUTF8 encodes code points as UTF-8. It keeps no state between
// calls apart from the well-formed flag.
type UTF32ToUTF8 struct {
	illFormed bool
}

func (t *UTF32ToUTF8) Transcode(dst []byte, c rune) []byte {
	switch {
	case c < 0:
		return t.notWellFormed(dst)
	case c < 0x80:
		return append(dst, byte(c))
	case c < 0x800:
		return append(dst,
			byte(c>>6)|0xC0,
			byte(c&0x3F)|0x80)
	case utfstream.IsSurrogate(c):
		return t.notWellFormed(dst)
	case c < 0x10000:
		return append(dst,
			byte(c>>12)|0xE0,
			byte((c>>6)&0x3F)|0x80,
			byte(c&0x3F)|0x80)
	case c <= utfstream.MaxCodePoint:
		return append(dst,
			byte(c>>18)|0xF0,
			byte((c>>12)&0x3F)|0x80,
			byte((c>>6)&0x3F)|0x80,
			byte(c&0x3F)|0x80)
	}
	return t.notWellFormed(dst)
}

func (t *UTF32ToUTF8) notWellFormed(dst []byte) []byte {
	t.illFormed = true
	return t.Transcode(dst, utfstream.ReplacementChar)
}

func (t *UTF32ToUTF8) Flush(dst []byte) []byte { return dst }
func (t *UTF32ToUTF8) WellFormed() bool        { return !t.illFormed }
func (t *UTF32ToUTF8) Partial() bool           { return false }
func (t *UTF32ToUTF8) Reset()                  { *t = UTF32ToUTF8{} }

// UTF8ToUTF32 decodes UTF-8 with the table-driven automaton in
// internal/dfa. A byte that drives the automaton into the reject state
// produces U+FFFD and is not reconsidered as the start of a new sequence.
type UTF8ToUTF32 struct {
	cp        rune
	state     uint8
	illFormed bool
}

func (t *UTF8ToUTF32) Transcode(dst []rune, c byte) []rune {
	t.state, t.cp = dfa.Step(t.state, t.cp, c)
	switch t.state {
	case dfa.Accept:
		return append(dst, t.cp)
	case dfa.Reject:
		t.illFormed = true
		t.state = dfa.Accept
		return append(dst, utfstream.ReplacementChar)
	}
	return dst
}

// Flush turns an unterminated sequence into U+FFFD.
func (t *UTF8ToUTF32) Flush(dst []rune) []rune {
	if t.state == dfa.Accept {
		return dst
	}
	t.state = dfa.Accept
	t.illFormed = true
	return append(dst, utfstream.ReplacementChar)
}

func (t *UTF8ToUTF32) WellFormed() bool { return !t.illFormed }
func (t *UTF8ToUTF32) Partial() bool    { return t.state != dfa.Accept }
func (t *UTF8ToUTF32) Reset()           { *t = UTF8ToUTF32{} }
