package transcoder

import (
	"github.com/wippyai/utfstream"
)

// UTF32ToUTF32 validates UTF-32, replacing surrogates and values outside
// the code space.
type UTF32ToUTF32 struct {
	illFormed bool
}

func (t *UTF32ToUTF32) Transcode(dst []rune, c rune) []rune {
	if !utfstream.IsCodePoint(c) {
		t.illFormed = true
		c = utfstream.ReplacementChar
	}
	return append(dst, c)
}

func (t *UTF32ToUTF32) Flush(dst []rune) []rune { return dst }
func (t *UTF32ToUTF32) WellFormed() bool        { return !t.illFormed }
func (t *UTF32ToUTF32) Partial() bool           { return false }
func (t *UTF32ToUTF32) Reset()                  { *t = UTF32ToUTF32{} }
