package transcoder

import (
	"github.com/wippyai/utfstream"
)

// Transcoder converts a stream of From code units into To code units, one
// input unit per call.
//
// Transcode appends the output produced by c (possibly nothing) to dst and
// returns the extended slice. Flush signals end of input and appends
// whatever the pending state turns into. Neither method fails: malformed
// input is replaced by U+FFFD and WellFormed reports false from then on.
type Transcoder[From, To utfstream.CodeUnit] interface {
	Transcode(dst []To, c From) []To
	Flush(dst []To) []To
	WellFormed() bool
	Partial() bool
	Reset()
}

// maxStepUnits bounds the output of one Transcode or Flush call: two code
// points (replacement plus the unit that broke a surrogate pair) of at most
// four units each.
const maxStepUnits = 2 * 4

var (
	_ Transcoder[rune, byte]     = (*UTF32ToUTF8)(nil)
	_ Transcoder[byte, rune]     = (*UTF8ToUTF32)(nil)
	_ Transcoder[rune, uint16]   = (*UTF32ToUTF16)(nil)
	_ Transcoder[uint16, rune]   = (*UTF16ToUTF32)(nil)
	_ Transcoder[rune, rune]     = (*UTF32ToUTF32)(nil)
	_ Transcoder[byte, uint16]   = (*UTF8ToUTF16)(nil)
	_ Transcoder[uint16, byte]   = (*UTF16ToUTF8)(nil)
	_ Transcoder[byte, byte]     = (*UTF8ToUTF8)(nil)
	_ Transcoder[uint16, uint16] = (*UTF16ToUTF16)(nil)
)

// New returns a fresh transcoder for the From/To pair.
func New[From, To utfstream.CodeUnit]() Transcoder[From, To] {
	var t any
	switch utfstream.FormOf[From]() {
	case utfstream.UTF8:
		switch utfstream.FormOf[To]() {
		case utfstream.UTF8:
			t = new(UTF8ToUTF8)
		case utfstream.UTF16:
			t = new(UTF8ToUTF16)
		default:
			t = new(UTF8ToUTF32)
		}
	case utfstream.UTF16:
		switch utfstream.FormOf[To]() {
		case utfstream.UTF8:
			t = new(UTF16ToUTF8)
		case utfstream.UTF16:
			t = new(UTF16ToUTF16)
		default:
			t = new(UTF16ToUTF32)
		}
	default:
		switch utfstream.FormOf[To]() {
		case utfstream.UTF8:
			t = new(UTF32ToUTF8)
		case utfstream.UTF16:
			t = new(UTF32ToUTF16)
		default:
			t = new(UTF32ToUTF32)
		}
	}
	return t.(Transcoder[From, To])
}
