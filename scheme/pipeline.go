package scheme

import (
	"github.com/wippyai/utfstream"
	"github.com/wippyai/utfstream/transcoder"
)

// pipeline feeds source code units through a transcoder and serializes the
// output units in the target scheme.
type pipeline interface {
	put(dst []byte, u uint32) []byte
	flush(dst []byte) []byte
	replacement(dst []byte) []byte
	wellFormed() bool
	partial() bool
	reset()
}

type stage[From, To utfstream.CodeUnit] struct {
	t     transcoder.Transcoder[From, To]
	enc   transcoder.Transcoder[rune, To]
	order byteOrder
	buf   [8]To
}

func newStage[From, To utfstream.CodeUnit](to Scheme) *stage[From, To] {
	return &stage[From, To]{
		t:     transcoder.New[From, To](),
		enc:   transcoder.New[rune, To](),
		order: to.order(),
	}
}

func (s *stage[From, To]) put(dst []byte, u uint32) []byte {
	return s.serialize(dst, s.t.Transcode(s.buf[:0], From(u)))
}

func (s *stage[From, To]) flush(dst []byte) []byte {
	return s.serialize(dst, s.t.Flush(s.buf[:0]))
}

// replacement appends U+FFFD for input that ends inside a code unit.
func (s *stage[From, To]) replacement(dst []byte) []byte {
	return s.serialize(dst, s.enc.Transcode(s.buf[:0], utfstream.ReplacementChar))
}

func (s *stage[From, To]) serialize(dst []byte, units []To) []byte {
	for _, u := range units {
		switch utfstream.FormOf[To]() {
		case utfstream.UTF8:
			dst = append(dst, byte(u))
		case utfstream.UTF16:
			dst = s.order.AppendUint16(dst, uint16(u))
		default:
			dst = s.order.AppendUint32(dst, uint32(u))
		}
	}
	return dst
}

func (s *stage[From, To]) wellFormed() bool { return s.t.WellFormed() }
func (s *stage[From, To]) partial() bool    { return s.t.Partial() }
func (s *stage[From, To]) reset()           { s.t.Reset() }

func newPipeline(from, to Scheme) pipeline {
	switch from.Form() {
	case utfstream.UTF8:
		switch to.Form() {
		case utfstream.UTF8:
			return newStage[byte, byte](to)
		case utfstream.UTF16:
			return newStage[byte, uint16](to)
		default:
			return newStage[byte, rune](to)
		}
	case utfstream.UTF16:
		switch to.Form() {
		case utfstream.UTF8:
			return newStage[uint16, byte](to)
		case utfstream.UTF16:
			return newStage[uint16, uint16](to)
		default:
			return newStage[uint16, rune](to)
		}
	default:
		switch to.Form() {
		case utfstream.UTF8:
			return newStage[rune, byte](to)
		case utfstream.UTF16:
			return newStage[rune, uint16](to)
		default:
			return newStage[rune, rune](to)
		}
	}
}
