package transcoder

import (
	"iter"

	"github.com/wippyai/utfstream"
)

// View is a lazy transcoded view of src. Nothing is converted until the
// view is iterated, and each iteration starts again from the beginning of
// src with a fresh transcoder.
type View[From, To utfstream.CodeUnit] struct {
	src []From
}

// NewView returns a view of src transcoded from From to To.
func NewView[From, To utfstream.CodeUnit](src []From) View[From, To] {
	return View[From, To]{src: src}
}

// Iter returns an iterator positioned before the first output unit.
func (v View[From, To]) Iter() *Iterator[From, To] {
	return &Iterator[From, To]{
		src: v.src,
		t:   New[From, To](),
	}
}

// All returns the transcoded units as a range-over-func sequence.
func (v View[From, To]) All() iter.Seq[To] {
	return func(yield func(To) bool) {
		it := v.Iter()
		for it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
	}
}

// Collect transcodes the whole view and reports whether src was
// well-formed.
func (v View[From, To]) Collect() ([]To, bool) {
	it := v.Iter()
	out := make([]To, 0, len(v.src))
	for it.Next() {
		out = append(out, it.Value())
	}
	return out, it.WellFormed()
}

// Iterator pulls transcoded units out of a View one at a time.
//
// Output is produced one source code point at a time: when the buffered
// units run out, source units are fed to the transcoder until it produces
// something or the source ends, and at the end the transcoder is flushed
// exactly once.
type Iterator[From, To utfstream.CodeUnit] struct {
	src     []From
	next    int
	t       Transcoder[From, To]
	out     [maxStepUnits]To
	lo, hi  int
	flushed bool
	cur     To
}

// Next advances to the next output unit and reports whether there is one.
func (it *Iterator[From, To]) Next() bool {
	if it.lo == it.hi && !it.fill() {
		return false
	}
	it.cur = it.out[it.lo]
	it.lo++
	return true
}

func (it *Iterator[From, To]) fill() bool {
	for it.next < len(it.src) {
		n := len(it.t.Transcode(it.out[:0], it.src[it.next]))
		it.next++
		if n > 0 {
			it.lo, it.hi = 0, n
			return true
		}
	}
	if it.flushed {
		return false
	}
	it.flushed = true
	it.lo, it.hi = 0, len(it.t.Flush(it.out[:0]))
	return it.hi > 0
}

// Value returns the unit reached by the last successful Next.
func (it *Iterator[From, To]) Value() To {
	return it.cur
}

// WellFormed reports whether the source consumed so far was well-formed.
func (it *Iterator[From, To]) WellFormed() bool {
	return it.t.WellFormed()
}

// Offset returns the index in the source of the first unit not yet fed to
// the transcoder.
func (it *Iterator[From, To]) Offset() int {
	return it.next
}

// Seq transcodes src lazily through t. The caller keeps t to inspect
// WellFormed once the sequence has been drained; t is flushed only when
// iteration runs to the end.
func Seq[From, To utfstream.CodeUnit](t Transcoder[From, To], src iter.Seq[From]) iter.Seq[To] {
	return func(yield func(To) bool) {
		var buf [maxStepUnits]To
		for c := range src {
			for _, u := range t.Transcode(buf[:0], c) {
				if !yield(u) {
					return
				}
			}
		}
		for _, u := range t.Flush(buf[:0]) {
			if !yield(u) {
				return
			}
		}
	}
}
