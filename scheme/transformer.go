package scheme

import (
	"bytes"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/text/transform"

	"github.com/wippyai/utfstream/errors"
)

// maxStepBytes bounds the output of a single source unit, or of the final
// flush plus a replacement for a truncated unit: nine code units of at
// most four bytes.
const maxStepBytes = 9 * 4

// Transformer converts a byte stream from one scheme to another. It
// implements transform.Transformer, so it plugs into transform.NewReader,
// transform.NewWriter, transform.String and friends.
//
// A Transformer is not safe for concurrent use.
type Transformer struct {
	from, to Scheme
	cfg      config
	p        pipeline

	started   bool
	flushed   bool
	illFormed bool
	offset    int64
	err       error

	pend           [maxStepBytes + 4]byte
	pendLo, pendHi int
	scratch        [maxStepBytes]byte
}

var _ transform.Transformer = (*Transformer)(nil)

// NewTransformer returns a Transformer converting from one scheme to
// another.
func NewTransformer(from, to Scheme, opts ...Option) *Transformer {
	t := &Transformer{from: from, to: to}
	for _, opt := range opts {
		opt(&t.cfg)
	}
	if !from.valid() || !to.valid() {
		t.err = errors.Unsupported(errors.PhaseConfig,
			fmt.Sprintf("transform %s -> %s", from, to))
		return t
	}
	t.p = newPipeline(from, to)
	return t
}

// WellFormed reports whether all input seen so far was well-formed.
func (t *Transformer) WellFormed() bool {
	return !t.illFormed && (t.p == nil || t.p.wellFormed())
}

// Reset implements transform.Transformer.
func (t *Transformer) Reset() {
	t.started, t.flushed, t.illFormed = false, false, false
	t.offset = 0
	t.pendLo, t.pendHi = 0, 0
	if t.p != nil {
		t.p.reset()
		t.err = nil
	}
}

// Transform implements transform.Transformer.
func (t *Transformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	if t.err != nil {
		return 0, 0, t.err
	}
	if !t.drain(dst, &nDst) {
		return nDst, 0, transform.ErrShortDst
	}

	if !t.started {
		bom := t.from.BOMBytes()
		if t.cfg.skipBOM {
			if len(src) < len(bom) && !atEOF && bytes.HasPrefix(bom, src) {
				return nDst, 0, transform.ErrShortSrc
			}
			if bytes.HasPrefix(src, bom) {
				nSrc = len(bom)
				t.offset += int64(nSrc)
			}
		}
		t.started = true
		if t.cfg.writeBOM && !t.emit(dst, &nDst, t.to.BOMBytes()) {
			return nDst, nSrc, transform.ErrShortDst
		}
	}

	size := t.from.UnitSize()
	for nSrc+size <= len(src) {
		wasWellFormed := t.WellFormed()
		out := t.p.put(t.scratch[:0], t.from.readUnit(src[nSrc:]))
		if wasWellFormed && !t.WellFormed() {
			if err := t.malformed(); err != nil {
				return nDst, nSrc, err
			}
		}
		nSrc += size
		t.offset += int64(size)
		if !t.emit(dst, &nDst, out) {
			return nDst, nSrc, transform.ErrShortDst
		}
	}

	if !atEOF {
		if nSrc < len(src) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		return nDst, nSrc, nil
	}
	if t.flushed {
		return nDst, nSrc, nil
	}

	wasWellFormed := t.WellFormed()
	out := t.p.flush(t.scratch[:0])
	if nSrc < len(src) {
		// Input ends inside a code unit.
		out = t.p.replacement(out)
		t.illFormed = true
	}
	if wasWellFormed && !t.WellFormed() {
		if err := t.malformed(); err != nil {
			return nDst, nSrc, err
		}
	}
	t.offset += int64(len(src) - nSrc)
	nSrc = len(src)
	t.flushed = true
	if !t.emit(dst, &nDst, out) {
		return nDst, nSrc, transform.ErrShortDst
	}
	return nDst, nSrc, nil
}

// malformed records the first ill-formed unit. In strict mode it returns
// the error that ends the stream.
func (t *Transformer) malformed() error {
	Logger().Debug("malformed input",
		zap.Stringer("from", t.from),
		zap.Stringer("to", t.to),
		zap.Int64("offset", t.offset))
	if !t.cfg.strict {
		return nil
	}
	e := errors.Malformed(errors.PhaseTransform, t.from.String(), t.offset, ErrMalformed)
	e.To = t.to.String()
	t.err = e
	return t.err
}

// emit copies out into dst, keeping whatever does not fit for the next
// call.
func (t *Transformer) emit(dst []byte, nDst *int, out []byte) bool {
	n := copy(dst[*nDst:], out)
	*nDst += n
	if n == len(out) {
		return true
	}
	t.pendLo = 0
	t.pendHi = copy(t.pend[:], out[n:])
	return false
}

func (t *Transformer) drain(dst []byte, nDst *int) bool {
	if t.pendLo == t.pendHi {
		return true
	}
	n := copy(dst[*nDst:], t.pend[t.pendLo:t.pendHi])
	t.pendLo += n
	*nDst += n
	return t.pendLo == t.pendHi
}
