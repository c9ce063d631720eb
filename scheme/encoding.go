package scheme

import (
	"golang.org/x/text/encoding"
)

// Encoding returns s as an encoding.Encoding. Its decoder converts s to
// UTF-8 and drops a leading byte order mark; its encoder converts UTF-8 to
// s without writing one. Ill-formed input is replaced with U+FFFD.
func (s Scheme) Encoding() encoding.Encoding {
	return schemeEncoding{s: s}
}

type schemeEncoding struct {
	s Scheme
}

func (e schemeEncoding) NewDecoder() *encoding.Decoder {
	return &encoding.Decoder{Transformer: NewTransformer(e.s, UTF8, SkipBOM())}
}

func (e schemeEncoding) NewEncoder() *encoding.Encoder {
	return &encoding.Encoder{Transformer: NewTransformer(UTF8, e.s)}
}

func (e schemeEncoding) String() string {
	return e.s.String()
}
