// Package scheme transcodes byte streams between the Unicode encoding
// schemes: UTF-8, UTF-16 and UTF-32 in either byte order.
//
// A Transformer wraps one of the incremental transcoders from package
// transcoder and adds unit framing, byte order and BOM handling on top.
// It implements golang.org/x/text/transform.Transformer:
//
//	t := scheme.NewTransformer(scheme.UTF16LE, scheme.UTF8, scheme.SkipBOM())
//	r := transform.NewReader(f, t)
//
// By default ill-formed input is replaced with U+FFFD and reported through
// WellFormed. With Strict the first ill-formed unit stops the stream with
// an error wrapping ErrMalformed.
//
// Input that ends in the middle of a code unit, such as an odd number of
// UTF-16 bytes, is ill-formed and yields one U+FFFD.
package scheme
