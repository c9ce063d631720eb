// Package utfstream provides incremental conversion between the three
// Unicode encoding forms: UTF-8, UTF-16 and UTF-32.
//
// Text is converted one code unit at a time. No conversion ever needs the
// whole input in memory, and malformed input never stops a stream: every
// ill-formed sequence is replaced by U+FFFD and the stream remembers that it
// was not well-formed.
//
// # Architecture Overview
//
//	utfstream/           Code-unit types, forms, constants, predicates
//	├── transcoder/      The nine incremental transcoders, sinks and lazy views
//	├── scheme/          Byte-serialized schemes (UTF-16LE, UTF-32BE, ...) as x/text transformers
//	├── canon/           Component Model string lifting/lowering on wazero memory
//	├── errors/          Structured error types for the outer layers
//	└── cmd/transcode/   Command-line converter and interactive inspector
//
// # Code Units
//
// The CodeUnit constraint is the closed set byte | uint16 | rune:
//
//	Form     Unit     Longest sequence
//	──────────────────────────────────
//	UTF-8    byte     4
//	UTF-16   uint16   2
//	UTF-32   rune     1
//
// # Quick Start
//
// Push code units through a transcoder and flush at the end:
//
//	var t transcoder.UTF8ToUTF16
//	var out []uint16
//	for _, b := range input {
//	    out = t.Transcode(out, b)
//	}
//	out = t.Flush(out)
//	if !t.WellFormed() {
//	    // input contained at least one malformed sequence
//	}
//
// Or pull output lazily:
//
//	it := transcoder.NewView[byte, rune](input).Iter()
//	for it.Next() {
//	    fmt.Printf("%U\n", it.Value())
//	}
//
// # Counting
//
// Length and Index scan for code point starts without validating:
//
//	n := utfstream.Length(units)    // number of code points
//	i := utfstream.Index(units, 3)  // offset of the fourth code point, or len(units)
//
// # Thread Safety
//
// Transcoders, sinks and iterators are NOT thread-safe. Each stream owns
// its own instance; independent streams may run in parallel.
package utfstream
