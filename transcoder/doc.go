// Package transcoder converts between UTF-8, UTF-16 and UTF-32 one code
// unit at a time.
//
// Every transcoder is a small value type whose zero value is ready to use.
// Each input unit is fed with Transcode, which appends zero or more output
// units to a caller-supplied slice; Flush ends the input.
//
//	┌──────────────────────────────────────────────────────────────┐
//	│ From unit ─→ [decode to code point] ─→ [encode] ─→ To units  │
//	└──────────────────────────────────────────────────────────────┘
//
// # Transcoders
//
//	From \ To   byte            uint16          rune
//	─────────────────────────────────────────────────────────────
//	byte        UTF8ToUTF8      UTF8ToUTF16     UTF8ToUTF32
//	uint16      UTF16ToUTF8     UTF16ToUTF16    UTF16ToUTF32
//	rune        UTF32ToUTF8     UTF32ToUTF16    UTF32ToUTF32
//
// The direct transcoders touch UTF-32 on one side. The others chain a
// decoder into an encoder through a two-rune stack buffer. New picks the
// right one for a From/To pair.
//
// # Ill-formed input
//
// Malformed input never fails. UTF-8 is decoded by an automaton: when a
// byte drives it into the reject state, the sequence so far and that byte
// together become one U+FFFD. The rejecting byte is consumed, not read
// again as the start of a new sequence, so E0 A4 41 yields a single
// U+FFFD and no 'A'. WellFormed reports false until Reset. A sequence that
// is still open when Flush is called becomes one more U+FFFD.
//
// # Adaptors
//
//	Sink      push units through a transcoder into a Consumer
//	View      lazy pull iteration over a source slice
//	Seq       transcode an iter.Seq
//	Append    whole-slice conversion (also Convert, Valid, *String*)
//
// # Output Bounds
//
// One Transcode or Flush call appends at most eight units, so a fixed
// [8]To array is always enough for a single step.
package transcoder
