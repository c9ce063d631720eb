// Package dfa holds the UTF-8 validating automaton used by the transcoder
// package.
//
// Each byte maps to one of twelve classes; the pair (state, class) maps to
// the next state. States are multiples of 12 so that state+class indexes the
// transition rows directly. Accept is 0 and Reject is 12.
//
// This package is internal to the transcoder.
package dfa

const (
	Accept uint8 = 0
	Reject uint8 = 12
)

// table is the class table (bytes 0x00-0xFF) followed by the transition
// rows starting at offset 256.
var table = [364]uint8{
	// 0x00-0x7F: ASCII
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	// 0x80-0xBF: continuation bytes, split by the ranges lead bytes restrict
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9,
	7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7,
	// 0xC0-0xFF: lead bytes; C0, C1 and F5-FF never appear
	8, 8, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	10, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 4, 3, 3, 11, 6, 6, 6, 5, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8,

	// transitions
	0, 12, 24, 36, 60, 96, 84, 12, 12, 12, 48, 72,
	12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12,
	12, 0, 12, 12, 12, 12, 12, 0, 12, 0, 12, 12,
	12, 24, 12, 12, 12, 12, 12, 24, 12, 24, 12, 12,
	12, 12, 12, 12, 12, 12, 12, 24, 12, 12, 12, 12,
	12, 24, 12, 12, 12, 12, 12, 12, 12, 24, 12, 12,
	12, 12, 12, 12, 12, 12, 12, 36, 12, 36, 12, 12,
	12, 36, 12, 12, 12, 12, 12, 36, 12, 36, 12, 12,
	12, 36, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12,
}

// Class returns the byte class of b.
func Class(b byte) uint8 {
	return table[b]
}

// Next returns the state reached from state on a byte of class class.
func Next(state, class uint8) uint8 {
	return table[256+uint16(state)+uint16(class)]
}

// Step advances the automaton by one byte, accumulating the code point in
// cp. The returned code point is complete only when the returned state is
// Accept.
func Step(state uint8, cp rune, b byte) (uint8, rune) {
	class := Class(b)
	if state != Accept {
		cp = rune(b&0x3F) | cp<<6
	} else {
		cp = rune((0xFF >> class) & b)
	}
	return Next(state, class), cp
}
