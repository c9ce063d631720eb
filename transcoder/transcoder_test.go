package transcoder

import (
	"fmt"
	"slices"
	"testing"
	"unicode/utf16"

	"github.com/wippyai/utfstream"
)

var samples = []string{
	"",
	"hello, world",
	"héllo wörld",
	"日本語のテキスト",
	"\U0001F600 grin \U0001F4A9",
	"\U00010348ह€$",
	"\u0000\u007f\u0080\u07ff\u0800\uffff\U00010000\U0010ffff",
}

// encodeAs returns s in the form carried by T.
func encodeAs[T utfstream.CodeUnit](s string) []T {
	var out []T
	switch utfstream.FormOf[T]() {
	case utfstream.UTF8:
		for i := 0; i < len(s); i++ {
			out = append(out, T(s[i]))
		}
	case utfstream.UTF16:
		for _, u := range utf16.Encode([]rune(s)) {
			out = append(out, T(u))
		}
	default:
		for _, r := range s {
			out = append(out, T(r))
		}
	}
	return out
}

func transcodeAll[From, To utfstream.CodeUnit](tr Transcoder[From, To], src []From) []To {
	var out []To
	for _, c := range src {
		out = tr.Transcode(out, c)
	}
	return tr.Flush(out)
}

func checkPair[From, To utfstream.CodeUnit](t *testing.T) {
	t.Helper()
	name := fmt.Sprintf("%s_to_%s", utfstream.FormOf[From](), utfstream.FormOf[To]())
	t.Run(name, func(t *testing.T) {
		for _, s := range samples {
			fwd := New[From, To]()
			got := transcodeAll(fwd, encodeAs[From](s))
			if want := encodeAs[To](s); !slices.Equal(got, want) {
				t.Errorf("%q: got %v, want %v", s, got, want)
			}
			back := New[To, From]()
			if rt := transcodeAll(back, got); !slices.Equal(rt, encodeAs[From](s)) {
				t.Errorf("%q: round trip gave %v", s, rt)
			}
			if !fwd.WellFormed() || !back.WellFormed() {
				t.Errorf("%q: expected well-formed in both directions", s)
			}
			if fwd.Partial() || back.Partial() {
				t.Errorf("%q: partial after flush", s)
			}
		}
	})
}

func TestAllPairs(t *testing.T) {
	checkPair[byte, byte](t)
	checkPair[byte, uint16](t)
	checkPair[byte, rune](t)
	checkPair[uint16, byte](t)
	checkPair[uint16, uint16](t)
	checkPair[uint16, rune](t)
	checkPair[rune, byte](t)
	checkPair[rune, uint16](t)
	checkPair[rune, rune](t)
}

func TestNew_ConcreteTypes(t *testing.T) {
	tests := []struct {
		name string
		got  any
		want any
	}{
		{"8_8", New[byte, byte](), (*UTF8ToUTF8)(nil)},
		{"8_16", New[byte, uint16](), (*UTF8ToUTF16)(nil)},
		{"8_32", New[byte, rune](), (*UTF8ToUTF32)(nil)},
		{"16_8", New[uint16, byte](), (*UTF16ToUTF8)(nil)},
		{"16_16", New[uint16, uint16](), (*UTF16ToUTF16)(nil)},
		{"16_32", New[uint16, rune](), (*UTF16ToUTF32)(nil)},
		{"32_8", New[rune, byte](), (*UTF32ToUTF8)(nil)},
		{"32_16", New[rune, uint16](), (*UTF32ToUTF16)(nil)},
		{"32_32", New[rune, rune](), (*UTF32ToUTF32)(nil)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if fmt.Sprintf("%T", tc.got) != fmt.Sprintf("%T", tc.want) {
				t.Errorf("got %T, want %T", tc.got, tc.want)
			}
		})
	}
}

func TestComposed_Malformed(t *testing.T) {
	t.Run("utf8_to_utf16", func(t *testing.T) {
		var tr UTF8ToUTF16
		got := transcodeAll[byte, uint16](&tr, []byte{'a', 0x80, 0xE2, 0x82})
		if want := []uint16{'a', 0xFFFD, 0xFFFD}; !slices.Equal(got, want) {
			t.Errorf("got % X, want % X", got, want)
		}
		if tr.WellFormed() {
			t.Error("expected ill-formed")
		}
	})

	t.Run("utf16_to_utf8_broken_pair", func(t *testing.T) {
		var tr UTF16ToUTF8
		got := tr.Transcode(nil, 0xD800)
		if len(got) != 0 || !tr.Partial() {
			t.Fatalf("got % X partial=%v, want nothing and partial", got, tr.Partial())
		}
		// Worst case for one step: replacement plus a three-byte unit.
		got = tr.Transcode(got, 0x20AC)
		if want := []byte{0xEF, 0xBF, 0xBD, 0xE2, 0x82, 0xAC}; !slices.Equal(got, want) {
			t.Errorf("got % X, want % X", got, want)
		}
		if len(got) > maxStepUnits {
			t.Errorf("step produced %d units, bound is %d", len(got), maxStepUnits)
		}
		if tr.WellFormed() || tr.Partial() {
			t.Errorf("wellFormed=%v partial=%v, want false/false", tr.WellFormed(), tr.Partial())
		}
	})

	t.Run("utf8_to_utf8_rewrites", func(t *testing.T) {
		var tr UTF8ToUTF8
		got := transcodeAll[byte, byte](&tr, []byte{'o', 'k', 0xC0, 0xAF})
		if want := []byte("ok\uFFFD\uFFFD"); !slices.Equal(got, want) {
			t.Errorf("got % X, want % X", got, want)
		}
	})

	t.Run("utf16_to_utf16_dangling", func(t *testing.T) {
		var tr UTF16ToUTF16
		got := transcodeAll[uint16, uint16](&tr, []uint16{'x', 0xDBFF})
		if want := []uint16{'x', 0xFFFD}; !slices.Equal(got, want) {
			t.Errorf("got % X, want % X", got, want)
		}
		if tr.WellFormed() || tr.Partial() {
			t.Errorf("wellFormed=%v partial=%v, want false/false", tr.WellFormed(), tr.Partial())
		}
	})
}

func TestWellFormed_Sticky(t *testing.T) {
	tr := New[byte, uint16]()
	var out []uint16
	out = tr.Transcode(out, 0xFF)
	for _, b := range []byte("all good from here") {
		out = tr.Transcode(out, b)
	}
	out = tr.Flush(out)
	if tr.WellFormed() {
		t.Error("well-formed must not recover without Reset")
	}
	if out[0] != 0xFFFD {
		t.Errorf("first unit = %X, want FFFD", out[0])
	}
}

func TestReset(t *testing.T) {
	var tr UTF8ToUTF16
	tr.Transcode(nil, 0xF0)
	tr.Transcode(nil, 0x41)
	if tr.WellFormed() {
		t.Fatal("expected ill-formed")
	}
	tr.Transcode(nil, 0xE2)
	tr.Reset()
	if !tr.WellFormed() || tr.Partial() {
		t.Errorf("after Reset: wellFormed=%v partial=%v", tr.WellFormed(), tr.Partial())
	}
	if got := transcodeAll[byte, uint16](&tr, []byte("€")); !slices.Equal(got, []uint16{0x20AC}) {
		t.Errorf("after Reset: got % X", got)
	}
}

func TestFlush_Idempotent(t *testing.T) {
	tr := New[uint16, byte]()
	tr.Transcode(nil, 0xD800)
	if got := tr.Flush(nil); len(got) != 3 {
		t.Fatalf("first flush: got % X", got)
	}
	if got := tr.Flush(nil); len(got) != 0 {
		t.Errorf("second flush: got % X, want nothing", got)
	}
}

func TestChainStep(t *testing.T) {
	var in UTF16ToUTF32
	var out UTF32ToUTF8

	if got := chainStep[uint16, byte](&in, &out, nil, 0xD800); len(got) != 0 {
		t.Fatalf("high surrogate produced % X", got)
	}
	// The broken pair yields two code points in one step.
	got := chainStep[uint16, byte](&in, &out, nil, 'A')
	if want := []byte{0xEF, 0xBF, 0xBD, 'A'}; !slices.Equal(got, want) {
		t.Errorf("broken pair: got % X, want % X", got, want)
	}

	chainStep[uint16, byte](&in, &out, nil, 0xDBFF)
	got = chainFlush[uint16, byte](&in, &out, []byte("x"))
	if want := []byte{'x', 0xEF, 0xBF, 0xBD}; !slices.Equal(got, want) {
		t.Errorf("flush: got % X, want % X", got, want)
	}
	if in.WellFormed() || in.Partial() {
		t.Errorf("in: WellFormed=%v Partial=%v", in.WellFormed(), in.Partial())
	}
	if !out.WellFormed() {
		t.Error("encoder saw only valid code points")
	}
}
