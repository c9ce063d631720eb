package transcoder

import (
	"github.com/wippyai/utfstream"
)

// Append transcodes all of src, flushes, and appends the result to dst.
// It reports whether src was well-formed.
func Append[From, To utfstream.CodeUnit](dst []To, src []From) ([]To, bool) {
	t := New[From, To]()
	for _, c := range src {
		dst = t.Transcode(dst, c)
	}
	dst = t.Flush(dst)
	return dst, t.WellFormed()
}

// Convert transcodes src into a newly allocated slice.
func Convert[From, To utfstream.CodeUnit](src []From) ([]To, bool) {
	return Append(make([]To, 0, estimate[From, To](len(src))), src)
}

// estimate sizes the output for n input units assuming mostly ASCII or
// BMP text; append grows it when the guess is short.
func estimate[From, To utfstream.CodeUnit](n int) int {
	from, to := utfstream.FormOf[From](), utfstream.FormOf[To]()
	if from == utfstream.UTF8 || to != utfstream.UTF8 {
		return n
	}
	return n + n/2
}

// Valid reports whether src is well-formed in its encoding form.
func Valid[T utfstream.CodeUnit](src []T) bool {
	t := New[T, rune]()
	var buf [2]rune
	for _, c := range src {
		t.Transcode(buf[:0], c)
		if !t.WellFormed() {
			return false
		}
	}
	t.Flush(buf[:0])
	return t.WellFormed()
}

// ValidString reports whether s holds well-formed UTF-8, stopping at the
// first byte UTF8ToUTF32 would replace.
func ValidString(s string) bool {
	var t UTF8ToUTF32
	var buf [2]rune
	for i := 0; i < len(s); i++ {
		t.Transcode(buf[:0], s[i])
		if !t.WellFormed() {
			return false
		}
	}
	return !t.Partial()
}

// EncodeString16 converts the UTF-8 string s to UTF-16.
func EncodeString16(s string) ([]uint16, bool) {
	var t UTF8ToUTF16
	dst := make([]uint16, 0, len(s))
	for i := 0; i < len(s); i++ {
		dst = t.Transcode(dst, s[i])
	}
	dst = t.Flush(dst)
	return dst, t.WellFormed()
}

// EncodeString32 converts the UTF-8 string s to UTF-32.
func EncodeString32(s string) ([]rune, bool) {
	var t UTF8ToUTF32
	dst := make([]rune, 0, len(s))
	for i := 0; i < len(s); i++ {
		dst = t.Transcode(dst, s[i])
	}
	dst = t.Flush(dst)
	return dst, t.WellFormed()
}

// DecodeString16 converts UTF-16 to a UTF-8 Go string.
func DecodeString16(src []uint16) (string, bool) {
	var t UTF16ToUTF8
	return decodeString(&t, src)
}

// DecodeString32 converts UTF-32 to a UTF-8 Go string.
func DecodeString32(src []rune) (string, bool) {
	var t UTF32ToUTF8
	return decodeString(&t, src)
}

func decodeString[From utfstream.CodeUnit](t Transcoder[From, byte], src []From) (string, bool) {
	buf := getBytes()
	defer putBytes(buf)
	b := *buf
	for _, c := range src {
		b = t.Transcode(b, c)
	}
	b = t.Flush(b)
	*buf = b
	return string(b), t.WellFormed()
}
