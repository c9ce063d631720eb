package utfstream

// Length counts the code points in s by counting code point starts. It does
// not validate s.
func Length[T CodeUnit](s []T) int {
	n := 0
	for _, c := range s {
		if IsCodePointStart(c) {
			n++
		}
	}
	return n
}

// Index returns the offset in s of the code point at position pos, or len(s)
// when s holds pos code points or fewer.
func Index[T CodeUnit](s []T, pos int) int {
	if pos < 0 {
		return len(s)
	}
	count := 0
	for i, c := range s {
		if !IsCodePointStart(c) {
			continue
		}
		if count == pos {
			return i
		}
		count++
	}
	return len(s)
}
