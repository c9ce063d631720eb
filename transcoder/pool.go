package transcoder

import "sync"

const (
	// Pool limits to prevent memory bloat
	poolMaxCapBytes  = 64 << 10
	poolInitCapBytes = 256
)

// byte scratch pool for decoding to Go strings
var bytePool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, poolInitCapBytes)
		return &buf
	},
}

func getBytes() *[]byte {
	return bytePool.Get().(*[]byte)
}

func putBytes(buf *[]byte) {
	if buf == nil || cap(*buf) > poolMaxCapBytes {
		return // reject oversized
	}
	*buf = (*buf)[:0]
	bytePool.Put(buf)
}
