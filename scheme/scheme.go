package scheme

import (
	"encoding/binary"
	"strings"

	"github.com/wippyai/utfstream"
	"github.com/wippyai/utfstream/errors"
)

// Scheme is a byte serialization of one Unicode encoding form.
type Scheme uint8

const (
	UTF8 Scheme = iota
	UTF16LE
	UTF16BE
	UTF32LE
	UTF32BE
)

var names = [...]string{
	UTF8:    "UTF-8",
	UTF16LE: "UTF-16LE",
	UTF16BE: "UTF-16BE",
	UTF32LE: "UTF-32LE",
	UTF32BE: "UTF-32BE",
}

// Parse returns the scheme named by s. Matching ignores case and the dash,
// so "utf16le", "UTF-16LE" and "Utf-16le" are all accepted.
func Parse(s string) (Scheme, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "")
	switch key {
	case "utf8":
		return UTF8, nil
	case "utf16le":
		return UTF16LE, nil
	case "utf16be":
		return UTF16BE, nil
	case "utf32le":
		return UTF32LE, nil
	case "utf32be":
		return UTF32BE, nil
	}
	return 0, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
		Value(s).
		Detail("unknown encoding scheme %q", s).
		Build()
}

func (s Scheme) String() string {
	if int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// Form returns the encoding form serialized by s.
func (s Scheme) Form() utfstream.Form {
	switch s {
	case UTF16LE, UTF16BE:
		return utfstream.UTF16
	case UTF32LE, UTF32BE:
		return utfstream.UTF32
	default:
		return utfstream.UTF8
	}
}

// UnitSize returns the number of bytes per code unit.
func (s Scheme) UnitSize() int {
	return s.Form().UnitSize()
}

// ByteOrder returns the order of bytes within a code unit. UTF-8 has a
// single byte per unit and reports big-endian.
func (s Scheme) ByteOrder() binary.ByteOrder {
	return s.order()
}

type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

func (s Scheme) order() byteOrder {
	if s == UTF16LE || s == UTF32LE {
		return binary.LittleEndian
	}
	return binary.BigEndian
}

// BOMBytes returns the serialized byte order mark.
func (s Scheme) BOMBytes() []byte {
	switch s {
	case UTF16LE:
		return []byte{0xFF, 0xFE}
	case UTF16BE:
		return []byte{0xFE, 0xFF}
	case UTF32LE:
		return []byte{0xFF, 0xFE, 0x00, 0x00}
	case UTF32BE:
		return []byte{0x00, 0x00, 0xFE, 0xFF}
	default:
		return []byte{0xEF, 0xBB, 0xBF}
	}
}

func (s Scheme) valid() bool {
	return s <= UTF32BE
}

// readUnit reads one code unit from the front of b, which holds at least
// UnitSize bytes.
func (s Scheme) readUnit(b []byte) uint32 {
	switch s.UnitSize() {
	case 1:
		return uint32(b[0])
	case 2:
		return uint32(s.order().Uint16(b))
	default:
		return s.order().Uint32(b)
	}
}
