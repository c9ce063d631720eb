package canon

import (
	"encoding/binary"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/utfstream/canon/internal/abi"
	"github.com/wippyai/utfstream/errors"
	"github.com/wippyai/utfstream/transcoder"
)

// LiftString reads a guest string of the given code-unit length at ptr.
// For CompactUTF16 the length carries UTF16Tag when the string is stored
// as UTF-16.
func LiftString(opts Options, ptr, length uint32) (string, error) {
	if opts.Memory == nil {
		return "", errors.NilMemory(errors.PhaseLift, "memory")
	}

	var (
		s   string
		ok  bool
		err error
	)
	switch opts.Encoding {
	case UTF8:
		s, ok, err = liftUTF8(opts.Memory, ptr, length)
	case UTF16:
		s, ok, err = liftUTF16(opts.Memory, ptr, length)
	case CompactUTF16:
		if !abi.IsAligned(ptr, 2) {
			return "", errors.Misaligned(errors.PhaseLift, nil, ptr, 2)
		}
		if length&UTF16Tag != 0 {
			s, ok, err = liftUTF16(opts.Memory, ptr, length&^UTF16Tag)
		} else {
			s, ok, err = liftLatin1(opts.Memory, ptr, length)
		}
	default:
		return "", errors.Unsupported(errors.PhaseLift, "string encoding "+opts.Encoding.String())
	}
	if err != nil {
		return "", err
	}
	if !ok {
		Logger().Debug("ill-formed guest string",
			zap.Stringer("encoding", opts.Encoding),
			zap.Uint32("ptr", ptr),
			zap.Uint32("length", length),
			zap.Bool("lossy", opts.Lossy))
		if !opts.Lossy {
			return "", errors.New(errors.PhaseLift, errors.KindMalformed).
				From(opts.Encoding.String()).
				Offset(int64(ptr)).
				Detail("ill-formed string of %d code units", length&^UTF16Tag).
				Build()
		}
	}
	return s, nil
}

func readBytes(mem Memory, ptr, length, unitSize uint32) ([]byte, error) {
	n, ok := abi.SafeMulU32(length, unitSize)
	if !ok || n > MaxStringByteLength {
		return nil, errors.Overflow(errors.PhaseLift, nil, length, MaxStringByteLength/uint64(unitSize))
	}
	if !abi.IsAligned(ptr, unitSize) {
		return nil, errors.Misaligned(errors.PhaseLift, nil, ptr, unitSize)
	}
	if _, ok := abi.SafeAddU32(ptr, n); !ok {
		return nil, errors.OutOfBounds(errors.PhaseLift, nil, ptr, n, 1<<32)
	}
	if n == 0 {
		return nil, nil
	}
	return mem.Read(ptr, n)
}

func liftUTF8(mem Memory, ptr, length uint32) (string, bool, error) {
	data, err := readBytes(mem, ptr, length, 1)
	if err != nil {
		return "", false, err
	}
	if transcoder.Valid(data) {
		return string(data), true, nil
	}
	fixed, _ := transcoder.Convert[byte, byte](data)
	return string(fixed), false, nil
}

func liftUTF16(mem Memory, ptr, length uint32) (string, bool, error) {
	data, err := readBytes(mem, ptr, length, 2)
	if err != nil {
		return "", false, err
	}
	var t transcoder.UTF16ToUTF8
	out := make([]byte, 0, len(data)/2)
	for i := 0; i+1 < len(data); i += 2 {
		out = t.Transcode(out, binary.LittleEndian.Uint16(data[i:]))
	}
	out = t.Flush(out)
	return string(out), t.WellFormed(), nil
}

// liftLatin1 maps each byte to the code point of the same value, which is
// always well-formed.
func liftLatin1(mem Memory, ptr, length uint32) (string, bool, error) {
	data, err := readBytes(mem, ptr, length, 1)
	if err != nil {
		return "", false, err
	}
	var t transcoder.UTF32ToUTF8
	out := make([]byte, 0, len(data)+len(data)/2)
	for _, b := range data {
		out = t.Transcode(out, rune(b))
	}
	return string(out), true, nil
}

// LowerString allocates guest memory for s and copies it in using the
// configured encoding. It returns the pointer and the code-unit length to
// pass to the guest. The empty string is lowered as (0, 0) without an
// allocation.
func LowerString(opts Options, s string) (ptr, length uint32, err error) {
	if opts.Memory == nil {
		return 0, 0, errors.NilMemory(errors.PhaseLower, "memory")
	}
	if opts.Realloc == nil {
		return 0, 0, errors.NilMemory(errors.PhaseLower, "realloc")
	}
	if !opts.Lossy && !transcoder.ValidString(s) {
		return 0, 0, errors.New(errors.PhaseLower, errors.KindMalformed).
			From("UTF-8").
			To(opts.Encoding.String()).
			Detail("ill-formed Go string of %d bytes", len(s)).
			Build()
	}

	buf, length, err := encodeString(opts.Encoding, s)
	if err != nil {
		return 0, 0, err
	}
	if len(buf) == 0 {
		return 0, 0, nil
	}
	if uint64(len(buf)) > MaxStringByteLength {
		return 0, 0, errors.Overflow(errors.PhaseLower, nil, len(buf), MaxStringByteLength)
	}

	size, align := uint32(len(buf)), opts.Encoding.align()
	ptr, err = opts.Realloc.Alloc(size, align)
	if err != nil {
		return 0, 0, err
	}
	if !abi.IsAligned(ptr, align) {
		opts.Realloc.Free(ptr, size, align)
		return 0, 0, errors.Misaligned(errors.PhaseLower, nil, ptr, align)
	}
	if err := opts.Memory.Write(ptr, buf); err != nil {
		opts.Realloc.Free(ptr, size, align)
		return 0, 0, err
	}

	Logger().Debug("lowered string",
		zap.Stringer("encoding", opts.Encoding),
		zap.Uint32("ptr", ptr),
		zap.Uint32("length", length),
		zap.Int("bytes", len(buf)))
	return ptr, length, nil
}

// encodeString returns the guest bytes for s and the length value the
// guest sees.
func encodeString(enc StringEncoding, s string) ([]byte, uint32, error) {
	switch enc {
	case UTF8:
		if transcoder.ValidString(s) {
			return []byte(s), uint32(len(s)), nil
		}
		fixed, _ := transcoder.Convert[byte, byte]([]byte(s))
		return fixed, uint32(len(fixed)), nil
	case UTF16:
		units, _ := transcoder.EncodeString16(s)
		return utf16Bytes(units), uint32(len(units)), nil
	case CompactUTF16:
		cps, _ := transcoder.EncodeString32(s)
		if latin1, ok := toLatin1(cps); ok {
			return latin1, uint32(len(latin1)), nil
		}
		units, _ := transcoder.Convert[rune, uint16](cps)
		if uint64(len(units)) >= uint64(UTF16Tag) {
			return nil, 0, errors.Overflow(errors.PhaseLower, nil, len(units), uint64(UTF16Tag)-1)
		}
		return utf16Bytes(units), uint32(len(units)) | UTF16Tag, nil
	default:
		return nil, 0, errors.Unsupported(errors.PhaseLower, "string encoding "+enc.String())
	}
}

func utf16Bytes(units []uint16) []byte {
	out := make([]byte, 0, 2*len(units))
	for _, u := range units {
		out = binary.LittleEndian.AppendUint16(out, u)
	}
	return out
}

func toLatin1(cps []rune) ([]byte, bool) {
	out := make([]byte, len(cps))
	for i, r := range cps {
		if r > 0xFF {
			return nil, false
		}
		out[i] = byte(r)
	}
	return out, true
}

// LowerStrings lowers each string in turn. If any of them fails, the
// allocations already made are freed before the error is returned.
func LowerStrings(opts Options, ss []string) ([]uint64, error) {
	allocs := NewAllocationList()
	flat := make([]uint64, 0, 2*len(ss))
	for i, s := range ss {
		ptr, length, err := LowerString(opts, s)
		if err != nil {
			allocs.FreeAndRelease(opts.Realloc)
			if e, ok := err.(*errors.Error); ok {
				e.Path = append([]string{strconv.Itoa(i)}, e.Path...)
			}
			return nil, err
		}
		if ptr != 0 {
			allocs.Add(ptr, byteSize(opts.Encoding, length), opts.Encoding.align())
		}
		flat = append(flat, uint64(ptr), uint64(length))
	}
	allocs.Release()
	return flat, nil
}

// byteSize returns the number of bytes a lowered string of the given
// length occupies.
func byteSize(enc StringEncoding, length uint32) uint32 {
	switch {
	case enc == UTF16:
		return 2 * length
	case enc == CompactUTF16 && length&UTF16Tag != 0:
		return 2 * (length &^ UTF16Tag)
	default:
		return length
	}
}
