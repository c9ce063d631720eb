package canon

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/utfstream/canon/internal/abi"
	"github.com/wippyai/utfstream/errors"
	"github.com/wippyai/utfstream/transcoder"
)

// Lift converts the flat core values of a WIT string, char or list<char>
// into a Go string, rune or []rune. Type aliases are followed.
func Lift(opts Options, t wit.Type, flat []uint64) (any, error) {
	switch t := t.(type) {
	case wit.String:
		if err := wantFlat(errors.PhaseLift, flat, 2); err != nil {
			return nil, err
		}
		return LiftString(opts, uint32(flat[0]), uint32(flat[1]))
	case wit.Char:
		if err := wantFlat(errors.PhaseLift, flat, 1); err != nil {
			return nil, err
		}
		return LiftChar(uint32(flat[0]))
	case *wit.TypeDef:
		switch k := t.Kind.(type) {
		case *wit.List:
			if _, ok := k.Type.(wit.Char); ok {
				if err := wantFlat(errors.PhaseLift, flat, 2); err != nil {
					return nil, err
				}
				return LiftChars(opts, uint32(flat[0]), uint32(flat[1]))
			}
		case wit.Type:
			return Lift(opts, k, flat)
		}
	}
	return nil, errors.Unsupported(errors.PhaseLift, "WIT type "+abi.TypeName(t))
}

// Lower converts a Go value into the flat core values of a WIT string,
// char or list<char>.
func Lower(opts Options, t wit.Type, v any) ([]uint64, error) {
	switch t := t.(type) {
	case wit.String:
		s, ok := v.(string)
		if !ok {
			return nil, mismatch("string", v)
		}
		ptr, length, err := LowerString(opts, s)
		if err != nil {
			return nil, err
		}
		return []uint64{uint64(ptr), uint64(length)}, nil
	case wit.Char:
		r, ok := abi.CoerceToRune(v)
		if !ok {
			return nil, mismatch("char", v)
		}
		c, err := LowerChar(r)
		if err != nil {
			return nil, err
		}
		return []uint64{uint64(c)}, nil
	case *wit.TypeDef:
		switch k := t.Kind.(type) {
		case *wit.List:
			if _, ok := k.Type.(wit.Char); ok {
				rs, ok := v.([]rune)
				if !ok {
					return nil, mismatch("list<char>", v)
				}
				ptr, length, err := LowerChars(opts, rs)
				if err != nil {
					return nil, err
				}
				return []uint64{uint64(ptr), uint64(length)}, nil
			}
		case wit.Type:
			return Lower(opts, k, v)
		}
	}
	return nil, errors.Unsupported(errors.PhaseLower, "WIT type "+abi.TypeName(t))
}

// LiftChars reads a list<char> of length elements at ptr.
func LiftChars(opts Options, ptr, length uint32) ([]rune, error) {
	if opts.Memory == nil {
		return nil, errors.NilMemory(errors.PhaseLift, "memory")
	}
	data, err := readBytes(opts.Memory, ptr, length, 4)
	if err != nil {
		return nil, err
	}
	var t transcoder.UTF32ToUTF32
	out := make([]rune, 0, length)
	for i := 0; i+3 < len(data); i += 4 {
		// A negative rune is never a scalar value, so wrap-around is safe.
		out = t.Transcode(out, rune(binary.LittleEndian.Uint32(data[i:])))
		if !t.WellFormed() && !opts.Lossy {
			return nil, errors.New(errors.PhaseLift, errors.KindMalformed).
				Path(strconv.Itoa(i / 4)).
				Offset(int64(ptr) + int64(i)).
				Detail("char value %#x is not a Unicode scalar value", binary.LittleEndian.Uint32(data[i:])).
				Build()
		}
	}
	return out, nil
}

// LowerChars allocates and writes rs as a list<char>.
func LowerChars(opts Options, rs []rune) (ptr, length uint32, err error) {
	if opts.Memory == nil {
		return 0, 0, errors.NilMemory(errors.PhaseLower, "memory")
	}
	if opts.Realloc == nil {
		return 0, 0, errors.NilMemory(errors.PhaseLower, "realloc")
	}
	if len(rs) == 0 {
		return 0, 0, nil
	}
	if uint64(len(rs)) > MaxStringByteLength/4 {
		return 0, 0, errors.Overflow(errors.PhaseLower, nil, len(rs), MaxStringByteLength/4)
	}
	size := uint32(len(rs)) * 4

	buf := make([]byte, 0, size)
	var t transcoder.UTF32ToUTF32
	var one [1]rune
	for i, r := range rs {
		c := t.Transcode(one[:0], r)[0]
		if !t.WellFormed() && !opts.Lossy {
			return 0, 0, errors.New(errors.PhaseLower, errors.KindMalformed).
				Path(strconv.Itoa(i)).
				Value(r).
				Detail("rune %#x is not a Unicode scalar value", r).
				Build()
		}
		buf = binary.LittleEndian.AppendUint32(buf, uint32(c))
	}

	ptr, err = opts.Realloc.Alloc(size, 4)
	if err != nil {
		return 0, 0, err
	}
	if !abi.IsAligned(ptr, 4) {
		opts.Realloc.Free(ptr, size, 4)
		return 0, 0, errors.Misaligned(errors.PhaseLower, nil, ptr, 4)
	}
	if err := opts.Memory.Write(ptr, buf); err != nil {
		opts.Realloc.Free(ptr, size, 4)
		return 0, 0, err
	}
	return ptr, uint32(len(rs)), nil
}

func wantFlat(phase errors.Phase, flat []uint64, n int) error {
	if len(flat) < n {
		return errors.InvalidInput(phase, fmt.Sprintf("expected %d flat values, got %d", n, len(flat)))
	}
	return nil
}

func mismatch(want string, v any) error {
	return errors.New(errors.PhaseLower, errors.KindInvalidInput).
		Value(v).
		Detail("cannot lower %s as %s", abi.TypeName(v), want).
		Build()
}
