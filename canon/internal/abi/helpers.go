package abi

import (
	"math"
	"reflect"
)

func SafeMulU32(a, b uint32) (uint32, bool) {
	if b != 0 && a > math.MaxUint32/b {
		return 0, false
	}
	return a * b, true
}

func SafeAddU32(a, b uint32) (uint32, bool) {
	if a > math.MaxUint32-b {
		return 0, false
	}
	return a + b, true
}

// TypeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func TypeName(value any) string {
	if value == nil {
		return "nil"
	}
	return reflect.TypeOf(value).String()
}

func AlignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// IsAligned reports whether ptr is a multiple of align.
func IsAligned(ptr, align uint32) bool {
	return align == 0 || ptr&(align-1) == 0
}

// CoerceToRune handles JSON decoded numbers (float64) and the integer types
// a char value may arrive as. Range checking is left to the caller.
func CoerceToRune(value any) (rune, bool) {
	switch v := value.(type) {
	case rune:
		return v, true
	case uint32:
		if v <= math.MaxInt32 {
			return rune(v), true
		}
	case uint8:
		return rune(v), true
	case uint16:
		return rune(v), true
	case int:
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return rune(v), true
		}
	case int64:
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			return rune(v), true
		}
	case uint64:
		if v <= math.MaxInt32 {
			return rune(v), true
		}
	case float64:
		if v >= math.MinInt32 && v <= math.MaxInt32 && v == float64(int32(v)) {
			return rune(v), true
		}
	}
	return 0, false
}
