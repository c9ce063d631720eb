// Package canon lifts and lowers Component Model strings and chars between
// Go and guest linear memory.
//
// All three Canonical ABI string encodings are supported:
//
//	Encoding       Guest layout                         Align
//	────────────────────────────────────────────────────────────
//	utf8           bytes, length in bytes               1
//	utf16          LE code units, length in units       2
//	latin1+utf16   Latin-1 bytes, or UTF-16 with        2
//	               UTF16Tag set in the length
//
// Conversion runs through the incremental transcoders of package
// transcoder. Guest strings that are not well-formed are rejected with a
// malformed error unless Options.Lossy is set, in which case every
// ill-formed sequence becomes U+FFFD.
//
// # wazero
//
// WrapMemory and WrapAllocator adapt a wazero module's exported memory and
// cabi_realloc function:
//
//	opts := canon.Options{
//		Memory:   canon.WrapMemory(mod.Memory()),
//		Realloc:  canon.WrapAllocator(ctx, mod.ExportedFunction("cabi_realloc")),
//		Encoding: canon.UTF16,
//	}
//	ptr, n, err := canon.LowerString(opts, "héllo")
//
// Lift and Lower dispatch on go.bytecodealliance.org/wit types for string,
// char and list<char>.
package canon
