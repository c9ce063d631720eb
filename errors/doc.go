// Package errors provides structured error types for the utfstream library.
//
// The transcoders never return errors: malformed input is replaced by U+FFFD
// and recorded in a sticky well-formed flag. The outer layers (scheme
// transformers in strict mode, canonical ABI lifting and lowering, the CLI)
// report failures with the Error type defined here.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes the source and target encodings, the
// input offset and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseTransform, errors.KindMalformed).
//		From("UTF-16LE").
//		To("UTF-8").
//		Offset(14).
//		Detail("unpaired high surrogate").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Malformed(errors.PhaseLift, "utf16", 14, nil)
//	err := errors.OutOfBounds(errors.PhaseLift, path, ptr, length, memSize)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
