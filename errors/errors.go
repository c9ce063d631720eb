package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode    Phase = "decode"    // code units to code points
	PhaseEncode    Phase = "encode"    // code points to code units
	PhaseValidate  Phase = "validate"  // well-formedness checks
	PhaseTransform Phase = "transform" // byte-stream transformation
	PhaseLift      Phase = "lift"      // guest memory to Go
	PhaseLower     Phase = "lower"     // Go to guest memory
	PhaseConfig    Phase = "config"    // option and flag parsing
)

// Kind categorizes the error
type Kind string

const (
	KindMalformed    Kind = "malformed"
	KindOutOfBounds  Kind = "out_of_bounds"
	KindMisaligned   Kind = "misaligned"
	KindUnsupported  Kind = "unsupported"
	KindAllocation   Kind = "allocation"
	KindInvalidInput Kind = "invalid_input"
	KindOverflow     Kind = "overflow"
	KindNilMemory    Kind = "nil_memory"
)

// NoOffset marks an Error that is not tied to a position in the input.
const NoOffset int64 = -1

// Error is the structured error type used by the outer layers. The
// transcoders themselves never fail; they substitute U+FFFD instead.
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	From   string
	To     string
	Detail string
	Path   []string
	Offset int64
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.From != "" || e.To != "" {
		b.WriteString(" (")
		switch {
		case e.From != "" && e.To != "":
			b.WriteString(e.From)
			b.WriteString(" -> ")
			b.WriteString(e.To)
		case e.From != "":
			b.WriteString("from ")
			b.WriteString(e.From)
		default:
			b.WriteString("to ")
			b.WriteString(e.To)
		}
		b.WriteByte(')')
	}

	if e.Offset > NoOffset {
		b.WriteString(" @")
		b.WriteString(strconv.FormatInt(e.Offset, 10))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: NoOffset,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// From sets the source encoding name
func (b *Builder) From(name string) *Builder {
	b.err.From = name
	return b
}

// To sets the target encoding name
func (b *Builder) To(name string) *Builder {
	b.err.To = name
	return b
}

// Offset sets the position in the input, in bytes or code units
func (b *Builder) Offset(off int64) *Builder {
	b.err.Offset = off
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Malformed creates an ill-formed input error at the given offset
func Malformed(phase Phase, from string, offset int64, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMalformed,
		From:   from,
		Offset: offset,
		Detail: "ill-formed code unit sequence",
		Cause:  cause,
	}
}

// OutOfBounds creates an out of bounds error for a memory range
func OutOfBounds(phase Phase, path []string, ptr, length uint32, size uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Offset: int64(ptr),
		Detail: fmt.Sprintf("range [%d, %d) exceeds memory size %d", ptr, uint64(ptr)+uint64(length), size),
		Value:  ptr,
	}
}

// Misaligned creates an alignment error
func Misaligned(phase Phase, path []string, ptr, align uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindMisaligned,
		Path:   path,
		Offset: int64(ptr),
		Detail: fmt.Sprintf("pointer %d is not %d-byte aligned", ptr, align),
		Value:  ptr,
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Offset: NoOffset,
		Detail: what,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size, align uint32, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Offset: NoOffset,
		Detail: fmt.Sprintf("failed to allocate %d bytes (align %d)", size, align),
		Cause:  cause,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Offset: NoOffset,
		Detail: detail,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, limit uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Offset: NoOffset,
		Detail: fmt.Sprintf("value %v exceeds limit %d", value, limit),
		Value:  value,
	}
}

// NilMemory creates an error for operations attempted without memory or allocator
func NilMemory(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilMemory,
		Offset: NoOffset,
		Detail: fmt.Sprintf("nil %s", what),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Offset: NoOffset,
		Detail: detail,
		Cause:  cause,
	}
}
