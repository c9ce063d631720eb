package scheme

// Option configures a Transformer.
type Option func(*config)

type config struct {
	strict   bool
	writeBOM bool
	skipBOM  bool
}

// Strict makes the first malformed unit a hard error instead of a U+FFFD
// substitution. The error wraps ErrMalformed and carries the byte offset.
func Strict() Option {
	return func(c *config) { c.strict = true }
}

// WriteBOM prefixes the output with the target scheme's byte order mark.
func WriteBOM() Option {
	return func(c *config) { c.writeBOM = true }
}

// SkipBOM drops a byte order mark at the very start of the input.
func SkipBOM() Option {
	return func(c *config) { c.skipBOM = true }
}
