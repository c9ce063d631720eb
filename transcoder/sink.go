package transcoder

import (
	"github.com/wippyai/utfstream"
)

// Consumer receives code units one at a time and returns the consumer to
// use for the next unit.
type Consumer[T utfstream.CodeUnit] interface {
	Consume(c T) Consumer[T]
}

// ConsumerFunc adapts a plain function to Consumer.
type ConsumerFunc[T utfstream.CodeUnit] func(c T)

// Consume calls f(c).
func (f ConsumerFunc[T]) Consume(c T) Consumer[T] {
	f(c)
	return f
}

// Collector is a Consumer that appends every unit to Units.
type Collector[T utfstream.CodeUnit] struct {
	Units []T
}

func (c *Collector[T]) Consume(u T) Consumer[T] {
	c.Units = append(c.Units, u)
	return c
}

// Sink couples a transcoder with the consumer of its output: every Put
// drives exactly one transcoder step and forwards what it produced.
//
// A Sink is a small value and may be copied freely; copies share the
// transcoder. Use the Sink returned by Put for the next call so that
// consumers which replace themselves are threaded through.
type Sink[From, To utfstream.CodeUnit] struct {
	t   Transcoder[From, To]
	out Consumer[To]
}

// NewSink returns a Sink feeding t and forwarding to out.
func NewSink[From, To utfstream.CodeUnit](t Transcoder[From, To], out Consumer[To]) Sink[From, To] {
	return Sink[From, To]{t: t, out: out}
}

// Put transcodes one input unit.
func (s Sink[From, To]) Put(c From) Sink[From, To] {
	var buf [maxStepUnits]To
	return s.forward(s.t.Transcode(buf[:0], c))
}

// Flush ends the input and forwards any final output.
func (s Sink[From, To]) Flush() Sink[From, To] {
	var buf [maxStepUnits]To
	return s.forward(s.t.Flush(buf[:0]))
}

func (s Sink[From, To]) forward(units []To) Sink[From, To] {
	for _, u := range units {
		s.out = s.out.Consume(u)
	}
	return s
}

// Consumer returns the current consumer.
func (s Sink[From, To]) Consumer() Consumer[To] {
	return s.out
}

// Transcoder returns the wrapped transcoder.
func (s Sink[From, To]) Transcoder() Transcoder[From, To] {
	return s.t
}
