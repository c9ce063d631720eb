package canon

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/utfstream/errors"
)

// memoryWASM is a minimal WASM module with 1 page of memory exported as
// "memory". It imports env.cabi_realloc and re-exports it, so the allocator
// is reached through the guest the way a real component exposes it.
var memoryWASM = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic
	0x01, 0x00, 0x00, 0x00, // version
	0x01, 0x09, 0x01, // type section: 9 bytes, 1 type
	0x60, 0x04, 0x7f, 0x7f, 0x7f, 0x7f, 0x01, 0x7f, // (i32 i32 i32 i32) -> i32
	0x02, 0x14, 0x01, // import section: 20 bytes, 1 import
	0x03, 0x65, 0x6e, 0x76, // module: "env"
	0x0c, 0x63, 0x61, 0x62, 0x69, 0x5f, 0x72, 0x65, 0x61, 0x6c, 0x6c, 0x6f, 0x63, // name: "cabi_realloc"
	0x00, 0x00, // kind: func, type index 0
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: 1 page, no max
	0x07, 0x19, 0x02, // export section: 25 bytes, 2 exports
	0x06, 0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79, // name: "memory"
	0x02, 0x00, // kind: memory, index 0
	0x0c, 0x63, 0x61, 0x62, 0x69, 0x5f, 0x72, 0x65, 0x61, 0x6c, 0x6c, 0x6f, 0x63, // name: "cabi_realloc"
	0x00, 0x00, // kind: func, index 0 (the import)
}

type guest struct {
	mem     api.Memory
	realloc api.Function
	calls   *[][4]uint32
}

// instantiate starts a host cabi_realloc that bumps through the page, then
// the memory module that imports it.
func instantiate(t *testing.T) guest {
	t.Helper()
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	t.Cleanup(func() { rt.Close(ctx) })

	var calls [][4]uint32
	bump := uint32(8)
	_, err := rt.NewHostModuleBuilder("env").
		NewFunctionBuilder().
		WithFunc(func(_ context.Context, ptr, oldSize, align, size uint32) uint32 {
			calls = append(calls, [4]uint32{ptr, oldSize, align, size})
			if size == 0 {
				return 0
			}
			if align > 0 {
				bump = (bump + align - 1) &^ (align - 1)
			}
			p := bump
			bump += size
			return p
		}).
		Export("cabi_realloc").
		Instantiate(ctx)
	if err != nil {
		t.Fatalf("failed to instantiate host: %v", err)
	}

	compiled, err := rt.CompileModule(ctx, memoryWASM)
	if err != nil {
		t.Fatalf("failed to compile: %v", err)
	}
	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig())
	if err != nil {
		t.Fatalf("failed to instantiate: %v", err)
	}

	return guest{
		mem:     mod.ExportedMemory("memory"),
		realloc: mod.ExportedFunction("cabi_realloc"),
		calls:   &calls,
	}
}

func (g guest) options(enc StringEncoding) Options {
	return Options{
		Memory:   WrapMemory(g.mem),
		Realloc:  WrapAllocator(context.Background(), g.realloc),
		Encoding: enc,
	}
}

func TestWrapMemory_Nil(t *testing.T) {
	if mem := WrapMemory(nil); mem != nil {
		t.Error("expected nil for nil memory")
	}
}

func TestWrapAllocator_Nil(t *testing.T) {
	if alloc := WrapAllocator(context.Background(), nil); alloc != nil {
		t.Error("expected nil for nil function")
	}
}

func TestMemoryWrapper_OutOfBounds(t *testing.T) {
	g := instantiate(t)
	mem := WrapMemory(g.mem)

	_, err := mem.Read(65536, 1)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindOutOfBounds || e.Phase != errors.PhaseLift {
		t.Errorf("read: err = %v", err)
	}
	err = mem.Write(65535, []byte{1, 2})
	if !stderrors.As(err, &e) || e.Kind != errors.KindOutOfBounds || e.Phase != errors.PhaseLower {
		t.Errorf("write: err = %v", err)
	}
}

func TestInstantiate_ReallocReexportedByGuest(t *testing.T) {
	g := instantiate(t)
	if g.mem == nil {
		t.Fatal("guest memory not exported")
	}
	if g.realloc == nil {
		t.Fatal("cabi_realloc not exported by guest")
	}
	module, name, isImport := g.realloc.Definition().Import()
	if !isImport || module != "env" || name != "cabi_realloc" {
		t.Errorf("import = %q.%q (%v), want env.cabi_realloc", module, name, isImport)
	}
}

func TestAllocatorWrapper_CallsRealloc(t *testing.T) {
	g := instantiate(t)
	alloc := WrapAllocator(context.Background(), g.realloc)

	ptr, err := alloc.Alloc(10, 4)
	if err != nil {
		t.Fatal(err)
	}
	if ptr != 8 {
		t.Errorf("ptr = %d, want 8", ptr)
	}
	alloc.Free(ptr, 10, 4)

	calls := *g.calls
	if len(calls) != 2 {
		t.Fatalf("calls = %v", calls)
	}
	if calls[0] != [4]uint32{0, 0, 4, 10} {
		t.Errorf("alloc call = %v", calls[0])
	}
	if calls[1] != [4]uint32{ptr, 10, 4, 0} {
		t.Errorf("free call = %v", calls[1])
	}
}

func TestWazero_StringRoundTrip(t *testing.T) {
	g := instantiate(t)
	for _, enc := range []StringEncoding{UTF8, UTF16, CompactUTF16} {
		t.Run(enc.String(), func(t *testing.T) {
			opts := g.options(enc)
			for _, s := range []string{"wasm", "Zürich", "Ελληνικά", "\U0001F980 crab"} {
				ptr, length, err := LowerString(opts, s)
				if err != nil {
					t.Fatalf("%q: %v", s, err)
				}
				got, err := LiftString(opts, ptr, length)
				if err != nil || got != s {
					t.Errorf("%q: got %q, %v", s, got, err)
				}
			}
		})
	}
}

func TestWazero_GuestWrittenUTF16(t *testing.T) {
	g := instantiate(t)
	// "hi" followed by a lone high surrogate, written by the guest.
	if !g.mem.Write(100, []byte{'h', 0, 'i', 0, 0x00, 0xD8}) {
		t.Fatal("write failed")
	}
	opts := g.options(UTF16)

	got, err := LiftString(opts, 100, 2)
	if err != nil || got != "hi" {
		t.Errorf("got %q, %v", got, err)
	}
	if _, err := LiftString(opts, 100, 3); err == nil {
		t.Error("expected malformed error")
	}
	opts.Lossy = true
	got, err = LiftString(opts, 100, 3)
	if err != nil || got != "hi\uFFFD" {
		t.Errorf("lossy: got %q, %v", got, err)
	}
}

func TestLiftLower_WIT(t *testing.T) {
	g := instantiate(t)
	opts := g.options(UTF16)
	alias := &wit.TypeDef{Kind: wit.String{}}
	chars := &wit.TypeDef{Kind: &wit.List{Type: wit.Char{}}}

	tests := []struct {
		name string
		typ  wit.Type
		in   any
		want any
	}{
		{"string", wit.String{}, "héllo", "héllo"},
		{"alias", alias, "aliased", "aliased"},
		{"char", wit.Char{}, 'ß', 'ß'},
		{"char_from_json", wit.Char{}, float64(0x1F600), rune(0x1F600)},
		{"list_char", chars, []rune("ok✓"), []rune("ok✓")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			flat, err := Lower(opts, tc.typ, tc.in)
			if err != nil {
				t.Fatalf("lower: %v", err)
			}
			got, err := Lift(opts, tc.typ, flat)
			if err != nil {
				t.Fatalf("lift: %v", err)
			}
			switch want := tc.want.(type) {
			case []rune:
				if string(got.([]rune)) != string(want) {
					t.Errorf("got %v, want %v", got, want)
				}
			default:
				if got != want {
					t.Errorf("got %v, want %v", got, want)
				}
			}
		})
	}
}

func TestLiftLower_WITErrors(t *testing.T) {
	g := instantiate(t)
	opts := g.options(UTF8)

	tests := []struct {
		name string
		err  func() error
		kind errors.Kind
	}{
		{"lower_wrong_go_type", func() error { _, err := Lower(opts, wit.String{}, 42); return err }, errors.KindInvalidInput},
		{"lower_char_surrogate", func() error { _, err := Lower(opts, wit.Char{}, 0xD800); return err }, errors.KindMalformed},
		{"lower_unsupported", func() error { _, err := Lower(opts, wit.U32{}, uint32(1)); return err }, errors.KindUnsupported},
		{"lift_short_flat", func() error { _, err := Lift(opts, wit.String{}, []uint64{0}); return err }, errors.KindInvalidInput},
		{"lift_bad_char", func() error { _, err := Lift(opts, wit.Char{}, []uint64{0x110000}); return err }, errors.KindMalformed},
		{"lift_unsupported", func() error { _, err := Lift(opts, wit.Bool{}, []uint64{1}); return err }, errors.KindUnsupported},
		{"lift_list_of_string", func() error {
			_, err := Lift(opts, &wit.TypeDef{Kind: &wit.List{Type: wit.String{}}}, []uint64{0, 0})
			return err
		}, errors.KindUnsupported},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var e *errors.Error
			if err := tc.err(); !stderrors.As(err, &e) || e.Kind != tc.kind {
				t.Errorf("err = %v, want kind %s", err, tc.kind)
			}
		})
	}
}
