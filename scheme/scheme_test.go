package scheme

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/wippyai/utfstream"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Scheme
		wantErr bool
	}{
		{"utf-8", UTF8, false},
		{"UTF8", UTF8, false},
		{"utf-16le", UTF16LE, false},
		{"UTF16BE", UTF16BE, false},
		{" utf-32le ", UTF32LE, false},
		{"Utf-32-BE", UTF32BE, false},
		{"latin1", 0, true},
		{"", 0, true},
		{"utf-16", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if err == nil && got != tc.want {
				t.Errorf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestParse_RoundTripsString(t *testing.T) {
	for s := UTF8; s <= UTF32BE; s++ {
		got, err := Parse(s.String())
		if err != nil || got != s {
			t.Errorf("Parse(%q) = %v, %v", s.String(), got, err)
		}
	}
	if Scheme(42).String() != "unknown" {
		t.Errorf("Scheme(42).String() = %q", Scheme(42).String())
	}
}

func TestSchemeProperties(t *testing.T) {
	tests := []struct {
		s     Scheme
		form  utfstream.Form
		size  int
		order binary.ByteOrder
	}{
		{UTF8, utfstream.UTF8, 1, binary.BigEndian},
		{UTF16LE, utfstream.UTF16, 2, binary.LittleEndian},
		{UTF16BE, utfstream.UTF16, 2, binary.BigEndian},
		{UTF32LE, utfstream.UTF32, 4, binary.LittleEndian},
		{UTF32BE, utfstream.UTF32, 4, binary.BigEndian},
	}

	for _, tc := range tests {
		t.Run(tc.s.String(), func(t *testing.T) {
			if tc.s.Form() != tc.form {
				t.Errorf("Form() = %s, want %s", tc.s.Form(), tc.form)
			}
			if tc.s.UnitSize() != tc.size {
				t.Errorf("UnitSize() = %d, want %d", tc.s.UnitSize(), tc.size)
			}
			if tc.s.ByteOrder() != tc.order {
				t.Errorf("ByteOrder() = %v, want %v", tc.s.ByteOrder(), tc.order)
			}
			// The BOM is U+FEFF serialized in the scheme.
			bom := tc.s.BOMBytes()
			if tc.s.UnitSize() > 1 && (len(bom) != tc.size || tc.s.readUnit(bom) != uint32(utfstream.BOM)) {
				t.Errorf("BOM % X does not read as U+FEFF", bom)
			}
		})
	}
	if !bytes.Equal(UTF8.BOMBytes(), []byte("\uFEFF")) {
		t.Errorf("UTF-8 BOM = % X", UTF8.BOMBytes())
	}
}
