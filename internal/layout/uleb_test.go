package layout

import (
	"bytes"
	"math"
	"testing"
)

func TestDecodeULEB128(t *testing.T) {
	cases := []struct {
		in   []byte
		want uint64
		n    int
	}{
		{[]byte{0x00}, 0, 1},
		{[]byte{0x7f}, 127, 1},
		{[]byte{0x80, 0x01}, 128, 2},
		{[]byte{0xe5, 0x8e, 0x26}, 624485, 3},
		// Trailing bytes past the terminator are not consumed.
		{[]byte{0x90, 0x03, 0xff}, 400, 2},
	}
	for _, c := range cases {
		got, n := DecodeULEB128(c.in)
		if got != c.want || n != c.n {
			t.Errorf("DecodeULEB128(% x) = (%d, %d), want (%d, %d)", c.in, got, n, c.want, c.n)
		}
	}
}

func TestDecodeULEB128Truncated(t *testing.T) {
	for _, in := range [][]byte{nil, {}, {0x80}, {0xff, 0x80}} {
		if _, n := DecodeULEB128(in); n != 0 {
			t.Errorf("DecodeULEB128(% x): consumed %d bytes, want 0", in, n)
		}
	}
}

func TestULEB128RoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 129, 300, 624485, 1 << 31, 1 << 32, 1 << 63, math.MaxUint64}
	for _, v := range values {
		enc := AppendULEB128(nil, v)
		got, n := DecodeULEB128(enc)
		if got != v || n != len(enc) {
			t.Errorf("round trip %d: decoded (%d, %d) from % x", v, got, n, enc)
		}
		// Canonical encodings re-encode to themselves.
		if again := AppendULEB128(nil, got); !bytes.Equal(again, enc) {
			t.Errorf("re-encode %d: % x != % x", v, again, enc)
		}
	}
}

func TestAppendULEB128Minimal(t *testing.T) {
	if got := AppendULEB128(nil, 127); len(got) != 1 {
		t.Errorf("127 encoded in %d bytes, want 1", len(got))
	}
	if got := AppendULEB128(nil, 128); len(got) != 2 {
		t.Errorf("128 encoded in %d bytes, want 2", len(got))
	}
}
