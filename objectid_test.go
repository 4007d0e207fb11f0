package bsonjson

import (
	"encoding/hex"
	"testing"

	"github.com/xdg-go/bsonjson/isa"
)

func TestEncodeHex12(t *testing.T) {
	t.Parallel()

	src := []byte{0x5f, 0x1d, 0xaa, 0x00, 0x1c, 0x2b, 0x3e, 0x4f, 0x5a, 0x6b, 0x7c, 0x8d}
	dst := make([]byte, 24)
	encodeHex12(dst, src)

	want := hex.EncodeToString(src)
	if got := string(dst); got != want {
		t.Errorf("encodeHex12 = %q, want %q", got, want)
	}
}

func TestEncodeHex12AllZerosAndOnes(t *testing.T) {
	t.Parallel()

	zeros := make([]byte, 12)
	dst := make([]byte, 24)
	encodeHex12(dst, zeros)
	if string(dst) != "000000000000000000000000" {
		t.Errorf("zeros: got %q", dst)
	}

	ones := make([]byte, 12)
	for i := range ones {
		ones[i] = 0xff
	}
	encodeHex12(dst, ones)
	if string(dst) != "ffffffffffffffffffffffff" {
		t.Errorf("ones: got %q", dst)
	}
}

func TestHexNibble(t *testing.T) {
	t.Parallel()

	for n := 0; n < 16; n++ {
		want := hexDigits[n]
		if got := hexNibble(byte(n)); got != want {
			t.Errorf("hexNibble(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestEncodeHex12SWARMatchesTable(t *testing.T) {
	t.Parallel()

	src := []byte{0x5f, 0x1d, 0xaa, 0x00, 0x1c, 0x2b, 0x3e, 0x4f, 0x5a, 0x6b, 0x7c, 0x8d}
	want := make([]byte, 24)
	encodeHex12(want, src)

	for _, batch := range []int{4, 8, 12} {
		got := make([]byte, 24)
		encodeHex12SWAR(got, src, batch)
		if string(got) != string(want) {
			t.Errorf("encodeHex12SWAR(batch=%d) = %q, want %q", batch, got, want)
		}
	}
}

func TestBindHexFnAllTiersAgree(t *testing.T) {
	t.Parallel()

	src := []byte{0x5f, 0x1d, 0xaa, 0x00, 0x1c, 0x2b, 0x3e, 0x4f, 0x5a, 0x6b, 0x7c, 0x8d}
	want := make([]byte, 24)
	encodeHex12(want, src)

	for _, tag := range []isa.Tag{isa.Baseline, isa.SSE2, isa.SSE42, isa.AVX2, isa.AVX512BW} {
		fn := bindHexFn(tag)
		got := make([]byte, 24)
		fn(got, src)
		if string(got) != string(want) {
			t.Errorf("bindHexFn(%v) = %q, want %q", tag, got, want)
		}
	}
}
