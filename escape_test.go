package bsonjson

import (
	"testing"

	"github.com/xdg-go/bsonjson/isa"
)

// referenceEscapeIndex is a naive byte-at-a-time scan used as the oracle for
// firstEscapeIndex, independent of the SWAR word-scanning implementation.
func referenceEscapeIndex(in []byte, from, to int, includeNull bool) int {
	for i := from; i < to; i++ {
		c := in[i]
		if c < 0x20 || c == '"' || c == '\\' || (includeNull && c == 0) {
			return i - from
		}
	}
	return to - from
}

func TestFirstEscapeIndexAgreesWithReference(t *testing.T) {
	t.Parallel()

	inputs := [][]byte{
		[]byte("no escapes needed here at all, thirty two bytes"),
		[]byte("short"),
		[]byte(""),
		[]byte("tab\there"),
		[]byte("quote\"here"),
		[]byte("back\\slash"),
		[]byte("newline\nin the middle of a longer run of plain text"),
		append([]byte("plain text padded out past one word boundary--"), 0x01),
		[]byte("exactly8"),
		[]byte("exactly16bytes!!"),
		[]byte("thirtytwobyteslongpaddedoutfine!"),
	}

	for _, in := range inputs {
		for _, width := range []int{1, 2, 4, 8} {
			for _, includeNull := range []bool{false, true} {
				want := referenceEscapeIndex(in, 0, len(in), includeNull)
				got := firstEscapeIndex(in, 0, len(in), width, includeNull)
				if got != want {
					t.Errorf("firstEscapeIndex(%q, width=%d, includeNull=%v) = %d, want %d",
						in, width, includeNull, got, want)
				}
			}
		}
	}
}

func TestFirstEscapeIndexStopsAtNull(t *testing.T) {
	t.Parallel()

	// A null byte is itself a control byte (< 0x20), so it is reported as
	// an escape position regardless of includeNull; a C-string scan relies
	// on this to stop scanning exactly at its terminator.
	in := append([]byte("fieldname"), 0x00)
	in = append(in, "trailing garbage after the null"...)

	for _, includeNull := range []bool{false, true} {
		if got := firstEscapeIndex(in, 0, len(in), 1, includeNull); got != len("fieldname") {
			t.Errorf("firstEscapeIndex(includeNull=%v) = %d, want %d", includeNull, got, len("fieldname"))
		}
	}
}

func TestEscapeCharTable(t *testing.T) {
	t.Parallel()

	cases := map[byte]byte{
		'\b': 'b',
		'\t': 't',
		'\n': 'n',
		'\f': 'f',
		'\r': 'r',
		'"':  '"',
		'\\': '\\',
		'a':  0,
		0x01: 0,
	}
	for in, want := range cases {
		if got := escapeChar(in); got != want {
			t.Errorf("escapeChar(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWordsPerLaneTiers(t *testing.T) {
	t.Parallel()

	cases := map[isa.Tag]int{
		isa.Baseline: 1,
		isa.SSE2:     2,
		isa.SSE42:    2,
		isa.AVX2:     4,
		isa.AVX512BW: 8,
	}
	for tag, want := range cases {
		if got := wordsPerLane(tag); got != want {
			t.Errorf("wordsPerLane(%v) = %d, want %d", tag, got, want)
		}
	}
}

func TestBindEscapeFnAllTiersAgree(t *testing.T) {
	t.Parallel()

	in := []byte("plain text padded out past one word boundary--\x01trailing")
	for _, tag := range []isa.Tag{isa.Baseline, isa.SSE2, isa.SSE42, isa.AVX2, isa.AVX512BW} {
		fn := bindEscapeFn(tag)
		want := referenceEscapeIndex(in, 0, len(in), false)
		if got := fn(in, 0, len(in), false); got != want {
			t.Errorf("bindEscapeFn(%v)(...) = %d, want %d", tag, got, want)
		}
	}
}
