package bsonjson

import (
	"encoding/binary"
	"math/bits"

	"github.com/xdg-go/bsonjson/isa"
)

// escapeChar returns the one-character backslash escape for c (e.g. 'n' for
// a newline), or 0 if c has no short escape and must be written as \u00XX.
func escapeChar(c byte) byte {
	switch c {
	case '\b':
		return 'b'
	case '\t':
		return 't'
	case '\n':
		return 'n'
	case '\f':
		return 'f'
	case '\r':
		return 'r'
	case '"':
		return '"'
	case '\\':
		return '\\'
	default:
		return 0
	}
}

const lowerHex = "0123456789abcdef"

// writeControlEscape writes the 6-byte \u00XX form for a control byte.
func (s *sink) writeControlEscape(c byte) error {
	hi := byte('0')
	if c&0x10 != 0 {
		hi = '1'
	}
	lo := lowerHex[c&0x0f]
	return s.writeBytes([]byte{'\\', 'u', '0', '0', hi, lo})
}

// wordsPerLane maps an ISA tier to how many 8-byte SWAR words its "vector"
// escape loop processes per outer iteration before re-checking for a byte
// that needs escaping. This stands in for true SIMD lane widths (16/32/64
// bytes): Go has no portable compiler intrinsics for SSE/AVX without
// assembly, so each tier is realized as wider batches of the same
// branchless word-at-a-time scan.
func wordsPerLane(tag isa.Tag) int {
	switch tag {
	case isa.SSE2, isa.SSE42:
		return 2
	case isa.AVX2:
		return 4
	case isa.AVX512BW:
		return 8
	default:
		return 1
	}
}

// escapeFunc is the resolved, isa-bound escape-scanning entry point a
// transcoder calls from its hot loops.
type escapeFunc func(in []byte, from, to int, includeNull bool) int

// bindEscapeFn resolves tag once into an escapeFunc closed over that tier's
// word-batch width, so callers carry no per-call ISA branch.
func bindEscapeFn(tag isa.Tag) escapeFunc {
	width := wordsPerLane(tag)
	return func(in []byte, from, to int, includeNull bool) int {
		return firstEscapeIndex(in, from, to, width, includeNull)
	}
}

// needsEscapeMask returns a word where byte lanes that need JSON escaping
// (control bytes, '"', '\\', and, if includeNull, 0x00) have their high bit
// set, using the classic SWAR "hasless"/"haszero" bit tricks so the whole
// 8-byte word is tested without a per-byte branch.
func needsEscapeMask(word uint64, includeNull bool) uint64 {
	const lo = 0x0101010101010101
	const hi = 0x8080808080808080

	// control: byte < 0x20
	controlMask := (word - lo*0x20) &^ word & hi

	quote := word ^ (lo * 0x22)
	quoteMask := (quote - lo) &^ quote & hi

	backslash := word ^ (lo * 0x5c)
	backslashMask := (backslash - lo) &^ backslash & hi

	mask := controlMask | quoteMask | backslashMask
	if includeNull {
		nullMask := (word - lo) &^ word & hi
		mask |= nullMask
	}
	return mask
}

// firstEscapeIndex scans in[from:to] using word-at-a-time SWAR passes of
// width words-per-iteration, returning the offset (relative to from) of the
// first byte that needs escaping, or to-from if none do. includeNull also
// stops at a 0x00 byte (used by the null-terminated field-name variant).
func firstEscapeIndex(in []byte, from, to int, width int, includeNull bool) int {
	i := from
	for i+8*width <= to {
		for w := 0; w < width; w++ {
			word := binary.LittleEndian.Uint64(in[i+8*w:])
			if mask := needsEscapeMask(word, includeNull); mask != 0 {
				return i + 8*w + bits.TrailingZeros64(mask)/8 - from
			}
		}
		i += 8 * width
	}
	for i+8 <= to {
		word := binary.LittleEndian.Uint64(in[i:])
		if mask := needsEscapeMask(word, includeNull); mask != 0 {
			return i + bits.TrailingZeros64(mask)/8 - from
		}
		i += 8
	}
	for ; i < to; i++ {
		c := in[i]
		if c < 0x20 || c == '"' || c == '\\' || (includeNull && c == 0) {
			return i - from
		}
	}
	return to - from
}

// writeEscapedN copies n bytes from t.in[t.inIdx:] to the output, escaping
// control bytes, '"', and '\\' per ECMA-262 section 24.5.2.2. It advances
// t.inIdx by n.
func (t *transcoder) writeEscapedN(n int) error {
	end := t.inIdx + n
	if err := t.sink.reserve(n); err != nil {
		return err
	}
	for t.inIdx < end {
		k := t.escapeFn(t.in, t.inIdx, end, false)
		if k > 0 {
			if err := t.sink.writeBytes(t.in[t.inIdx : t.inIdx+k]); err != nil {
				return err
			}
			t.inIdx += k
		}
		if t.inIdx == end {
			break
		}
		c := t.in[t.inIdx]
		t.inIdx++
		if err := t.sink.reserve(6); err != nil {
			return err
		}
		if esc := escapeChar(c); esc != 0 {
			if err := t.sink.writeBytes([]byte{'\\', esc}); err != nil {
				return err
			}
		} else {
			if err := t.sink.writeControlEscape(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeEscapedCString copies bytes from t.in[t.inIdx:] up to (but not
// including) the next null byte, escaping as writeEscapedN does. t.inIdx is
// left pointing at the null terminator; the caller skips it.
func (t *transcoder) writeEscapedCString() error {
	for {
		end := len(t.in)
		k := t.escapeFn(t.in, t.inIdx, end, true)
		if k > 0 {
			if err := t.sink.reserve(k); err != nil {
				return err
			}
			if err := t.sink.writeBytes(t.in[t.inIdx : t.inIdx+k]); err != nil {
				return err
			}
			t.inIdx += k
		}
		if t.inIdx >= len(t.in) {
			return newTranscodeError(NameTerminatorMissing, t.inIdx, "no null byte found before end of input")
		}
		c := t.in[t.inIdx]
		if c == 0 {
			return nil
		}
		t.inIdx++
		if err := t.sink.reserve(6); err != nil {
			return err
		}
		if esc := escapeChar(c); esc != 0 {
			if err := t.sink.writeBytes([]byte{'\\', esc}); err != nil {
				return err
			}
		} else {
			if err := t.sink.writeControlEscape(c); err != nil {
				return err
			}
		}
	}
}
