package bsonjson

import "github.com/xdg-go/bsonjson/isa"

const hexDigits = "0123456789abcdef"

// hexEncoder is the resolved, isa-bound hex-encoding entry point a
// transcoder calls to render a 12-byte ObjectID as 24 lowercase hex bytes.
type hexEncoder func(dst, src []byte)

// bindHexFn resolves tag once into a hexEncoder: the baseline tier keeps the
// per-nibble table lookup, and every wider tier switches to the branchless
// SWAR nibble encoder batched across more of the fixed 12-byte input per
// outer step, standing in for a real SIMD kernel packing more of the id
// into one vector register as lane width grows.
func bindHexFn(tag isa.Tag) hexEncoder {
	switch tag {
	case isa.Baseline:
		return encodeHex12
	case isa.SSE2, isa.SSE42:
		return func(dst, src []byte) { encodeHex12SWAR(dst, src, 4) }
	case isa.AVX2:
		return func(dst, src []byte) { encodeHex12SWAR(dst, src, 8) }
	default: // isa.AVX512BW
		return func(dst, src []byte) { encodeHex12SWAR(dst, src, 12) }
	}
}

// encodeHex12 writes the 24-character lowercase hex encoding of the 12
// input bytes into dst[0:24]. It is a per-nibble table lookup, the same
// technique mongo-driver's ObjectID.Hex delegates to via encoding/hex,
// processed four bytes at a time. This is the baseline-tier hexEncoder.
func encodeHex12(dst []byte, src []byte) {
	for i := 0; i < 12; i += 4 {
		encodeHex4(dst[i*2:], src[i:])
	}
}

// encodeHex4 hex-encodes 4 input bytes into 8 output bytes.
func encodeHex4(dst []byte, src []byte) {
	for i := 0; i < 4; i++ {
		b := src[i]
		dst[i*2] = hexDigits[b>>4]
		dst[i*2+1] = hexDigits[b&0x0f]
	}
}

// encodeHex12SWAR hex-encodes the 12 input bytes into dst[0:24] using
// branchless nibble arithmetic (hexNibble) instead of a table lookup,
// batch bytes at a time per outer step: fewer, wider steps model a vector
// register wide enough to cover more of the fixed-size id in one pass.
func encodeHex12SWAR(dst, src []byte, batch int) {
	for i := 0; i < 12; i += batch {
		n := batch
		if i+n > 12 {
			n = 12 - i
		}
		for j := 0; j < n; j++ {
			b := src[i+j]
			dst[(i+j)*2] = hexNibble(b >> 4)
			dst[(i+j)*2+1] = hexNibble(b & 0x0f)
		}
	}
}

// hexNibble converts a 4-bit value to its lowercase ASCII hex digit using
// branchless arithmetic rather than a table lookup: mask is all-ones when n
// exceeds 9 and zero otherwise, so the 'a'-'0'-10 offset is added only for
// the a-f range without a conditional.
func hexNibble(n byte) byte {
	v := int32(n)
	mask := (9 - v) >> 31
	return byte(v + '0' + (mask & (('a' - '0') - 10)))
}

// writeObjectIDHex writes `"` + 24 lowercase hex digits + `"` for the 12 raw
// ObjectID bytes at t.in[t.inIdx:], then advances t.inIdx by 12. This is the
// fallback path writeObjectIDValue takes whenever no populate cache entry
// substitutes for the id.
func (t *transcoder) writeObjectIDHex() error {
	if t.inIdx+12 > len(t.in) {
		return newTranscodeError(TruncatedPayload, t.inIdx, "ObjectID payload runs past end of input")
	}
	if err := t.sink.reserve(26); err != nil {
		return err
	}
	var buf [26]byte
	buf[0] = '"'
	t.hexFn(buf[1:25], t.in[t.inIdx:t.inIdx+12])
	buf[25] = '"'
	t.inIdx += 12
	return t.sink.writeBytes(buf[:])
}
