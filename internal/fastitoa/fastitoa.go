// Package fastitoa formats signed integers to decimal ASCII using a
// two-digit-per-iteration table lookup, the same technique fmtlib/fmt uses
// internally for fast integer formatting.
package fastitoa

// digits holds the two-ASCII-digit representation of every value 0..99,
// concatenated, so index 2*v..2*v+1 gives the decimal digits of v.
const digits = "" +
	"0001020304050607080910111213141516171819" +
	"2021222324252627282930313233343536373839" +
	"4041424344454647484950515253545556575859" +
	"6061626364656667686970717273747576777879" +
	"8081828384858687888990919293949596979899"

// Int32BufLen is the largest buffer needed to format an int32 in decimal
// (10 digits plus a sign).
const Int32BufLen = 11

// Int64BufLen is the largest buffer needed to format an int64 in decimal
// (19 digits plus a sign).
const Int64BufLen = 20

// AppendInt32 formats v as decimal ASCII and appends it to buf.
func AppendInt32(buf []byte, v int32) []byte {
	return appendInt(buf, int64(v))
}

// AppendInt64 formats v as decimal ASCII and appends it to buf.
func AppendInt64(buf []byte, v int64) []byte {
	return appendInt(buf, v)
}

func appendInt(buf []byte, val int64) []byte {
	var tmp [Int64BufLen]byte
	p := len(tmp)

	negative := val < 0
	// Careful with math.MinInt64: negating it overflows int64, so work in
	// uint64 from here on.
	var uval uint64
	if negative {
		uval = uint64(-(val))
	} else {
		uval = uint64(val)
	}

	for uval >= 100 {
		index := (uval % 100) * 2
		uval /= 100
		p -= 2
		tmp[p] = digits[index]
		tmp[p+1] = digits[index+1]
	}

	if uval < 10 {
		p--
		tmp[p] = byte('0' + uval)
	} else {
		index := uval * 2
		p -= 2
		tmp[p] = digits[index]
		tmp[p+1] = digits[index+1]
	}

	if negative {
		p--
		tmp[p] = '-'
	}

	return append(buf, tmp[p:]...)
}
