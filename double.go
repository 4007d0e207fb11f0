package bsonjson

import (
	"math"
	"strconv"
)

// writeDouble formats v using the shortest round-tripping decimal and
// writes it to the output, or writes the literal null if v is not finite.
//
// The notation follows ECMAScript's Number::toString: magnitudes in
// [1e-6, 1e21) are written in plain decimal (1e20 is
// "100000000000000000000"), everything else in exponential form without
// exponent zero-padding ("1e+21", "1.5e-7"), and negative zero as "0".
func (t *transcoder) writeDouble(v float64) error {
	if err := t.sink.reserve(32); err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return t.sink.writeBytes([]byte("null"))
	}
	var buf [32]byte
	var out []byte
	if abs := math.Abs(v); abs == 0 || (abs >= 1e-6 && abs < 1e21) {
		if v == 0 {
			v = 0 // drop the sign of negative zero
		}
		out = strconv.AppendFloat(buf[:0], v, 'f', -1, 64)
	} else {
		out = strconv.AppendFloat(buf[:0], v, 'e', -1, 64)
		// strconv pads the exponent to two digits ("1e-07"); ECMAScript does not.
		if n := len(out); out[n-2] == '0' && (out[n-3] == '+' || out[n-3] == '-') {
			out = append(out[:n-2], out[n-1])
		}
	}
	return t.sink.writeBytes(out)
}
