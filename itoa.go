package bsonjson

import "github.com/xdg-go/bsonjson/internal/fastitoa"

// writeInt32 formats v as decimal ASCII and writes it to the output.
func (t *transcoder) writeInt32(v int32) error {
	if err := t.sink.reserve(fastitoa.Int32BufLen); err != nil {
		return err
	}
	var buf [fastitoa.Int32BufLen]byte
	out := fastitoa.AppendInt32(buf[:0], v)
	return t.sink.writeBytes(out)
}

// writeInt64 formats v as decimal ASCII and writes it to the output.
func (t *transcoder) writeInt64(v int64) error {
	if err := t.sink.reserve(fastitoa.Int64BufLen); err != nil {
		return err
	}
	var buf [fastitoa.Int64BufLen]byte
	out := fastitoa.AppendInt64(buf[:0], v)
	return t.sink.writeBytes(out)
}

// digitWidth returns the number of ASCII bytes in the decimal
// representation of the non-negative int32 v, plus one for the BSON
// field-name null terminator. Used only to skip array element names
// without scanning for the terminating null.
func digitWidth(v int32) int {
	switch {
	case v < 10:
		return 2
	case v < 100:
		return 3
	case v < 1000:
		return 4
	case v < 10000:
		return 5
	case v < 100000:
		return 6
	case v < 1000000:
		return 7
	case v < 10000000:
		return 8
	case v < 100000000:
		return 9
	case v < 1000000000:
		return 10
	default:
		return 11
	}
}
