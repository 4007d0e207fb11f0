package bsonjson

import "time"

// splitMillis splits ms (milliseconds since the Unix epoch) into whole
// seconds and a millisecond remainder in [0, 999], using floor division so
// that dates before 1970 round toward negative infinity rather than toward
// zero.
func splitMillis(ms int64) (sec int64, millis int64) {
	sec = ms / 1000
	millis = ms % 1000
	if millis < 0 {
		millis += 1000
		sec--
	}
	return sec, millis
}

// writeDateTime formats v, a BSON UTC datetime (milliseconds since the Unix
// epoch), as a quoted ISO-8601 string "YYYY-MM-DDTHH:MM:SS.mmmZ" with the
// year at full decimal width, the milliseconds zero-padded to three digits
// and every other field zero-padded to two digits. Go's time package handles the full int64 millisecond range
// without overflow, so there is no platform-dependent "out of range" case
// to guard against here.
func (t *transcoder) writeDateTime(v int64) error {
	sec, millis := splitMillis(v)
	tm := time.Unix(sec, 0).UTC()

	if err := t.sink.reserve(32); err != nil {
		return err
	}

	var buf [32]byte
	out := buf[:0]
	out = append(out, '"')
	out = tm.AppendFormat(out, "2006-01-02T15:04:05")
	out = append(out, '.', byte('0'+millis/100), byte('0'+(millis/10)%10), byte('0'+millis%10), 'Z', '"')

	return t.sink.writeBytes(out)
}
