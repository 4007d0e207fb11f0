package fastitoa

import (
	"strconv"
	"testing"
)

func TestAppendInt32(t *testing.T) {
	t.Parallel()

	cases := []int32{0, 1, -1, 9, 10, 99, 100, 999, -999, 12345, -12345, 2147483647, -2147483648}
	for _, v := range cases {
		v := v
		t.Run(strconv.Itoa(int(v)), func(t *testing.T) {
			got := string(AppendInt32(nil, v))
			want := strconv.FormatInt(int64(v), 10)
			if got != want {
				t.Errorf("AppendInt32(%d) = %q, want %q", v, got, want)
			}
		})
	}
}

func TestAppendInt64(t *testing.T) {
	t.Parallel()

	cases := []int64{0, 1, -1, 9, 10, 99, 100, 999, -999, 1234567890123,
		-1234567890123, 9223372036854775807, -9223372036854775808}
	for _, v := range cases {
		v := v
		t.Run(strconv.FormatInt(v, 10), func(t *testing.T) {
			got := string(AppendInt64(nil, v))
			want := strconv.FormatInt(v, 10)
			if got != want {
				t.Errorf("AppendInt64(%d) = %q, want %q", v, got, want)
			}
		})
	}
}

func TestAppendIntBufferReuse(t *testing.T) {
	t.Parallel()

	buf := make([]byte, 0, Int64BufLen+4)
	buf = append(buf, "x: "...)
	buf = AppendInt64(buf, -42)
	if got, want := string(buf), "x: -42"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
