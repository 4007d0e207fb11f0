package bsonjson

import "testing"

func TestSplitMillis(t *testing.T) {
	t.Parallel()

	cases := []struct {
		ms     int64
		sec    int64
		millis int64
	}{
		{0, 0, 0},
		{1, 0, 1},
		{999, 0, 999},
		{1000, 1, 0},
		{1500, 1, 500},
		{-1, -1, 999},
		{-1000, -1, 0},
		{-1500, -2, 500},
	}
	for _, c := range cases {
		sec, millis := splitMillis(c.ms)
		if sec != c.sec || millis != c.millis {
			t.Errorf("splitMillis(%d) = (%d, %d), want (%d, %d)", c.ms, sec, millis, c.sec, c.millis)
		}
		if millis < 0 || millis > 999 {
			t.Errorf("splitMillis(%d) millis = %d, out of [0,999]", c.ms, millis)
		}
		if sec*1000+millis != c.ms {
			t.Errorf("splitMillis(%d): sec*1000+millis = %d, want %d", c.ms, sec*1000+millis, c.ms)
		}
	}
}
