package isa

import "testing"

func TestDetectIsStable(t *testing.T) {
	t.Parallel()

	first := Detect()
	for i := 0; i < 3; i++ {
		if got := Detect(); got != first {
			t.Fatalf("Detect() returned %v on call %d, want stable %v", got, i, first)
		}
	}
}

func TestLaneWidthNonDecreasing(t *testing.T) {
	t.Parallel()

	order := []Tag{Baseline, SSE2, SSE42, AVX2, AVX512BW}
	prev := 0
	for _, tag := range order {
		w := tag.LaneWidth()
		if w < prev {
			t.Errorf("LaneWidth(%v) = %d, want at least previous tier's %d", tag, w, prev)
		}
		prev = w
	}
}

func TestLaneWidthValues(t *testing.T) {
	t.Parallel()

	cases := map[Tag]int{
		Baseline: 8,
		SSE2:     16,
		SSE42:    16,
		AVX2:     32,
		AVX512BW: 64,
	}
	for tag, want := range cases {
		if got := tag.LaneWidth(); got != want {
			t.Errorf("LaneWidth(%v) = %d, want %d", tag, got, want)
		}
	}
}

func TestTagString(t *testing.T) {
	t.Parallel()

	for _, tag := range []Tag{Baseline, SSE2, SSE42, AVX2, AVX512BW} {
		if tag.String() == "" {
			t.Errorf("Tag(%d).String() is empty", tag)
		}
	}
}
