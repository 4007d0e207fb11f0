// Package isa selects, once per process, the best available instruction-set
// tier for the transcoder's hot loops (escape writer, ObjectID hex writer).
// Detection happens once; callers bind the returned Tag at construction time
// rather than branching on it inside a loop.
package isa

import (
	"sync"

	"golang.org/x/sys/cpu"
)

// Tag names an instruction-set tier, ordered from least to most capable.
type Tag int

const (
	// Baseline is the portable scalar/SWAR fallback, always available.
	Baseline Tag = iota
	// SSE2 models a 16-byte SIMD lane width.
	SSE2
	// SSE42 models a 16-byte SIMD lane width with string-compare
	// instructions; for the word-at-a-time SWAR fallback it has the same
	// lane width as SSE2 but is kept distinct so the tier structure
	// matches what real SIMD dispatch would use.
	SSE42
	// AVX2 models a 32-byte SIMD lane width.
	AVX2
	// AVX512BW models a 64-byte SIMD lane width.
	AVX512BW
)

func (t Tag) String() string {
	switch t {
	case Baseline:
		return "baseline"
	case SSE2:
		return "sse2"
	case SSE42:
		return "sse4.2"
	case AVX2:
		return "avx2"
	case AVX512BW:
		return "avx-512bw"
	default:
		return "unknown"
	}
}

// LaneWidth returns the number of bytes this tier's hot loops process per
// iteration on the fast path.
func (t Tag) LaneWidth() int {
	switch t {
	case SSE2, SSE42:
		return 16
	case AVX2:
		return 32
	case AVX512BW:
		return 64
	default:
		return 8
	}
}

var (
	once     sync.Once
	detected Tag
)

// Detect probes CPU features and returns the best available tier. The probe
// runs once per process; subsequent calls return the cached result.
func Detect() Tag {
	once.Do(func() {
		detected = detect()
	})
	return detected
}

func detect() Tag {
	if !cpu.X86.HasSSE2 {
		return Baseline
	}
	tag := SSE2
	if cpu.X86.HasSSE42 {
		tag = SSE42
	}
	if cpu.X86.HasAVX2 {
		tag = AVX2
	}
	if cpu.X86.HasAVX512BW {
		tag = AVX512BW
	}
	return tag
}
