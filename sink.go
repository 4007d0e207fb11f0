package bsonjson

import (
	"errors"
	"sync"
)

// sinkMode selects how the output buffer is grown or drained.
type sinkMode int

const (
	// modeRealloc owns its buffer and grows it by reallocating whenever
	// a write would overflow it.
	modeRealloc sinkMode = iota
	// modePause writes into a caller-owned fixed buffer and suspends the
	// producer when that buffer fills, handing control to a consumer
	// via a mutex/condvar rendezvous.
	modePause
	// modeDiscard drops every write. Used for a missing-only walk, which
	// exercises the same walkDocument/writeElement path as a real
	// transcode purely to drive the populate cache's hit/miss bookkeeping,
	// without producing any JSON.
	modeDiscard
)

// errAborted is returned from sink operations once Abort has been called on
// a streaming transcode in PAUSE mode.
var errAborted = errors.New("bsonjson: streaming transcode aborted")

// sink is the output buffer together with its grow-or-pause policy. Every
// producing routine calls reserve before writing so the sink can grow
// (REALLOC) or pause for drain (PAUSE) as needed.
type sink struct {
	mode   sinkMode
	out    []byte
	outIdx int

	// PAUSE-mode rendezvous state. Guarded by mu; cond broadcasts on
	// state transitions either side needs to observe.
	mu      sync.Mutex
	cond    *sync.Cond
	invited bool
	done    bool
	aborted bool
}

func newReallocSink(chunkSize, inLen int) *sink {
	if chunkSize == 0 {
		chunkSize = (inLen * 10) >> 2 // floor(2.5 * inLen)
	}
	if chunkSize < 16 {
		chunkSize = 16
	}
	s := &sink{mode: modeRealloc, out: make([]byte, chunkSize)}
	return s
}

func newPauseSink(fixedBuf []byte) *sink {
	s := &sink{mode: modePause, out: fixedBuf}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func newDiscardSink() *sink {
	return &sink{mode: modeDiscard}
}

// reserve ensures n more bytes can be written at out[outIdx:]. In REALLOC
// mode it grows the buffer. In PAUSE mode, if the buffer would overflow, it
// signals the consumer that a chunk is ready and blocks until the consumer
// has drained it (reset outIdx to 0) or the transcode has been aborted.
func (s *sink) reserve(n int) error {
	if s.mode == modeDiscard {
		return nil
	}
	if s.mode == modeRealloc {
		if s.outIdx+n < len(s.out) {
			return nil
		}
		s.grow(n)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.outIdx+n < len(s.out) {
		return nil
	}
	if s.aborted {
		return errAborted
	}
	if s.outIdx == 0 {
		// Nothing written yet, so there is no chunk to hand over; a request
		// larger than the buffer is written in pieces by writeBytes.
		return nil
	}
	s.cond.Broadcast()
	for s.outIdx != 0 && !s.aborted {
		s.cond.Wait()
	}
	if s.aborted {
		return errAborted
	}
	return nil
}

// grow reallocates out to fit at least n more bytes past outIdx: grow to
// ceil(1.5x current); if that still doesn't fit the request, grow to
// ceil(1.5 * max(current, needed)).
func (s *sink) grow(n int) {
	current := len(s.out)
	needed := s.outIdx + n
	newLen := ceil3Over2(current)
	if newLen <= needed {
		base := current
		if needed > base {
			base = needed
		}
		newLen = ceil3Over2(base)
	}
	grown := make([]byte, newLen)
	copy(grown, s.out[:s.outIdx])
	s.out = grown
}

func ceil3Over2(x int) int {
	return (x*3 + 1) / 2
}

// writeByte appends a single byte, reserving space first. In DISCARD mode
// the byte is dropped.
func (s *sink) writeByte(b byte) error {
	if s.mode == modeDiscard {
		return nil
	}
	if err := s.reserve(1); err != nil {
		return err
	}
	s.out[s.outIdx] = b
	s.outIdx++
	return nil
}

// writeBytes appends b verbatim, reserving space first. In PAUSE mode a
// single b may be longer than the caller's fixed buffer, so it is written in
// buffer-sized pieces, each with its own reserve/drain cycle, rather than in
// one shot. In DISCARD mode b is dropped.
func (s *sink) writeBytes(b []byte) error {
	if s.mode == modeDiscard {
		return nil
	}
	if s.mode == modeRealloc {
		if err := s.reserve(len(b)); err != nil {
			return err
		}
		n := copy(s.out[s.outIdx:], b)
		s.outIdx += n
		return nil
	}
	for len(b) > 0 {
		n := len(b)
		if n > len(s.out) {
			n = len(s.out)
		}
		if err := s.reserve(n); err != nil {
			return err
		}
		cnt := copy(s.out[s.outIdx:], b[:n])
		s.outIdx += cnt
		b = b[cnt:]
	}
	return nil
}

// waitForInvite blocks the producer goroutine in PAUSE mode until the
// consumer's first call to Next invites it to begin.
func (s *sink) waitForInvite() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for !s.invited && !s.aborted {
		s.cond.Wait()
	}
	if s.aborted {
		return errAborted
	}
	return nil
}

// finish marks the producer as done, recording err (if any), and wakes any
// consumer waiting in Next so it can observe completion.
func (s *sink) finish(err error) error {
	s.mu.Lock()
	s.done = true
	s.cond.Broadcast()
	s.mu.Unlock()
	return err
}

// invite wakes the producer goroutine for the first time. Safe to call more
// than once; only the first call has an effect.
func (s *sink) invite() {
	s.mu.Lock()
	if !s.invited {
		s.invited = true
		s.cond.Broadcast()
	}
	s.mu.Unlock()
}

// abort signals the producer to stop waiting and unwind with errAborted,
// and lets a blocked consumer observe that abort happened.
func (s *sink) abort() {
	s.mu.Lock()
	s.aborted = true
	s.cond.Broadcast()
	s.mu.Unlock()
}

// next implements the consumer side of the PAUSE rendezvous: invite the
// producer if this is the first call, otherwise release the chunk handed
// out by the previous call (reset outIdx and signal resume), then wait until
// a chunk is ready or the producer is done and return [0:outIdx). The
// producer stays blocked while the returned chunk is held by the consumer.
func (s *sink) next() (chunk []byte, done bool) {
	s.mu.Lock()
	if !s.invited {
		s.invited = true
		s.cond.Broadcast()
	}
	if s.outIdx != 0 && !s.done {
		s.outIdx = 0
		s.cond.Broadcast()
	}
	for s.outIdx == 0 && !s.done {
		s.cond.Wait()
	}
	chunk = s.out[:s.outIdx]
	done = s.done
	s.mu.Unlock()
	return chunk, done
}
