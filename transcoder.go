package bsonjson

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/xdg-go/bsonjson/isa"
	"github.com/xdg-go/bsonjson/populate"
)

// errNilFixedBuffer is returned by NewStreamingTranscoder when called
// without a FixedBuffer. This is a caller configuration mistake, not one of
// the enumerated transcode-fault Kinds, so it is a plain error rather than a
// *TranscodeError.
var errNilFixedBuffer = errors.New("bsonjson: streaming transcode requires a non-nil FixedBuffer")

// errNilCache is returned by CollectMissing when called without a cache,
// since a missing-only walk has nothing to record misses into.
var errNilCache = errors.New("bsonjson: CollectMissing requires a non-nil populate cache")

// defaultMaxDepth bounds recursion depth absent an explicit Options.MaxDepth.
const defaultMaxDepth = 200

// Options configures a transcode call. The zero value selects REALLOC mode
// with a default initial capacity and no populate substitution.
type Options struct {
	// ChunkSize, if nonzero, sets the initial REALLOC output capacity.
	// Zero selects floor(2.5 * len(in)). Either way the initial capacity
	// is at least 16 bytes.
	ChunkSize int
	// FixedBuffer, if non-nil, selects PAUSE mode: the transcoder writes
	// into this caller-owned buffer and pauses when it fills, resuming
	// only after the caller drains it via Next.
	FixedBuffer []byte
	// Populate, if non-nil, is consulted for ObjectID substitution and
	// receives recorded misses.
	Populate *populate.Cache
	// MaxDepth bounds recursion depth. Zero selects the default of 200.
	MaxDepth int
}

// transcoder holds the state of a single BSON-to-JSON pass: the input
// cursor, the output sink, the isa-bound escape/hex functions, and the
// optional populate cache.
type transcoder struct {
	in    []byte
	inIdx int

	sink *sink

	tag      isa.Tag
	escapeFn escapeFunc
	hexFn    hexEncoder

	depth    int
	maxDepth int

	cache *populate.Cache
}

func newTranscoder(in []byte, sink *sink, opts Options) *transcoder {
	tag := isa.Detect()
	maxDepth := opts.MaxDepth
	if maxDepth == 0 {
		maxDepth = defaultMaxDepth
	}
	return &transcoder{
		in:       in,
		sink:     sink,
		tag:      tag,
		escapeFn: bindEscapeFn(tag),
		hexFn:    bindHexFn(tag),
		maxDepth: maxDepth,
		cache:    opts.Populate,
	}
}

// Transcode converts the BSON document (or array body, if isArray is true)
// in in to JSON, growing its own output buffer as needed, and returns the
// finished JSON bytes.
func Transcode(in []byte, isArray bool, opts Options) ([]byte, error) {
	if len(in) < 5 {
		return nil, newTranscodeError(InputTooShort, 0, "input shorter than minimum BSON document")
	}
	s := newReallocSink(opts.ChunkSize, len(in))
	t := newTranscoder(in, s, opts)
	if err := t.walkTop(isArray); err != nil {
		return nil, err
	}
	return s.out[:s.outIdx], nil
}

// StreamingTranscoder drives a PAUSE-mode transcode on its own goroutine,
// writing into a caller-supplied fixed buffer and handing control back to
// the caller's Next calls each time that buffer fills or the document is
// exhausted.
type StreamingTranscoder struct {
	sink *sink
	err  error
}

// NewStreamingTranscoder starts a streaming transcode of in into
// opts.FixedBuffer. The producer does not begin writing until the first
// call to Next.
func NewStreamingTranscoder(in []byte, isArray bool, opts Options) (*StreamingTranscoder, error) {
	if len(in) < 5 {
		return nil, newTranscodeError(InputTooShort, 0, "input shorter than minimum BSON document")
	}
	if opts.FixedBuffer == nil {
		return nil, errNilFixedBuffer
	}
	s := newPauseSink(opts.FixedBuffer)
	t := newTranscoder(in, s, opts)

	st := &StreamingTranscoder{sink: s}
	go func() {
		if err := s.waitForInvite(); err != nil {
			st.err = err
			_ = s.finish(err)
			return
		}
		err := t.walkTop(isArray)
		st.err = err
		_ = s.finish(err)
	}()
	return st, nil
}

// Next returns the next produced chunk of JSON output, and whether this is
// the final chunk. On the first call it invites the producer to begin.
// Bytes alias the caller's fixed buffer and must be consumed before the
// next call to Next, since the producer may overwrite them once resumed.
func (st *StreamingTranscoder) Next() ([]byte, bool, error) {
	chunk, done := st.sink.next()
	if done {
		return chunk, true, st.err
	}
	return chunk, false, nil
}

// Abort stops the producer goroutine, unblocking it (and any consumer
// waiting in Next) with an error rather than letting it block forever on a
// rendezvous that will never complete.
func (st *StreamingTranscoder) Abort() {
	st.sink.abort()
}

// CollectMissing walks in the same way Transcode does, but produces no
// output: it exists to let a caller pre-scan a document for the ObjectIds
// that a populate cache does not yet cover, so those references can be
// fetched and the cache backfilled before the real Transcode call runs.
// Every recorded miss lands in cache's missing set, retrievable afterward
// via cache.Missing.
func CollectMissing(in []byte, isArray bool, cache *populate.Cache) error {
	if cache == nil {
		return errNilCache
	}
	if len(in) < 5 {
		return newTranscodeError(InputTooShort, 0, "input shorter than minimum BSON document")
	}
	t := newTranscoder(in, newDiscardSink(), Options{Populate: cache})
	return t.walkTop(isArray)
}

func (t *transcoder) readInt32LE() int32 {
	v := int32(binary.LittleEndian.Uint32(t.in[t.inIdx:]))
	t.inIdx += 4
	return v
}

func (t *transcoder) readInt64LE() int64 {
	v := int64(binary.LittleEndian.Uint64(t.in[t.inIdx:]))
	t.inIdx += 8
	return v
}

func (t *transcoder) readFloat64LE() float64 {
	bits := binary.LittleEndian.Uint64(t.in[t.inIdx:])
	t.inIdx += 8
	return math.Float64frombits(bits)
}
