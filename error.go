package bsonjson

import "fmt"

// Kind enumerates the fatal error conditions a transcode call can hit.
type Kind int

const (
	// InputTooShort means the input buffer is shorter than the minimum
	// possible BSON document (5 bytes: a 4-byte length and a terminator).
	InputTooShort Kind = iota
	// BsonSizeTooSmall means a document-length field read less than 5.
	BsonSizeTooSmall
	// BsonSizeExceedsInput means a document's declared extent runs past
	// the end of the input buffer.
	BsonSizeExceedsInput
	// BadStringLength means a string's length header was non-positive or
	// ran past the end of the input buffer.
	BadStringLength
	// TruncatedPayload means a fixed-length payload (ObjectID, int32,
	// int64, double, datetime, bool) ran off the end of the input buffer.
	TruncatedPayload
	// InvalidArrayTerminator means an array's (top-level or nested)
	// declared extent ran out without the walker ever finding its 0x00
	// terminator byte.
	InvalidArrayTerminator
	// NameTerminatorMissing means no null byte was found while scanning
	// a field name before the end of the input buffer.
	NameTerminatorMissing
	// IncompatibleType means a BSON type with no JSON projection was
	// encountered (Decimal128, Binary, Regex, Symbol, Timestamp,
	// MinKey/MaxKey, Code, Code-with-scope, DBPointer).
	IncompatibleType
	// UnknownType means a type tag outside the recognized BSON type set
	// was encountered.
	UnknownType
	// OutOfMemory means the output sink failed to grow its buffer
	// (REALLOC mode only).
	OutOfMemory
	// MaxDepthExceeded means nested documents or arrays exceeded the
	// configured recursion depth limit.
	MaxDepthExceeded
)

func (k Kind) String() string {
	switch k {
	case InputTooShort:
		return "InputTooShort"
	case BsonSizeTooSmall:
		return "BsonSizeTooSmall"
	case BsonSizeExceedsInput:
		return "BsonSizeExceedsInput"
	case BadStringLength:
		return "BadStringLength"
	case TruncatedPayload:
		return "TruncatedPayload"
	case InvalidArrayTerminator:
		return "InvalidArrayTerminator"
	case NameTerminatorMissing:
		return "NameTerminatorMissing"
	case IncompatibleType:
		return "IncompatibleType"
	case UnknownType:
		return "UnknownType"
	case OutOfMemory:
		return "OutOfMemory"
	case MaxDepthExceeded:
		return "MaxDepthExceeded"
	default:
		return "Unknown"
	}
}

// TranscodeError records a fatal error encountered while transcoding a BSON
// document to JSON, together with the byte offset in the input at which it
// occurred.
type TranscodeError struct {
	Kind Kind
	Pos  int
	msg  string
}

func (te *TranscodeError) Error() string {
	return fmt.Sprintf("bsonjson: %s at byte %d: %s", te.Kind, te.Pos, te.msg)
}

func newTranscodeError(kind Kind, pos int, msg string) *TranscodeError {
	return &TranscodeError{Kind: kind, Pos: pos, msg: msg}
}
