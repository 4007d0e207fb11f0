package bsonjson

import (
	"bytes"

	"github.com/xdg-go/bsonjson/populate"
)

// walkTop begins a transcode of the top-level BSON document (or array body)
// in t.in, writing the opening/closing bracket and every element.
func (t *transcoder) walkTop(isArray bool) error {
	if err := t.walkDocument(isArray, ""); err != nil {
		return err
	}
	return nil
}

// walkDocument reads one BSON document or array body starting at t.inIdx
// and writes the corresponding JSON object or array, recursing into nested
// documents and arrays. basePath is the populate field path of this
// container's children: for an object it is the path prefix to join each
// field name onto; for an array it is the array's own path, shared by every
// element, since array indices never extend a populate path.
func (t *transcoder) walkDocument(isArray bool, basePath string) error {
	t.depth++
	if t.depth > t.maxDepth {
		return newTranscodeError(MaxDepthExceeded, t.inIdx, "maximum recursion depth exceeded")
	}
	defer func() { t.depth-- }()

	docStart := t.inIdx
	if docStart+4 > len(t.in) {
		return newTranscodeError(BsonSizeExceedsInput, docStart, "document length header runs past end of input")
	}
	size := t.readInt32LE()
	if size < 5 {
		return newTranscodeError(BsonSizeTooSmall, docStart, "document length is less than the minimum of 5")
	}
	docEnd := docStart + int(size)
	if docEnd > len(t.in) {
		return newTranscodeError(BsonSizeExceedsInput, docStart, "document extent runs past end of input")
	}

	open, close := byte('{'), byte('}')
	if isArray {
		open, close = '[', ']'
	}
	if err := t.sink.writeByte(open); err != nil {
		return err
	}

	first := true
	index := int32(0)
	for {
		// Bounding by the document's own declared extent, rather than the
		// whole input, means a terminator that never arrives within that
		// extent is caught here instead of reading into whatever the input
		// happens to hold past it.
		if t.inIdx >= docEnd {
			if isArray {
				return newTranscodeError(InvalidArrayTerminator, t.inIdx, "array body did not end with a null terminator within its declared extent")
			}
			return newTranscodeError(BsonSizeExceedsInput, t.inIdx, "document missing terminating null byte within its declared extent")
		}
		elementType := t.in[t.inIdx]
		t.inIdx++
		if elementType == 0 {
			break
		}

		// Undefined elides both key and value from the output entirely, so
		// its name must be skipped without writing a comma or quote for it.
		if elementType == bsonUndefined {
			if isArray {
				skip := digitWidth(index)
				if t.inIdx+skip > len(t.in) {
					return newTranscodeError(NameTerminatorMissing, t.inIdx, "array index name runs past end of input")
				}
				t.inIdx += skip
				index++
			} else {
				nullOff := bytes.IndexByte(t.in[t.inIdx:], 0)
				if nullOff < 0 {
					return newTranscodeError(NameTerminatorMissing, t.inIdx, "no null byte found before end of input")
				}
				t.inIdx += nullOff + 1
			}
			continue
		}

		if first {
			first = false
		} else {
			if err := t.sink.writeByte(','); err != nil {
				return err
			}
		}

		var fieldName string
		if isArray {
			skip := digitWidth(index)
			if t.inIdx+skip > len(t.in) {
				return newTranscodeError(NameTerminatorMissing, t.inIdx, "array index name runs past end of input")
			}
			t.inIdx += skip
			index++
		} else {
			if err := t.sink.writeByte('"'); err != nil {
				return err
			}
			nameStart := t.inIdx
			if err := t.writeEscapedCString(); err != nil {
				return err
			}
			if t.cache != nil {
				fieldName = string(t.in[nameStart:t.inIdx])
			}
			t.inIdx++ // skip null terminator
			if err := t.sink.writeBytes([]byte(`":`)); err != nil {
				return err
			}
		}

		var childPath string
		if t.cache != nil {
			if isArray {
				childPath = basePath
			} else {
				childPath = joinPath(basePath, fieldName)
			}
		}

		if err := t.writeElement(elementType, childPath, fieldName); err != nil {
			return err
		}
	}

	if t.inIdx != docEnd {
		return newTranscodeError(BsonSizeExceedsInput, t.inIdx, "document terminator position does not match its declared length")
	}

	if err := t.sink.writeByte(close); err != nil {
		return err
	}
	return nil
}

// joinPath builds a dotted populate.Path from a container's base path and a
// direct field name. An empty name (as used for array-collapsed children)
// leaves the path unchanged.
func joinPath(base, name string) string {
	if name == "" {
		return base
	}
	if base == "" {
		return name
	}
	return base + "." + name
}

// writeElement dispatches on a BSON element's type tag, writing the
// corresponding JSON token(s) and advancing t.inIdx past the payload.
// elementType is never bsonUndefined; the caller filters that out before a
// key is ever written, since undefined elides both key and value.
func (t *transcoder) writeElement(elementType byte, childPath, fieldName string) error {
	switch elementType {
	case bsonDouble:
		if t.inIdx+8 > len(t.in) {
			return newTranscodeError(TruncatedPayload, t.inIdx, "double payload runs past end of input")
		}
		return t.writeDouble(t.readFloat64LE())

	case bsonString:
		return t.writeString()

	case bsonDocument:
		return t.writeDocumentValue(childPath, false)

	case bsonArray:
		return t.writeDocumentValue(childPath, true)

	case bsonObjectID:
		return t.writeObjectIDValue(childPath, fieldName)

	case bsonBool:
		if t.inIdx+1 > len(t.in) {
			return newTranscodeError(TruncatedPayload, t.inIdx, "bool payload runs past end of input")
		}
		v := t.in[t.inIdx]
		t.inIdx++
		if v == 1 {
			return t.sink.writeBytes([]byte("true"))
		}
		return t.sink.writeBytes([]byte("false"))

	case bsonDateTime:
		if t.inIdx+8 > len(t.in) {
			return newTranscodeError(TruncatedPayload, t.inIdx, "datetime payload runs past end of input")
		}
		return t.writeDateTime(t.readInt64LE())

	case bsonNull:
		return t.sink.writeBytes([]byte("null"))

	case bsonInt32:
		if t.inIdx+4 > len(t.in) {
			return newTranscodeError(TruncatedPayload, t.inIdx, "int32 payload runs past end of input")
		}
		return t.writeInt32(t.readInt32LE())

	case bsonInt64:
		if t.inIdx+8 > len(t.in) {
			return newTranscodeError(TruncatedPayload, t.inIdx, "int64 payload runs past end of input")
		}
		return t.writeInt64(t.readInt64LE())

	default:
		if incompatibleTypes[elementType] {
			return newTranscodeError(IncompatibleType, t.inIdx-1, "BSON type has no JSON projection")
		}
		return newTranscodeError(UnknownType, t.inIdx-1, "unrecognized BSON type tag")
	}
}

// writeString writes a BSON string element's JSON projection: a quoted,
// escaped string.
func (t *transcoder) writeString() error {
	if t.inIdx+4 > len(t.in) {
		return newTranscodeError(BadStringLength, t.inIdx, "string length header runs past end of input")
	}
	size := t.readInt32LE()
	if size <= 0 || int(size) > len(t.in)-t.inIdx {
		return newTranscodeError(BadStringLength, t.inIdx, "string length is non-positive or runs past end of input")
	}
	if err := t.sink.writeByte('"'); err != nil {
		return err
	}
	if err := t.writeEscapedN(int(size) - 1); err != nil {
		return err
	}
	t.inIdx++ // skip trailing null
	return t.sink.writeByte('"')
}

// writeDocumentValue recurses into a nested BSON document or array value,
// verifying the array terminator invariant on return.
func (t *transcoder) writeDocumentValue(childPath string, isArray bool) error {
	if err := t.walkDocument(isArray, childPath); err != nil {
		return err
	}
	if isArray && (t.inIdx == 0 || t.in[t.inIdx-1] != 0) {
		return newTranscodeError(InvalidArrayTerminator, t.inIdx, "nested array body did not end with a null terminator")
	}
	return nil
}

// writeObjectIDValue writes a BSON ObjectID element's JSON projection,
// substituting a precomputed JSON fragment from the populate cache when one
// is registered for childPath and this particular id, and recording a miss
// otherwise. Absent a cache, it always writes the plain 24-hex-quoted form.
func (t *transcoder) writeObjectIDValue(childPath, fieldName string) error {
	if t.inIdx+12 > len(t.in) {
		return newTranscodeError(TruncatedPayload, t.inIdx, "ObjectID payload runs past end of input")
	}

	if t.cache != nil {
		if t.depth == 1 && fieldName == "_id" {
			var id populate.ObjectID
			copy(id[:], t.in[t.inIdx:t.inIdx+12])
			t.cache.SetDocID(id)
		}
		path := populate.Path(childPath)
		if path != "" && t.cache.Has(path) {
			var id populate.ObjectID
			copy(id[:], t.in[t.inIdx:t.inIdx+12])
			if data, ok := t.cache.Lookup(path, id); ok {
				t.inIdx += 12
				if err := t.sink.reserve(len(data)); err != nil {
					return err
				}
				return t.sink.writeBytes(data)
			}
			t.cache.RecordMiss(path, id)
		}
	}

	return t.writeObjectIDHex()
}
