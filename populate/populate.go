// Package populate implements the optional ObjectID substitution cache used
// by the transcoder: a mapping from a document field path to precomputed
// JSON fragments keyed by ObjectID, plus a sibling map recording references
// that missed the cache.
//
// Paths are dotted strings rooted at the top-level document; array indices
// collapse, so within an array the path is the array's own path rather than
// a per-element path.
package populate

// Path is a dotted field path rooted at the top-level document, e.g.
// "author" or "comments.author".
type Path string

// ObjectID is a 12-byte BSON ObjectID, laid out the same way as
// go.mongodb.org/mongo-driver/bson/primitive.ObjectID so callers can convert
// between the two with a simple type conversion.
type ObjectID [12]byte

// key returns the last 8 bytes of the id (high-entropy random plus counter),
// used preferentially as the bucket key for equality and hashing: two ids
// are only expected to collide on these 8 bytes if they are identical, so
// full 12-byte equality is only needed to break a same-bucket tie.
func (id ObjectID) key() [8]byte {
	var k [8]byte
	copy(k[:], id[4:12])
	return k
}

// idJSON pairs a full ObjectID with its precomputed JSON bytes, stored in a
// key()-bucketed slice so a bucket collision falls back to a full 12-byte
// compare instead of silently aliasing two different ids.
type idJSON struct {
	id    ObjectID
	bytes []byte
}

// Cache holds precomputed JSON fragments for ObjectID references, plus the
// set of misses recorded while transcoding. Both maps are bucketed by
// ObjectID.key() rather than the full 12-byte id.
type Cache struct {
	paths   map[Path]map[[8]byte][]idJSON
	missing map[Path]map[[8]byte][]ObjectID
	// docID is the top-level document's own "_id", captured by the
	// transcoder during the walk so the caller can key the fragment it
	// produces from this transcode under the document's own id.
	docID ObjectID
	hasID bool
}

// NewCache returns an empty populate cache.
func NewCache() *Cache {
	return &Cache{
		paths:   make(map[Path]map[[8]byte][]idJSON),
		missing: make(map[Path]map[[8]byte][]ObjectID),
	}
}

// Set registers the precomputed JSON bytes for id at path. Subsequent
// lookups of id at path will splice in bytes verbatim instead of the usual
// hex-quoted ObjectID.
func (c *Cache) Set(path Path, id ObjectID, jsonBytes []byte) {
	m := c.paths[path]
	if m == nil {
		m = make(map[[8]byte][]idJSON)
		c.paths[path] = m
	}
	k := id.key()
	bucket := m[k]
	for i, e := range bucket {
		if e.id == id {
			bucket[i].bytes = jsonBytes
			return
		}
	}
	m[k] = append(bucket, idJSON{id: id, bytes: jsonBytes})
}

// RegisterPath marks path as a populate target without registering any
// ObjectID entries for it. A missing-only walk only records a reference as
// a miss at paths Has reports true for, so a caller pre-scanning a document
// for ids to fetch must register every path it cares about before running
// one, even on a first pass where nothing is cached yet.
func (c *Cache) RegisterPath(path Path) {
	if c.paths[path] == nil {
		c.paths[path] = make(map[[8]byte][]idJSON)
	}
}

// RepeatPath makes alias share the same ObjectID -> bytes map as existing,
// without duplicating storage. Both paths observe future Set calls made
// through either path name.
func (c *Cache) RepeatPath(existing, alias Path) {
	m := c.paths[existing]
	if m == nil {
		m = make(map[[8]byte][]idJSON)
		c.paths[existing] = m
	}
	c.paths[alias] = m
}

// Lookup returns the precomputed JSON bytes for id at path, if present.
func (c *Cache) Lookup(path Path, id ObjectID) ([]byte, bool) {
	m := c.paths[path]
	if m == nil {
		return nil, false
	}
	for _, e := range m[id.key()] {
		if e.id == id {
			return e.bytes, true
		}
	}
	return nil, false
}

// Has reports whether path is registered (through Set, RegisterPath or
// RepeatPath), even if it holds no entries yet, which the walker uses to
// decide whether an ObjectID at this path is even a candidate for
// substitution.
func (c *Cache) Has(path Path) bool {
	_, ok := c.paths[path]
	return ok
}

// RecordMiss records that id at path was looked up but not found in the
// cache.
func (c *Cache) RecordMiss(path Path, id ObjectID) {
	m := c.missing[path]
	if m == nil {
		m = make(map[[8]byte][]ObjectID)
		c.missing[path] = m
	}
	k := id.key()
	for _, existing := range m[k] {
		if existing == id {
			return
		}
	}
	m[k] = append(m[k], id)
}

// Missing returns the set of ObjectIDs recorded as misses at path.
func (c *Cache) Missing(path Path) []ObjectID {
	m := c.missing[path]
	if len(m) == 0 {
		return nil
	}
	var out []ObjectID
	for _, bucket := range m {
		out = append(out, bucket...)
	}
	return out
}

// SetDocID records the top-level document's own "_id" field, as observed
// during a transcode. DocID retrieves it afterward.
func (c *Cache) SetDocID(id ObjectID) {
	c.docID = id
	c.hasID = true
}

// DocID returns the most recently recorded top-level "_id", if any
// transcode using this cache has observed one. It is not cleared between
// transcodes, so a later document without an ObjectID "_id" leaves the
// earlier value in place.
func (c *Cache) DocID() (ObjectID, bool) {
	return c.docID, c.hasID
}
