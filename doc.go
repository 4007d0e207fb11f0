// Copyright 2020 by David A. Golden. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package bsonjson is a high-performance, streaming BSON-to-JSON transcoder.
// It converts a single BSON document (or array) directly into a JSON byte
// stream without building an intermediate tree of values, avoiding the
// allocations and copies that an intermediate value tree would require.
//
// There are two output modes. Transcode grows its own output buffer as
// needed and returns the finished JSON in one call. NewStreamingTranscoder
// writes into a caller-supplied fixed buffer and pauses when that buffer
// fills, handing control back to the caller through Next until the document
// is exhausted.
//
// BSON types with no JSON equivalent -- Decimal128, Binary, Regex, Symbol,
// Timestamp, MinKey/MaxKey, Code, Code-with-scope, and DBPointer -- are
// rejected with an error rather than silently skipped. BSON undefined values
// are elided entirely: neither the key nor the value is written.
//
// Populate
//
// Callers that store normalized references as ObjectIDs but want to serve
// denormalized JSON can supply a populate.Cache keyed by field path. When the
// walker encounters an ObjectID at a path present in the cache, it splices in
// the precomputed JSON bytes for that id instead of the usual hex-quoted
// string. Misses are recorded in the cache so the caller can backfill it for
// the next pass.
//
// Testing
//
// Test fixtures are built with go.mongodb.org/mongo-driver/bson, and the
// transcoder output for each is compared against an expected JSON string.
package bsonjson
