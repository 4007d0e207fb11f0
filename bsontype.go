package bsonjson

// BSON element type tags, per the BSON specification.
const (
	bsonDouble     byte = 0x01
	bsonString     byte = 0x02
	bsonDocument   byte = 0x03
	bsonArray      byte = 0x04
	bsonBinary     byte = 0x05
	bsonUndefined  byte = 0x06 // deprecated
	bsonObjectID   byte = 0x07
	bsonBool       byte = 0x08
	bsonDateTime   byte = 0x09
	bsonNull       byte = 0x0a
	bsonRegex      byte = 0x0b
	bsonDBPointer  byte = 0x0c // deprecated
	bsonCode       byte = 0x0d
	bsonSymbol     byte = 0x0e // deprecated
	bsonCodeWScope byte = 0x0f // deprecated
	bsonInt32      byte = 0x10
	bsonTimestamp  byte = 0x11
	bsonInt64      byte = 0x12
	bsonDecimal128 byte = 0x13
	bsonMinKey     byte = 0xff
	bsonMaxKey     byte = 0x7f
)

// incompatibleTypes has no JSON projection and is rejected outright.
var incompatibleTypes = map[byte]bool{
	bsonBinary:     true,
	bsonRegex:      true,
	bsonDBPointer:  true,
	bsonCode:       true,
	bsonSymbol:     true,
	bsonCodeWScope: true,
	bsonTimestamp:  true,
	bsonDecimal128: true,
	bsonMinKey:     true,
	bsonMaxKey:     true,
}
