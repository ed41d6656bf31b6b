package orm

import "encoding/binary"

// IDKey encodes an id as an 8 byte big-endian key, so that keys sort in the
// same order as ids.
func IDKey(id uint64) []byte {
	return EncodeSequence(id)
}

// KeyID decodes a key created with IDKey.
func KeyID(key []byte) (uint64, bool) {
	if len(key) != 8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(key), true
}

// CompositeKey joins given parts into a single key. Only the last part may
// be of variable length.
func CompositeKey(parts ...[]byte) []byte {
	var n int
	for _, p := range parts {
		n += len(p)
	}
	key := make([]byte, 0, n)
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}
