package badger

import "encoding/binary"

// Key prefixes for different data types
const (
	tagCachePrefix = "tagcache:"
)

// makeTagCacheKey generates a key for a cached classification.
// Format: prefix + 8-byte big-endian content hash
func makeTagCacheKey(hash uint64) []byte {
	buf := make([]byte, len(tagCachePrefix)+8)
	offset := copy(buf, tagCachePrefix)
	binary.BigEndian.PutUint64(buf[offset:], hash)
	return buf
}
