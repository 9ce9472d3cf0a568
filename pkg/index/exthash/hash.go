package exthash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hasher computes a 64-bit, well-distributed hash for a key. Table never
// calls hash with a negative-capable result itself: it uses an unsigned
// modulus (uint64 % uint64) to select a directory slot, which sidesteps
// the negative-hashCode concern the teacher source's `key.hashCode() % mod`
// has to guard against explicitly.
type Hasher[K comparable] func(key K) uint64

// integer is the set of Go integer kinds IntHasher accepts.
type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// IntHasher returns a Hasher for any integer-kinded key type, hashing its
// little-endian byte representation with xxhash.
func IntHasher[K integer]() Hasher[K] {
	return func(key K) uint64 {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(key))
		return xxhash.Sum64(buf[:])
	}
}

// StringHasher returns a Hasher for string keys.
func StringHasher() Hasher[string] {
	return func(key string) uint64 { return xxhash.Sum64String(key) }
}
