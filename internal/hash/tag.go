// Package hash computes lookup keys for the schema registry.
package hash

import "github.com/cespare/xxhash/v2"

// Tag computes the xxHash64 of a 4-byte record or field type tag, used as
// the schema registry's map key so lookups don't hash on every call with
// a variable-length string.
func Tag(tag [4]byte) uint64 {
	return xxhash.Sum64(tag[:])
}
