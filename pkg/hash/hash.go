package hash

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Content returns a stable 64-bit fingerprint of source text. The value is
// identical across processes, so it can be used inside cache keys.
func Content(s string) uint64 {
	return xxhash.Sum64String(s)
}

// ContentKey returns Content(s) as a fixed-width hex string.
func ContentKey(s string) string {
	return fmt.Sprintf("%016x", Content(s))
}
