// Package ids generates system-assigned numeric identifiers.
package ids

import (
	"encoding/binary"

	"github.com/google/uuid"
)

// NewInt64 returns a random positive int64 taken from a version 4 UUID.
func NewInt64() int64 {
	u := uuid.New()
	for {
		// Clear the sign bit so ids stay positive.
		id := int64(binary.BigEndian.Uint64(u[:8]) &^ (1 << 63))
		if id != 0 {
			return id
		}
		u = uuid.New()
	}
}
