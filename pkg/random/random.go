// Package random provides cryptographically random byte and id generation
// used for pkg/transfer's temporary rename names and other places a
// predictable value (e.g. a counter) would be a correctness risk, not just
// an aesthetic one.
package random

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// CollisionResistantLength is the byte length used for identifiers that must
// resist collision across concurrent processes (temporary rename names in
// pkg/transfer's two-phase rename batches).
const CollisionResistantLength = 8

// New returns a byte slice of the specified length with cryptographically
// random contents.
func New(length int) ([]byte, error) {
	result := make([]byte, length)
	if _, err := rand.Read(result); err != nil {
		return nil, fmt.Errorf("unable to read random data: %w", err)
	}
	return result, nil
}

// NewHexString returns a lowercase hex-encoded string of CollisionResistantLength
// random bytes, suitable for use as a temporary file-name suffix.
func NewHexString() (string, error) {
	data, err := New(CollisionResistantLength)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(data), nil
}
