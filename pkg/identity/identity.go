// Package identity generates the time-ordered operation identifiers and fresh
// nonces embedded in every operation record.
package identity

import (
	"crypto/rand"
	"fmt"

	"github.com/google/uuid"

	"github.com/Elydora-Infrastructure/elydora-go/pkg/canonicalize"
)

// NonceSize is the number of random bytes in an operation nonce.
const NonceSize = 16

// NewOperationID returns a UUIDv7 (RFC 9562) in canonical lowercase form:
// 48-bit millisecond timestamp, version 7, variant 10, 74 random bits.
// Monotonicity within a single millisecond is not enforced; the random
// portion keeps same-millisecond identifiers distinct.
func NewOperationID() (string, error) {
	u, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("uuidv7: %w", err)
	}
	// NewV7 fills the 12-bit rand_a field with a sub-millisecond sequence;
	// overwrite it with random bits so the identifier carries 74 of them.
	var r [2]byte
	if _, err := rand.Read(r[:]); err != nil {
		return "", fmt.Errorf("uuidv7: %w", err)
	}
	u[6] = 0x70 | (r[0] & 0x0F)
	u[7] = r[1]
	return u.String(), nil
}

// NewNonce returns 16 cryptographically random bytes, base64url-encoded
// (22 characters). A nonce is sampled fresh per operation and never reused.
func NewNonce() (string, error) {
	var b [NonceSize]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("nonce: %w", err)
	}
	return canonicalize.EncodeBase64URL(b[:]), nil
}
