// Package crypto provides the hashing and Ed25519 signing primitives behind
// Elydora operation records. Digests and signatures travel as unpadded
// base64url strings.
package crypto

import (
	"crypto/sha256"

	"github.com/Elydora-Infrastructure/elydora-go/pkg/canonicalize"
)

// SHA256Base64URL returns the base64url SHA-256 digest of data.
func SHA256Base64URL(data []byte) string {
	sum := sha256.Sum256(data)
	return canonicalize.EncodeBase64URL(sum[:])
}

// PayloadHash returns the base64url SHA-256 digest of the canonical JSON form
// of v. A nil payload hashes the 4-byte literal "null".
func PayloadHash(v any) (string, error) {
	b, err := canonicalize.Marshal(v)
	if err != nil {
		return "", err
	}
	return SHA256Base64URL(b), nil
}
