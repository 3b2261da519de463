package crypto

import (
	"crypto/ed25519"

	"github.com/Elydora-Infrastructure/elydora-go/pkg/canonicalize"
	"github.com/Elydora-Infrastructure/elydora-go/pkg/contracts"
)

// Signer signs operation records with an Ed25519 key derived from a raw
// 32-byte seed. The expanded private key never leaves the struct.
type Signer struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
	kid  string
}

// NewSigner imports a base64url-encoded 32-byte Ed25519 seed (the RFC 8032
// secret input, not the expanded 64-byte key). A seed of any other length
// fails with a VALIDATION_ERROR.
func NewSigner(seedB64, kid string) (*Signer, error) {
	seed, err := canonicalize.DecodeBase64URL(seedB64)
	if err != nil {
		return nil, err
	}
	if len(seed) != ed25519.SeedSize {
		return nil, contracts.NewValidationError("ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &Signer{
		priv: priv,
		pub:  priv.Public().(ed25519.PublicKey),
		kid:  kid,
	}, nil
}

// Sign returns the base64url Ed25519 signature over message (pure Ed25519,
// no pre-hash).
func (s *Signer) Sign(message []byte) string {
	return canonicalize.EncodeBase64URL(ed25519.Sign(s.priv, message))
}

// PublicKey returns the derived public key, base64url-encoded.
func (s *Signer) PublicKey() string {
	return canonicalize.EncodeBase64URL(s.pub)
}

// PublicKeyBytes returns a copy of the raw 32-byte public key.
func (s *Signer) PublicKeyBytes() []byte {
	return append([]byte(nil), s.pub...)
}

// KeyID returns the key identifier bound to this signer.
func (s *Signer) KeyID() string {
	return s.kid
}

// DerivePublicKey validates a base64url seed by deriving its public key.
// Used at install time to prove the seed is usable before writing it to disk.
func DerivePublicKey(seedB64 string) (string, error) {
	s, err := NewSigner(seedB64, "")
	if err != nil {
		return "", err
	}
	return s.PublicKey(), nil
}

// Verify checks a base64url signature against a base64url public key.
func Verify(pubB64, sigB64 string, message []byte) (bool, error) {
	pub, err := canonicalize.DecodeBase64URL(pubB64)
	if err != nil {
		return false, err
	}
	if len(pub) != ed25519.PublicKeySize {
		return false, contracts.NewValidationError("ed25519 public key must be %d bytes, got %d", ed25519.PublicKeySize, len(pub))
	}
	sig, err := canonicalize.DecodeBase64URL(sigB64)
	if err != nil {
		return false, err
	}
	return ed25519.Verify(ed25519.PublicKey(pub), message, sig), nil
}
