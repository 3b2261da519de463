package canonicalize

import (
	"encoding/base64"
	"strings"

	"github.com/Elydora-Infrastructure/elydora-go/pkg/contracts"
)

// EncodeBase64URL encodes b with the RFC 4648 §5 alphabet, no padding.
func EncodeBase64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeBase64URL decodes a base64url string. Trailing '=' padding is
// tolerated; any other non-alphabet byte fails with a VALIDATION_ERROR.
func DecodeBase64URL(s string) ([]byte, error) {
	trimmed := strings.TrimRight(s, "=")
	// The stdlib decoder skips '\r' and '\n'; reject them like any other
	// non-alphabet byte.
	if strings.ContainsAny(trimmed, "\r\n") {
		return nil, contracts.NewValidationError("base64url: illegal newline in input")
	}
	b, err := base64.RawURLEncoding.DecodeString(trimmed)
	if err != nil {
		return nil, contracts.NewValidationError("base64url: %v", err)
	}
	return b, nil
}
