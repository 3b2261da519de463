package operation

import (
	"strconv"

	"github.com/Elydora-Infrastructure/elydora-go/pkg/crypto"
)

// GenesisChainHash is the starting prev_chain_hash of every agent stream:
// the base64url SHA-256 of 32 zero bytes.
var GenesisChainHash = func() string {
	var zero [32]byte
	return crypto.SHA256Base64URL(zero[:])
}()

// ChainHash binds an operation to its predecessor. The preimage is the
// '|'-joined string of the previous chain hash, the payload hash, the
// operation id and the decimal issued_at. The server recomputes the same
// digest from the transmitted fields.
func ChainHash(prevChainHash, payloadHash, operationID string, issuedAt int64) string {
	pre := prevChainHash + "|" + payloadHash + "|" + operationID + "|" + strconv.FormatInt(issuedAt, 10)
	return crypto.SHA256Base64URL([]byte(pre))
}
