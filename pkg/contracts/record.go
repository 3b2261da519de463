// Package contracts defines the wire model exchanged between an Elydora agent
// and the platform: operation records, receipts, and the request/response
// bodies of the v1 API.
package contracts

// OpVersion is the operation record format version emitted by this SDK.
const OpVersion = "1.0"

// DefaultTTLMs is the validity window applied to an operation record when the
// builder configuration does not override it.
const DefaultTTLMs int64 = 30_000

// OperationRecord is the signed envelope describing one agent action (EOR).
// The signed wire form is the RFC 8785 canonical JSON of this struct; the
// unsigned form used as the signature message is the same struct with
// Signature empty (the field is then omitted entirely).
//
// ChainHash over the record is not transmitted: the server recomputes it from
// prev_chain_hash, payload_hash, operation_id and issued_at.
type OperationRecord struct {
	OpVersion      string         `json:"op_version"`
	OperationID    string         `json:"operation_id"`
	OrgID          string         `json:"org_id"`
	AgentID        string         `json:"agent_id"`
	IssuedAt       int64          `json:"issued_at"`
	TTLMs          int64          `json:"ttl_ms"`
	Nonce          string         `json:"nonce"`
	OperationType  string         `json:"operation_type"`
	Subject        map[string]any `json:"subject"`
	Action         map[string]any `json:"action"`
	Payload        any            `json:"payload"`
	PayloadHash    string         `json:"payload_hash"`
	PrevChainHash  string         `json:"prev_chain_hash"`
	AgentPubkeyKID string         `json:"agent_pubkey_kid"`
	Signature      string         `json:"signature,omitempty"`
}

// Unsigned returns a copy of the record with the signature stripped. The
// canonical serialization of the result is the Ed25519 signing message.
func (r *OperationRecord) Unsigned() *OperationRecord {
	c := *r
	c.Signature = ""
	return &c
}
