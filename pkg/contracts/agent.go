package contracts

// Agent lifecycle states as reported by the platform.
const (
	AgentStatusActive  = "active"
	AgentStatusFrozen  = "frozen"
	AgentStatusRevoked = "revoked"
)

// Agent is a registered signing identity within an organization.
type Agent struct {
	AgentID   string `json:"agent_id"`
	OrgID     string `json:"org_id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

// AgentKey binds a key identifier to an Ed25519 public key.
type AgentKey struct {
	KID       string `json:"kid"`
	Pubkey    string `json:"pubkey"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
	RevokedAt *int64 `json:"revoked_at,omitempty"`
}

// RegisterAgentRequest is the body of POST /v1/agents/register.
type RegisterAgentRequest struct {
	AgentName string `json:"agent_name"`
	Pubkey    string `json:"pubkey"`
	KID       string `json:"kid"`
}

// AgentResponse is returned by agent registration and lookup.
type AgentResponse struct {
	Agent Agent      `json:"agent"`
	Keys  []AgentKey `json:"keys"`
}

// FreezeAgentRequest is the body of POST /v1/agents/{id}/freeze.
type FreezeAgentRequest struct {
	Reason string `json:"reason"`
}

// RevokeKeyRequest is the body of POST /v1/agents/{id}/revoke.
type RevokeKeyRequest struct {
	KID    string `json:"kid"`
	Reason string `json:"reason"`
}
