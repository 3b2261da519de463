// Package operation composes, hashes, chains and signs Elydora operation
// records. A Builder owns one agent's signing key and chain head; records it
// returns are ready for submission over the transport.
package operation

import (
	"sync"
	"time"

	"github.com/Elydora-Infrastructure/elydora-go/pkg/canonicalize"
	"github.com/Elydora-Infrastructure/elydora-go/pkg/contracts"
	"github.com/Elydora-Infrastructure/elydora-go/pkg/crypto"
	"github.com/Elydora-Infrastructure/elydora-go/pkg/identity"
)

// BuilderConfig is the immutable part of a builder.
type BuilderConfig struct {
	OrgID       string
	AgentID     string
	PrivateSeed string // base64url 32-byte Ed25519 seed
	KID         string // defaults to "<agent_id>-key-v1"
	TTLMs       int64  // defaults to contracts.DefaultTTLMs
}

// BuildParams describe one operation.
type BuildParams struct {
	OperationType string
	Subject       map[string]any
	Action        map[string]any
	Payload       any
}

// Builder holds per-agent chain state and produces signed operation records.
// The chain head advances on every successful Build and is never rewound:
// submission failures are the caller's concern, and the server derives the
// same next hash from the transmitted fields.
type Builder struct {
	orgID  string
	agent  string
	signer *crypto.Signer
	ttlMS  int64

	mu            sync.Mutex
	prevChainHash string

	// injectable for deterministic tests
	nowMS    func() int64
	newID    func() (string, error)
	newNonce func() (string, error)
}

// NewBuilder validates the configuration, imports the signing seed and
// initializes the chain head to the genesis hash.
func NewBuilder(cfg BuilderConfig) (*Builder, error) {
	if cfg.OrgID == "" {
		return nil, contracts.NewValidationError("builder: org_id is required")
	}
	if cfg.AgentID == "" {
		return nil, contracts.NewValidationError("builder: agent_id is required")
	}
	kid := cfg.KID
	if kid == "" {
		kid = cfg.AgentID + "-key-v1"
	}
	ttl := cfg.TTLMs
	if ttl == 0 {
		ttl = contracts.DefaultTTLMs
	}
	if ttl < 0 {
		return nil, contracts.NewValidationError("builder: ttl_ms must be positive, got %d", ttl)
	}
	signer, err := crypto.NewSigner(cfg.PrivateSeed, kid)
	if err != nil {
		return nil, err
	}
	return &Builder{
		orgID:         cfg.OrgID,
		agent:         cfg.AgentID,
		signer:        signer,
		ttlMS:         ttl,
		prevChainHash: GenesisChainHash,
		nowMS:         func() int64 { return time.Now().UnixMilli() },
		newID:         identity.NewOperationID,
		newNonce:      identity.NewNonce,
	}, nil
}

// Build assembles, hashes and signs one operation record. It is synchronous,
// performs no I/O, and holds the builder lock for the whole compose-and-commit
// sequence so concurrent callers cannot fork the chain. The chain head is
// committed before returning; records must be submitted in Build order.
func (b *Builder) Build(p BuildParams) (*contracts.OperationRecord, error) {
	if p.OperationType == "" {
		return nil, contracts.NewValidationError("build: operation_type is required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	opID, err := b.newID()
	if err != nil {
		return nil, err
	}
	issuedAt := b.nowMS()
	nonce, err := b.newNonce()
	if err != nil {
		return nil, err
	}

	payloadHash, err := crypto.PayloadHash(p.Payload)
	if err != nil {
		return nil, err
	}
	chainHash := ChainHash(b.prevChainHash, payloadHash, opID, issuedAt)

	subject := p.Subject
	if subject == nil {
		subject = map[string]any{}
	}
	action := p.Action
	if action == nil {
		action = map[string]any{}
	}

	rec := &contracts.OperationRecord{
		OpVersion:      contracts.OpVersion,
		OperationID:    opID,
		OrgID:          b.orgID,
		AgentID:        b.agent,
		IssuedAt:       issuedAt,
		TTLMs:          b.ttlMS,
		Nonce:          nonce,
		OperationType:  p.OperationType,
		Subject:        subject,
		Action:         action,
		Payload:        p.Payload,
		PayloadHash:    payloadHash,
		PrevChainHash:  b.prevChainHash,
		AgentPubkeyKID: b.signer.KeyID(),
	}

	message, err := canonicalize.Marshal(rec)
	if err != nil {
		return nil, err
	}
	rec.Signature = b.signer.Sign(message)

	// Commit. Not rolled back on submission failure: the server computes the
	// identical next hash from the transmitted fields, so rewinding here would
	// fork the chain.
	b.prevChainHash = chainHash

	return rec, nil
}

// PublicKey returns the base64url Ed25519 public key derived from the seed.
func (b *Builder) PublicKey() string {
	return b.signer.PublicKey()
}

// KeyID returns the key identifier stamped into records.
func (b *Builder) KeyID() string {
	return b.signer.KeyID()
}

// ChainHead returns the current prev_chain_hash. Diagnostic only; the head is
// owned by Build.
func (b *Builder) ChainHead() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.prevChainHash
}
