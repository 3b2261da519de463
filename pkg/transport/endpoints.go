package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/Elydora-Infrastructure/elydora-go/pkg/canonicalize"
	"github.com/Elydora-Infrastructure/elydora-go/pkg/contracts"
)

// JWKSPath is the well-known location of the platform verification keys.
const JWKSPath = "/.well-known/elydora/jwks.json"

// Register creates a user account and its organization.
func (c *Client) Register(ctx context.Context, req contracts.RegisterRequest) (*contracts.RegisterResponse, error) {
	var out contracts.RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/v1/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req contracts.LoginRequest) (*contracts.LoginResponse, error) {
	var out contracts.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/v1/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterAgent registers a signing identity and its first key.
func (c *Client) RegisterAgent(ctx context.Context, req contracts.RegisterAgentRequest) (*contracts.AgentResponse, error) {
	var out contracts.AgentResponse
	if err := c.do(ctx, http.MethodPost, "/v1/agents/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAgent fetches an agent and its keys.
func (c *Client) GetAgent(ctx context.Context, agentID string) (*contracts.AgentResponse, error) {
	var out contracts.AgentResponse
	if err := c.do(ctx, http.MethodGet, "/v1/agents/"+url.PathEscape(agentID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FreezeAgent moves an agent to the frozen state.
func (c *Client) FreezeAgent(ctx context.Context, agentID, reason string) error {
	body := contracts.FreezeAgentRequest{Reason: reason}
	return c.do(ctx, http.MethodPost, "/v1/agents/"+url.PathEscape(agentID)+"/freeze", body, nil)
}

// RevokeAgentKey revokes one of an agent's signing keys.
func (c *Client) RevokeAgentKey(ctx context.Context, agentID, kid, reason string) error {
	body := contracts.RevokeKeyRequest{KID: kid, Reason: reason}
	return c.do(ctx, http.MethodPost, "/v1/agents/"+url.PathEscape(agentID)+"/revoke", body, nil)
}

// SubmitOperation posts a signed operation record and returns the receipt.
// The wire body is the RFC 8785 canonical form of the signed envelope.
func (c *Client) SubmitOperation(ctx context.Context, rec *contracts.OperationRecord) (*contracts.Receipt, error) {
	canonical, err := canonicalize.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var out contracts.SubmitOperationResponse
	if err := c.do(ctx, http.MethodPost, "/v1/operations", json.RawMessage(canonical), &out); err != nil {
		return nil, err
	}
	return &out.Receipt, nil
}

// GetOperation fetches a stored operation and, once sequenced, its receipt.
func (c *Client) GetOperation(ctx context.Context, operationID string) (*contracts.OperationResponse, error) {
	var out contracts.OperationResponse
	if err := c.do(ctx, http.MethodGet, "/v1/operations/"+url.PathEscape(operationID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOperation asks the server to re-verify a stored operation.
func (c *Client) VerifyOperation(ctx context.Context, operationID string) (*contracts.VerifyOperationResponse, error) {
	var out contracts.VerifyOperationResponse
	if err := c.do(ctx, http.MethodPost, "/v1/operations/"+url.PathEscape(operationID)+"/verify", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// QueryAudit pages through the organization's operation stream.
func (c *Client) QueryAudit(ctx context.Context, req contracts.AuditQueryRequest) (*contracts.AuditQueryResponse, error) {
	var out contracts.AuditQueryResponse
	if err := c.do(ctx, http.MethodPost, "/v1/audit/query", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListEpochs returns the sequencing epochs.
func (c *Client) ListEpochs(ctx context.Context) ([]contracts.Epoch, error) {
	var out contracts.EpochListResponse
	if err := c.do(ctx, http.MethodGet, "/v1/epochs", nil, &out); err != nil {
		return nil, err
	}
	return out.Epochs, nil
}

// GetEpoch returns one epoch and its anchor, if anchored.
func (c *Client) GetEpoch(ctx context.Context, epochID string) (*contracts.EpochResponse, error) {
	var out contracts.EpochResponse
	if err := c.do(ctx, http.MethodGet, "/v1/epochs/"+url.PathEscape(epochID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateExport starts an export job.
func (c *Client) CreateExport(ctx context.Context, req contracts.ExportRequest) (*contracts.Export, error) {
	var out contracts.ExportCreateResponse
	if err := c.do(ctx, http.MethodPost, "/v1/exports", req, &out); err != nil {
		return nil, err
	}
	return &out.Export, nil
}

// ListExports returns the organization's export jobs.
func (c *Client) ListExports(ctx context.Context) ([]contracts.Export, error) {
	var out contracts.ExportListResponse
	if err := c.do(ctx, http.MethodGet, "/v1/exports", nil, &out); err != nil {
		return nil, err
	}
	return out.Exports, nil
}

// GetExport returns an export job and its download URL once ready.
func (c *Client) GetExport(ctx context.Context, exportID string) (*contracts.ExportResponse, error) {
	var out contracts.ExportResponse
	if err := c.do(ctx, http.MethodGet, "/v1/exports/"+url.PathEscape(exportID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// JWKS fetches the platform's receipt verification keys.
func (c *Client) JWKS(ctx context.Context) (*contracts.JWKS, error) {
	var out contracts.JWKS
	if err := c.do(ctx, http.MethodGet, JWKSPath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
