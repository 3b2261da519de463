package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elydora-Infrastructure/elydora-go/pkg/canonicalize"
	"github.com/Elydora-Infrastructure/elydora-go/pkg/contracts"
	"github.com/Elydora-Infrastructure/elydora-go/pkg/operation"
)

func TestNew_NormalizesBaseURL(t *testing.T) {
	c := New("https://api.example.com///")
	assert.Equal(t, "https://api.example.com", c.BaseURL())

	assert.Equal(t, DefaultBaseURL, New("").BaseURL())
}

func TestHeaders(t *testing.T) {
	var got http.Header
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		gotMethod = r.Method
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"user":{"user_id":"u1","email":"e"},"token":"tok"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("bearer-token"))
	resp, err := c.Login(context.Background(), contracts.LoginRequest{Email: "e", Password: "p"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, "Bearer bearer-token", got.Get("Authorization"))
	assert.Equal(t, "tok", resp.Token)
}

func TestGet_NoBodyNoContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Content-Type"))
		assert.Equal(t, "/v1/epochs", r.URL.Path)
		fmt.Fprint(w, `{"epochs":[{"epoch_id":"ep1","seq_start":1,"seq_end":100,"merkle_root":"root"}]}`)
	}))
	defer srv.Close()

	epochs, err := New(srv.URL).ListEpochs(context.Background())
	require.NoError(t, err)
	require.Len(t, epochs, 1)
	assert.Equal(t, "ep1", epochs[0].EpochID)
}

func TestPathEscaping(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		fmt.Fprint(w, `{"agent":{"agent_id":"a/b","status":"active"},"keys":[]}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetAgent(context.Background(), "a/b c")
	require.NoError(t, err)
	assert.Equal(t, "/v1/agents/a%2Fb%20c", gotPath)
}

func TestNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := New(srv.URL).FreezeAgent(context.Background(), "a1", "compromised")
	require.NoError(t, err)
}

// A 503 carrying Retry-After: 1 is retried after ~1s; the second attempt
// succeeds and exactly two requests are issued.
func TestRetry_RetryAfterHonored(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, `{"keys":[]}`)
	}))
	defer srv.Close()

	start := time.Now()
	_, err := New(srv.URL).JWKS(context.Background())
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.GreaterOrEqual(t, elapsed, 900*time.Millisecond)
	assert.Less(t, elapsed, 3*time.Second)
}

// max_retries = k issues at most k+1 attempts, then surfaces the last error.
func TestRetry_Bound(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(srv.URL, WithMaxRetries(2)).JWKS(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(3), calls.Load())

	apiErr, ok := contracts.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
}

// A bare 429 surfaces as RATE_LIMITED after retries are spent.
func TestRetry_RateLimited(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "0")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := New(srv.URL, WithMaxRetries(1)).JWKS(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())
	assert.True(t, contracts.IsCode(err, contracts.CodeRateLimited))
}

// Structured 4xx responses are never retried.
func TestNoRetryOn400(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"code":"VALIDATION_ERROR","message":"bad payload","request_id":"r1"}}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).JWKS(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	apiErr, ok := contracts.AsError(err)
	require.True(t, ok)
	assert.Equal(t, contracts.CodeValidation, apiErr.Code)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "bad payload", apiErr.Message)
	assert.Equal(t, "r1", apiErr.RequestID)
}

func TestUnparseableErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "<html>upstream sad</html>")
	}))
	defer srv.Close()

	_, err := New(srv.URL, WithMaxRetries(0)).JWKS(context.Background())
	require.Error(t, err)

	apiErr, ok := contracts.AsError(err)
	require.True(t, ok)
	assert.Equal(t, contracts.CodeInternal, apiErr.Code)
	assert.Equal(t, "HTTP 502: Bad Gateway", apiErr.Message)
	assert.Equal(t, "unknown", apiErr.RequestID)
}

func TestContextCancellation(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := New(srv.URL).JWKS(ctx)
	require.Error(t, err)
	// Cancelled during the first backoff wait: no second attempt, no full 1s delay.
	assert.Less(t, time.Since(start), 900*time.Millisecond)
	assert.LessOrEqual(t, calls.Load(), int32(1))
}

// The submitted wire body is the canonical form of the signed envelope.
func TestSubmitOperation_CanonicalWireBody(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		assert.Equal(t, "/v1/operations", r.URL.Path)
		fmt.Fprint(w, `{"receipt":{"receipt_id":"rc1","operation_id":"op1","seq_no":7,"chain_hash":"ch","receipt_version":"1.0"}}`)
	}))
	defer srv.Close()

	seed := canonicalize.EncodeBase64URL(bytes.Repeat([]byte{1}, 32))
	builder, err := operation.NewBuilder(operation.BuilderConfig{OrgID: "o", AgentID: "a", PrivateSeed: seed})
	require.NoError(t, err)
	rec, err := builder.Build(operation.BuildParams{OperationType: "test.op", Payload: map[string]any{"b": 2, "a": 1}})
	require.NoError(t, err)

	receipt, err := New(srv.URL).SubmitOperation(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, "rc1", receipt.ReceiptID)
	assert.Equal(t, int64(7), receipt.SeqNo)

	want, err := canonicalize.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(gotBody))
	// Canonical body: keys sorted, signature present.
	assert.Contains(t, string(gotBody), `"payload":{"a":1,"b":2}`)
	assert.Contains(t, string(gotBody), `"signature":"`)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &decoded))
	assert.Equal(t, "1.0", decoded["op_version"])
}

func TestQueryAudit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "/v1/audit/query", r.URL.Path)
		assert.JSONEq(t, `{"agent_id":"a1","limit":10}`, string(body))
		fmt.Fprint(w, `{"operations":[],"total_count":0}`)
	}))
	defer srv.Close()

	resp, err := New(srv.URL).QueryAudit(context.Background(), contracts.AuditQueryRequest{AgentID: "a1", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(0), resp.TotalCount)
}

func TestRetryPolicy_Schedule(t *testing.T) {
	p := newRetryPolicy()
	assert.Equal(t, 1*time.Second, p.NextBackOff())
	assert.Equal(t, 2*time.Second, p.NextBackOff())
	assert.Equal(t, 4*time.Second, p.NextBackOff())
	assert.Equal(t, 8*time.Second, p.NextBackOff())
	assert.Equal(t, 10*time.Second, p.NextBackOff())
	assert.Equal(t, 10*time.Second, p.NextBackOff())

	p.Reset()
	d := 5 * time.Second
	p.override = &d
	assert.Equal(t, 5*time.Second, p.NextBackOff())
	assert.Equal(t, 2*time.Second, p.NextBackOff())
}
