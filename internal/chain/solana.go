package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultCommitment 查询与确认统一使用的承诺级别
const DefaultCommitment = "confirmed"

// SolanaSignature is one entry from getSignaturesForAddress.
type SolanaSignature struct {
	Signature string `json:"signature"`
	Slot      uint64 `json:"slot"`
	BlockTime *int64 `json:"blockTime"`
	Err       any    `json:"err"`
}

// SolanaReader exposes the read-side Solana RPC calls the service needs.
type SolanaReader interface {
	GetBalance(ctx context.Context, address string) (uint64, error)
	GetSignaturesForAddress(ctx context.Context, address string, limit int) ([]SolanaSignature, error)
	GetSignatureStatus(ctx context.Context, signature string) (confirmed bool, err error)
}

// SolanaRPCClient is a minimal JSON-RPC 2.0 client over net/http. The SDK
// client covers transaction build and send; the read side talks JSON-RPC
// directly so each request is pinned to one endpoint.
type SolanaRPCClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewSolanaRPCClient creates a client bound to a single RPC endpoint.
func NewSolanaRPCClient(endpoint string) *SolanaRPCClient {
	return &SolanaRPCClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

func (c *SolanaRPCClient) call(ctx context.Context, method string, params []any, result any) error {
	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("rpc http %d: %s", resp.StatusCode, string(body))
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return fmt.Errorf("failed to parse rpc response: %w", err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	return json.Unmarshal(rpcResp.Result, result)
}

// GetBalance returns the lamport balance of an account.
func (c *SolanaRPCClient) GetBalance(ctx context.Context, address string) (uint64, error) {
	var result struct {
		Value uint64 `json:"value"`
	}
	params := []any{address, map[string]any{"commitment": DefaultCommitment}}
	if err := c.call(ctx, "getBalance", params, &result); err != nil {
		return 0, err
	}
	return result.Value, nil
}

// GetSignaturesForAddress returns recent signatures touching an account,
// newest first.
func (c *SolanaRPCClient) GetSignaturesForAddress(ctx context.Context, address string, limit int) ([]SolanaSignature, error) {
	var result []SolanaSignature
	params := []any{address, map[string]any{"limit": limit, "commitment": DefaultCommitment}}
	if err := c.call(ctx, "getSignaturesForAddress", params, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetSignatureStatus reports whether a signature reached the configured
// commitment.
func (c *SolanaRPCClient) GetSignatureStatus(ctx context.Context, signature string) (bool, error) {
	var result struct {
		Value []*struct {
			ConfirmationStatus string `json:"confirmationStatus"`
			Err                any    `json:"err"`
		} `json:"value"`
	}
	params := []any{[]string{signature}, map[string]any{"searchTransactionHistory": false}}
	if err := c.call(ctx, "getSignatureStatuses", params, &result); err != nil {
		return false, err
	}
	if len(result.Value) == 0 || result.Value[0] == nil {
		return false, nil
	}
	status := result.Value[0]
	if status.Err != nil {
		return false, fmt.Errorf("transaction failed on chain: %v", status.Err)
	}
	switch status.ConfirmationStatus {
	case "confirmed", "finalized":
		return true, nil
	}
	return false, nil
}
