package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// EtherscanTx is one entry from the account txlist action.
type EtherscanTx struct {
	Hash      string `json:"hash"`
	Value     string `json:"value"`
	TimeStamp string `json:"timeStamp"`
	From      string `json:"from"`
	To        string `json:"to"`
}

// EtherscanSource fetches an account's transaction list.
type EtherscanSource interface {
	TxList(ctx context.Context, address string) ([]EtherscanTx, error)
}

// EtherscanClient talks to the Etherscan account API.
type EtherscanClient struct {
	apiUrl     string
	apiKey     string
	httpClient *http.Client
}

// NewEtherscanClient creates a history client. apiUrl defaults to mainnet.
func NewEtherscanClient(apiUrl, apiKey string) *EtherscanClient {
	if apiUrl == "" {
		apiUrl = "https://api.etherscan.io/api"
	}
	return &EtherscanClient{
		apiUrl:     apiUrl,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// TxList returns the account's transactions, server-sorted newest first.
func (c *EtherscanClient) TxList(ctx context.Context, address string) ([]EtherscanTx, error) {
	params := url.Values{}
	params.Set("module", "account")
	params.Set("action", "txlist")
	params.Set("address", address)
	params.Set("sort", "desc")
	if c.apiKey != "" {
		params.Set("apikey", c.apiKey)
	}
	apiURL := c.apiUrl + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("etherscan error %d: %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Result  json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse etherscan response: %w", err)
	}
	// status "0" 时 result 可能是错误字符串而非数组
	if parsed.Status != "1" {
		return nil, fmt.Errorf("etherscan status %s: %s", parsed.Status, parsed.Message)
	}

	var txs []EtherscanTx
	if err := json.Unmarshal(parsed.Result, &txs); err != nil {
		return nil, fmt.Errorf("failed to parse etherscan txlist: %w", err)
	}
	return txs, nil
}
