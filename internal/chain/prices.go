package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// CoinGeckoIDs maps a chain name to its CoinGecko coin id.
var CoinGeckoIDs = map[string]string{
	"ethereum": "ethereum",
	"solana":   "solana",
}

// PriceSource looks up USD spot prices for native coins.
type PriceSource interface {
	GetUsdPrices(ctx context.Context, coinIds []string) (map[string]float64, error)
}

// CoinGeckoClient fetches spot prices from the CoinGecko simple price API.
type CoinGeckoClient struct {
	apiUrl     string
	httpClient *http.Client
}

// NewCoinGeckoClient creates a price client. apiUrl defaults to the public API.
func NewCoinGeckoClient(apiUrl string) *CoinGeckoClient {
	if apiUrl == "" {
		apiUrl = "https://api.coingecko.com/api/v3"
	}
	return &CoinGeckoClient{
		apiUrl:     apiUrl,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetUsdPrices returns USD prices keyed by coin id. Missing coins are simply
// absent from the result.
func (c *CoinGeckoClient) GetUsdPrices(ctx context.Context, coinIds []string) (map[string]float64, error) {
	params := url.Values{}
	params.Set("ids", strings.Join(coinIds, ","))
	params.Set("vs_currencies", "usd")
	apiURL := c.apiUrl + "/simple/price?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

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
		return nil, fmt.Errorf("coingecko error %d: %s", resp.StatusCode, string(body))
	}

	var parsed map[string]map[string]float64
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse price response: %w", err)
	}

	prices := make(map[string]float64, len(parsed))
	for coin, values := range parsed {
		if usd, ok := values["usd"]; ok {
			prices[coin] = usd
		}
	}
	return prices, nil
}
