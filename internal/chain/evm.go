package chain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
)

// EvmReader exposes the read-side EVM calls the service needs.
type EvmReader interface {
	GetBalance(ctx context.Context, address string) (*big.Int, error)
}

// EvmClient reads native balances through ethclient.
type EvmClient struct {
	rpcUrl string
}

// NewEvmClient creates a reader bound to a single RPC endpoint.
func NewEvmClient(rpcUrl string) *EvmClient {
	return &EvmClient{rpcUrl: rpcUrl}
}

// GetBalance returns the native balance in wei.
// 每次按需拨号，余额查询频率低，不值得常驻连接
func (c *EvmClient) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	client, err := ethclient.DialContext(ctx, c.rpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to chain: %w", err)
	}
	defer client.Close()

	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid evm address: %s", address)
	}
	return client.BalanceAt(ctx, common.HexToAddress(address), nil)
}
