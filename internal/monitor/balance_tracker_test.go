package monitor

import (
	"context"
	"errors"
	"math"
	"math/big"
	"testing"
	"time"

	"skillpass/internal/chain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEvm struct {
	wei *big.Int
	err error
}

func (f *fakeEvm) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	return f.wei, f.err
}

type fakeSol struct {
	lamports uint64
	err      error
}

func (f *fakeSol) GetBalance(ctx context.Context, address string) (uint64, error) {
	return f.lamports, f.err
}

func (f *fakeSol) GetSignaturesForAddress(ctx context.Context, address string, limit int) ([]chain.SolanaSignature, error) {
	return nil, nil
}

func (f *fakeSol) GetSignatureStatus(ctx context.Context, signature string) (bool, error) {
	return false, nil
}

type fakePrices struct {
	prices map[string]float64
	err    error
	calls  int
}

func (f *fakePrices) GetUsdPrices(ctx context.Context, coinIds []string) (map[string]float64, error) {
	f.calls++
	return f.prices, f.err
}

func TestSnapshotWithKnownPrice(t *testing.T) {
	prices := &fakePrices{prices: map[string]float64{"solana": 100.0}}
	tr := NewBalanceTracker(&fakeEvm{}, &fakeSol{lamports: 2_500_000_000}, prices, time.Minute)

	tr.Track("user-1", "solana", "sol-addr")
	tr.RefreshNow(context.Background(), "user-1", "solana")

	snap := tr.Snapshot("user-1", "")
	require.Len(t, snap.Balances, 1)
	assert.Equal(t, "SOL", snap.Balances[0].Symbol)
	assert.Equal(t, "2.500000", snap.Balances[0].Formatted)
	require.NotNil(t, snap.Balances[0].ValueUsd)
	assert.InDelta(t, 250.0, *snap.Balances[0].ValueUsd, 0.001)
	assert.InDelta(t, 250.0, snap.TotalUsd, 0.001)
}

func TestFailedPriceLeavesValueUnknown(t *testing.T) {
	prices := &fakePrices{err: errors.New("rate limited")}
	tr := NewBalanceTracker(&fakeEvm{}, &fakeSol{lamports: 1_000_000_000}, prices, time.Minute)

	tr.Track("user-1", "solana", "sol-addr")
	tr.RefreshNow(context.Background(), "user-1", "solana")

	snap := tr.Snapshot("user-1", "")
	require.Len(t, snap.Balances, 1)
	assert.Nil(t, snap.Balances[0].ValueUsd)
	assert.Equal(t, "1.000000", snap.Balances[0].Formatted)
	// totalUsd 把未知按 0 计，绝不出现 NaN
	assert.Equal(t, 0.0, snap.TotalUsd)
	assert.False(t, math.IsNaN(snap.TotalUsd))
}

func TestPriceFetchedOncePerAvailabilityTransition(t *testing.T) {
	prices := &fakePrices{prices: map[string]float64{"solana": 50.0}}
	sol := &fakeSol{lamports: 1_000_000_000}
	tr := NewBalanceTracker(&fakeEvm{}, sol, prices, time.Minute)

	tr.Track("user-1", "solana", "sol-addr")
	tr.RefreshNow(context.Background(), "user-1", "solana")
	tr.RefreshNow(context.Background(), "user-1", "solana")
	tr.RefreshNow(context.Background(), "user-1", "solana")
	assert.Equal(t, 1, prices.calls)

	// 余额不可用再恢复，触发第二次取价
	sol.err = errors.New("rpc down")
	tr.RefreshNow(context.Background(), "user-1", "solana")
	snap := tr.Snapshot("user-1", "")
	assert.Empty(t, snap.Balances)

	sol.err = nil
	tr.RefreshNow(context.Background(), "user-1", "solana")
	assert.Equal(t, 2, prices.calls)
}

func TestEvmBalanceFormatting(t *testing.T) {
	wei, _ := new(big.Int).SetString("1500000000000000000", 10)
	prices := &fakePrices{prices: map[string]float64{"ethereum": 2000.0}}
	tr := NewBalanceTracker(&fakeEvm{wei: wei}, &fakeSol{}, prices, time.Minute)

	tr.Track("user-1", "ethereum", "0xabc")
	tr.RefreshNow(context.Background(), "user-1", "ethereum")

	snap := tr.Snapshot("user-1", "ethereum")
	require.Len(t, snap.Balances, 1)
	assert.Equal(t, "ETH", snap.Balances[0].Symbol)
	assert.Equal(t, "1.500000", snap.Balances[0].Formatted)
	require.NotNil(t, snap.Balances[0].ValueUsd)
	assert.InDelta(t, 3000.0, *snap.Balances[0].ValueUsd, 0.001)
}

func TestChainFailureDoesNotAffectOtherChain(t *testing.T) {
	prices := &fakePrices{prices: map[string]float64{"ethereum": 2000.0, "solana": 100.0}}
	tr := NewBalanceTracker(&fakeEvm{err: errors.New("eth rpc down")}, &fakeSol{lamports: 1_000_000_000}, prices, time.Minute)

	tr.Track("user-1", "ethereum", "0xabc")
	tr.Track("user-1", "solana", "sol-addr")
	tr.RefreshNow(context.Background(), "user-1", "ethereum")
	tr.RefreshNow(context.Background(), "user-1", "solana")

	snap := tr.Snapshot("user-1", "")
	require.Len(t, snap.Balances, 1)
	assert.Equal(t, "solana", snap.Balances[0].Chain)
}
