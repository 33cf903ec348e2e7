package monitor

import (
	"context"
	"math"
	"math/big"
	"strconv"
	"sync"
	"time"

	"skillpass/internal/chain"
	"skillpass/internal/constant"
	"skillpass/internal/types"

	"github.com/go-co-op/gocron/v2"
	"github.com/zeromicro/go-zero/core/logx"
)

type trackKey struct {
	userId string
	chain  string
}

type trackEntry struct {
	address   string
	available bool
	amount    float64
	// priceUsd is fetched once per balance-availability transition,
	// nil 表示价格未知
	priceUsd *float64
}

// BalanceTracker polls native balances for registered wallets. Each chain
// runs on its own timer so one chain's outage never blocks the other.
type BalanceTracker struct {
	mu      sync.RWMutex
	entries map[trackKey]*trackEntry

	evm      chain.EvmReader
	sol      chain.SolanaReader
	prices   chain.PriceSource
	interval time.Duration
	sched    gocron.Scheduler
}

// NewBalanceTracker creates a tracker. Start must be called to begin polling.
func NewBalanceTracker(evm chain.EvmReader, sol chain.SolanaReader, prices chain.PriceSource, interval time.Duration) *BalanceTracker {
	return &BalanceTracker{
		entries:  make(map[trackKey]*trackEntry),
		evm:      evm,
		sol:      sol,
		prices:   prices,
		interval: interval,
	}
}

// Start schedules the per-chain refresh jobs.
func (t *BalanceTracker) Start() error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	t.sched = sched

	if _, err := sched.NewJob(
		gocron.DurationJob(t.interval),
		gocron.NewTask(func() { t.refreshChain(context.Background(), string(constant.ChainEthereum)) }),
	); err != nil {
		return err
	}
	if _, err := sched.NewJob(
		gocron.DurationJob(t.interval),
		gocron.NewTask(func() { t.refreshChain(context.Background(), string(constant.ChainSolana)) }),
	); err != nil {
		return err
	}

	sched.Start()
	logx.Infof("余额监控已启动, 刷新间隔 %s", t.interval)
	return nil
}

// Stop shuts the scheduler down. In-flight RPC calls are not aborted; late
// completions harmlessly overwrite.
func (t *BalanceTracker) Stop() {
	if t.sched != nil {
		_ = t.sched.Shutdown()
	}
}

// Track registers an address for polling and reports whether the entry is
// new. Tracking the same (userId, chain) again with a new address resets its
// state.
func (t *BalanceTracker) Track(userId, chainName, address string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	k := trackKey{userId: userId, chain: chainName}
	if e, ok := t.entries[k]; ok && e.address == address {
		return false
	}
	t.entries[k] = &trackEntry{address: address}
	return true
}

// RefreshNow synchronously refreshes one wallet, used on first demand before
// the timer has fired.
func (t *BalanceTracker) RefreshNow(ctx context.Context, userId, chainName string) {
	t.mu.RLock()
	e, ok := t.entries[trackKey{userId: userId, chain: chainName}]
	var address string
	if ok {
		address = e.address
	}
	t.mu.RUnlock()
	if !ok {
		return
	}
	t.refreshOne(ctx, trackKey{userId: userId, chain: chainName}, address)
}

func (t *BalanceTracker) refreshChain(ctx context.Context, chainName string) {
	t.mu.RLock()
	targets := make(map[trackKey]string)
	for k, e := range t.entries {
		if k.chain == chainName {
			targets[k] = e.address
		}
	}
	t.mu.RUnlock()

	for k, address := range targets {
		t.refreshOne(ctx, k, address)
	}
}

func (t *BalanceTracker) refreshOne(ctx context.Context, k trackKey, address string) {
	amount, err := t.fetchAmount(ctx, k.chain, address)

	t.mu.Lock()
	e, ok := t.entries[k]
	if !ok || e.address != address {
		t.mu.Unlock()
		return
	}
	if err != nil {
		logx.Errorf("查询 %s 余额失败 (%s): %v", k.chain, address, err)
		e.available = false
		t.mu.Unlock()
		return
	}
	wasAvailable := e.available
	e.available = true
	e.amount = amount
	t.mu.Unlock()

	// 价格只在余额从不可用变为可用时取一次，失败则保持未知
	if !wasAvailable {
		t.fetchPrice(ctx, k)
	}
}

func (t *BalanceTracker) fetchAmount(ctx context.Context, chainName, address string) (float64, error) {
	switch chainName {
	case string(constant.ChainEthereum):
		wei, err := t.evm.GetBalance(ctx, address)
		if err != nil {
			return 0, err
		}
		f, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(1e18)).Float64()
		return f, nil
	default:
		lamports, err := t.sol.GetBalance(ctx, address)
		if err != nil {
			return 0, err
		}
		return float64(lamports) / 1e9, nil
	}
}

func (t *BalanceTracker) fetchPrice(ctx context.Context, k trackKey) {
	coinId, ok := chain.CoinGeckoIDs[k.chain]
	if !ok {
		return
	}
	prices, err := t.prices.GetUsdPrices(ctx, []string{coinId})

	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[k]
	if !ok {
		return
	}
	if err != nil {
		logx.Errorf("查询 %s 价格失败: %v", k.chain, err)
		e.priceUsd = nil
		return
	}
	if usd, found := prices[coinId]; found {
		e.priceUsd = &usd
	} else {
		e.priceUsd = nil
	}
}

// Snapshot returns the current balances for a user. chainFilter narrows to
// one chain when non-empty. TotalUsd sums known values only.
func (t *BalanceTracker) Snapshot(userId, chainFilter string) types.WalletBalancesResp {
	t.mu.RLock()
	defer t.mu.RUnlock()

	resp := types.WalletBalancesResp{Balances: []types.WalletBalance{}}
	for k, e := range t.entries {
		if k.userId != userId || !e.available {
			continue
		}
		if chainFilter != "" && k.chain != chainFilter {
			continue
		}

		b := types.WalletBalance{
			Chain:     k.chain,
			Symbol:    symbolFor(k.chain),
			Formatted: strconv.FormatFloat(e.amount, 'f', 6, 64),
		}
		if e.priceUsd != nil {
			v := e.amount * *e.priceUsd
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				b.ValueUsd = &v
				resp.TotalUsd += v
			}
		}
		resp.Balances = append(resp.Balances, b)
	}
	return resp
}

func symbolFor(chainName string) string {
	if chainName == string(constant.ChainEthereum) {
		return "ETH"
	}
	return "SOL"
}
