package wallet

import (
	"context"
	"math/big"
	"strconv"
	"time"

	"skillpass/internal/constant"
	"skillpass/internal/svc"
	"skillpass/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

// 历史记录只取最近 10 条
const historyLimit = 10

type HistoryLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewHistoryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *HistoryLogic {
	return &HistoryLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// Transactions 拉取最近交易。任何一步失败都返回空列表，不报错。
func (l *HistoryLogic) Transactions(req *types.WalletTransactionsReq) (*types.WalletTransactionsResp, error) {
	chain := req.Chain
	if chain == "" {
		chain = string(constant.DefaultChain)
	}

	address, err := l.svcCtx.WalletStore.Get(req.UserId, chain)
	if err != nil {
		return &types.WalletTransactionsResp{Transactions: []types.WalletTransaction{}}, nil
	}

	var txs []types.WalletTransaction
	switch chain {
	case string(constant.ChainEthereum):
		txs = l.fetchEvmHistory(address)
	default:
		txs = l.fetchSolanaHistory(address)
	}
	return &types.WalletTransactionsResp{Transactions: txs}, nil
}

func (l *HistoryLogic) fetchEvmHistory(address string) []types.WalletTransaction {
	list, err := l.svcCtx.Etherscan.TxList(l.ctx, address)
	if err != nil {
		l.Errorf("查询 Etherscan 历史失败: %v", err)
		return []types.WalletTransaction{}
	}

	if len(list) > historyLimit {
		list = list[:historyLimit]
	}

	txs := make([]types.WalletTransaction, 0, len(list))
	for _, tx := range list {
		txs = append(txs, types.WalletTransaction{
			Hash:      tx.Hash,
			Amount:    formatWei(tx.Value),
			Token:     "ETH",
			Timestamp: formatUnix(tx.TimeStamp),
		})
	}
	return txs
}

func (l *HistoryLogic) fetchSolanaHistory(address string) []types.WalletTransaction {
	sigs, err := l.svcCtx.SolanaReader.GetSignaturesForAddress(l.ctx, address, historyLimit)
	if err != nil {
		l.Errorf("查询 Solana 签名历史失败: %v", err)
		return []types.WalletTransaction{}
	}

	txs := make([]types.WalletTransaction, 0, len(sigs))
	for _, sig := range sigs {
		timestamp := ""
		if sig.BlockTime != nil {
			timestamp = time.Unix(*sig.BlockTime, 0).UTC().Format(time.RFC3339)
		}
		txs = append(txs, types.WalletTransaction{
			Hash: sig.Signature,
			// 金额需要逐笔回查交易体，此处统一展示为未知
			Amount:    "-",
			Token:     "SOL",
			Timestamp: timestamp,
		})
	}
	return txs
}

// formatWei wei 转 ETH，保留 6 位小数
func formatWei(value string) string {
	wei, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return "-"
	}
	eth, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), big.NewFloat(1e18)).Float64()
	return strconv.FormatFloat(eth, 'f', 6, 64)
}

func formatUnix(ts string) string {
	seconds, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return ""
	}
	return time.Unix(seconds, 0).UTC().Format(time.RFC3339)
}
