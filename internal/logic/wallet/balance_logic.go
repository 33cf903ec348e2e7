package wallet

import (
	"context"

	"skillpass/internal/constant"
	"skillpass/internal/errs"
	"skillpass/internal/svc"
	"skillpass/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type BalanceLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewBalanceLogic(ctx context.Context, svcCtx *svc.ServiceContext) *BalanceLogic {
	return &BalanceLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// Balances 汇总用户已注册钱包的链上余额。
// 首次访问同步刷一次，之后由后台定时器接管。
func (l *BalanceLogic) Balances(req *types.WalletBalancesReq) (*types.WalletBalancesResp, error) {
	if req.Chain != "" && !constant.IsChainSupported(req.Chain) {
		return nil, errs.InvalidInput("unsupported chain: " + req.Chain)
	}

	chains := []string{string(constant.ChainSolana), string(constant.ChainEthereum)}
	if req.Chain != "" {
		chains = []string{req.Chain}
	}

	for _, chainName := range chains {
		address, err := l.svcCtx.WalletStore.Get(req.UserId, chainName)
		if err != nil {
			continue
		}
		if l.svcCtx.Balances.Track(req.UserId, chainName, address) {
			l.svcCtx.Balances.RefreshNow(l.ctx, req.UserId, chainName)
		}
	}

	resp := l.svcCtx.Balances.Snapshot(req.UserId, req.Chain)
	return &resp, nil
}
