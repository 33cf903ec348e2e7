package wallet

import (
	"context"
	"errors"

	"skillpass/internal/constant"
	"skillpass/internal/errs"
	"skillpass/internal/registrar"
	"skillpass/internal/svc"
	"skillpass/internal/types"
	"skillpass/internal/walletstore"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mr-tron/base58"
	"github.com/zeromicro/go-zero/core/logx"
)

type WalletLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewWalletLogic(ctx context.Context, svcCtx *svc.ServiceContext) *WalletLogic {
	return &WalletLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// Lookup 查询用户在某条链上注册的地址
func (l *WalletLogic) Lookup(req *types.WalletLookupReq) (*types.WalletLookupResp, error) {
	chain := req.Chain
	if chain == "" {
		chain = string(constant.DefaultChain)
	}
	if !constant.IsChainSupported(chain) {
		return nil, errs.InvalidInput("unsupported chain: " + chain)
	}

	address, err := l.svcCtx.WalletStore.Get(req.UserId, chain)
	if err != nil {
		if errors.Is(err, walletstore.ErrNotFound) {
			return nil, errs.NotFound("wallet not found")
		}
		return nil, err
	}
	return &types.WalletLookupResp{Address: address}, nil
}

// Register 显式注册一个钱包地址
func (l *WalletLogic) Register(req *types.WalletRegisterReq) (*types.WalletRegisterResp, error) {
	l.Infof("--- 开始处理钱包注册, user: %s, chain: %s ---", req.UserId, req.Chain)

	if req.UserId == "" {
		return nil, errs.Unauthorized("missing x-user-id header")
	}
	if req.Address == "" {
		return nil, errs.InvalidInput("address is required")
	}

	chain := req.Chain
	if chain == "" {
		chain = string(constant.DefaultChain)
	}
	if !constant.IsChainSupported(chain) {
		return nil, errs.InvalidInput("unsupported chain: " + chain)
	}
	if err := validateAddress(chain, req.Address); err != nil {
		return nil, err
	}

	if err := l.svcCtx.Registrar.Register(l.ctx, req.UserId, chain, req.Address); err != nil {
		l.Errorf("写入钱包注册表失败: %v", err)
		return nil, err
	}

	l.Infof("✅ 钱包已注册: %s/%s -> %s", req.UserId, chain, req.Address)
	return &types.WalletRegisterResp{Success: true}, nil
}

// Session 处理身份会话事件，驱动注册状态机
func (l *WalletLogic) Session(req *types.WalletSessionReq) (*types.WalletSessionResp, error) {
	if req.UserId == "" {
		return nil, errs.Unauthorized("missing x-user-id header")
	}

	state := l.svcCtx.Registrar.OnEvent(l.ctx, registrar.IdentityEvent{
		UserId:        req.UserId,
		Authenticated: req.Authenticated,
		Addresses:     req.Addresses,
	})
	return &types.WalletSessionResp{State: state.String()}, nil
}

func validateAddress(chain, address string) error {
	switch chain {
	case string(constant.ChainEthereum):
		if !common.IsHexAddress(address) {
			return errs.InvalidInput("invalid ethereum address")
		}
	case string(constant.ChainSolana):
		raw, err := base58.Decode(address)
		if err != nil || len(raw) != 32 {
			return errs.InvalidInput("invalid solana address")
		}
	}
	return nil
}
