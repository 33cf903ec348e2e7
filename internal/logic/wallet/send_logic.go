package wallet

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"skillpass/internal/constant"
	"skillpass/internal/errs"
	"skillpass/internal/model"
	"skillpass/internal/svc"
	"skillpass/internal/types"

	solanaCommon "github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/program/system"
	solanaTypes "github.com/blocto/solana-go-sdk/types"
	"github.com/mr-tron/base58"
	"github.com/zeromicro/go-zero/core/logx"
)

type SendLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewSendLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SendLogic {
	return &SendLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// Send 用内置钱包发起一笔 SOL 转账，节点失败自动切换
func (l *SendLogic) Send(req *types.WalletSendReq) (*types.WalletSendResp, error) {
	l.Infof("--- 开始处理 SOL 转账, user: %s, to: %s ---", req.UserId, req.ToAddress)

	if req.UserId == "" {
		return nil, errs.Unauthorized("missing x-user-id header")
	}
	if req.AmountLamports == 0 {
		return nil, errs.InvalidInput("amountLamports must be greater than 0")
	}
	raw, err := base58.Decode(req.ToAddress)
	if err != nil || len(raw) != 32 {
		return nil, errs.InvalidInput("invalid solana address")
	}

	// 1. 取内置钱包私钥
	l.Infof("步骤 1: 查询内置 Solana 钱包...")
	wallet, err := l.svcCtx.WalletsDao.FindOneByUserChain(l.ctx, req.UserId, string(constant.ChainSolana))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, errs.NotFound("no embedded solana wallet for user")
		}
		return nil, err
	}

	privateKeyBytes, err := hex.DecodeString(wallet.EncryptedPrivateKey)
	if err != nil {
		l.Errorf("私钥解析失败: %v", err)
		return nil, errors.New("invalid private key")
	}
	signer, err := solanaTypes.AccountFromBytes(privateKeyBytes)
	if err != nil {
		l.Errorf("构建 Solana 账户失败: %v", err)
		return nil, errors.New("invalid private key")
	}

	// 2. 构建转账指令
	l.Infof("步骤 2: 构建转账指令, 金额 %d lamports", req.AmountLamports)
	instruction := system.Transfer(system.TransferParam{
		From:   signer.PublicKey,
		To:     solanaCommon.PublicKeyFromString(req.ToAddress),
		Amount: req.AmountLamports,
	})

	// 3. 多节点发送并等待确认
	l.Infof("步骤 3: 发送交易...")
	signature, usedFallback, err := l.svcCtx.Sender.Send(l.ctx, signer, []solanaTypes.Instruction{instruction})
	if err != nil {
		l.Errorf("所有节点发送失败: %v", err)
		return nil, err
	}

	if usedFallback {
		l.Infof("⚠️ 主节点不可用, 本次经由备用节点发送")
	}
	l.Infof("--- SOL 转账完成: %s ---", signature)
	return &types.WalletSendResp{
		Signature:    signature,
		UsedFallback: usedFallback,
		ExplorerUrl:  fmt.Sprintf("https://solscan.io/tx/%s", signature),
	}, nil
}
