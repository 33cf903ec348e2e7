package profile

import (
	"context"
	"time"

	"skillpass/internal/errs"
	"skillpass/internal/model"
	"skillpass/internal/svc"
	"skillpass/internal/types"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"
)

type ProfileLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewProfileLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ProfileLogic {
	return &ProfileLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// resolveWallet 请求未带地址时回查注册表
func (l *ProfileLogic) resolveWallet(userId, wallet string) (string, error) {
	if wallet != "" {
		return wallet, nil
	}
	if userId == "" {
		return "", errs.Unauthorized("missing x-user-id header")
	}
	addr, err := l.svcCtx.WalletStore.Get(userId, "solana")
	if err != nil {
		return "", errs.NotFound("no wallet registered for user")
	}
	return addr, nil
}

// Get 查询画像
func (l *ProfileLogic) Get(req *types.ProfileGetReq) (*types.ProfileGetResp, error) {
	wallet, err := l.resolveWallet(req.UserId, req.WalletAddress)
	if err != nil {
		return nil, err
	}

	p, err := l.svcCtx.ProfilesDao.FindByWallet(l.ctx, wallet)
	if err != nil {
		if err == model.ErrNotFound {
			return nil, errs.NotFound("profile not found")
		}
		return nil, err
	}
	return &types.ProfileGetResp{Profile: types.NewProfileView(p)}, nil
}

// Upsert 创建或更新画像，单条语句完成
func (l *ProfileLogic) Upsert(req *types.ProfileUpsertReq) (*types.ProfileUpsertResp, error) {
	if req.UserId == "" {
		return nil, errs.Unauthorized("missing x-user-id header")
	}
	if req.WalletAddress == "" {
		return nil, errs.InvalidInput("walletAddress is required")
	}

	now := time.Now()
	p := &model.UserProfile{
		Id:            uuid.NewString(),
		WalletAddress: req.WalletAddress,
		DisplayName:   req.DisplayName,
		Bio:           req.Bio,
		Avatar:        req.Avatar,
		LastActive:    now,
		JoinedAt:      now,
	}
	if err := l.svcCtx.ProfilesDao.Upsert(l.ctx, p); err != nil {
		l.Errorf("画像写入失败: %v", err)
		return nil, err
	}

	// 冲突路径下 Id/计数以库内为准，读回返回
	stored, err := l.svcCtx.ProfilesDao.FindByWallet(l.ctx, req.WalletAddress)
	if err != nil {
		return nil, err
	}
	l.Infof("✅ 画像已更新: %s", stored.WalletAddress)
	return &types.ProfileUpsertResp{Profile: types.NewProfileView(stored)}, nil
}

// Leaderboard 声望排行榜
func (l *ProfileLogic) Leaderboard(req *types.LeaderboardReq) (*types.LeaderboardResp, error) {
	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	profiles, err := l.svcCtx.ProfilesDao.ListTop(l.ctx, limit)
	if err != nil {
		return nil, err
	}

	resp := &types.LeaderboardResp{Profiles: []types.ProfileView{}}
	for _, p := range profiles {
		resp.Profiles = append(resp.Profiles, types.NewProfileView(p))
	}
	return resp, nil
}
