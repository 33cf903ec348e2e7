package dashboard

import (
	"context"

	"skillpass/internal/constant"
	"skillpass/internal/errs"
	"skillpass/internal/svc"
	"skillpass/internal/types"

	"github.com/zeromicro/go-zero/core/logx"
)

type DashboardLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewDashboardLogic(ctx context.Context, svcCtx *svc.ServiceContext) *DashboardLogic {
	return &DashboardLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// Get 聚合用户的统计、技能样本与最近背书
func (l *DashboardLogic) Get(req *types.DashboardReq) (*types.DashboardResp, error) {
	userId := req.UserId
	if userId == "" {
		userId = req.HeaderUserId
	}
	if userId == "" {
		return nil, errs.Unauthorized("missing user identity")
	}

	totalSkills, verifiedSkills, err := l.svcCtx.SkillsDao.CountByUser(l.ctx, userId)
	if err != nil {
		return nil, err
	}
	totalEndorsements, err := l.svcCtx.EndorsementsDao.CountByOwner(l.ctx, userId)
	if err != nil {
		return nil, err
	}

	resp := &types.DashboardResp{
		Stats: types.DashboardStats{
			TotalSkills:       totalSkills,
			TotalEndorsements: totalEndorsements,
			VerifiedSkills:    verifiedSkills,
		},
		Skills:             []types.SkillView{},
		RecentEndorsements: []types.EndorsementView{},
	}

	// 声望与排名来自画像，没有画像时保持零值
	if addr, err := l.svcCtx.WalletStore.Get(userId, string(constant.DefaultChain)); err == nil {
		if p, err := l.svcCtx.ProfilesDao.FindByWallet(l.ctx, addr); err == nil {
			resp.Stats.ReputationScore = p.ReputationScore
			if rank, err := l.svcCtx.ProfilesDao.Rank(l.ctx, p.ReputationScore); err == nil {
				resp.Stats.Rank = rank
			}
		}
	}

	skills, err := l.svcCtx.SkillsDao.FindByUser(l.ctx, userId)
	if err != nil {
		return nil, err
	}
	for i, s := range skills {
		if i >= 5 {
			break
		}
		resp.Skills = append(resp.Skills, types.NewSkillView(s))
	}

	endorsements, err := l.svcCtx.EndorsementsDao.ListByOwner(l.ctx, userId, 5)
	if err != nil {
		return nil, err
	}
	for _, e := range endorsements {
		resp.RecentEndorsements = append(resp.RecentEndorsements, types.NewEndorsementView(&e.Endorsement, e.SkillName))
	}

	return resp, nil
}
