package skill

import (
	"context"
	"strings"
	"time"

	"skillpass/internal/constant"
	"skillpass/internal/errs"
	"skillpass/internal/model"
	"skillpass/internal/svc"
	"skillpass/internal/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zeromicro/go-zero/core/logx"
)

type SkillLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewSkillLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SkillLogic {
	return &SkillLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// List 列出当前用户的全部技能
func (l *SkillLogic) List(req *types.SkillListReq) (*types.SkillListResp, error) {
	if req.UserId == "" {
		return nil, errs.Unauthorized("missing x-user-id header")
	}

	skills, err := l.svcCtx.SkillsDao.FindByUser(l.ctx, req.UserId)
	if err != nil {
		return nil, err
	}

	resp := &types.SkillListResp{Skills: []types.SkillView{}}
	for _, s := range skills {
		resp.Skills = append(resp.Skills, types.NewSkillView(s))
	}
	return resp, nil
}

// Create 创建技能，level 必须是合法枚举值
func (l *SkillLogic) Create(req *types.SkillCreateReq) (*types.SkillCreateResp, error) {
	l.Infof("--- 开始处理创建技能请求, user: %s, name: %s ---", req.UserId, req.Name)

	if req.UserId == "" {
		return nil, errs.Unauthorized("missing x-user-id header")
	}
	if req.Name == "" || req.Category == "" || req.Level == "" {
		return nil, errs.InvalidInput("name, category and level are required")
	}
	if !constant.IsSkillLevel(req.Level) {
		return nil, errs.InvalidInput("invalid level: must be one of " + strings.Join(constant.SkillLevels, ", "))
	}

	walletAddress := req.WalletAddress
	if walletAddress == "" {
		// 未显式传入时回查注册表，查不到就留空
		if addr, err := l.svcCtx.WalletStore.Get(req.UserId, string(constant.DefaultChain)); err == nil {
			walletAddress = addr
		}
	}

	now := time.Now()
	skill := &model.Skill{
		Id:            uuid.NewString(),
		UserId:        req.UserId,
		WalletAddress: walletAddress,
		Name:          req.Name,
		Category:      req.Category,
		Description:   req.Description,
		Level:         req.Level,
		Evidence:      req.Evidence,
		Status:        constant.SkillStatusActive,
		TotalStaked:   decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := l.svcCtx.SkillsDao.Insert(l.ctx, skill); err != nil {
		l.Errorf("技能入库失败: %v", err)
		return nil, err
	}

	// 画像计数是旁路，失败不影响主流程
	if walletAddress != "" {
		if err := l.svcCtx.ProfilesDao.ApplySkillDelta(l.ctx, uuid.NewString(), walletAddress, 1, 0); err != nil {
			l.Errorf("⚠️ 更新用户画像技能数失败: %v", err)
		}
	}

	l.Infof("✅ 技能创建成功: %s", skill.Id)
	return &types.SkillCreateResp{Skill: types.NewSkillView(skill)}, nil
}

// Get 查询单个技能，仅限持有人
func (l *SkillLogic) Get(req *types.SkillGetReq) (*types.SkillGetResp, error) {
	if req.UserId == "" {
		return nil, errs.Unauthorized("missing x-user-id header")
	}

	skill, err := l.svcCtx.SkillsDao.FindOneByUser(l.ctx, req.Id, req.UserId)
	if err != nil {
		if err == model.ErrNotFound {
			return nil, errs.NotFound("skill not found")
		}
		return nil, err
	}
	return &types.SkillGetResp{Skill: types.NewSkillView(skill)}, nil
}

// Update 更新技能，零值字段保持不变
func (l *SkillLogic) Update(req *types.SkillUpdateReq) (*types.SkillUpdateResp, error) {
	if req.UserId == "" {
		return nil, errs.Unauthorized("missing x-user-id header")
	}
	if req.Level != "" && !constant.IsSkillLevel(req.Level) {
		return nil, errs.InvalidInput("invalid level: must be one of " + strings.Join(constant.SkillLevels, ", "))
	}

	skill, err := l.svcCtx.SkillsDao.FindOneByUser(l.ctx, req.Id, req.UserId)
	if err != nil {
		if err == model.ErrNotFound {
			return nil, errs.NotFound("skill not found")
		}
		return nil, err
	}

	if req.Name != "" {
		skill.Name = req.Name
	}
	if req.Category != "" {
		skill.Category = req.Category
	}
	if req.Description != "" {
		skill.Description = req.Description
	}
	if req.Level != "" {
		skill.Level = req.Level
	}
	if req.Evidence != "" {
		skill.Evidence = req.Evidence
	}
	skill.UpdatedAt = time.Now()

	if err := l.svcCtx.SkillsDao.Update(l.ctx, skill); err != nil {
		l.Errorf("技能更新失败: %v", err)
		return nil, err
	}
	return &types.SkillUpdateResp{Skill: types.NewSkillView(skill)}, nil
}

// Delete 删除技能，仅限持有人
func (l *SkillLogic) Delete(req *types.SkillDeleteReq) (*types.SkillDeleteResp, error) {
	if req.UserId == "" {
		return nil, errs.Unauthorized("missing x-user-id header")
	}

	affected, err := l.svcCtx.SkillsDao.Delete(l.ctx, req.Id, req.UserId)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, errs.NotFound("skill not found")
	}
	return &types.SkillDeleteResp{Success: true}, nil
}

// Endorsable 技能市场列表，附带持有人画像
func (l *SkillLogic) Endorsable(req *types.EndorsableSkillsReq) (*types.EndorsableSkillsResp, error) {
	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	skills, err := l.svcCtx.SkillsDao.ListEndorsable(l.ctx, limit)
	if err != nil {
		return nil, err
	}

	resp := &types.EndorsableSkillsResp{Skills: []types.EndorsableSkill{}}
	for _, s := range skills {
		item := types.EndorsableSkill{SkillView: types.NewSkillView(s)}
		if s.WalletAddress != "" {
			if p, err := l.svcCtx.ProfilesDao.FindByWallet(l.ctx, s.WalletAddress); err == nil {
				item.OwnerName = p.DisplayName
				item.OwnerAvatar = p.Avatar
				item.OwnerReputation = p.ReputationScore
			}
		}
		resp.Skills = append(resp.Skills, item)
	}
	return resp, nil
}
