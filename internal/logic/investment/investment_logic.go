package investment

import (
	"context"
	"fmt"
	"time"

	"skillpass/internal/constant"
	"skillpass/internal/errs"
	"skillpass/internal/events"
	"skillpass/internal/model"
	"skillpass/internal/svc"
	"skillpass/internal/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zeromicro/go-zero/core/logx"
)

type InvestmentLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewInvestmentLogic(ctx context.Context, svcCtx *svc.ServiceContext) *InvestmentLogic {
	return &InvestmentLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// ProjectedAPY 投资年化 = 基础 12% + 背书加成(封顶20) + 质押加成 + 认证加成
func ProjectedAPY(skill *model.Skill) float64 {
	apy := 12.0

	endorsementBonus := float64(skill.EndorsementCount) * 2
	if endorsementBonus > 20 {
		endorsementBonus = 20
	}
	apy += endorsementBonus

	if skill.TotalStaked.GreaterThan(decimal.NewFromInt(1000)) {
		apy += 8
	} else {
		apy += 4
	}

	if skill.Verified {
		apy += 5
	}
	return apy
}

// riskScore 风险分 10-90，背书和认证都降低风险
func riskScore(skill *model.Skill) int64 {
	score := int64(50)
	if skill.Verified {
		score -= 20
	}
	endorsementCut := skill.EndorsementCount * 2
	if endorsementCut > 20 {
		endorsementCut = 20
	}
	score -= endorsementCut
	if score < 10 {
		score = 10
	}
	return score
}

// Create 对技能发起投资
func (l *InvestmentLogic) Create(req *types.InvestmentCreateReq) (*types.InvestmentCreateResp, error) {
	l.Infof("--- 开始处理投资请求, skill: %s, wallet: %s, amount: %.2f ---",
		req.SkillId, req.InvestorWallet, req.InvestmentAmount)

	if req.SkillId == "" || req.InvestorWallet == "" {
		return nil, errs.InvalidInput("skillId and investorWallet are required")
	}
	if req.InvestmentAmount < constant.MinInvestmentAmount {
		return nil, errs.InvalidInput(fmt.Sprintf("minimum investment is %.0f REPR", constant.MinInvestmentAmount))
	}

	skill, err := l.svcCtx.SkillsDao.FindOne(l.ctx, req.SkillId)
	if err != nil {
		if err == model.ErrNotFound {
			return nil, errs.NotFound("skill not found")
		}
		return nil, err
	}
	if skill.WalletAddress != "" && skill.WalletAddress == req.InvestorWallet {
		return nil, errs.InvalidInput("cannot invest in your own skill")
	}

	apy := ProjectedAPY(skill)
	amount := decimal.NewFromFloat(req.InvestmentAmount)
	// 预期月收益 = 本金 * APY / 12
	expectedMonthly := amount.
		Mul(decimal.NewFromFloat(apy)).
		Div(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(12))

	now := time.Now()
	investment := &model.Investment{
		Id:                   uuid.NewString(),
		SkillId:              skill.Id,
		InvestorId:           req.UserId,
		InvestorWallet:       req.InvestorWallet,
		InvestmentAmount:     amount,
		ExpectedMonthlyYield: expectedMonthly,
		CurrentAPY:           decimal.NewFromFloat(apy),
		TotalYieldEarned:     decimal.Zero,
		MonthlyJobRevenue:    decimal.Zero,
		RiskScore:            riskScore(skill),
		TransactionHash:      req.TransactionHash,
		Status:               constant.InvestmentStatusActive,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := l.svcCtx.InvestmentsDao.Insert(l.ctx, investment); err != nil {
		l.Errorf("投资入库失败: %v", err)
		return nil, err
	}

	if err := l.svcCtx.Emitter.Emit(events.TypeInvestmentCreated, investment); err != nil {
		l.Errorf("⚠️ 事件发布失败: %v", err)
	}

	l.Infof("✅ 投资已创建: %s, 预期 APY %.2f%%", investment.Id, apy)
	return &types.InvestmentCreateResp{
		Investment:   types.NewInvestmentView(investment, skill.Name),
		ProjectedAPY: apy,
	}, nil
}

// Portfolio 投资人组合与收益统计
func (l *InvestmentLogic) Portfolio(req *types.PortfolioReq) (*types.PortfolioResp, error) {
	if req.WalletAddress == "" {
		return nil, errs.InvalidInput("walletAddress is required")
	}

	rows, err := l.svcCtx.InvestmentsDao.ListByWallet(l.ctx, req.WalletAddress)
	if err != nil {
		return nil, err
	}

	resp := &types.PortfolioResp{Investments: []types.InvestmentView{}}
	totalInvested := decimal.Zero
	totalYield := decimal.Zero
	expectedMonthly := decimal.Zero
	apySum := decimal.Zero
	var riskSum int64

	for _, row := range rows {
		resp.Investments = append(resp.Investments, types.NewInvestmentView(&row.Investment, row.SkillName))
		totalInvested = totalInvested.Add(row.InvestmentAmount)
		totalYield = totalYield.Add(row.TotalYieldEarned)
		expectedMonthly = expectedMonthly.Add(row.ExpectedMonthlyYield)
		apySum = apySum.Add(row.CurrentAPY)
		riskSum += row.RiskScore
		if row.Status == constant.InvestmentStatusActive {
			resp.ActiveInvestments++
		}
	}

	resp.TotalInvested, _ = totalInvested.Float64()
	resp.TotalYieldEarned, _ = totalYield.Float64()
	resp.ExpectedMonthly, _ = expectedMonthly.Float64()
	if len(rows) > 0 {
		avgAPY, _ := apySum.Div(decimal.NewFromInt(int64(len(rows)))).Float64()
		resp.AverageAPY = avgAPY
		resp.AverageRiskScore = float64(riskSum) / float64(len(rows))
	}
	return resp, nil
}

// Recent 最新投资动态
func (l *InvestmentLogic) Recent(req *types.RecentInvestmentsReq) (*types.RecentInvestmentsResp, error) {
	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := l.svcCtx.InvestmentsDao.ListRecent(l.ctx, limit)
	if err != nil {
		return nil, err
	}

	resp := &types.RecentInvestmentsResp{Investments: []types.InvestmentView{}}
	for _, row := range rows {
		resp.Investments = append(resp.Investments, types.NewInvestmentView(&row.Investment, row.SkillName))
	}
	return resp, nil
}
