package investment

import (
	"context"
	"time"

	"skillpass/internal/errs"
	"skillpass/internal/events"
	"skillpass/internal/model"
	"skillpass/internal/svc"
	"skillpass/internal/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/zeromicro/go-zero/core/logx"
)

// 平台抽成 10%，抽成内部按 70/20/10 分给投资人/持有人/金库
var (
	platformFeeRate   = decimal.NewFromFloat(0.10)
	investorShareRate = decimal.NewFromFloat(0.70)
	ownerBonusRate    = decimal.NewFromFloat(0.20)
	treasuryRate      = decimal.NewFromFloat(0.10)
)

type JobLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewJobLogic(ctx context.Context, svcCtx *svc.ServiceContext) *JobLogic {
	return &JobLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// SplitRevenue computes the distribution for one job's revenue.
func SplitRevenue(revenue decimal.Decimal) types.RevenueSplit {
	fee := revenue.Mul(platformFeeRate)
	investorShare := fee.Mul(investorShareRate)
	ownerBonus := fee.Mul(ownerBonusRate)
	treasury := fee.Mul(treasuryRate)
	ownerPayout := revenue.Sub(fee).Add(ownerBonus)

	feeF, _ := fee.Float64()
	investorF, _ := investorShare.Float64()
	bonusF, _ := ownerBonus.Float64()
	treasuryF, _ := treasury.Float64()
	payoutF, _ := ownerPayout.Float64()
	return types.RevenueSplit{
		PlatformFee:   feeF,
		InvestorShare: investorF,
		OwnerBonus:    bonusF,
		TreasuryShare: treasuryF,
		OwnerPayout:   payoutF,
	}
}

// Complete 记录一次完成的工作并把投资人份额按本金占比分配
func (l *JobLogic) Complete(req *types.JobCompleteReq) (*types.JobCompleteResp, error) {
	l.Infof("--- 开始处理工作结算, skill: %s, revenue: %.2f ---", req.SkillId, req.JobRevenue)

	if req.SkillId == "" || req.SkillOwnerAddress == "" {
		return nil, errs.InvalidInput("skillId and skillOwnerAddress are required")
	}
	if req.JobRevenue <= 0 {
		return nil, errs.InvalidInput("jobRevenue must be greater than 0")
	}

	skill, err := l.svcCtx.SkillsDao.FindOne(l.ctx, req.SkillId)
	if err != nil {
		if err == model.ErrNotFound {
			return nil, errs.NotFound("skill not found")
		}
		return nil, err
	}

	revenue := decimal.NewFromFloat(req.JobRevenue)
	split := SplitRevenue(revenue)

	job := &model.JobRecord{
		Id:             uuid.NewString(),
		SkillId:        skill.Id,
		JobRevenue:     revenue,
		JobDescription: req.JobDescription,
		CreatedAt:      time.Now(),
	}
	if err := l.svcCtx.InvestmentsDao.InsertJob(l.ctx, job); err != nil {
		l.Errorf("工作记录入库失败: %v", err)
		return nil, err
	}

	// 按本金占比给活跃投资人分账
	investments, err := l.svcCtx.InvestmentsDao.ListActiveBySkill(l.ctx, skill.Id)
	if err != nil {
		l.Errorf("查询活跃投资失败: %v", err)
		return nil, err
	}

	credited := 0
	if len(investments) > 0 {
		totalPrincipal := decimal.Zero
		for _, inv := range investments {
			totalPrincipal = totalPrincipal.Add(inv.InvestmentAmount)
		}
		investorPool := revenue.Mul(platformFeeRate).Mul(investorShareRate)

		for _, inv := range investments {
			if totalPrincipal.IsZero() {
				break
			}
			share := investorPool.Mul(inv.InvestmentAmount).Div(totalPrincipal)
			if err := l.svcCtx.InvestmentsDao.CreditYield(l.ctx, inv.Id, share, revenue); err != nil {
				l.Errorf("⚠️ 投资 %s 分账失败: %v", inv.Id, err)
				continue
			}
			credited++
		}
	}

	if err := l.svcCtx.Emitter.Emit(events.TypeJobCompleted, job); err != nil {
		l.Errorf("⚠️ 事件发布失败: %v", err)
	}

	l.Infof("✅ 工作已结算: %s, 分账投资人 %d 位", job.Id, credited)
	return &types.JobCompleteResp{
		JobId:             job.Id,
		Split:             split,
		InvestorsCredited: credited,
	}, nil
}

// History 某技能的工作记录与营收统计
func (l *JobLogic) History(req *types.JobHistoryReq) (*types.JobHistoryResp, error) {
	if req.SkillId == "" {
		return nil, errs.InvalidInput("skillId is required")
	}

	jobs, err := l.svcCtx.InvestmentsDao.ListJobsBySkill(l.ctx, req.SkillId)
	if err != nil {
		return nil, err
	}

	resp := &types.JobHistoryResp{Jobs: []types.JobRecordView{}}
	total := decimal.Zero
	for _, j := range jobs {
		resp.Jobs = append(resp.Jobs, types.NewJobRecordView(j))
		total = total.Add(j.JobRevenue)
	}
	resp.JobsCompleted = len(jobs)
	resp.TotalRevenue, _ = total.Float64()
	if len(jobs) > 0 {
		avg, _ := total.Div(decimal.NewFromInt(int64(len(jobs)))).Float64()
		resp.AverageRevenue = avg
	}
	return resp, nil
}
