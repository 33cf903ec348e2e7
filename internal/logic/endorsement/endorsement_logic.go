package endorsement

import (
	"context"
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

// 每收到一条背书加的声望分
const reputationPerEndorsement = 10

type EndorsementLogic struct {
	ctx    context.Context
	svcCtx *svc.ServiceContext
	logx.Logger
}

func NewEndorsementLogic(ctx context.Context, svcCtx *svc.ServiceContext) *EndorsementLogic {
	return &EndorsementLogic{
		ctx:    ctx,
		svcCtx: svcCtx,
		Logger: logx.WithContext(ctx),
	}
}

// RecordPayment 记录一笔质押支付并生成背书。
// 交易哈希原样入库，不做链上校验；校验全部在写库之前。
func (l *EndorsementLogic) RecordPayment(req *types.PaymentReq) (*types.PaymentResp, error) {
	l.Infof("--- 开始处理质押支付, skill: %s, endorser: %s ---", req.SkillId, req.EndorserAddress)

	// 1. 入参校验，未通过不落任何数据
	if req.StakeAmount <= 0 {
		return nil, errs.InvalidInput("stakeAmount must be greater than 0")
	}
	if req.TransactionHash == "" {
		return nil, errs.InvalidInput("transactionHash is required")
	}
	if req.EndorserAddress == "" {
		return nil, errs.InvalidInput("endorserAddress is required")
	}

	// 2. 目标技能必须存在
	skill, err := l.svcCtx.SkillsDao.FindOne(l.ctx, req.SkillId)
	if err != nil {
		if err == model.ErrNotFound {
			return nil, errs.NotFound("skill not found")
		}
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = constant.EndorsementCurrencySOL
	}
	amount := decimal.NewFromFloat(req.StakeAmount)

	// 3. 写入背书主记录
	now := time.Now()
	endorsement := &model.Endorsement{
		Id:              uuid.NewString(),
		SkillId:         skill.Id,
		EndorserId:      req.UserId,
		EndorserWallet:  req.EndorserAddress,
		EndorserName:    req.EndorserName,
		StakedAmount:    amount,
		StakeCurrency:   currency,
		TransactionHash: req.TransactionHash,
		Message:         req.Message,
		Evidence:        req.Evidence,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := l.svcCtx.EndorsementsDao.Insert(l.ctx, endorsement); err != nil {
		l.Errorf("背书入库失败: %v", err)
		return nil, err
	}

	// 4. 单条 UPDATE 原子累加技能计数
	if err := l.svcCtx.SkillsDao.AddEndorsementStake(l.ctx, skill.Id, amount); err != nil {
		l.Errorf("累加技能质押失败: %v", err)
		return nil, err
	}

	// 5. 持有人画像计数，旁路失败只记日志
	if skill.WalletAddress != "" {
		err := l.svcCtx.ProfilesDao.ApplyEndorsement(l.ctx, uuid.NewString(), skill.WalletAddress, reputationPerEndorsement)
		if err != nil {
			l.Errorf("⚠️ 更新持有人画像失败: %v", err)
		}
	}

	if err := l.svcCtx.Emitter.Emit(events.TypeEndorsementCreated, endorsement); err != nil {
		l.Errorf("⚠️ 事件发布失败: %v", err)
	}

	l.Infof("✅ 质押支付已记录: %s, 金额 %s %s", endorsement.Id, amount, currency)
	return &types.PaymentResp{Endorsement: types.NewEndorsementView(endorsement, skill.Name)}, nil
}

// List 按技能或技能持有人过滤背书
func (l *EndorsementLogic) List(req *types.EndorsementListReq) (*types.EndorsementListResp, error) {
	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var rows []*model.EndorsementWithSkill
	var err error
	switch {
	case req.SkillId != "":
		rows, err = l.svcCtx.EndorsementsDao.ListBySkill(l.ctx, req.SkillId, limit)
	case req.UserId != "":
		rows, err = l.svcCtx.EndorsementsDao.ListByOwner(l.ctx, req.UserId, limit)
	default:
		rows, err = l.svcCtx.EndorsementsDao.ListRecent(l.ctx, limit)
	}
	if err != nil {
		return nil, err
	}

	resp := &types.EndorsementListResp{Endorsements: []types.EndorsementView{}}
	for _, row := range rows {
		resp.Endorsements = append(resp.Endorsements, types.NewEndorsementView(&row.Endorsement, row.SkillName))
	}
	return resp, nil
}

// Create 直接创建背书（不经过支付入口）
func (l *EndorsementLogic) Create(req *types.EndorsementCreateReq) (*types.EndorsementCreateResp, error) {
	if req.SkillId == "" {
		return nil, errs.InvalidInput("skillId is required")
	}
	if req.StakedAmount <= 0 {
		return nil, errs.InvalidInput("stakedAmount must be greater than 0")
	}
	if req.EndorserWallet == "" {
		return nil, errs.InvalidInput("endorserWallet is required")
	}

	payment := &types.PaymentReq{
		UserId:          req.UserId,
		SkillId:         req.SkillId,
		StakeAmount:     req.StakedAmount,
		TransactionHash: req.TransactionHash,
		EndorserAddress: req.EndorserWallet,
		EndorserName:    req.EndorserName,
		Message:         req.Message,
		Evidence:        req.Evidence,
	}
	if payment.TransactionHash == "" {
		// 无链上支付的背书以占位哈希标记
		payment.TransactionHash = "offchain-" + uuid.NewString()
	}

	resp, err := l.RecordPayment(payment)
	if err != nil {
		return nil, err
	}
	return &types.EndorsementCreateResp{Endorsement: resp.Endorsement}, nil
}
