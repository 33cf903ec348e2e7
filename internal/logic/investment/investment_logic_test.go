package investment

import (
	"context"
	"net/http"
	"testing"

	"skillpass/internal/errs"
	"skillpass/internal/events"
	"skillpass/internal/model"
	"skillpass/internal/svc"
	"skillpass/internal/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSkillsDao struct {
	skills map[string]*model.Skill
}

func (d *fakeSkillsDao) Insert(ctx context.Context, data *model.Skill) error { return nil }

func (d *fakeSkillsDao) FindOne(ctx context.Context, id string) (*model.Skill, error) {
	if s, ok := d.skills[id]; ok {
		return s, nil
	}
	return nil, model.ErrNotFound
}

func (d *fakeSkillsDao) FindOneByUser(ctx context.Context, id, userId string) (*model.Skill, error) {
	return nil, model.ErrNotFound
}

func (d *fakeSkillsDao) FindByUser(ctx context.Context, userId string) ([]*model.Skill, error) {
	return nil, nil
}

func (d *fakeSkillsDao) ListEndorsable(ctx context.Context, limit int) ([]*model.Skill, error) {
	return nil, nil
}

func (d *fakeSkillsDao) Update(ctx context.Context, data *model.Skill) error { return nil }

func (d *fakeSkillsDao) Delete(ctx context.Context, id, userId string) (int64, error) { return 0, nil }

func (d *fakeSkillsDao) AddEndorsementStake(ctx context.Context, id string, amount decimal.Decimal) error {
	return nil
}

func (d *fakeSkillsDao) CountByUser(ctx context.Context, userId string) (int64, int64, error) {
	return 0, 0, nil
}

type creditedYield struct {
	id     string
	amount decimal.Decimal
}

type fakeInvestmentsDao struct {
	inserted []*model.Investment
	active   []*model.Investment
	jobs     []*model.JobRecord
	credited []creditedYield
}

func (d *fakeInvestmentsDao) Insert(ctx context.Context, data *model.Investment) error {
	d.inserted = append(d.inserted, data)
	return nil
}

func (d *fakeInvestmentsDao) ListByWallet(ctx context.Context, wallet string) ([]*model.InvestmentWithSkill, error) {
	return nil, nil
}

func (d *fakeInvestmentsDao) ListActiveBySkill(ctx context.Context, skillId string) ([]*model.Investment, error) {
	return d.active, nil
}

func (d *fakeInvestmentsDao) ListRecent(ctx context.Context, limit int) ([]*model.InvestmentWithSkill, error) {
	return nil, nil
}

func (d *fakeInvestmentsDao) CreditYield(ctx context.Context, id string, yield decimal.Decimal, monthlyRevenue decimal.Decimal) error {
	d.credited = append(d.credited, creditedYield{id: id, amount: yield})
	return nil
}

func (d *fakeInvestmentsDao) InsertJob(ctx context.Context, data *model.JobRecord) error {
	d.jobs = append(d.jobs, data)
	return nil
}

func (d *fakeInvestmentsDao) ListJobsBySkill(ctx context.Context, skillId string) ([]*model.JobRecord, error) {
	return d.jobs, nil
}

func newInvestmentCtx(skills *fakeSkillsDao, investments *fakeInvestmentsDao) *svc.ServiceContext {
	return &svc.ServiceContext{
		SkillsDao:      skills,
		InvestmentsDao: investments,
		Emitter:        events.NopEmitter{},
	}
}

func TestProjectedAPY(t *testing.T) {
	cases := []struct {
		name  string
		skill model.Skill
		want  float64
	}{
		{
			name:  "base plus low stake bonus",
			skill: model.Skill{},
			want:  12 + 0 + 4,
		},
		{
			name:  "endorsement bonus capped at 20",
			skill: model.Skill{EndorsementCount: 50},
			want:  12 + 20 + 4,
		},
		{
			name: "high stake and verified",
			skill: model.Skill{
				EndorsementCount: 3,
				TotalStaked:      decimal.NewFromInt(1500),
				Verified:         true,
			},
			want: 12 + 6 + 8 + 5,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, ProjectedAPY(&tc.skill), 0.0001)
		})
	}
}

func TestCreateRejectsBelowMinimum(t *testing.T) {
	skills := &fakeSkillsDao{skills: map[string]*model.Skill{"s1": {Id: "s1", Name: "Go"}}}
	l := NewInvestmentLogic(context.Background(), newInvestmentCtx(skills, &fakeInvestmentsDao{}))

	_, err := l.Create(&types.InvestmentCreateReq{
		SkillId:          "s1",
		InvestmentAmount: 49,
		InvestorWallet:   "w1",
	})
	var ce *errs.CodeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusBadRequest, ce.Code)
}

func TestCreateRejectsSelfInvestment(t *testing.T) {
	skills := &fakeSkillsDao{skills: map[string]*model.Skill{
		"s1": {Id: "s1", Name: "Go", WalletAddress: "owner-wallet"},
	}}
	l := NewInvestmentLogic(context.Background(), newInvestmentCtx(skills, &fakeInvestmentsDao{}))

	_, err := l.Create(&types.InvestmentCreateReq{
		SkillId:          "s1",
		InvestmentAmount: 100,
		InvestorWallet:   "owner-wallet",
	})
	var ce *errs.CodeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusBadRequest, ce.Code)
}

func TestCreateComputesExpectedMonthlyYield(t *testing.T) {
	skills := &fakeSkillsDao{skills: map[string]*model.Skill{
		"s1": {Id: "s1", Name: "Go", Verified: true, TotalStaked: decimal.NewFromInt(2000)},
	}}
	investments := &fakeInvestmentsDao{}
	l := NewInvestmentLogic(context.Background(), newInvestmentCtx(skills, investments))

	resp, err := l.Create(&types.InvestmentCreateReq{
		SkillId:          "s1",
		InvestmentAmount: 1200,
		InvestorWallet:   "investor",
	})
	require.NoError(t, err)

	// APY = 12 + 0 + 8 + 5 = 25%; 月收益 = 1200 * 0.25 / 12 = 25
	assert.InDelta(t, 25.0, resp.ProjectedAPY, 0.0001)
	assert.InDelta(t, 25.0, resp.Investment.ExpectedMonthlyYield, 0.0001)
	require.Len(t, investments.inserted, 1)
	assert.Equal(t, "active", investments.inserted[0].Status)
}

func TestSplitRevenue(t *testing.T) {
	split := SplitRevenue(decimal.NewFromInt(1000))

	assert.InDelta(t, 100.0, split.PlatformFee, 0.0001)
	assert.InDelta(t, 70.0, split.InvestorShare, 0.0001)
	assert.InDelta(t, 20.0, split.OwnerBonus, 0.0001)
	assert.InDelta(t, 10.0, split.TreasuryShare, 0.0001)
	// 持有人实收 = 1000 - 100 + 20
	assert.InDelta(t, 920.0, split.OwnerPayout, 0.0001)
}

func TestCompleteDistributesProRata(t *testing.T) {
	skills := &fakeSkillsDao{skills: map[string]*model.Skill{"s1": {Id: "s1", Name: "Go"}}}
	investments := &fakeInvestmentsDao{
		active: []*model.Investment{
			{Id: "i1", InvestmentAmount: decimal.NewFromInt(300)},
			{Id: "i2", InvestmentAmount: decimal.NewFromInt(100)},
		},
	}
	l := NewJobLogic(context.Background(), newInvestmentCtx(skills, investments))

	resp, err := l.Complete(&types.JobCompleteReq{
		SkillId:           "s1",
		JobRevenue:        1000,
		SkillOwnerAddress: "owner",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.InvestorsCredited)

	// 投资人池 70，按 300:100 分为 52.5 和 17.5
	require.Len(t, investments.credited, 2)
	assert.True(t, investments.credited[0].amount.Equal(decimal.RequireFromString("52.5")),
		"got %s", investments.credited[0].amount)
	assert.True(t, investments.credited[1].amount.Equal(decimal.RequireFromString("17.5")),
		"got %s", investments.credited[1].amount)
}

func TestCompleteRejectsNonPositiveRevenue(t *testing.T) {
	skills := &fakeSkillsDao{skills: map[string]*model.Skill{"s1": {Id: "s1"}}}
	l := NewJobLogic(context.Background(), newInvestmentCtx(skills, &fakeInvestmentsDao{}))

	_, err := l.Complete(&types.JobCompleteReq{
		SkillId:           "s1",
		JobRevenue:        0,
		SkillOwnerAddress: "owner",
	})
	var ce *errs.CodeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusBadRequest, ce.Code)
}
