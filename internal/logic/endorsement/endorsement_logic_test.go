package endorsement

import (
	"context"
	"errors"
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
	skills      map[string]*model.Skill
	stakeAdded  []decimal.Decimal
	addStakeErr error
}

func (d *fakeSkillsDao) Insert(ctx context.Context, data *model.Skill) error {
	d.skills[data.Id] = data
	return nil
}

func (d *fakeSkillsDao) FindOne(ctx context.Context, id string) (*model.Skill, error) {
	if s, ok := d.skills[id]; ok {
		return s, nil
	}
	return nil, model.ErrNotFound
}

func (d *fakeSkillsDao) FindOneByUser(ctx context.Context, id, userId string) (*model.Skill, error) {
	if s, ok := d.skills[id]; ok && s.UserId == userId {
		return s, nil
	}
	return nil, model.ErrNotFound
}

func (d *fakeSkillsDao) FindByUser(ctx context.Context, userId string) ([]*model.Skill, error) {
	return nil, nil
}

func (d *fakeSkillsDao) ListEndorsable(ctx context.Context, limit int) ([]*model.Skill, error) {
	return nil, nil
}

func (d *fakeSkillsDao) Update(ctx context.Context, data *model.Skill) error { return nil }

func (d *fakeSkillsDao) Delete(ctx context.Context, id, userId string) (int64, error) {
	return 0, nil
}

func (d *fakeSkillsDao) AddEndorsementStake(ctx context.Context, id string, amount decimal.Decimal) error {
	if d.addStakeErr != nil {
		return d.addStakeErr
	}
	d.stakeAdded = append(d.stakeAdded, amount)
	return nil
}

func (d *fakeSkillsDao) CountByUser(ctx context.Context, userId string) (int64, int64, error) {
	return 0, 0, nil
}

type fakeEndorsementsDao struct {
	inserted []*model.Endorsement
}

func (d *fakeEndorsementsDao) Insert(ctx context.Context, data *model.Endorsement) error {
	d.inserted = append(d.inserted, data)
	return nil
}

func (d *fakeEndorsementsDao) ListBySkill(ctx context.Context, skillId string, limit int) ([]*model.EndorsementWithSkill, error) {
	return nil, nil
}

func (d *fakeEndorsementsDao) ListByOwner(ctx context.Context, userId string, limit int) ([]*model.EndorsementWithSkill, error) {
	return nil, nil
}

func (d *fakeEndorsementsDao) ListRecent(ctx context.Context, limit int) ([]*model.EndorsementWithSkill, error) {
	return nil, nil
}

func (d *fakeEndorsementsDao) CountByOwner(ctx context.Context, userId string) (int64, error) {
	return 0, nil
}

type fakeProfilesDao struct {
	endorsementApplied int
	applyErr           error
}

func (d *fakeProfilesDao) FindByWallet(ctx context.Context, wallet string) (*model.UserProfile, error) {
	return nil, model.ErrNotFound
}

func (d *fakeProfilesDao) Upsert(ctx context.Context, data *model.UserProfile) error { return nil }

func (d *fakeProfilesDao) ApplyEndorsement(ctx context.Context, id, wallet string, reputationDelta int64) error {
	if d.applyErr != nil {
		return d.applyErr
	}
	d.endorsementApplied++
	return nil
}

func (d *fakeProfilesDao) ApplySkillDelta(ctx context.Context, id, wallet string, totalDelta, verifiedDelta int64) error {
	return nil
}

func (d *fakeProfilesDao) ListTop(ctx context.Context, limit int) ([]*model.UserProfile, error) {
	return nil, nil
}

func (d *fakeProfilesDao) Rank(ctx context.Context, reputationScore int64) (int64, error) {
	return 1, nil
}

func newTestCtx(skills *fakeSkillsDao, endorsements *fakeEndorsementsDao, profiles *fakeProfilesDao) *svc.ServiceContext {
	return &svc.ServiceContext{
		SkillsDao:       skills,
		EndorsementsDao: endorsements,
		ProfilesDao:     profiles,
		Emitter:         events.NopEmitter{},
	}
}

func seedSkill() *fakeSkillsDao {
	return &fakeSkillsDao{skills: map[string]*model.Skill{
		"skill-1": {Id: "skill-1", UserId: "owner-1", WalletAddress: "owner-wallet", Name: "Go Development"},
	}}
}

func TestRecordPaymentRejectsZeroStake(t *testing.T) {
	skills := seedSkill()
	endorsements := &fakeEndorsementsDao{}
	l := NewEndorsementLogic(context.Background(), newTestCtx(skills, endorsements, &fakeProfilesDao{}))

	_, err := l.RecordPayment(&types.PaymentReq{
		SkillId:         "skill-1",
		StakeAmount:     0,
		TransactionHash: "hash",
		EndorserAddress: "addr",
	})
	require.Error(t, err)
	var ce *errs.CodeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusBadRequest, ce.Code)

	// 校验失败前不得有任何写入
	assert.Empty(t, endorsements.inserted)
	assert.Empty(t, skills.stakeAdded)
}

func TestRecordPaymentRequiresHashAndAddress(t *testing.T) {
	l := NewEndorsementLogic(context.Background(), newTestCtx(seedSkill(), &fakeEndorsementsDao{}, &fakeProfilesDao{}))

	_, err := l.RecordPayment(&types.PaymentReq{SkillId: "skill-1", StakeAmount: 1, EndorserAddress: "addr"})
	var ce *errs.CodeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusBadRequest, ce.Code)

	_, err = l.RecordPayment(&types.PaymentReq{SkillId: "skill-1", StakeAmount: 1, TransactionHash: "hash"})
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusBadRequest, ce.Code)
}

func TestRecordPaymentUnknownSkillIs404(t *testing.T) {
	l := NewEndorsementLogic(context.Background(), newTestCtx(seedSkill(), &fakeEndorsementsDao{}, &fakeProfilesDao{}))

	_, err := l.RecordPayment(&types.PaymentReq{
		SkillId:         "missing",
		StakeAmount:     1,
		TransactionHash: "hash",
		EndorserAddress: "addr",
	})
	var ce *errs.CodeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusNotFound, ce.Code)
}

func TestRecordPaymentStoresHashVerbatim(t *testing.T) {
	skills := seedSkill()
	endorsements := &fakeEndorsementsDao{}
	profiles := &fakeProfilesDao{}
	l := NewEndorsementLogic(context.Background(), newTestCtx(skills, endorsements, profiles))

	hash := "  0xWeird-Hash-Not-Validated!!  "
	resp, err := l.RecordPayment(&types.PaymentReq{
		SkillId:         "skill-1",
		StakeAmount:     2.5,
		TransactionHash: hash,
		EndorserAddress: "endorser-wallet",
		EndorserName:    "Alice",
	})
	require.NoError(t, err)

	// 哈希不经校验、不经清洗，原样入库
	require.Len(t, endorsements.inserted, 1)
	assert.Equal(t, hash, endorsements.inserted[0].TransactionHash)
	assert.Equal(t, hash, resp.Endorsement.TransactionHash)
	assert.Equal(t, "SOL", resp.Endorsement.StakeCurrency)

	require.Len(t, skills.stakeAdded, 1)
	assert.True(t, skills.stakeAdded[0].Equal(decimal.NewFromFloat(2.5)))
	assert.Equal(t, 1, profiles.endorsementApplied)
}

func TestRecordPaymentProfileFailureDoesNotFailRequest(t *testing.T) {
	skills := seedSkill()
	endorsements := &fakeEndorsementsDao{}
	profiles := &fakeProfilesDao{applyErr: errors.New("profile table down")}
	l := NewEndorsementLogic(context.Background(), newTestCtx(skills, endorsements, profiles))

	resp, err := l.RecordPayment(&types.PaymentReq{
		SkillId:         "skill-1",
		StakeAmount:     1,
		TransactionHash: "hash",
		EndorserAddress: "addr",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Endorsement.Id)
	assert.Len(t, endorsements.inserted, 1)
}

func TestCreateGeneratesPlaceholderHashForOffchain(t *testing.T) {
	endorsements := &fakeEndorsementsDao{}
	l := NewEndorsementLogic(context.Background(), newTestCtx(seedSkill(), endorsements, &fakeProfilesDao{}))

	resp, err := l.Create(&types.EndorsementCreateReq{
		SkillId:        "skill-1",
		StakedAmount:   1,
		EndorserWallet: "addr",
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Endorsement.TransactionHash, "offchain-")
}
