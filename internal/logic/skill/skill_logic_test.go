package skill

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"skillpass/internal/errs"
	"skillpass/internal/model"
	"skillpass/internal/svc"
	"skillpass/internal/types"
	"skillpass/internal/walletstore"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSkillsDao struct {
	skills   map[string]*model.Skill
	inserted []*model.Skill
}

func (d *fakeSkillsDao) Insert(ctx context.Context, data *model.Skill) error {
	d.skills[data.Id] = data
	d.inserted = append(d.inserted, data)
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
	var out []*model.Skill
	for _, s := range d.skills {
		if s.UserId == userId {
			out = append(out, s)
		}
	}
	return out, nil
}

func (d *fakeSkillsDao) ListEndorsable(ctx context.Context, limit int) ([]*model.Skill, error) {
	return nil, nil
}

func (d *fakeSkillsDao) Update(ctx context.Context, data *model.Skill) error {
	d.skills[data.Id] = data
	return nil
}

func (d *fakeSkillsDao) Delete(ctx context.Context, id, userId string) (int64, error) {
	if s, ok := d.skills[id]; ok && s.UserId == userId {
		delete(d.skills, id)
		return 1, nil
	}
	return 0, nil
}

func (d *fakeSkillsDao) AddEndorsementStake(ctx context.Context, id string, amount decimal.Decimal) error {
	return nil
}

func (d *fakeSkillsDao) CountByUser(ctx context.Context, userId string) (int64, int64, error) {
	return 0, 0, nil
}

type fakeProfilesDao struct {
	skillDeltas int
}

func (d *fakeProfilesDao) FindByWallet(ctx context.Context, wallet string) (*model.UserProfile, error) {
	return nil, model.ErrNotFound
}

func (d *fakeProfilesDao) Upsert(ctx context.Context, data *model.UserProfile) error { return nil }

func (d *fakeProfilesDao) ApplyEndorsement(ctx context.Context, id, wallet string, reputationDelta int64) error {
	return nil
}

func (d *fakeProfilesDao) ApplySkillDelta(ctx context.Context, id, wallet string, totalDelta, verifiedDelta int64) error {
	d.skillDeltas++
	return nil
}

func (d *fakeProfilesDao) ListTop(ctx context.Context, limit int) ([]*model.UserProfile, error) {
	return nil, nil
}

func (d *fakeProfilesDao) Rank(ctx context.Context, reputationScore int64) (int64, error) {
	return 1, nil
}

func newTestCtx(t *testing.T, skills *fakeSkillsDao) (*svc.ServiceContext, *walletstore.Store) {
	store := walletstore.NewStore(filepath.Join(t.TempDir(), "wallets.json"))
	return &svc.ServiceContext{
		SkillsDao:   skills,
		ProfilesDao: &fakeProfilesDao{},
		WalletStore: store,
	}, store
}

func newFakeSkillsDao() *fakeSkillsDao {
	return &fakeSkillsDao{skills: map[string]*model.Skill{}}
}

func TestCreateRequiresUserHeader(t *testing.T) {
	ctx, _ := newTestCtx(t, newFakeSkillsDao())
	l := NewSkillLogic(context.Background(), ctx)

	_, err := l.Create(&types.SkillCreateReq{Name: "Go", Category: "dev", Level: "Expert"})
	var ce *errs.CodeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusUnauthorized, ce.Code)

	_, err = l.List(&types.SkillListReq{})
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusUnauthorized, ce.Code)
}

func TestCreateRejectsUnknownLevel(t *testing.T) {
	skills := newFakeSkillsDao()
	ctx, _ := newTestCtx(t, skills)
	l := NewSkillLogic(context.Background(), ctx)

	_, err := l.Create(&types.SkillCreateReq{
		UserId:   "user-1",
		Name:     "Go",
		Category: "dev",
		Level:    "Master",
	})
	var ce *errs.CodeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusBadRequest, ce.Code)
	// 错误信息要列出全部合法档位
	assert.Contains(t, ce.Msg, "Beginner")
	assert.Contains(t, ce.Msg, "Intermediate")
	assert.Contains(t, ce.Msg, "Advanced")
	assert.Contains(t, ce.Msg, "Expert")
	assert.Empty(t, skills.inserted)
}

func TestCreateValidLevelSucceeds(t *testing.T) {
	skills := newFakeSkillsDao()
	ctx, _ := newTestCtx(t, skills)
	l := NewSkillLogic(context.Background(), ctx)

	resp, err := l.Create(&types.SkillCreateReq{
		UserId:   "user-1",
		Name:     "Go Development",
		Category: "engineering",
		Level:    "Expert",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Skill.Id)
	assert.Equal(t, "active", resp.Skill.Status)
	assert.Equal(t, "Expert", resp.Skill.Level)
	require.Len(t, skills.inserted, 1)
}

func TestCreateFallsBackToRegisteredWallet(t *testing.T) {
	skills := newFakeSkillsDao()
	ctx, store := newTestCtx(t, skills)
	require.NoError(t, store.Set("user-1", "solana", "SoLAddr111"))
	l := NewSkillLogic(context.Background(), ctx)

	resp, err := l.Create(&types.SkillCreateReq{
		UserId:   "user-1",
		Name:     "Rust",
		Category: "engineering",
		Level:    "Advanced",
	})
	require.NoError(t, err)
	assert.Equal(t, "SoLAddr111", resp.Skill.WalletAddress)
}

func TestGetAndDeleteAreOwnerScoped(t *testing.T) {
	skills := newFakeSkillsDao()
	skills.skills["skill-1"] = &model.Skill{Id: "skill-1", UserId: "owner-1", Name: "Go"}
	ctx, _ := newTestCtx(t, skills)
	l := NewSkillLogic(context.Background(), ctx)

	_, err := l.Get(&types.SkillGetReq{Id: "skill-1", UserId: "someone-else"})
	var ce *errs.CodeError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusNotFound, ce.Code)

	_, err = l.Delete(&types.SkillDeleteReq{Id: "skill-1", UserId: "someone-else"})
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, http.StatusNotFound, ce.Code)

	resp, err := l.Delete(&types.SkillDeleteReq{Id: "skill-1", UserId: "owner-1"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
}
