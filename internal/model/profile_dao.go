package model

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfilesDao defines the interface for database operations on the
// user_profiles table.
// 计数类变更都走单条 INSERT ... ON CONFLICT，不做先查再写
type ProfilesDao interface {
	FindByWallet(ctx context.Context, wallet string) (*UserProfile, error)
	// Upsert creates the profile or overwrites its editable fields.
	Upsert(ctx context.Context, data *UserProfile) error
	// ApplyEndorsement creates the profile or bumps its endorsement counters,
	// in a single statement.
	ApplyEndorsement(ctx context.Context, id, wallet string, reputationDelta int64) error
	// ApplySkillDelta creates the profile or shifts its skill counters,
	// in a single statement.
	ApplySkillDelta(ctx context.Context, id, wallet string, totalDelta, verifiedDelta int64) error
	ListTop(ctx context.Context, limit int) ([]*UserProfile, error)
	// Rank returns the 1-based reputation rank for a score.
	Rank(ctx context.Context, reputationScore int64) (int64, error)
}

type profilesDao struct {
	db *gorm.DB
}

// NewProfilesDao creates a new instance of ProfilesDao.
func NewProfilesDao(db *gorm.DB) ProfilesDao {
	return &profilesDao{
		db: db,
	}
}

// FindByWallet retrieves a profile by wallet address.
func (d *profilesDao) FindByWallet(ctx context.Context, wallet string) (*UserProfile, error) {
	var resp UserProfile
	err := d.db.WithContext(ctx).Where("wallet_address = ?", wallet).First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resp, nil
}

// Upsert creates the profile or overwrites its editable fields.
func (d *profilesDao) Upsert(ctx context.Context, data *UserProfile) error {
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "wallet_address"}},
		DoUpdates: clause.Assignments(map[string]any{
			"display_name": data.DisplayName,
			"bio":          data.Bio,
			"avatar":       data.Avatar,
			"last_active":  data.LastActive,
		}),
	}).Create(data).Error
}

// ApplyEndorsement creates the profile or bumps its endorsement counters.
func (d *profilesDao) ApplyEndorsement(ctx context.Context, id, wallet string, reputationDelta int64) error {
	now := time.Now()
	data := &UserProfile{
		Id:                id,
		WalletAddress:     wallet,
		ReputationScore:   reputationDelta,
		TotalEndorsements: 1,
		LastActive:        now,
		JoinedAt:          now,
	}
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "wallet_address"}},
		DoUpdates: clause.Assignments(map[string]any{
			"total_endorsements": gorm.Expr("user_profiles.total_endorsements + 1"),
			"reputation_score":   gorm.Expr("user_profiles.reputation_score + ?", reputationDelta),
			"last_active":        now,
		}),
	}).Create(data).Error
}

// ApplySkillDelta creates the profile or shifts its skill counters.
func (d *profilesDao) ApplySkillDelta(ctx context.Context, id, wallet string, totalDelta, verifiedDelta int64) error {
	now := time.Now()
	data := &UserProfile{
		Id:             id,
		WalletAddress:  wallet,
		TotalSkills:    totalDelta,
		VerifiedSkills: verifiedDelta,
		LastActive:     now,
		JoinedAt:       now,
	}
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "wallet_address"}},
		DoUpdates: clause.Assignments(map[string]any{
			"total_skills":    gorm.Expr("user_profiles.total_skills + ?", totalDelta),
			"verified_skills": gorm.Expr("user_profiles.verified_skills + ?", verifiedDelta),
			"last_active":     now,
		}),
	}).Create(data).Error
}

// ListTop retrieves profiles ordered by reputation.
func (d *profilesDao) ListTop(ctx context.Context, limit int) ([]*UserProfile, error) {
	var profiles []*UserProfile
	err := d.db.WithContext(ctx).
		Order("reputation_score DESC, total_endorsements DESC").
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// Rank returns the 1-based reputation rank for a score.
func (d *profilesDao) Rank(ctx context.Context, reputationScore int64) (int64, error) {
	var higher int64
	err := d.db.WithContext(ctx).Model(&UserProfile{}).
		Where("reputation_score > ?", reputationScore).
		Count(&higher).Error
	if err != nil {
		return 0, err
	}
	return higher + 1, nil
}
