package model

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SkillsDao defines the interface for database operations on the skills table.
type SkillsDao interface {
	Insert(ctx context.Context, data *Skill) error
	FindOne(ctx context.Context, id string) (*Skill, error)
	FindOneByUser(ctx context.Context, id, userId string) (*Skill, error)
	FindByUser(ctx context.Context, userId string) ([]*Skill, error)
	ListEndorsable(ctx context.Context, limit int) ([]*Skill, error)
	Update(ctx context.Context, data *Skill) error
	Delete(ctx context.Context, id, userId string) (int64, error)
	// AddEndorsementStake 单条 UPDATE 原子累加质押额与背书数
	AddEndorsementStake(ctx context.Context, id string, amount decimal.Decimal) error
	CountByUser(ctx context.Context, userId string) (total, verified int64, err error)
}

type skillsDao struct {
	db *gorm.DB
}

// NewSkillsDao creates a new instance of SkillsDao.
func NewSkillsDao(db *gorm.DB) SkillsDao {
	return &skillsDao{
		db: db,
	}
}

// Insert adds a new record to the skills table.
func (d *skillsDao) Insert(ctx context.Context, data *Skill) error {
	return d.db.WithContext(ctx).Create(data).Error
}

// FindOne retrieves a single skill by id.
func (d *skillsDao) FindOne(ctx context.Context, id string) (*Skill, error) {
	var resp Skill
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resp, nil
}

// FindOneByUser retrieves a single skill scoped to its owner.
func (d *skillsDao) FindOneByUser(ctx context.Context, id, userId string) (*Skill, error) {
	var resp Skill
	err := d.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userId).First(&resp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &resp, nil
}

// FindByUser retrieves all skills owned by a user, newest first.
func (d *skillsDao) FindByUser(ctx context.Context, userId string) ([]*Skill, error) {
	var skills []*Skill
	err := d.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Find(&skills).Error
	if err != nil {
		return nil, err
	}
	return skills, nil
}

// ListEndorsable retrieves active skills for the marketplace view.
func (d *skillsDao) ListEndorsable(ctx context.Context, limit int) ([]*Skill, error) {
	var skills []*Skill
	err := d.db.WithContext(ctx).
		Where("status = ?", "active").
		Order("verified DESC, endorsement_count DESC, created_at DESC").
		Limit(limit).
		Find(&skills).Error
	if err != nil {
		return nil, err
	}
	return skills, nil
}

// Update persists all fields of an existing skill.
func (d *skillsDao) Update(ctx context.Context, data *Skill) error {
	return d.db.WithContext(ctx).Save(data).Error
}

// Delete removes a skill scoped to its owner and reports affected rows.
func (d *skillsDao) Delete(ctx context.Context, id, userId string) (int64, error) {
	res := d.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userId).Delete(&Skill{})
	return res.RowsAffected, res.Error
}

// AddEndorsementStake atomically bumps the stake total and endorsement count.
func (d *skillsDao) AddEndorsementStake(ctx context.Context, id string, amount decimal.Decimal) error {
	return d.db.WithContext(ctx).Model(&Skill{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"total_staked":      gorm.Expr("total_staked + ?", amount),
			"endorsement_count": gorm.Expr("endorsement_count + 1"),
		}).Error
}

// CountByUser returns total and verified skill counts for a user.
func (d *skillsDao) CountByUser(ctx context.Context, userId string) (int64, int64, error) {
	var total, verified int64
	if err := d.db.WithContext(ctx).Model(&Skill{}).Where("user_id = ?", userId).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := d.db.WithContext(ctx).Model(&Skill{}).Where("user_id = ? AND verified = ?", userId, true).Count(&verified).Error; err != nil {
		return 0, 0, err
	}
	return total, verified, nil
}
