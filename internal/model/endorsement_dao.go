package model

import (
	"context"

	"gorm.io/gorm"
)

// EndorsementWithSkill joins an endorsement with the name of its skill.
type EndorsementWithSkill struct {
	Endorsement
	SkillName string
}

// EndorsementsDao defines the interface for database operations on the
// endorsements table.
type EndorsementsDao interface {
	Insert(ctx context.Context, data *Endorsement) error
	ListBySkill(ctx context.Context, skillId string, limit int) ([]*EndorsementWithSkill, error)
	// ListByOwner 列出某用户名下所有技能收到的背书
	ListByOwner(ctx context.Context, userId string, limit int) ([]*EndorsementWithSkill, error)
	ListRecent(ctx context.Context, limit int) ([]*EndorsementWithSkill, error)
	CountByOwner(ctx context.Context, userId string) (int64, error)
}

type endorsementsDao struct {
	db *gorm.DB
}

// NewEndorsementsDao creates a new instance of EndorsementsDao.
func NewEndorsementsDao(db *gorm.DB) EndorsementsDao {
	return &endorsementsDao{
		db: db,
	}
}

// Insert adds a new record to the endorsements table.
func (d *endorsementsDao) Insert(ctx context.Context, data *Endorsement) error {
	return d.db.WithContext(ctx).Create(data).Error
}

func (d *endorsementsDao) joined(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx).Model(&Endorsement{}).
		Select("endorsements.*, skills.name AS skill_name").
		Joins("JOIN skills ON skills.id = endorsements.skill_id")
}

// ListBySkill retrieves endorsements for one skill, newest first.
func (d *endorsementsDao) ListBySkill(ctx context.Context, skillId string, limit int) ([]*EndorsementWithSkill, error) {
	var rows []*EndorsementWithSkill
	err := d.joined(ctx).
		Where("endorsements.skill_id = ?", skillId).
		Order("endorsements.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByOwner retrieves endorsements received across a user's skills.
func (d *endorsementsDao) ListByOwner(ctx context.Context, userId string, limit int) ([]*EndorsementWithSkill, error) {
	var rows []*EndorsementWithSkill
	err := d.joined(ctx).
		Where("skills.user_id = ?", userId).
		Order("endorsements.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListRecent retrieves the newest endorsements across all skills.
func (d *endorsementsDao) ListRecent(ctx context.Context, limit int) ([]*EndorsementWithSkill, error) {
	var rows []*EndorsementWithSkill
	err := d.joined(ctx).
		Order("endorsements.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountByOwner counts endorsements received across a user's skills.
func (d *endorsementsDao) CountByOwner(ctx context.Context, userId string) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&Endorsement{}).
		Joins("JOIN skills ON skills.id = endorsements.skill_id").
		Where("skills.user_id = ?", userId).
		Count(&count).Error
	return count, err
}
