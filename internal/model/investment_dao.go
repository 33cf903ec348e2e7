package model

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvestmentWithSkill joins an investment with the name of its skill.
type InvestmentWithSkill struct {
	Investment
	SkillName string
}

// InvestmentsDao defines the interface for database operations on the
// investments and job_records tables.
type InvestmentsDao interface {
	Insert(ctx context.Context, data *Investment) error
	ListByWallet(ctx context.Context, wallet string) ([]*InvestmentWithSkill, error)
	ListActiveBySkill(ctx context.Context, skillId string) ([]*Investment, error)
	ListRecent(ctx context.Context, limit int) ([]*InvestmentWithSkill, error)
	// CreditYield 单条 UPDATE 原子累加收益与完成单数
	CreditYield(ctx context.Context, id string, yield decimal.Decimal, monthlyRevenue decimal.Decimal) error

	InsertJob(ctx context.Context, data *JobRecord) error
	ListJobsBySkill(ctx context.Context, skillId string) ([]*JobRecord, error)
}

type investmentsDao struct {
	db *gorm.DB
}

// NewInvestmentsDao creates a new instance of InvestmentsDao.
func NewInvestmentsDao(db *gorm.DB) InvestmentsDao {
	return &investmentsDao{
		db: db,
	}
}

// Insert adds a new record to the investments table.
func (d *investmentsDao) Insert(ctx context.Context, data *Investment) error {
	return d.db.WithContext(ctx).Create(data).Error
}

func (d *investmentsDao) joined(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx).Model(&Investment{}).
		Select("investments.*, skills.name AS skill_name").
		Joins("JOIN skills ON skills.id = investments.skill_id")
}

// ListByWallet retrieves all investments made from a wallet, newest first.
func (d *investmentsDao) ListByWallet(ctx context.Context, wallet string) ([]*InvestmentWithSkill, error) {
	var rows []*InvestmentWithSkill
	err := d.joined(ctx).
		Where("investments.investor_wallet = ?", wallet).
		Order("investments.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListActiveBySkill retrieves active investments backing one skill.
func (d *investmentsDao) ListActiveBySkill(ctx context.Context, skillId string) ([]*Investment, error) {
	var rows []*Investment
	err := d.db.WithContext(ctx).
		Where("skill_id = ? AND status = ?", skillId, "active").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListRecent retrieves the newest investments across all skills.
func (d *investmentsDao) ListRecent(ctx context.Context, limit int) ([]*InvestmentWithSkill, error) {
	var rows []*InvestmentWithSkill
	err := d.joined(ctx).
		Order("investments.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CreditYield atomically adds earned yield and bumps the completed job count.
func (d *investmentsDao) CreditYield(ctx context.Context, id string, yield decimal.Decimal, monthlyRevenue decimal.Decimal) error {
	return d.db.WithContext(ctx).Model(&Investment{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"total_yield_earned":  gorm.Expr("total_yield_earned + ?", yield),
			"jobs_completed":      gorm.Expr("jobs_completed + 1"),
			"monthly_job_revenue": monthlyRevenue,
		}).Error
}

// InsertJob adds a new record to the job_records table.
func (d *investmentsDao) InsertJob(ctx context.Context, data *JobRecord) error {
	return d.db.WithContext(ctx).Create(data).Error
}

// ListJobsBySkill retrieves completed job records for one skill, newest first.
func (d *investmentsDao) ListJobsBySkill(ctx context.Context, skillId string) ([]*JobRecord, error) {
	var rows []*JobRecord
	err := d.db.WithContext(ctx).
		Where("skill_id = ?", skillId).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
