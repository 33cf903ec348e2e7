package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Investment corresponds to the investments table in the database.
type Investment struct {
	Id                   string          `gorm:"primaryKey"`
	SkillId              string          `gorm:"index"`
	InvestorId           string
	InvestorWallet       string          `gorm:"index"`
	InvestmentAmount     decimal.Decimal `gorm:"type:numeric(20,8)"`
	ExpectedMonthlyYield decimal.Decimal `gorm:"type:numeric(20,8)"`
	CurrentAPY           decimal.Decimal `gorm:"type:numeric(10,4)"`
	TotalYieldEarned     decimal.Decimal `gorm:"type:numeric(20,8)"`
	JobsCompleted        int64
	MonthlyJobRevenue    decimal.Decimal `gorm:"type:numeric(20,8)"`
	RiskScore            int64
	TransactionHash      string
	Status               string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (Investment) TableName() string {
	return "investments"
}

// JobRecord corresponds to the job_records table in the database.
type JobRecord struct {
	Id             string          `gorm:"primaryKey"`
	SkillId        string          `gorm:"index"`
	JobRevenue     decimal.Decimal `gorm:"type:numeric(20,8)"`
	JobDescription string
	CreatedAt      time.Time
}

func (JobRecord) TableName() string {
	return "job_records"
}
