package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Endorsement corresponds to the endorsements table in the database.
// TransactionHash 客户端上报原文，未做链上校验
type Endorsement struct {
	Id              string          `gorm:"primaryKey"`
	SkillId         string          `gorm:"index"`
	EndorserId      string
	EndorserWallet  string
	EndorserName    string
	StakedAmount    decimal.Decimal `gorm:"type:numeric(20,8)"`
	StakeCurrency   string
	TransactionHash string
	Message         string
	Evidence        string
	Active          bool
	Challenged      bool
	Resolved        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Endorsement) TableName() string {
	return "endorsements"
}
