package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Skill corresponds to the skills table in the database.
type Skill struct {
	Id               string          `gorm:"primaryKey"`
	UserId           string          `gorm:"index"`
	WalletAddress    string
	Name             string
	Category         string
	Description      string
	Level            string
	Evidence         string
	Verified         bool
	Status           string
	TotalStaked      decimal.Decimal `gorm:"type:numeric(20,8)"`
	EndorsementCount int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Skill) TableName() string {
	return "skills"
}
