package model

import "time"

// UserProfile corresponds to the user_profiles table in the database.
type UserProfile struct {
	Id                string `gorm:"primaryKey"`
	WalletAddress     string `gorm:"uniqueIndex"`
	DisplayName       string
	Bio               string
	Avatar            string
	ReputationScore   int64
	TotalSkills       int64
	TotalEndorsements int64
	VerifiedSkills    int64
	LastActive        time.Time
	JoinedAt          time.Time
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
