package types

import (
	"time"

	"skillpass/internal/model"
)

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// NewSkillView maps a skill row to its API shape.
func NewSkillView(s *model.Skill) SkillView {
	return SkillView{
		Id:               s.Id,
		UserId:           s.UserId,
		WalletAddress:    s.WalletAddress,
		Name:             s.Name,
		Category:         s.Category,
		Description:      s.Description,
		Level:            s.Level,
		Evidence:         s.Evidence,
		Verified:         s.Verified,
		Status:           s.Status,
		TotalStaked:      s.TotalStaked.String(),
		EndorsementCount: s.EndorsementCount,
		CreatedAt:        formatTime(s.CreatedAt),
		UpdatedAt:        formatTime(s.UpdatedAt),
	}
}

// NewEndorsementView maps an endorsement row to its API shape.
func NewEndorsementView(e *model.Endorsement, skillName string) EndorsementView {
	amount, _ := e.StakedAmount.Float64()
	return EndorsementView{
		Id:              e.Id,
		SkillId:         e.SkillId,
		SkillName:       skillName,
		EndorserId:      e.EndorserId,
		EndorserWallet:  e.EndorserWallet,
		EndorserName:    e.EndorserName,
		StakedAmount:    amount,
		StakeCurrency:   e.StakeCurrency,
		TransactionHash: e.TransactionHash,
		Message:         e.Message,
		Evidence:        e.Evidence,
		Active:          e.Active,
		Challenged:      e.Challenged,
		CreatedAt:       formatTime(e.CreatedAt),
	}
}

// NewInvestmentView maps an investment row to its API shape.
func NewInvestmentView(i *model.Investment, skillName string) InvestmentView {
	amount, _ := i.InvestmentAmount.Float64()
	expected, _ := i.ExpectedMonthlyYield.Float64()
	apy, _ := i.CurrentAPY.Float64()
	yield, _ := i.TotalYieldEarned.Float64()
	revenue, _ := i.MonthlyJobRevenue.Float64()
	return InvestmentView{
		Id:                   i.Id,
		SkillId:              i.SkillId,
		SkillName:            skillName,
		InvestorId:           i.InvestorId,
		InvestorWallet:       i.InvestorWallet,
		InvestmentAmount:     amount,
		ExpectedMonthlyYield: expected,
		CurrentAPY:           apy,
		TotalYieldEarned:     yield,
		JobsCompleted:        i.JobsCompleted,
		MonthlyJobRevenue:    revenue,
		RiskScore:            i.RiskScore,
		TransactionHash:      i.TransactionHash,
		Status:               i.Status,
		CreatedAt:            formatTime(i.CreatedAt),
	}
}

// NewProfileView maps a profile row to its API shape.
func NewProfileView(p *model.UserProfile) ProfileView {
	return ProfileView{
		Id:                p.Id,
		WalletAddress:     p.WalletAddress,
		DisplayName:       p.DisplayName,
		Bio:               p.Bio,
		Avatar:            p.Avatar,
		ReputationScore:   p.ReputationScore,
		TotalSkills:       p.TotalSkills,
		TotalEndorsements: p.TotalEndorsements,
		VerifiedSkills:    p.VerifiedSkills,
		LastActive:        formatTime(p.LastActive),
		JoinedAt:          formatTime(p.JoinedAt),
	}
}

// NewJobRecordView maps a job record row to its API shape.
func NewJobRecordView(j *model.JobRecord) JobRecordView {
	revenue, _ := j.JobRevenue.Float64()
	return JobRecordView{
		Id:             j.Id,
		SkillId:        j.SkillId,
		JobRevenue:     revenue,
		JobDescription: j.JobDescription,
		CreatedAt:      formatTime(j.CreatedAt),
	}
}
