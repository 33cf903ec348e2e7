package types

// InvestmentView 投资记录对外展示结构
type InvestmentView struct {
	Id                   string  `json:"id"`
	SkillId              string  `json:"skillId"`
	SkillName            string  `json:"skillName,omitempty"`
	InvestorId           string  `json:"investorId,omitempty"`
	InvestorWallet       string  `json:"investorWallet"`
	InvestmentAmount     float64 `json:"investmentAmount"`
	ExpectedMonthlyYield float64 `json:"expectedMonthlyYield"`
	CurrentAPY           float64 `json:"currentAPY"`
	TotalYieldEarned     float64 `json:"totalYieldEarned"`
	JobsCompleted        int64   `json:"jobsCompleted"`
	MonthlyJobRevenue    float64 `json:"monthlyJobRevenue"`
	RiskScore            int64   `json:"riskScore"`
	TransactionHash      string  `json:"transactionHash,omitempty"`
	Status               string  `json:"status"`
	CreatedAt            string  `json:"createdAt"`
}

// InvestmentCreateReq defines the request body for investing into a skill.
type InvestmentCreateReq struct {
	UserId           string  `header:"x-user-id,optional"`
	SkillId          string  `json:"skillId"`
	InvestmentAmount float64 `json:"investmentAmount"`
	InvestorWallet   string  `json:"investorWallet"`
	TransactionHash  string  `json:"transactionHash,optional"`
}

// InvestmentCreateResp defines the response body for a created investment.
type InvestmentCreateResp struct {
	Investment   InvestmentView `json:"investment"`
	ProjectedAPY float64        `json:"projectedAPY"`
}

// PortfolioReq defines the request for an investor's portfolio.
type PortfolioReq struct {
	WalletAddress string `form:"walletAddress"`
}

// PortfolioResp 投资组合与收益统计
type PortfolioResp struct {
	Investments       []InvestmentView `json:"investments"`
	TotalInvested     float64          `json:"totalInvested"`
	TotalYieldEarned  float64          `json:"totalYieldEarned"`
	ExpectedMonthly   float64          `json:"expectedMonthly"`
	AverageAPY        float64          `json:"averageAPY"`
	AverageRiskScore  float64          `json:"averageRiskScore"`
	ActiveInvestments int              `json:"activeInvestments"`
}

// RecentInvestmentsReq defines the request for the recent investments feed.
type RecentInvestmentsReq struct {
	Limit int `form:"limit,optional"`
}

// RecentInvestmentsResp defines the recent investments feed response.
type RecentInvestmentsResp struct {
	Investments []InvestmentView `json:"investments"`
}

// JobCompleteReq defines the request body for recording completed job revenue.
type JobCompleteReq struct {
	SkillId           string  `json:"skillId"`
	JobRevenue        float64 `json:"jobRevenue"`
	SkillOwnerAddress string  `json:"skillOwnerAddress"`
	JobDescription    string  `json:"jobDescription,optional"`
}

// RevenueSplit 平台抽成分配明细
type RevenueSplit struct {
	PlatformFee   float64 `json:"platformFee"`
	InvestorShare float64 `json:"investorShare"`
	OwnerBonus    float64 `json:"ownerBonus"`
	TreasuryShare float64 `json:"treasuryShare"`
	OwnerPayout   float64 `json:"ownerPayout"`
}

// JobCompleteResp defines the response body for a recorded job.
type JobCompleteResp struct {
	JobId             string       `json:"jobId"`
	Split             RevenueSplit `json:"split"`
	InvestorsCredited int          `json:"investorsCredited"`
}

// JobRecordView 已完成工作记录展示
type JobRecordView struct {
	Id             string  `json:"id"`
	SkillId        string  `json:"skillId"`
	JobRevenue     float64 `json:"jobRevenue"`
	JobDescription string  `json:"jobDescription,omitempty"`
	CreatedAt      string  `json:"createdAt"`
}

// JobHistoryReq defines the request for a skill's job history.
type JobHistoryReq struct {
	SkillId string `form:"skillId"`
}

// JobHistoryResp defines the job history response.
type JobHistoryResp struct {
	Jobs           []JobRecordView `json:"jobs"`
	TotalRevenue   float64         `json:"totalRevenue"`
	JobsCompleted  int             `json:"jobsCompleted"`
	AverageRevenue float64         `json:"averageRevenue"`
}
