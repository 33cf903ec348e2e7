package types

// DashboardReq defines the request for the dashboard view.
// userId 查询参数优先，缺省取 x-user-id 请求头
type DashboardReq struct {
	HeaderUserId string `header:"x-user-id,optional"`
	UserId       string `form:"userId,optional"`
}

// DashboardStats 仪表盘统计
type DashboardStats struct {
	TotalSkills       int64 `json:"totalSkills"`
	TotalEndorsements int64 `json:"totalEndorsements"`
	VerifiedSkills    int64 `json:"verifiedSkills"`
	ReputationScore   int64 `json:"reputationScore"`
	Rank              int64 `json:"rank"`
}

// DashboardResp defines the dashboard response.
type DashboardResp struct {
	Stats              DashboardStats    `json:"stats"`
	Skills             []SkillView       `json:"skills"`
	RecentEndorsements []EndorsementView `json:"recentEndorsements"`
}
