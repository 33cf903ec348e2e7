package types

// ProfileView 用户画像对外展示结构
type ProfileView struct {
	Id                string `json:"id"`
	WalletAddress     string `json:"walletAddress"`
	DisplayName       string `json:"displayName,omitempty"`
	Bio               string `json:"bio,omitempty"`
	Avatar            string `json:"avatar,omitempty"`
	ReputationScore   int64  `json:"reputationScore"`
	TotalSkills       int64  `json:"totalSkills"`
	TotalEndorsements int64  `json:"totalEndorsements"`
	VerifiedSkills    int64  `json:"verifiedSkills"`
	LastActive        string `json:"lastActive"`
	JoinedAt          string `json:"joinedAt"`
}

// ProfileGetReq defines the request for fetching the caller's profile.
type ProfileGetReq struct {
	UserId        string `header:"x-user-id,optional"`
	WalletAddress string `form:"walletAddress,optional"`
}

// ProfileGetResp defines the profile response.
type ProfileGetResp struct {
	Profile ProfileView `json:"profile"`
}

// ProfileUpsertReq defines the request body for creating or updating a profile.
type ProfileUpsertReq struct {
	UserId        string `header:"x-user-id,optional"`
	WalletAddress string `json:"walletAddress"`
	DisplayName   string `json:"displayName,optional"`
	Bio           string `json:"bio,optional"`
	Avatar        string `json:"avatar,optional"`
}

// ProfileUpsertResp defines the response body for an upserted profile.
type ProfileUpsertResp struct {
	Profile ProfileView `json:"profile"`
}

// LeaderboardReq defines the request for the reputation leaderboard.
type LeaderboardReq struct {
	Limit int `form:"limit,optional"`
}

// LeaderboardResp defines the leaderboard response.
type LeaderboardResp struct {
	Profiles []ProfileView `json:"profiles"`
}
