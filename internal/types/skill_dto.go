package types

// SkillView 技能对外展示结构
type SkillView struct {
	Id               string `json:"id"`
	UserId           string `json:"userId"`
	WalletAddress    string `json:"walletAddress"`
	Name             string `json:"name"`
	Category         string `json:"category"`
	Description      string `json:"description,omitempty"`
	Level            string `json:"level"`
	Evidence         string `json:"evidence,omitempty"`
	Verified         bool   `json:"verified"`
	Status           string `json:"status"`
	TotalStaked      string `json:"totalStaked"`
	EndorsementCount int64  `json:"endorsementCount"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

// SkillListReq defines the request for listing the caller's skills.
type SkillListReq struct {
	UserId string `header:"x-user-id,optional"`
}

// SkillListResp defines the skill listing response.
type SkillListResp struct {
	Skills []SkillView `json:"skills"`
}

// SkillCreateReq defines the request body for creating a skill.
type SkillCreateReq struct {
	UserId        string `header:"x-user-id,optional"`
	WalletAddress string `json:"walletAddress,optional"`
	Name          string `json:"name"`
	Category      string `json:"category"`
	Description   string `json:"description,optional"`
	Level         string `json:"level"`
	Evidence      string `json:"evidence,optional"`
}

// SkillCreateResp defines the response body for a created skill.
type SkillCreateResp struct {
	Skill SkillView `json:"skill"`
}

// SkillGetReq defines the request for fetching a single skill.
type SkillGetReq struct {
	UserId string `header:"x-user-id,optional"`
	Id     string `path:"id"`
}

// SkillGetResp defines the single skill response.
type SkillGetResp struct {
	Skill SkillView `json:"skill"`
}

// SkillUpdateReq defines the request body for updating a skill.
// 零值字段不更新
type SkillUpdateReq struct {
	UserId      string `header:"x-user-id,optional"`
	Id          string `path:"id"`
	Name        string `json:"name,optional"`
	Category    string `json:"category,optional"`
	Description string `json:"description,optional"`
	Level       string `json:"level,optional"`
	Evidence    string `json:"evidence,optional"`
}

// SkillUpdateResp defines the response body for an updated skill.
type SkillUpdateResp struct {
	Skill SkillView `json:"skill"`
}

// SkillDeleteReq defines the request for deleting a skill.
type SkillDeleteReq struct {
	UserId string `header:"x-user-id,optional"`
	Id     string `path:"id"`
}

// SkillDeleteResp defines the response body for a deleted skill.
type SkillDeleteResp struct {
	Success bool `json:"success"`
}

// EndorsableSkill 技能市场条目，附带持有人画像
type EndorsableSkill struct {
	SkillView
	OwnerName       string `json:"ownerName,omitempty"`
	OwnerAvatar     string `json:"ownerAvatar,omitempty"`
	OwnerReputation int64  `json:"ownerReputation"`
}

// EndorsableSkillsReq defines the request for the skill marketplace listing.
type EndorsableSkillsReq struct {
	Limit int `form:"limit,optional"`
}

// EndorsableSkillsResp defines the skill marketplace response.
type EndorsableSkillsResp struct {
	Skills []EndorsableSkill `json:"skills"`
}
