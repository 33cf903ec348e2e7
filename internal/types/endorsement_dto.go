package types

// EndorsementView 背书对外展示结构
type EndorsementView struct {
	Id              string  `json:"id"`
	SkillId         string  `json:"skillId"`
	SkillName       string  `json:"skillName,omitempty"`
	EndorserId      string  `json:"endorserId,omitempty"`
	EndorserWallet  string  `json:"endorserWallet"`
	EndorserName    string  `json:"endorserName,omitempty"`
	StakedAmount    float64 `json:"stakedAmount"`
	StakeCurrency   string  `json:"stakeCurrency"`
	TransactionHash string  `json:"transactionHash"`
	Message         string  `json:"message,omitempty"`
	Evidence        string  `json:"evidence,omitempty"`
	Active          bool    `json:"active"`
	Challenged      bool    `json:"challenged"`
	CreatedAt       string  `json:"createdAt"`
}

// PaymentReq defines the request body for recording a stake payment
// against a skill link.
// 交易哈希原样入库，不做链上校验
type PaymentReq struct {
	UserId          string  `header:"x-user-id,optional"`
	SkillId         string  `path:"id"`
	StakeAmount     float64 `json:"stakeAmount"`
	TransactionHash string  `json:"transactionHash"`
	EndorserAddress string  `json:"endorserAddress"`
	EndorserName    string  `json:"endorserName,optional"`
	Currency        string  `json:"currency,optional"`
	Message         string  `json:"message,optional"`
	Evidence        string  `json:"evidence,optional"`
}

// PaymentResp defines the response body for a recorded payment.
type PaymentResp struct {
	Endorsement EndorsementView `json:"endorsement"`
}

// EndorsementListReq defines the request for listing endorsements.
type EndorsementListReq struct {
	SkillId string `form:"skillId,optional"`
	UserId  string `form:"userId,optional"`
	Limit   int    `form:"limit,optional"`
}

// EndorsementListResp defines the endorsement listing response.
type EndorsementListResp struct {
	Endorsements []EndorsementView `json:"endorsements"`
}

// EndorsementCreateReq defines the request body for a direct endorsement.
type EndorsementCreateReq struct {
	UserId          string  `header:"x-user-id,optional"`
	SkillId         string  `json:"skillId"`
	StakedAmount    float64 `json:"stakedAmount"`
	EndorserWallet  string  `json:"endorserWallet"`
	EndorserName    string  `json:"endorserName,optional"`
	TransactionHash string  `json:"transactionHash,optional"`
	Message         string  `json:"message,optional"`
	Evidence        string  `json:"evidence,optional"`
}

// EndorsementCreateResp defines the response body for a created endorsement.
type EndorsementCreateResp struct {
	Endorsement EndorsementView `json:"endorsement"`
}
