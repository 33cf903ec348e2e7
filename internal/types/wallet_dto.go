package types

// WalletLookupReq defines the request for looking up a registered wallet address.
type WalletLookupReq struct {
	UserId string `path:"userId"`
	Chain  string `form:"chain,optional"`
}

// WalletLookupResp 返回某用户在某条链上注册的地址
type WalletLookupResp struct {
	Address string `json:"address"`
}

// WalletRegisterReq defines the request body for registering a wallet address.
// 用户身份来自 x-user-id 请求头
type WalletRegisterReq struct {
	UserId  string `header:"x-user-id,optional"`
	Address string `json:"address"`
	Chain   string `json:"chain,optional"`
}

// WalletRegisterResp defines the response body for a successful registration.
type WalletRegisterResp struct {
	Success bool `json:"success"`
}

// WalletSessionReq 身份会话事件，驱动注册状态机
type WalletSessionReq struct {
	UserId        string `header:"x-user-id,optional"`
	Authenticated bool   `json:"authenticated"`
	// Addresses maps chain name to the address observed on the client, if any.
	Addresses map[string]string `json:"addresses,optional"`
}

// WalletSessionResp reports the registration state after processing the event.
type WalletSessionResp struct {
	State string `json:"state"`
}

// WalletBalancesReq defines the request for the aggregated balance view.
type WalletBalancesReq struct {
	UserId string `path:"userId"`
	Chain  string `form:"chain,optional"`
}

// WalletBalance 单条链的余额展示
type WalletBalance struct {
	Chain     string `json:"chain"`
	Symbol    string `json:"symbol"`
	Formatted string `json:"formatted"`
	// ValueUsd is omitted when the price lookup failed.
	ValueUsd *float64 `json:"valueUsd,omitempty"`
}

// WalletBalancesResp defines the aggregated balance response.
type WalletBalancesResp struct {
	Balances []WalletBalance `json:"balances"`
	// TotalUsd sums the known USD values; unknown values count as zero.
	TotalUsd float64 `json:"totalUsd"`
}

// WalletTransactionsReq defines the request for recent transaction history.
type WalletTransactionsReq struct {
	UserId string `path:"userId"`
	Chain  string `form:"chain,optional"`
}

// WalletTransaction 单条历史交易展示
type WalletTransaction struct {
	Hash      string `json:"hash"`
	Amount    string `json:"amount"`
	Token     string `json:"token"`
	Timestamp string `json:"timestamp"`
}

// WalletTransactionsResp defines the recent transaction history response.
type WalletTransactionsResp struct {
	Transactions []WalletTransaction `json:"transactions"`
}

// WalletSendReq defines the request body for sending SOL from the caller's
// embedded wallet.
type WalletSendReq struct {
	UserId         string `header:"x-user-id,optional"`
	ToAddress      string `json:"toAddress"`
	AmountLamports uint64 `json:"amountLamports"`
}

// WalletSendResp defines the response body for a confirmed transfer.
type WalletSendResp struct {
	Signature    string `json:"signature"`
	UsedFallback bool   `json:"usedFallback"`
	ExplorerUrl  string `json:"explorerUrl"`
}
