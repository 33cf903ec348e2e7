package model

import "time"

// EmbeddedWallet corresponds to the embedded_wallets table in the database.
// 服务端托管的内置钱包，每个 (user_id, chain_type) 一条
type EmbeddedWallet struct {
	Id                  int64  `gorm:"primaryKey;autoIncrement"`
	UserId              string `gorm:"uniqueIndex:idx_embedded_wallets_user_chain"`
	ChainType           string `gorm:"uniqueIndex:idx_embedded_wallets_user_chain"`
	Address             string `gorm:"index"`
	EncryptedPrivateKey string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (EmbeddedWallet) TableName() string {
	return "embedded_wallets"
}
