package config

import "github.com/zeromicro/go-zero/rest"

type ChainsConf struct {
	EthereumRpcUrl string `json:",default=https://eth.llamarpc.com"`
	SolanaRpcUrl   string `json:",default=https://api.mainnet-beta.solana.com"`
	// SolanaFallbackRpcUrls 失败切换的备选节点，按顺序尝试
	SolanaFallbackRpcUrls []string `json:",optional"`
}

type Config struct {
	rest.RestConf
	Postgres struct {
		DSN string
	}
	WalletStore struct {
		Path string `json:",default=data/wallets.json"`
	}
	Chains    ChainsConf `json:",optional"`
	Etherscan struct {
		ApiUrl string `json:",default=https://api.etherscan.io/api"`
		ApiKey string `json:",optional"`
	} `json:",optional"`
	CoinGecko struct {
		ApiUrl string `json:",default=https://api.coingecko.com/api/v3"`
	} `json:",optional"`
	Nats struct {
		Url     string `json:",optional"`
		Subject string `json:",default=skillpass.events"`
	} `json:",optional"`
	Monitor struct {
		RefreshSeconds int `json:",default=30"`
	} `json:",optional"`
}

// DefaultSolanaFallbacks is used when no fallback list is configured.
var DefaultSolanaFallbacks = []string{
	"https://solana-api.projectserum.com",
	"https://rpc.ankr.com/solana",
	"https://api.mainnet-beta.solana.com",
}
