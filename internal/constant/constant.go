package constant

type Chain string

const (
	ChainSolana   Chain = "solana"
	ChainEthereum Chain = "ethereum"
)

// SupportedChains lists all chains a wallet can be registered for.
var SupportedChains = []Chain{
	ChainSolana,
	ChainEthereum,
}

// IsChainSupported checks if a given chain is in the list of supported chains.
func IsChainSupported(chain string) bool {
	for _, supportedChain := range SupportedChains {
		if string(supportedChain) == chain {
			return true
		}
	}
	return false
}

// DefaultChain 未指定链时的默认值
const DefaultChain = ChainSolana

// SkillLevels lists the accepted proficiency levels, in ascending order.
var SkillLevels = []string{"Beginner", "Intermediate", "Advanced", "Expert"}

// IsSkillLevel checks if level is one of the accepted proficiency levels.
func IsSkillLevel(level string) bool {
	for _, l := range SkillLevels {
		if l == level {
			return true
		}
	}
	return false
}

const (
	SkillStatusActive = "active"

	EndorsementCurrencySOL = "SOL"

	InvestmentStatusActive = "active"

	// MinInvestmentAmount REPR 投资的最低额度
	MinInvestmentAmount = 50.0
)
