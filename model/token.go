package model

import "strings"

const NativeTokenAddress = "0x0000000000000000000000000000000000000000"

type TokenInfo struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Address  string `json:"address"`
	ChainID  int64  `json:"chainId"`
	Decimals int    `json:"decimals"`
	LogoURI  string `json:"logoURI"`
}

// IsNative reports whether the token is the chain's native coin (zero address)
func (t TokenInfo) IsNative() bool {
	return strings.EqualFold(t.Address, NativeTokenAddress)
}

// TokenInfos lists the swappable tokens per chain, the first two entries
// are the default from/to pair
var TokenInfos = map[int64][]TokenInfo{
	ChainIDBSC: {
		{
			Name:     "PancakeSwap Token",
			Symbol:   "CAKE",
			Address:  "0x0E09FaBB73Bd3Ade0a17ECC321fD13a19e81cE82",
			ChainID:  ChainIDBSC,
			Decimals: 18,
			LogoURI:  "https://tokens.pancakeswap.finance/images/0x0E09FaBB73Bd3Ade0a17ECC321fD13a19e81cE82.png",
		},
		{
			Name:     "Binance Pegged USDT",
			Symbol:   "USDT",
			Address:  "0x55d398326f99059fF775485246999027B3197955",
			ChainID:  ChainIDBSC,
			Decimals: 18,
			LogoURI:  "https://tokens.pancakeswap.finance/images/0x55d398326f99059fF775485246999027B3197955.png",
		},
	},
	ChainIDEthereum: {
		{
			Name:     "Ethereum",
			Symbol:   "ETH",
			Address:  NativeTokenAddress,
			ChainID:  ChainIDEthereum,
			Decimals: 18,
			LogoURI:  "https://tokens.pancakeswap.finance/images/0x0E09FaBB73Bd3Ade0a17ECC321fD13a19e81cE82.png",
		},
		{
			Name:     "USD Coin",
			Symbol:   "USDC",
			Address:  "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
			ChainID:  ChainIDEthereum,
			Decimals: 6,
			LogoURI:  "https://tokens.pancakeswap.finance/images/0x0E09FaBB73Bd3Ade0a17ECC321fD13a19e81cE82.png",
		},
	},
}

// DefaultPair returns the default from/to tokens of a chain
func DefaultPair(chainID int64) (from, to TokenInfo, ok bool) {
	tokens := TokenInfos[chainID]
	if len(tokens) < 2 {
		return TokenInfo{}, TokenInfo{}, false
	}
	return tokens[0], tokens[1], true
}

// FindToken looks a token up by symbol or address (case insensitive)
func FindToken(chainID int64, symbolOrAddress string) (TokenInfo, bool) {
	for _, t := range TokenInfos[chainID] {
		if strings.EqualFold(t.Symbol, symbolOrAddress) || strings.EqualFold(t.Address, symbolOrAddress) {
			return t, true
		}
	}
	return TokenInfo{}, false
}

// ERC20Info is the on-chain metadata read from a token contract
type ERC20Info struct {
	TokenAddress     string  `json:"token_address"`
	TokenName        string  `json:"token_name"`
	TokenSymbol      string  `json:"token_symbol"`
	ContractDecimals int64   `json:"contract_decimals"`
	TotalSupply      float64 `json:"total_supply"`
}
