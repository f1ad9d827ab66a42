package model

import "fmt"

const (
	ChainIDEthereum int64 = 1
	ChainIDBSC      int64 = 56
	ChainIDPolygon  int64 = 137
)

type (
	NativeCurrency struct {
		Name     string `json:"name"`
		Symbol   string `json:"symbol"`
		Decimals int    `json:"decimals"`
	}

	ChainInfo struct {
		ID             int64          `json:"id"`
		Name           string         `json:"name"`
		NativeCurrency NativeCurrency `json:"nativeCurrency"`
		ExplorerURL    string         `json:"explorerUrl"`
	}
)

var SupportedChains = []ChainInfo{
	{
		ID:   ChainIDEthereum,
		Name: "Ethereum",
		NativeCurrency: NativeCurrency{
			Name:     "Ether",
			Symbol:   "ETH",
			Decimals: 18,
		},
		ExplorerURL: "https://etherscan.io",
	},
	{
		ID:   ChainIDBSC,
		Name: "BNB Chain",
		NativeCurrency: NativeCurrency{
			Name:     "BNB",
			Symbol:   "BNB",
			Decimals: 18,
		},
		ExplorerURL: "https://bscscan.com",
	},
}

func FindChain(id int64) (ChainInfo, bool) {
	for _, c := range SupportedChains {
		if c.ID == id {
			return c, true
		}
	}
	return ChainInfo{}, false
}

// NativeDecimals falls back to 18 for unknown chains
func NativeDecimals(id int64) int {
	if c, ok := FindChain(id); ok {
		return c.NativeCurrency.Decimals
	}
	return 18
}

func NetworkName(id int64) string {
	switch id {
	case 0:
		return "Unknown"
	case ChainIDEthereum:
		return "Ethereum"
	case ChainIDBSC:
		return "BNB Chain"
	default:
		return fmt.Sprintf("Chain ID: %d", id)
	}
}

func NativeTokenSymbol(id int64) string {
	switch id {
	case ChainIDEthereum:
		return "ETH"
	case ChainIDBSC:
		return "BNB"
	case ChainIDPolygon:
		return "MATIC"
	default:
		return "Native Token"
	}
}

func ExplorerTxURL(chainID int64, txHash string) string {
	base := "https://explorer.blockchain.com"
	if c, ok := FindChain(chainID); ok {
		base = c.ExplorerURL
	}
	return base + "/tx/" + txHash
}
