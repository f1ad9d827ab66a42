package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNetworkName(t *testing.T) {
	require.Equal(t, "Unknown", NetworkName(0))
	require.Equal(t, "Ethereum", NetworkName(ChainIDEthereum))
	require.Equal(t, "BNB Chain", NetworkName(ChainIDBSC))
	require.Equal(t, "Chain ID: 10", NetworkName(10))
}

func TestNativeTokenSymbol(t *testing.T) {
	require.Equal(t, "ETH", NativeTokenSymbol(1))
	require.Equal(t, "BNB", NativeTokenSymbol(56))
	require.Equal(t, "MATIC", NativeTokenSymbol(137))
	require.Equal(t, "Native Token", NativeTokenSymbol(42161))
}

func TestDefaultPair(t *testing.T) {
	from, to, ok := DefaultPair(ChainIDEthereum)
	require.True(t, ok)
	require.Equal(t, "ETH", from.Symbol)
	require.True(t, from.IsNative())
	require.Equal(t, "USDC", to.Symbol)
	require.Equal(t, 6, to.Decimals)

	_, _, ok = DefaultPair(137)
	require.False(t, ok)
}

func TestFindToken(t *testing.T) {
	tok, ok := FindToken(ChainIDBSC, "cake")
	require.True(t, ok)
	require.Equal(t, "0x0E09FaBB73Bd3Ade0a17ECC321fD13a19e81cE82", tok.Address)

	tok, ok = FindToken(ChainIDBSC, "0x55d398326f99059ff775485246999027b3197955")
	require.True(t, ok)
	require.Equal(t, "USDT", tok.Symbol)

	_, ok = FindToken(ChainIDBSC, "DOGE")
	require.False(t, ok)
}

func TestExplorerTxURL(t *testing.T) {
	require.Equal(t, "https://etherscan.io/tx/0xabc", ExplorerTxURL(1, "0xabc"))
	require.Equal(t, "https://bscscan.com/tx/0xabc", ExplorerTxURL(56, "0xabc"))
	require.Equal(t, "https://explorer.blockchain.com/tx/0xabc", ExplorerTxURL(10, "0xabc"))
}

func TestCalldataRequestJSON(t *testing.T) {
	req := CalldataRequest{
		Quote: Quote{
			FromAmount: "1000",
			DstAmount:  "2000",
			Gas:        150000,
		},
		Recipient:         "0x1111111111111111111111111111111111111111",
		SlippageTolerance: 0.005,
	}
	raw, err := json.Marshal(req)
	require.NoError(t, err)

	var flat map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &flat))
	require.Equal(t, "1000", flat["fromAmount"])
	require.Equal(t, "2000", flat["dstAmount"])
	require.Equal(t, float64(150000), flat["gas"])
	require.Equal(t, 0.005, flat["slippageTolerance"])
	require.Equal(t, "0x1111111111111111111111111111111111111111", flat["recipient"])
}
