package commands

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/duongtuttbn/swapkit/config"
	"github.com/duongtuttbn/swapkit/lerror"
	"github.com/duongtuttbn/swapkit/model"
)

func withFlags(t *testing.T, flags RootFlags) {
	t.Helper()
	prevFlags, prevSettings := *rootFlags, settings
	t.Cleanup(func() {
		*rootFlags = prevFlags
		settings = prevSettings
	})
	*rootFlags = flags
	settings = config.FromEnv(func(string) string { return "" })
}

func TestNewSwapServiceDefaults(t *testing.T) {
	withFlags(t, RootFlags{ChainID: model.ChainIDBSC, Slippage: 0.01})

	svc, err := newSwapService()
	require.NoError(t, err)
	from, to := svc.Tokens()
	require.Equal(t, "CAKE", from.Symbol)
	require.Equal(t, "USDT", to.Symbol)
	require.Equal(t, 0.01, svc.Slippage())
}

func TestNewSwapServiceTokenFlags(t *testing.T) {
	withFlags(t, RootFlags{ChainID: model.ChainIDEthereum, Slippage: 0.005, From: "usdc", To: model.NativeTokenAddress})

	svc, err := newSwapService()
	require.NoError(t, err)
	from, to := svc.Tokens()
	require.Equal(t, "USDC", from.Symbol)
	require.Equal(t, "ETH", to.Symbol)
}

func TestNewSwapServiceErrors(t *testing.T) {
	withFlags(t, RootFlags{ChainID: model.ChainIDPolygon, Slippage: 0.005})
	_, err := newSwapService()
	require.True(t, lerror.HasCode(err, lerror.UnsupportedChain))

	withFlags(t, RootFlags{ChainID: model.ChainIDBSC, Slippage: 0.5})
	_, err = newSwapService()
	require.True(t, lerror.HasCode(err, lerror.InvalidData))

	withFlags(t, RootFlags{ChainID: model.ChainIDBSC, Slippage: 0.005, From: "DOGE"})
	_, err = newSwapService()
	require.True(t, lerror.HasCode(err, lerror.InvalidData))
}

func TestNewPool(t *testing.T) {
	withFlags(t, RootFlags{ChainID: model.ChainIDBSC})
	_, err := newPool(model.ChainIDPolygon)
	require.True(t, lerror.HasCode(err, lerror.UnsupportedChain))
}
