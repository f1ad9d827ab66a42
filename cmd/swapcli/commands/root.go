package commands

import (
	"github.com/spf13/cobra"

	"github.com/duongtuttbn/swapkit/aggregator"
	"github.com/duongtuttbn/swapkit/client_pool"
	"github.com/duongtuttbn/swapkit/config"
	"github.com/duongtuttbn/swapkit/lerror"
	"github.com/duongtuttbn/swapkit/log"
	"github.com/duongtuttbn/swapkit/model"
	"github.com/duongtuttbn/swapkit/price"
	"github.com/duongtuttbn/swapkit/swap"
	"github.com/duongtuttbn/swapkit/wallet"
)

type RootFlags struct {
	EnvFile  string
	ChainID  int64
	Slippage float64
	From     string
	To       string
}

var (
	rootFlags = &RootFlags{}
	settings  config.Settings
)

var RootCmd = &cobra.Command{
	Use:   "swapcli",
	Short: "wallet balance, prices and PancakeSwap aggregator swaps",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		settings, err = config.Load(rootFlags.EnvFile)
		if err != nil {
			return err
		}
		log.SetLevel(settings.LogLevel)
		if !cmd.Flags().Changed("slippage") {
			rootFlags.Slippage = settings.Slippage
		}
		return nil
	},
	SilenceUsage: true,
}

func init() {
	fs := RootCmd.PersistentFlags()
	fs.StringVar(&rootFlags.EnvFile, "env", ".env", "dotenv file to load")
	fs.Int64Var(&rootFlags.ChainID, "chain", model.ChainIDBSC, "chain id (1 Ethereum, 56 BNB Chain)")
	fs.Float64Var(&rootFlags.Slippage, "slippage", config.DefaultSlippage, "slippage tolerance as a fraction, 0.005 is 0.5%")
	fs.StringVar(&rootFlags.From, "from", "", "symbol or address of the token to sell")
	fs.StringVar(&rootFlags.To, "to", "", "symbol or address of the token to buy")
}

func newPool(chainID int64) (*client_pool.ClientPool, error) {
	urls, ok := settings.RPCUrls[chainID]
	if !ok {
		return nil, lerror.UnsupportedChain.ToError(model.NetworkName(chainID) + " is not supported")
	}
	return client_pool.NewBasicClientPool(client_pool.Config{
		RpcUrls:        urls,
		ManualGasPrice: settings.ManualGasPrice,
	})
}

// newConnector builds a reader for every configured chain, chains whose
// endpoints cannot be set up are skipped
func newConnector() *wallet.Connector {
	readers := make(map[int64]wallet.ChainReader)
	for chainID := range settings.RPCUrls {
		pool, err := newPool(chainID)
		if err != nil {
			log.Warnf("skip %s: %v", model.NetworkName(chainID), err)
			continue
		}
		readers[chainID] = pool
	}
	return wallet.NewConnector(readers)
}

func newPriceClient() *price.Client {
	return price.NewClient(settings.CoingeckoHost, settings.HTTPTimeout)
}

func newSwapService(opts ...swap.Option) (*swap.Service, error) {
	agg := aggregator.NewClient(settings.AggregatorHost, settings.AggregatorToken,
		aggregator.WithRetries(settings.QuoteRetries, settings.QuoteInterval/10),
		aggregator.WithTimeout(settings.HTTPTimeout),
	)
	opts = append([]swap.Option{swap.WithQuoteTTL(settings.QuoteInterval)}, opts...)
	svc := swap.NewService(agg, newPriceClient(), opts...)
	if err := svc.SetChain(rootFlags.ChainID); err != nil {
		return nil, err
	}
	if err := svc.SetSlippage(rootFlags.Slippage); err != nil {
		return nil, err
	}
	if rootFlags.From == "" && rootFlags.To == "" {
		return svc, nil
	}
	from, to := svc.Tokens()
	var ok bool
	if rootFlags.From != "" {
		if from, ok = lookupToken(rootFlags.From); !ok {
			return nil, lerror.InvalidData.ToError("unknown token " + rootFlags.From)
		}
	}
	if rootFlags.To != "" {
		if to, ok = lookupToken(rootFlags.To); !ok {
			return nil, lerror.InvalidData.ToError("unknown token " + rootFlags.To)
		}
	}
	if err := svc.SelectTokens(from, to); err != nil {
		return nil, err
	}
	return svc, nil
}

func lookupToken(symbolOrAddress string) (model.TokenInfo, bool) {
	return model.FindToken(rootFlags.ChainID, symbolOrAddress)
}
