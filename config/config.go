package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/duongtuttbn/swapkit/model"
)

const (
	DefaultAggregatorHost  = "https://test.hub.pancakeswap.com"
	DefaultCoingeckoHost   = "https://api.coingecko.com/api/v3"
	DefaultEthereumRPC     = "https://eth.llamarpc.com"
	DefaultBSCRPC          = "https://bsc-dataseed.binance.org"
	DefaultBalanceInterval = 10 * time.Second
	DefaultFeeInterval     = 15 * time.Second
	DefaultQuoteInterval   = 10 * time.Second
	DefaultPriceInterval   = 60 * time.Second
	DefaultQuoteRetries    = 1
	DefaultSlippage        = 0.005
	DefaultHTTPTimeout     = 30 * time.Second
)

// Settings keeps all configuration options of the toolkit
type Settings struct {
	// RPCUrls holds a comma separated pool of endpoints per chain id
	RPCUrls         map[int64]string
	ManualGasPrice  bool
	AggregatorHost  string
	AggregatorToken string
	CoingeckoHost   string
	LogLevel        string
	BalanceInterval time.Duration
	FeeInterval     time.Duration
	QuoteInterval   time.Duration
	PriceInterval   time.Duration
	QuoteRetries    int
	Slippage        float64
	HTTPTimeout     time.Duration
}

// Load reads an optional .env file (missing files are ignored) and then
// builds Settings from the environment.
func Load(envFiles ...string) (Settings, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(errors.Cause(err)) {
			return Settings{}, errors.Wrapf(err, "unable to load env file %s", f)
		}
	}
	return FromEnv(os.Getenv), nil
}

// FromEnv builds Settings from a lookup function, keys may be UPPER_CASE or lower_case
func FromEnv(getenv func(string) string) Settings {
	get := func(key, def string) string {
		for _, k := range []string{strings.ToUpper(key), strings.ToLower(key)} {
			if v := strings.TrimSpace(getenv(k)); v != "" {
				return v
			}
		}
		return def
	}
	getInt := func(key string, def int) int {
		if n, err := strconv.Atoi(get(key, "")); err == nil {
			return n
		}
		return def
	}
	getFloat := func(key string, def float64) float64 {
		if n, err := strconv.ParseFloat(get(key, ""), 64); err == nil {
			return n
		}
		return def
	}
	getBool := func(key string, def bool) bool {
		s := strings.ToLower(get(key, ""))
		if s == "" {
			return def
		}
		return s == "1" || s == "true" || s == "yes" || s == "on"
	}
	getDuration := func(key string, def time.Duration) time.Duration {
		if d, err := time.ParseDuration(get(key, "")); err == nil && d > 0 {
			return d
		}
		return def
	}

	st := Settings{
		RPCUrls: map[int64]string{
			model.ChainIDEthereum: get("ETH_RPC_URLS", DefaultEthereumRPC),
			model.ChainIDBSC:      get("BSC_RPC_URLS", DefaultBSCRPC),
		},
		ManualGasPrice:  getBool("MANUAL_GAS_PRICE", false),
		AggregatorHost:  strings.TrimRight(get("AGGREGATOR_HOST", DefaultAggregatorHost), "/"),
		AggregatorToken: get("AGGREGATOR_TOKEN", ""),
		CoingeckoHost:   strings.TrimRight(get("COINGECKO_HOST", DefaultCoingeckoHost), "/"),
		LogLevel:        get("LOG_LEVEL", "info"),
		BalanceInterval: getDuration("BALANCE_INTERVAL", DefaultBalanceInterval),
		FeeInterval:     getDuration("FEE_INTERVAL", DefaultFeeInterval),
		QuoteInterval:   getDuration("QUOTE_INTERVAL", DefaultQuoteInterval),
		PriceInterval:   getDuration("PRICE_INTERVAL", DefaultPriceInterval),
		QuoteRetries:    getInt("QUOTE_RETRIES", DefaultQuoteRetries),
		Slippage:        getFloat("SLIPPAGE", DefaultSlippage),
		HTTPTimeout:     getDuration("HTTP_TIMEOUT", DefaultHTTPTimeout),
	}
	if st.QuoteRetries < 0 {
		st.QuoteRetries = DefaultQuoteRetries
	}
	if st.Slippage < 0 || st.Slippage > 0.1 {
		st.Slippage = DefaultSlippage
	}
	return st
}
