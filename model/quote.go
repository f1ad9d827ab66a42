package model

type (
	QuoteRequest struct {
		ChainID   int64  `json:"chainId"`
		Src       string `json:"src"`
		Dst       string `json:"dst"`
		AmountIn  string `json:"amountIn"`
		MaxHops   string `json:"maxHops,omitempty"`
		MaxSplits string `json:"maxSplits,omitempty"`
		GasPrice  string `json:"gasPrice,omitempty"`
	}

	AggregatorToken struct {
		Address  string `json:"address"`
		Decimals int    `json:"decimals"`
		Symbol   string `json:"symbol"`
		Name     string `json:"name"`
		ChainID  int64  `json:"chainId"`
		IsNative bool   `json:"isNative,omitempty"`
		IsToken  bool   `json:"isToken,omitempty"`
	}

	PoolInfo struct {
		Type              int             `json:"type"`
		LiquidityProvider string          `json:"liquidityProvider"`
		Address           string          `json:"address"`
		Token0            AggregatorToken `json:"token0"`
		Token1            AggregatorToken `json:"token1"`
		Fee               int64           `json:"fee"`
		Liquidity         string          `json:"liquidity"`
		SqrtRatioX96      string          `json:"sqrtRatioX96"`
		Tick              int64           `json:"tick"`
		Token0ProtocolFee string          `json:"token0ProtocolFee"`
		Token1ProtocolFee string          `json:"token1ProtocolFee"`
		Reserve0          string          `json:"reserve0"`
		Reserve1          string          `json:"reserve1"`
	}

	Protocol struct {
		Percent      float64           `json:"percent"`
		Path         []AggregatorToken `json:"path"`
		Pools        []PoolInfo        `json:"pools"`
		InputAmount  string            `json:"inputAmount"`
		OutputAmount string            `json:"outputAmount"`
	}

	Quote struct {
		SrcToken   AggregatorToken `json:"srcToken"`
		DstToken   AggregatorToken `json:"dstToken"`
		FromAmount string          `json:"fromAmount"`
		DstAmount  string          `json:"dstAmount"`
		Protocols  []Protocol      `json:"protocols"`
		Gas        uint64          `json:"gas"`
	}

	// CalldataRequest is the quote echoed back with the swap settings
	CalldataRequest struct {
		Quote
		Recipient         string  `json:"recipient,omitempty"`
		SlippageTolerance float64 `json:"slippageTolerance,omitempty"`
	}

	Calldata struct {
		Calldata string `json:"calldata"`
		Value    string `json:"value"`
		To       string `json:"to"`
	}
)
