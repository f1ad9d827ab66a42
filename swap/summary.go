package swap

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/duongtuttbn/swapkit/log"
	"github.com/duongtuttbn/swapkit/model"
	"github.com/duongtuttbn/swapkit/utils"
)

// Summary is the display form of a quote
type Summary struct {
	Network      string
	NativeSymbol string
	NativePrice  string
	FromSymbol   string
	ToSymbol     string
	InputAmount  string
	OutputAmount string
	Rate         string
	Slippage     string
	// GasUSD and GasNative are empty when no fee estimate is known
	GasUSD    string
	GasNative string
}

func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Network: %s\n", s.Network)
	fmt.Fprintf(&b, "%s Price: %s\n", s.NativeSymbol, s.NativePrice)
	fmt.Fprintf(&b, "%s %s -> %s %s\n", s.InputAmount, s.FromSymbol, s.OutputAmount, s.ToSymbol)
	fmt.Fprintf(&b, "Rate: 1 %s = %s %s\n", s.FromSymbol, s.Rate, s.ToSymbol)
	fmt.Fprintf(&b, "Slippage: %s", s.Slippage)
	if s.GasUSD != "" {
		fmt.Fprintf(&b, "\nEstimated Gas: %s", s.GasUSD)
		if s.GasNative != "" {
			fmt.Fprintf(&b, " (%s %s)", s.GasNative, s.NativeSymbol)
		}
	}
	return b.String()
}

// OutputAmount renders the quoted destination amount
func OutputAmount(q *model.Quote, to model.TokenInfo) string {
	if q == nil {
		return "0"
	}
	decimals := q.DstToken.Decimals
	if decimals == 0 {
		decimals = to.Decimals
	}
	return utils.ToDecimalString(q.DstAmount, utils.DefaultPrecision, decimals)
}

// Summarize quotes the current form and formats it. maxFeePerGas may be nil,
// a failing price lookup only blanks the USD values.
func (s *Service) Summarize(ctx context.Context, maxFeePerGas *big.Int) (Summary, error) {
	q, err := s.Quote(ctx)
	if err != nil {
		return Summary{}, err
	}
	chainID := s.ChainID()
	from, to := s.Tokens()

	var nativePrice *float64
	if s.prices != nil {
		if nativePrice, err = s.prices.NativeTokenPriceUSD(ctx, chainID); err != nil {
			log.Warnf("native token price unavailable: %v", err)
			nativePrice = nil
		}
	}

	output := OutputAmount(q, to)
	amount := s.Amount()
	sum := Summary{
		Network:      model.NetworkName(chainID),
		NativeSymbol: model.NativeTokenSymbol(chainID),
		NativePrice:  utils.FormatUSDPrice(nativePrice),
		FromSymbol:   from.Symbol,
		ToSymbol:     to.Symbol,
		InputAmount:  amount,
		OutputAmount: output,
		Rate:         utils.ExchangeRate(output, amount),
		Slippage:     utils.FormatSlippage(s.Slippage()),
	}
	if maxFeePerGas != nil {
		nativeDecimals := model.NativeDecimals(chainID)
		sum.GasUSD = utils.FormatUSDPrice(utils.GasCostUSD(maxFeePerGas, q.Gas, nativeDecimals, nativePrice))
		if wei := utils.GasCostWei(maxFeePerGas, q.Gas); wei != nil && nativePrice != nil {
			sum.GasNative = utils.ToDecimalString(wei.String(), utils.DefaultPrecision, nativeDecimals)
		}
	}
	return sum, nil
}
