package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duongtuttbn/swapkit/lerror"
	"github.com/duongtuttbn/swapkit/model"
	"github.com/duongtuttbn/swapkit/utils"
)

func NewCmd_Price() *cobra.Command {
	return &cobra.Command{
		Use:   "price [token]",
		Short: "USD price of the native coin or of a listed token",
		Args:  cobra.MaximumNArgs(1),
		RunE:  priceOf,
	}
}

func NewCmd_Token() *cobra.Command {
	return &cobra.Command{
		Use:   "token <address>",
		Short: "read ERC-20 metadata from the chain",
		Args:  cobra.ExactArgs(1),
		RunE:  tokenInfo,
	}
}

func priceOf(cmd *cobra.Command, args []string) error {
	prices := newPriceClient()
	symbol := model.NativeTokenSymbol(rootFlags.ChainID)
	var (
		usd *float64
		err error
	)
	if len(args) == 0 {
		usd, err = prices.NativeTokenPriceUSD(cmd.Context(), rootFlags.ChainID)
	} else {
		token, ok := lookupToken(args[0])
		if !ok {
			return lerror.InvalidData.ToError("unknown token " + args[0])
		}
		symbol = token.Symbol
		if token.IsNative() {
			usd, err = prices.NativeTokenPriceUSD(cmd.Context(), rootFlags.ChainID)
		} else {
			usd, err = prices.TokenPriceUSD(cmd.Context(), token.Address, rootFlags.ChainID)
		}
	}
	if err != nil {
		return err
	}
	fmt.Printf("%s Price: %s\n", symbol, utils.FormatUSDPrice(usd))
	return nil
}

func tokenInfo(cmd *cobra.Command, args []string) error {
	pool, err := newPool(rootFlags.ChainID)
	if err != nil {
		return err
	}
	info, err := pool.GetTokenInfo(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\nAddress: %s\nDecimals: %d\nTotal supply: %s\n",
		info.TokenName, info.TokenSymbol, info.TokenAddress, info.ContractDecimals,
		utils.NormalizeNumber(info.TotalSupply))
	return nil
}
