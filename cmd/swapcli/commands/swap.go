package commands

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/duongtuttbn/swapkit/log"
	"github.com/duongtuttbn/swapkit/swap"
)

func NewCmd_Quote() *cobra.Command {
	return &cobra.Command{
		Use:   "quote <amount>",
		Short: "quote a swap of amount --from tokens into --to tokens",
		Args:  cobra.ExactArgs(1),
		RunE:  quote,
	}
}

func NewCmd_Swap() *cobra.Command {
	return &cobra.Command{
		Use:   "swap <amount> <recipient>",
		Short: "build swap calldata for recipient and submit a simulated transaction",
		Args:  cobra.ExactArgs(2),
		RunE:  submitSwap,
	}
}

// maxFeePerGas is optional for a summary, a failing endpoint only hides the gas line
func maxFeePerGas(cmd *cobra.Command) *big.Int {
	pool, err := newPool(rootFlags.ChainID)
	if err != nil {
		log.Warnf("gas estimate unavailable: %v", err)
		return nil
	}
	fee, err := pool.MaxFeePerGas(cmd.Context())
	if err != nil {
		log.Warnf("gas estimate unavailable: %v", err)
		return nil
	}
	return fee
}

func quote(cmd *cobra.Command, args []string) error {
	svc, err := newSwapService()
	if err != nil {
		return err
	}
	if err := svc.SetAmount(args[0]); err != nil {
		return err
	}
	summary, err := svc.Summarize(cmd.Context(), maxFeePerGas(cmd))
	if err != nil {
		return err
	}
	fmt.Println(summary)
	return nil
}

func submitSwap(cmd *cobra.Command, args []string) error {
	svc, err := newSwapService(swap.WithSwapListener(func(r swap.Result) {
		log.WithField("chain", r.ChainID).Debugf("quotes invalidated after %s", r.TxHash)
	}))
	if err != nil {
		return err
	}
	if err := svc.SetAmount(args[0]); err != nil {
		return err
	}
	summary, err := svc.Summarize(cmd.Context(), maxFeePerGas(cmd))
	if err != nil {
		return err
	}
	fmt.Println(summary)

	res, err := svc.ExecuteSwap(cmd.Context(), args[1])
	if err != nil {
		return err
	}
	fmt.Printf("\nTransaction: %s\nExplorer: %s\n", res.TxHash, res.ExplorerURL)
	return nil
}
