package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/duongtuttbn/swapkit/log"
	"github.com/duongtuttbn/swapkit/utils"
	"github.com/duongtuttbn/swapkit/wallet"
)

func NewCmd_Balance() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <address>",
		Short: "show native balance and gas price of an address",
		Args:  cobra.ExactArgs(1),
		RunE:  balance,
	}
}

func NewCmd_Watch() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <address>",
		Short: "keep refreshing balance and gas price until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE:  watch,
	}
}

func balance(cmd *cobra.Command, args []string) error {
	connector := newConnector()
	if err := connector.Connect(cmd.Context(), args[0], rootFlags.ChainID); err != nil {
		return err
	}
	defer connector.Disconnect()

	status, err := connector.Snapshot(cmd.Context())
	if err != nil {
		return err
	}
	if status.NativePrice, err = newPriceClient().NativeTokenPriceUSD(cmd.Context(), status.ChainID); err != nil {
		log.Warnf("native price unavailable: %v", err)
	}
	fmt.Println(status)
	return nil
}

func watch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connector := newConnector()
	if err := connector.Connect(ctx, args[0], rootFlags.ChainID); err != nil {
		return err
	}
	defer connector.Disconnect()

	intervals := wallet.Intervals{
		Balance: settings.BalanceInterval,
		Fee:     settings.FeeInterval,
		Price:   settings.PriceInterval,
	}
	watcher := wallet.NewWatcher(connector, newPriceClient(), intervals, func(s wallet.Status) {
		fmt.Printf("%s\nUpdated: %s\n\n", s, utils.FormatLastUpdated(s.UpdatedAt, time.Now()))
	})
	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
