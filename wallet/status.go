package wallet

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/duongtuttbn/swapkit/concurrency"
	"github.com/duongtuttbn/swapkit/lerror"
	"github.com/duongtuttbn/swapkit/log"
	"github.com/duongtuttbn/swapkit/model"
	"github.com/duongtuttbn/swapkit/utils"
)

// Status is the display state of a connected wallet
type Status struct {
	Address string
	ChainID int64
	Balance Balance
	// GasPrice and NativePrice stay nil until a refresh succeeds
	GasPrice    *big.Int
	NativePrice *float64
	UpdatedAt   time.Time
}

func (s Status) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Connected: %s\n", utils.ShortAddress(s.Address))
	fmt.Fprintf(&b, "Network: %s\n", model.NetworkName(s.ChainID))
	fmt.Fprintf(&b, "%s Price: %s\n", model.NativeTokenSymbol(s.ChainID), utils.FormatUSDPrice(s.NativePrice))
	fmt.Fprintf(&b, "Balance: %s %s\n", utils.FormatBalance(s.Balance.Value, s.Balance.Decimals), s.Balance.Symbol)
	fmt.Fprintf(&b, "Gas price: %s", utils.FormatGasPrice(s.GasPrice))
	return b.String()
}

// Snapshot reads balance and fee in parallel. Only a balance failure is an
// error, without a fee estimate GasPrice is left nil.
func (c *Connector) Snapshot(ctx context.Context) (Status, error) {
	account, ok := c.Account()
	if !ok {
		return Status{}, lerror.WalletDisconnected.ToError()
	}
	status := Status{Address: account.Hex(), ChainID: c.ChainID()}

	_, errs, err := concurrency.NewGoRoutineRunner[struct{}]().
		AddJob(
			func(ctx context.Context, _ int) (struct{}, error) {
				balance, err := c.Balance(ctx)
				status.Balance = balance
				return struct{}{}, err
			},
			func(ctx context.Context, _ int) (struct{}, error) {
				fee, err := c.FeeEstimate(ctx)
				if err != nil {
					log.Warnf("fee estimate unavailable: %v", err)
					return struct{}{}, nil
				}
				status.GasPrice = fee
				return struct{}{}, nil
			},
		).
		Run(ctx)
	if err != nil {
		return Status{}, err
	}
	if err := concurrency.FirstError(errs); err != nil {
		return Status{}, err
	}
	status.UpdatedAt = time.Now()
	return status, nil
}
