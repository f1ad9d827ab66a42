package wallet

import (
	"context"
	"time"

	"github.com/duongtuttbn/swapkit/config"
	"github.com/duongtuttbn/swapkit/log"
)

// PriceSource is satisfied by *price.Client
type PriceSource interface {
	NativeTokenPriceUSD(ctx context.Context, chainID int64) (*float64, error)
}

// Intervals between refreshes, zero or negative values use the config defaults
type Intervals struct {
	Balance time.Duration
	Fee     time.Duration
	Price   time.Duration
}

func (i Intervals) withDefaults() Intervals {
	if i.Balance <= 0 {
		i.Balance = config.DefaultBalanceInterval
	}
	if i.Fee <= 0 {
		i.Fee = config.DefaultFeeInterval
	}
	if i.Price <= 0 {
		i.Price = config.DefaultPriceInterval
	}
	return i
}

// Watcher polls balance, fee and native price on their own intervals and
// hands every refreshed Status to a handler
type Watcher struct {
	connector *Connector
	prices    PriceSource
	intervals Intervals
	handler   func(Status)
}

// NewWatcher builds a watcher, prices may be nil to skip price polling
func NewWatcher(connector *Connector, prices PriceSource, intervals Intervals, handler func(Status)) *Watcher {
	return &Watcher{
		connector: connector,
		prices:    prices,
		intervals: intervals.withDefaults(),
		handler:   handler,
	}
}

func (w *Watcher) nativePrice(ctx context.Context) (*float64, bool) {
	p, err := w.prices.NativeTokenPriceUSD(ctx, w.connector.ChainID())
	if err != nil {
		log.Warnf("refresh price: %v", err)
		return nil, false
	}
	return p, true
}

// Run blocks until ctx ends. A failed refresh keeps the previous values.
func (w *Watcher) Run(ctx context.Context) error {
	status, err := w.connector.Snapshot(ctx)
	if err != nil {
		return err
	}
	if w.prices != nil {
		status.NativePrice, _ = w.nativePrice(ctx)
	}
	w.handler(status)

	balanceTicker := time.NewTicker(w.intervals.Balance)
	defer balanceTicker.Stop()
	feeTicker := time.NewTicker(w.intervals.Fee)
	defer feeTicker.Stop()
	var priceC <-chan time.Time
	if w.prices != nil {
		priceTicker := time.NewTicker(w.intervals.Price)
		defer priceTicker.Stop()
		priceC = priceTicker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-balanceTicker.C:
			balance, err := w.connector.Balance(ctx)
			if err != nil {
				log.Warnf("refresh balance: %v", err)
				continue
			}
			status.Balance = balance
		case <-feeTicker.C:
			fee, err := w.connector.FeeEstimate(ctx)
			if err != nil {
				log.Warnf("refresh fee: %v", err)
				continue
			}
			status.GasPrice = fee
		case <-priceC:
			p, ok := w.nativePrice(ctx)
			if !ok {
				continue
			}
			status.NativePrice = p
		}
		if account, ok := w.connector.Account(); ok {
			status.Address = account.Hex()
		}
		status.ChainID = w.connector.ChainID()
		status.UpdatedAt = time.Now()
		w.handler(status)
	}
}
