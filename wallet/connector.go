package wallet

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/duongtuttbn/swapkit/lerror"
	"github.com/duongtuttbn/swapkit/log"
	"github.com/duongtuttbn/swapkit/model"
)

// ChainReader is the read side of a chain the connector needs,
// *client_pool.ClientPool implements it
type ChainReader interface {
	ChainID(ctx context.Context) (*big.Int, error)
	NativeBalance(ctx context.Context, account common.Address) (*big.Int, error)
	MaxFeePerGas(ctx context.Context) (*big.Int, error)
}

type Balance struct {
	Value    *big.Int
	Decimals int
	Symbol   string
}

// Connector tracks the connected account and the active chain. It never
// holds keys, transactions are not signed here.
type Connector struct {
	mu      sync.RWMutex
	readers map[int64]ChainReader
	account *common.Address
	chainID int64
}

func NewConnector(readers map[int64]ChainReader) *Connector {
	return &Connector{readers: readers}
}

// Connect watches address on chainID. The endpoint must report the same chain id.
func (c *Connector) Connect(ctx context.Context, address string, chainID int64) error {
	if !common.IsHexAddress(address) {
		return lerror.InvalidData.ToError(fmt.Sprintf("invalid address %q", address))
	}
	if err := c.verifyChain(ctx, chainID); err != nil {
		return err
	}
	account := common.HexToAddress(address)

	c.mu.Lock()
	c.account = &account
	c.chainID = chainID
	c.mu.Unlock()

	log.WithField("address", account.Hex()).Infof("connected on %s", model.NetworkName(chainID))
	return nil
}

func (c *Connector) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.account = nil
	c.chainID = 0
}

func (c *Connector) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.account != nil
}

func (c *Connector) Account() (common.Address, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.account == nil {
		return common.Address{}, false
	}
	return *c.account, true
}

func (c *Connector) ChainID() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.chainID
}

// SwitchChain moves a connected wallet to another supported chain
func (c *Connector) SwitchChain(ctx context.Context, chainID int64) error {
	if !c.IsConnected() {
		return lerror.WalletDisconnected.ToError()
	}
	if chainID == c.ChainID() {
		return nil
	}
	if err := c.verifyChain(ctx, chainID); err != nil {
		return err
	}
	c.mu.Lock()
	c.chainID = chainID
	c.mu.Unlock()
	log.Infof("switched to %s", model.NetworkName(chainID))
	return nil
}

func (c *Connector) verifyChain(ctx context.Context, chainID int64) error {
	if _, ok := model.FindChain(chainID); !ok {
		return lerror.UnsupportedChain.ToError(model.NetworkName(chainID) + " is not supported")
	}
	reader, ok := c.readers[chainID]
	if !ok {
		return lerror.UnsupportedChain.ToError(fmt.Sprintf("no endpoint for chain %d", chainID))
	}
	remote, err := reader.ChainID(ctx)
	if err != nil {
		return errors.Wrap(err, "unable to read chain id")
	}
	if remote.Int64() != chainID {
		return lerror.UnsupportedChain.ToError(fmt.Sprintf("endpoint reports chain %s, want %d", remote, chainID))
	}
	return nil
}

func (c *Connector) active() (ChainReader, common.Address, int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.account == nil {
		return nil, common.Address{}, 0, lerror.WalletDisconnected.ToError()
	}
	return c.readers[c.chainID], *c.account, c.chainID, nil
}

// Balance returns the native balance of the connected account
func (c *Connector) Balance(ctx context.Context) (Balance, error) {
	reader, account, chainID, err := c.active()
	if err != nil {
		return Balance{}, err
	}
	value, err := reader.NativeBalance(ctx, account)
	if err != nil {
		return Balance{}, err
	}
	return Balance{
		Value:    value,
		Decimals: model.NativeDecimals(chainID),
		Symbol:   model.NativeTokenSymbol(chainID),
	}, nil
}

// FeeEstimate returns maxFeePerGas of the active chain in wei
func (c *Connector) FeeEstimate(ctx context.Context) (*big.Int, error) {
	reader, _, _, err := c.active()
	if err != nil {
		return nil, err
	}
	return reader.MaxFeePerGas(ctx)
}
