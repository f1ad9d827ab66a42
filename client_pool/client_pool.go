package client_pool

import (
	"context"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/chenzhijie/go-web3"
	"github.com/ethereum/go-ethereum/common"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/duongtuttbn/swapkit/log"
	"github.com/duongtuttbn/swapkit/model"
	"github.com/duongtuttbn/swapkit/utils"
)

type (
	ClientPool struct {
		clients []*Client
		counter int
		mu      sync.Mutex
		config  Config
		rest    *resty.Client
	}

	jsonRPCError struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}

	GetGasPriceResponse struct {
		Result string        `json:"result"`
		Error  *jsonRPCError `json:"error,omitempty"`
	}
)

const (
	tokenInfoABI = "[{\"inputs\":[],\"name\":\"symbol\",\"outputs\":[{\"internalType\":\"string\",\"name\":\"\",\"type\":\"string\"}],\"stateMutability\":\"view\",\"type\":\"function\"},{\"inputs\":[],\"name\":\"name\",\"outputs\":[{\"internalType\":\"string\",\"name\":\"\",\"type\":\"string\"}],\"stateMutability\":\"view\",\"type\":\"function\"},{\"inputs\":[{\"internalType\":\"address\",\"name\":\"account\",\"type\":\"address\"}],\"name\":\"balanceOf\",\"outputs\":[{\"internalType\":\"uint256\",\"name\":\"\",\"type\":\"uint256\"}],\"stateMutability\":\"view\",\"type\":\"function\"},{\"inputs\":[],\"name\":\"decimals\",\"outputs\":[{\"internalType\":\"uint8\",\"name\":\"\",\"type\":\"uint8\"}],\"stateMutability\":\"view\",\"type\":\"function\"},{\"inputs\":[],\"name\":\"totalSupply\",\"outputs\":[{\"internalType\":\"uint256\",\"name\":\"\",\"type\":\"uint256\"}],\"stateMutability\":\"view\",\"type\":\"function\"}]"

	// baseFeeMultiplier is applied as baseFee * 12 / 10 when estimating maxFeePerGas
	baseFeeMulNum   = 12
	baseFeeMulDenom = 10
)

func NewBasicClientPool(cfg Config) (*ClientPool, error) {
	rpcUrls := splitURLs(cfg.RpcUrls)
	if len(rpcUrls) == 0 {
		return nil, errors.New("no rpc url configured")
	}
	settings := dialSettings{proxyURL: cfg.ProxyURL, timeout: cfg.Timeout, backoff: cfg.ErrorBackoff}
	clients := make([]*Client, len(rpcUrls))
	for i, rpcUrl := range rpcUrls {
		var err error
		clients[i], err = dialClient(context.Background(), rpcUrl, settings)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to init new client %s", rpcUrl)
		}
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	return &ClientPool{
		clients: clients,
		config:  cfg,
		rest:    resty.New().SetTimeout(settings.withDefaults().timeout),
	}, nil
}

func splitURLs(csv string) []string {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// GetClient return a client that available for use,
// waits for RetryDelay while every client is marked as failing
func (pool *ClientPool) GetClient(ctx context.Context) (*Client, error) {
	for {
		if client := pool.nextAvailable(); client != nil {
			log.Debugf("Use client: %s", client.endpoint)
			return client, nil
		}
		logrus.Infof("all clients are down, sleep for %v", pool.config.RetryDelay)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pool.config.RetryDelay):
		}
	}
}

func (pool *ClientPool) nextAvailable() *Client {
	pool.mu.Lock()
	defer pool.mu.Unlock()
	for i := 0; i < len(pool.clients); i++ {
		client := pool.clients[pool.counter]
		pool.counter = (pool.counter + 1) % len(pool.clients)
		if client.Available() {
			return client
		}
	}
	return nil
}

// GetAllClients return all clients regardless their availability
func (pool *ClientPool) GetAllClients() []*Client {
	return pool.clients
}

// RunOp runs op on the next available client. Rate limited calls mark the
// client and move on to the next one, any other error is returned.
func (pool *ClientPool) RunOp(ctx context.Context, op func(client *Client) error) error {
	for {
		client, err := pool.GetClient(ctx)
		if err != nil {
			return err
		}
		err = op(client)
		if err == nil {
			client.MarkSuccess()
			return nil
		}
		if !isRateLimit(err) {
			return errors.Wrap(err, "client endpoint: "+client.endpoint)
		}
		client.MarkError(err)
		logrus.Errorf("rate limited on endpoint %v: %v", client.endpoint, err)
	}
}

func (pool *ClientPool) ChainID(ctx context.Context) (*big.Int, error) {
	var chainID *big.Int
	err := pool.RunOp(ctx, func(client *Client) error {
		var err error
		chainID, err = client.ChainID(ctx)
		return err
	})
	return chainID, err
}

// NativeBalance returns the latest native coin balance of account in wei
func (pool *ClientPool) NativeBalance(ctx context.Context, account common.Address) (*big.Int, error) {
	var balance *big.Int
	err := pool.RunOp(ctx, func(client *Client) error {
		var err error
		balance, err = client.BalanceAt(ctx, account, nil)
		return err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "get balance of %s", account.Hex())
	}
	return balance, nil
}

// GasPrice returns the legacy gas price in wei
func (pool *ClientPool) GasPrice(ctx context.Context) (*big.Int, error) {
	if pool.config.ManualGasPrice {
		return pool.manualGasPrice(ctx)
	}
	var price *big.Int
	err := pool.RunOp(ctx, func(client *Client) error {
		var err error
		price, err = client.SuggestGasPrice(ctx)
		return err
	})
	return price, err
}

// MaxFeePerGas estimates the EIP-1559 fee cap as baseFee * 1.2 + tip.
// Chains without a base fee fall back to the gas price.
func (pool *ClientPool) MaxFeePerGas(ctx context.Context) (*big.Int, error) {
	var maxFee *big.Int
	err := pool.RunOp(ctx, func(client *Client) error {
		head, err := client.HeaderByNumber(ctx, nil)
		if err != nil {
			return err
		}
		if head.BaseFee == nil {
			return nil
		}
		tip, err := client.SuggestGasTipCap(ctx)
		if err != nil {
			return err
		}
		maxFee = new(big.Int).Mul(head.BaseFee, big.NewInt(baseFeeMulNum))
		maxFee.Quo(maxFee, big.NewInt(baseFeeMulDenom))
		maxFee.Add(maxFee, tip)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "estimate max fee per gas")
	}
	if maxFee == nil {
		return pool.GasPrice(ctx)
	}
	return maxFee, nil
}

func (pool *ClientPool) manualGasPrice(ctx context.Context) (*big.Int, error) {
	var price *big.Int
	err := pool.RunOp(ctx, func(ethClient *Client) error {
		body := map[string]interface{}{
			"jsonrpc": "2.0",
			"method":  "eth_gasPrice",
			"params":  []interface{}{},
			"id":      0,
		}
		res, err := pool.rest.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(body).
			SetResult(&GetGasPriceResponse{}).
			Post(ethClient.endpoint)
		if err != nil {
			logrus.Infof("error manual requesting gas price from node, endpoint: %v, err: %v", ethClient.endpoint, err)
			return err
		}
		if res.IsError() {
			return errors.Errorf("manual gas price request failed with status %d: %s", res.StatusCode(), string(res.Body()))
		}
		data := res.Result().(*GetGasPriceResponse)
		if data.Error != nil {
			return errors.Errorf("eth_gasPrice error %d: %s", data.Error.Code, data.Error.Message)
		}
		price, err = HexToBigInt(data.Result)
		return err
	})
	return price, err
}

// GetTokenInfo reads ERC-20 metadata of a token contract
func (pool *ClientPool) GetTokenInfo(ctx context.Context, tokenAddress string) (*model.ERC20Info, error) {
	item := &model.ERC20Info{TokenAddress: tokenAddress}
	err := pool.RunOp(ctx, func(client *Client) error {
		clientWeb3, err := web3.NewWeb3(client.endpoint)
		if err != nil {
			return errors.Wrap(err, "init web3 client")
		}
		contract, err := clientWeb3.Eth.NewContract(tokenInfoABI, tokenAddress)
		if err != nil {
			return errors.Wrap(err, "init contract")
		}
		name, err := contract.Call("name")
		if err != nil {
			return errors.Wrap(err, "get contract name")
		}
		symbol, err := contract.Call("symbol")
		if err != nil {
			return errors.Wrap(err, "get contract symbol")
		}
		decimals, err := contract.Call("decimals")
		if err != nil {
			return errors.Wrap(err, "get contract decimals")
		}
		totalSupply, err := contract.Call("totalSupply")
		if err != nil {
			return errors.Wrap(err, "get contract total supply")
		}
		item.TokenName, _ = name.(string)
		item.TokenSymbol, _ = symbol.(string)
		if d, ok := decimals.(uint8); ok {
			item.ContractDecimals = int64(d)
		}
		if supply, ok := totalSupply.(*big.Int); ok {
			item.TotalSupply = utils.BigIntToFloat(supply, item.ContractDecimals)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}
