package price

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/duongtuttbn/swapkit/lerror"
	"github.com/duongtuttbn/swapkit/log"
)

// CoinGecko platform ids per chain
var chainToNetwork = map[int64]string{
	1:   "ethereum",
	56:  "binance-smart-chain",
	137: "polygon-pos",
}

// CoinGecko coin ids of native tokens per chain
var chainToNativeTokenID = map[int64]string{
	1:   "ethereum",
	56:  "binancecoin",
	137: "matic-network",
}

type (
	// Client reads USD spot prices from the CoinGecko simple price API
	Client struct {
		rest *resty.Client
	}

	// simplePrice is {"<id>": {"usd": 123.45}}
	simplePrice map[string]map[string]float64
)

func NewClient(host string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		rest: resty.New().
			SetBaseURL(strings.TrimRight(host, "/")).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

// NativeTokenPriceUSD returns the USD price of the chain's native coin
func (c *Client) NativeTokenPriceUSD(ctx context.Context, chainID int64) (*float64, error) {
	tokenID, ok := chainToNativeTokenID[chainID]
	if !ok {
		return nil, lerror.UnsupportedChain.ToError(
			fmt.Sprintf("Native token for chain ID %d is not supported for price fetching", chainID))
	}
	res, err := c.rest.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{"ids": tokenID, "vs_currencies": "usd"}).
		SetResult(&simplePrice{}).
		Get("/simple/price")
	price, err := usdOf(res, err, tokenID, "native token price")
	if err != nil {
		log.Errorf("Error fetching native token price: %v", err)
		return nil, err
	}
	return price, nil
}

// TokenPriceUSD returns the USD price of an ERC-20 token on chainID
func (c *Client) TokenPriceUSD(ctx context.Context, tokenAddress string, chainID int64) (*float64, error) {
	networkID, ok := chainToNetwork[chainID]
	if !ok {
		return nil, lerror.UnsupportedChain.ToError(
			fmt.Sprintf("Network ID %d is not supported for price fetching", chainID))
	}
	res, err := c.rest.R().
		SetContext(ctx).
		SetPathParam("network", networkID).
		SetQueryParams(map[string]string{"contract_addresses": tokenAddress, "vs_currencies": "usd"}).
		SetResult(&simplePrice{}).
		Get("/simple/token_price/{network}")
	price, err := usdOf(res, err, strings.ToLower(tokenAddress), "token price")
	if err != nil {
		log.Errorf("Error fetching token price: %v", err)
		return nil, err
	}
	return price, nil
}

// usdOf extracts the usd entry of key, a zero price counts as missing
func usdOf(res *resty.Response, err error, key, what string) (*float64, error) {
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s", what)
	}
	if res.IsError() {
		return nil, lerror.PriceUnavailable.WithStatus(res.StatusCode(),
			fmt.Sprintf("Failed to fetch %s: %s", what, http.StatusText(res.StatusCode())))
	}
	data, ok := res.Result().(*simplePrice)
	if !ok || data == nil {
		return nil, lerror.PriceUnavailable.ToError()
	}
	usd := (*data)[key]["usd"]
	if usd == 0 {
		return nil, lerror.PriceUnavailable.ToError(fmt.Sprintf("no usd price for %s", key))
	}
	return &usd, nil
}
