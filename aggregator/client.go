package aggregator

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/duongtuttbn/swapkit/lerror"
	"github.com/duongtuttbn/swapkit/log"
	"github.com/duongtuttbn/swapkit/model"
	"github.com/duongtuttbn/swapkit/utils"
)

const (
	quotePath    = "/aggregator/api/quote"
	calldataPath = "/aggregator/api/calldata"
	userAgent    = "pancake-aggregator-app"
)

type (
	// Client talks to the PancakeSwap aggregator API
	Client struct {
		rest *resty.Client
	}

	Option func(*Client)

	errorResponse struct {
		Message string `json:"message"`
	}
)

// WithRetries retries failed requests (transport errors, 429 and 5xx) count times
func WithRetries(count int, wait time.Duration) Option {
	return func(c *Client) {
		c.rest.SetRetryCount(count).SetRetryWaitTime(wait).SetRetryMaxWaitTime(wait)
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.rest.SetTimeout(d)
	}
}

func NewClient(host, secureToken string, opts ...Option) *Client {
	rest := resty.New().
		SetBaseURL(strings.TrimRight(host, "/")).
		SetTimeout(30*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", userAgent).
		SetRetryCount(1).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})
	if secureToken != "" {
		rest.SetHeader("x-secure-token", secureToken)
	}
	c := &Client{rest: rest}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetQuote prices a swap of req.AmountIn (raw units) from req.Src to req.Dst.
// MaxHops and MaxSplits default to 2 on the server, GasPrice only steers routing.
func (c *Client) GetQuote(ctx context.Context, req model.QuoteRequest) (*model.Quote, error) {
	if req.ChainID == 0 || req.Src == "" || req.Dst == "" || req.AmountIn == "" {
		return nil, lerror.MissingParams.ToError()
	}
	if !isInteger(req.AmountIn) {
		return nil, lerror.InvalidAmount.ToError(fmt.Sprintf("amountIn %q is not an integer amount", req.AmountIn))
	}
	quote := &model.Quote{}
	if err := c.post(ctx, quotePath, req, quote, lerror.QuoteFailed, "Quote"); err != nil {
		log.Errorf("Error fetching quote: %v", err)
		return nil, err
	}
	return quote, nil
}

// GetCalldata builds the swap transaction payload for a quote
func (c *Client) GetCalldata(ctx context.Context, req model.CalldataRequest) (*model.Calldata, error) {
	if req.FromAmount == "" || req.DstAmount == "" {
		return nil, lerror.MissingParams.ToError("Missing quote information")
	}
	data := &model.Calldata{}
	if err := c.post(ctx, calldataPath, req, data, lerror.CalldataFailed, "Calldata"); err != nil {
		log.Errorf("Error fetching calldata: %v", err)
		return nil, err
	}
	return data, nil
}

func (c *Client) post(ctx context.Context, path string, body, result interface{}, code lerror.LCode, label string) error {
	requestID := uuid.NewString()
	res, err := c.rest.R().
		SetContext(ctx).
		SetHeader("X-Request-Id", requestID).
		SetBody(body).
		SetResult(result).
		SetError(&errorResponse{}).
		Post(path)
	if err != nil {
		return errors.Wrapf(err, "request %s %s", requestID, path)
	}
	if res.IsError() {
		msg := http.StatusText(res.StatusCode())
		if e, ok := res.Error().(*errorResponse); ok && e.Message != "" {
			msg = e.Message
		}
		return code.WithStatus(res.StatusCode(),
			fmt.Sprintf("%s request failed with status %d: %s", label, res.StatusCode(), msg))
	}
	log.WithField("request_id", requestID).Debugf("POST %s -> %d", path, res.StatusCode())
	return nil
}

func isInteger(s string) bool {
	return utils.IsDecimalString(s) && !strings.Contains(s, ".")
}
