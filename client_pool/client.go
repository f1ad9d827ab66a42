package client_pool

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
)

const (
	defaultErrorBackoff = 15 * time.Second
	maxErrorBackoff     = 4 * time.Minute
	defaultDialTimeout  = 30 * time.Second
)

// Client is one endpoint of a pool. Every consecutive failure doubles the
// time it stays out of rotation, capped at maxErrorBackoff.
type Client struct {
	*ethclient.Client
	endpoint string

	mu           sync.Mutex
	backoff      time.Duration
	failures     int
	lastErr      error
	benchedUntil time.Time
}

type dialSettings struct {
	proxyURL string
	timeout  time.Duration
	backoff  time.Duration
}

func (s dialSettings) withDefaults() dialSettings {
	if s.timeout <= 0 {
		s.timeout = defaultDialTimeout
	}
	if s.backoff <= 0 {
		s.backoff = defaultErrorBackoff
	}
	return s
}

// dialClient connects http(s) endpoints through an http.Client with timeout
// and optional proxy, anything else (ws, wss, ipc path) through rpc.DialContext
func dialClient(ctx context.Context, endpoint string, settings dialSettings) (*Client, error) {
	settings = settings.withDefaults()
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid endpoint %q", endpoint)
	}

	var rpcClient *rpc.Client
	if u.Scheme == "http" || u.Scheme == "https" {
		httpClient, err := newHTTPClient(settings)
		if err != nil {
			return nil, err
		}
		rpcClient, err = rpc.DialOptions(ctx, endpoint, rpc.WithHTTPClient(httpClient))
		if err != nil {
			return nil, errors.Wrapf(err, "dial %s", endpoint)
		}
	} else {
		rpcClient, err = rpc.DialContext(ctx, endpoint)
		if err != nil {
			return nil, errors.Wrapf(err, "dial %s", endpoint)
		}
	}
	return &Client{
		Client:   ethclient.NewClient(rpcClient),
		endpoint: endpoint,
		backoff:  settings.backoff,
	}, nil
}

func newHTTPClient(settings dialSettings) (*http.Client, error) {
	httpClient := &http.Client{Timeout: settings.timeout}
	if settings.proxyURL == "" {
		return httpClient, nil
	}
	proxy, err := url.Parse(settings.proxyURL)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid proxy %q", settings.proxyURL)
	}
	httpClient.Transport = &http.Transport{Proxy: http.ProxyURL(proxy)}
	return httpClient, nil
}

// Available reports whether the client is in rotation
func (c *Client) Available() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failures == 0 || !time.Now().Before(c.benchedUntil)
}

// MarkError takes the client out of rotation
func (c *Client) MarkError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures++
	c.lastErr = err
	c.benchedUntil = time.Now().Add(c.penalty())
}

// MarkSuccess resets the failure streak
func (c *Client) MarkSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = 0
	c.lastErr = nil
}

// penalty is backoff * 2^(failures-1), mu must be held
func (c *Client) penalty() time.Duration {
	d := c.backoff
	for i := 1; i < c.failures && d < maxErrorBackoff; i++ {
		d *= 2
	}
	if d > maxErrorBackoff {
		d = maxErrorBackoff
	}
	return d
}

func (c *Client) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Client) Endpoint() string {
	return c.endpoint
}
