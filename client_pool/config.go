package client_pool

import "time"

type Config struct {
	// RpcUrls is a comma separated list of endpoints of one chain
	RpcUrls string
	// ManualGasPrice reads eth_gasPrice with a raw JSON-RPC call instead of ethclient
	ManualGasPrice bool
	ProxyURL       string
	// RetryDelay is the wait when every client is marked as failing
	RetryDelay time.Duration
	// ErrorBackoff is the first bench time of a failing client, it doubles
	// with consecutive failures. Defaults to 15s.
	ErrorBackoff time.Duration
	// Timeout of http(s) calls, defaults to 30s
	Timeout time.Duration
}

const defaultRetryDelay = 15 * time.Second
