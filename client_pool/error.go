package client_pool

import (
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
)

// isRateLimit reports provider throttling, the request is worth retrying on another client
func isRateLimit(err error) bool {
	if err == nil {
		return false
	}
	var httpErr rpc.HTTPError
	if errors.As(err, &httpErr) && (httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode == -32429) {
		return true
	}
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) && (rpcErr.ErrorCode() == -32005 || rpcErr.ErrorCode() == -32429) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Exceeded the quota usage") ||
		strings.Contains(msg, "limit exceeded") ||
		strings.Contains(msg, "exceeded limit") ||
		strings.Contains(msg, "Too Many Requests") ||
		strings.Contains(msg, "Unable to perform request") ||
		strings.Contains(msg, "order a dedicated full node")
}
