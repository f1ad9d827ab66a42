package client_pool

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
}

// newRPCServer answers JSON-RPC calls from a method -> result table
func newRPCServer(t *testing.T, results map[string]interface{}) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Header().Set("Content-Type", "application/json")
		result, ok := results[req.Method]
		if !ok {
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"jsonrpc": "2.0",
				"id":      req.ID,
				"error":   map[string]interface{}{"code": -32601, "message": "method not found"},
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  result,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNewBasicClientPool(t *testing.T) {
	_, err := NewBasicClientPool(Config{RpcUrls: " , "})
	require.Error(t, err)

	pool, err := NewBasicClientPool(Config{RpcUrls: "http://a.example, http://b.example"})
	require.NoError(t, err)
	require.Len(t, pool.GetAllClients(), 2)
	require.Equal(t, defaultRetryDelay, pool.config.RetryDelay)
}

func TestChainIDAndBalance(t *testing.T) {
	srv := newRPCServer(t, map[string]interface{}{
		"eth_chainId":    "0x38",
		"eth_getBalance": "0xde0b6b3a7640000",
	})
	pool, err := NewBasicClientPool(Config{RpcUrls: srv.URL})
	require.NoError(t, err)

	chainID, err := pool.ChainID(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(56), chainID.Int64())

	balance, err := pool.NativeBalance(context.Background(), common.HexToAddress("0x1111111111111111111111111111111111111111"))
	require.NoError(t, err)
	require.Equal(t, "1000000000000000000", balance.String())
}

func TestGasPrice(t *testing.T) {
	srv := newRPCServer(t, map[string]interface{}{
		"eth_gasPrice": "0x12a05f200",
	})
	for _, manual := range []bool{false, true} {
		pool, err := NewBasicClientPool(Config{RpcUrls: srv.URL, ManualGasPrice: manual})
		require.NoError(t, err)
		price, err := pool.GasPrice(context.Background())
		require.NoError(t, err, "manual=%v", manual)
		require.Equal(t, "5000000000", price.String(), "manual=%v", manual)
	}
}

func TestManualGasPriceRPCError(t *testing.T) {
	srv := newRPCServer(t, map[string]interface{}{})
	pool, err := NewBasicClientPool(Config{RpcUrls: srv.URL, ManualGasPrice: true})
	require.NoError(t, err)
	_, err = pool.GasPrice(context.Background())
	require.ErrorContains(t, err, "method not found")
}

func TestRunOpSkipsRateLimitedClient(t *testing.T) {
	var limitedCalls int32
	limited := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&limitedCalls, 1)
		http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
	}))
	defer limited.Close()
	healthy := newRPCServer(t, map[string]interface{}{"eth_chainId": "0x1"})

	pool, err := NewBasicClientPool(Config{RpcUrls: limited.URL + "," + healthy.URL})
	require.NoError(t, err)

	chainID, err := pool.ChainID(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), chainID.Int64())
	require.Equal(t, int32(1), atomic.LoadInt32(&limitedCalls))
	require.False(t, pool.GetAllClients()[0].Available())
	require.True(t, pool.GetAllClients()[1].Available())
}

func TestGetClientHonoursContext(t *testing.T) {
	pool, err := NewBasicClientPool(Config{RpcUrls: "http://a.example", RetryDelay: time.Hour})
	require.NoError(t, err)
	pool.GetAllClients()[0].MarkError(context.DeadlineExceeded)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = pool.GetClient(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClientBackoffGrows(t *testing.T) {
	pool, err := NewBasicClientPool(Config{RpcUrls: "http://a.example", ErrorBackoff: time.Second})
	require.NoError(t, err)
	client := pool.GetAllClients()[0]
	require.True(t, client.Available())
	require.Equal(t, "http://a.example", client.Endpoint())

	client.MarkError(context.DeadlineExceeded)
	require.False(t, client.Available())
	require.ErrorIs(t, client.LastError(), context.DeadlineExceeded)

	client.mu.Lock()
	require.Equal(t, time.Second, client.penalty())
	client.failures = 3
	require.Equal(t, 4*time.Second, client.penalty())
	client.failures = 20
	require.Equal(t, maxErrorBackoff, client.penalty())
	client.mu.Unlock()

	client.MarkSuccess()
	require.True(t, client.Available())
	require.NoError(t, client.LastError())
}

func TestClientAvailableAfterBackoff(t *testing.T) {
	pool, err := NewBasicClientPool(Config{RpcUrls: "http://a.example", ErrorBackoff: 10 * time.Millisecond})
	require.NoError(t, err)
	client := pool.GetAllClients()[0]
	client.MarkError(context.DeadlineExceeded)
	require.False(t, client.Available())
	require.Eventually(t, client.Available, time.Second, 5*time.Millisecond)
}

func TestNewBasicClientPoolBadProxy(t *testing.T) {
	_, err := NewBasicClientPool(Config{RpcUrls: "http://a.example", ProxyURL: "://bad"})
	require.Error(t, err)
}
