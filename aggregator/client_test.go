package aggregator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/duongtuttbn/swapkit/lerror"
	"github.com/duongtuttbn/swapkit/model"
)

const quoteJSON = `{
	"srcToken": {"address": "0x0E09FaBB73Bd3Ade0a17ECC321fD13a19e81cE82", "decimals": 18, "symbol": "CAKE", "name": "PancakeSwap Token", "chainId": 56},
	"dstToken": {"address": "0x55d398326f99059fF775485246999027B3197955", "decimals": 18, "symbol": "USDT", "name": "Binance Pegged USDT", "chainId": 56},
	"fromAmount": "1000000000000000000",
	"dstAmount": "2345600000000000000",
	"protocols": [{"percent": 100, "path": [], "pools": [], "inputAmount": "1000000000000000000", "outputAmount": "2345600000000000000"}],
	"gas": 150000
}`

func testQuoteRequest() model.QuoteRequest {
	return model.QuoteRequest{
		ChainID:  56,
		Src:      "0x0E09FaBB73Bd3Ade0a17ECC321fD13a19e81cE82",
		Dst:      "0x55d398326f99059fF775485246999027B3197955",
		AmountIn: "1000000000000000000",
	}
}

func TestGetQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/aggregator/api/quote", r.URL.Path)
		require.Equal(t, "secret", r.Header.Get("x-secure-token"))
		require.Equal(t, "pancake-aggregator-app", r.Header.Get("User-Agent"))
		require.Contains(t, r.Header.Get("Content-Type"), "application/json")
		require.NotEmpty(t, r.Header.Get("X-Request-Id"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, float64(56), body["chainId"])
		require.Equal(t, "1000000000000000000", body["amountIn"])
		require.NotContains(t, body, "maxHops")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(quoteJSON))
	}))
	defer srv.Close()

	quote, err := NewClient(srv.URL, "secret").GetQuote(context.Background(), testQuoteRequest())
	require.NoError(t, err)
	require.Equal(t, "2345600000000000000", quote.DstAmount)
	require.Equal(t, "USDT", quote.DstToken.Symbol)
	require.Equal(t, uint64(150000), quote.Gas)
	require.Len(t, quote.Protocols, 1)
}

func TestGetQuoteValidation(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()
	c := NewClient(srv.URL, "")

	req := testQuoteRequest()
	req.Src = ""
	_, err := c.GetQuote(context.Background(), req)
	require.True(t, lerror.HasCode(err, lerror.MissingParams))

	req = testQuoteRequest()
	req.AmountIn = "1.5"
	_, err = c.GetQuote(context.Background(), req)
	require.True(t, lerror.HasCode(err, lerror.InvalidAmount))

	require.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestGetQuoteErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "insufficient liquidity"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").GetQuote(context.Background(), testQuoteRequest())
	x := lerror.Unwrap(err)
	require.NotNil(t, x)
	require.Equal(t, lerror.QuoteFailed.ToInt(), x.Code)
	require.Equal(t, http.StatusBadRequest, x.Status)
	require.Equal(t, "Quote request failed with status 400: insufficient liquidity", x.Message)
}

func TestGetQuoteErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").GetQuote(context.Background(), testQuoteRequest())
	x := lerror.Unwrap(err)
	require.NotNil(t, x)
	require.Equal(t, "Quote request failed with status 403: Forbidden", x.Message)
}

func TestGetQuoteRetriesOnce(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(quoteJSON))
	}))
	defer srv.Close()

	quote, err := NewClient(srv.URL, "", WithRetries(1, time.Millisecond)).GetQuote(context.Background(), testQuoteRequest())
	require.NoError(t, err)
	require.Equal(t, "2345600000000000000", quote.DstAmount)
	require.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGetQuoteGivesUpAfterRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", WithRetries(1, time.Millisecond)).GetQuote(context.Background(), testQuoteRequest())
	require.True(t, lerror.HasCode(err, lerror.QuoteFailed))
	require.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGetCalldata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/aggregator/api/calldata", r.URL.Path)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "0x2222222222222222222222222222222222222222", body["recipient"])
		require.Equal(t, 0.005, body["slippageTolerance"])
		require.Equal(t, "2345600000000000000", body["dstAmount"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"calldata": "0xdeadbeef", "value": "0", "to": "0x13f4EA83D0bd40E75C8222255bc855a974568Dd4"}`))
	}))
	defer srv.Close()

	var quote model.Quote
	require.NoError(t, json.Unmarshal([]byte(quoteJSON), &quote))

	data, err := NewClient(srv.URL, "").GetCalldata(context.Background(), model.CalldataRequest{
		Quote:             quote,
		Recipient:         "0x2222222222222222222222222222222222222222",
		SlippageTolerance: 0.005,
	})
	require.NoError(t, err)
	require.Equal(t, "0xdeadbeef", data.Calldata)
	require.Equal(t, "0", data.Value)
	require.Equal(t, "0x13f4EA83D0bd40E75C8222255bc855a974568Dd4", data.To)
}

func TestGetCalldataNeedsQuote(t *testing.T) {
	_, err := NewClient("http://127.0.0.1:1", "").GetCalldata(context.Background(), model.CalldataRequest{})
	require.True(t, lerror.HasCode(err, lerror.MissingParams))
}
