package client_pool

import (
	"errors"
	"net/http"
	"testing"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/require"
)

func TestHex(t *testing.T) {
	require.Equal(t, "0x38", DecimalToHex(56))

	n, err := HexToInt("0x38")
	require.NoError(t, err)
	require.Equal(t, int64(56), n)

	b, err := HexToBigInt("0X4a817c800")
	require.NoError(t, err)
	require.Equal(t, "20000000000", b.String())

	_, err = HexToBigInt("0xzz")
	require.Error(t, err)
}

func TestIsRateLimit(t *testing.T) {
	require.False(t, isRateLimit(nil))
	require.True(t, isRateLimit(rpc.HTTPError{StatusCode: http.StatusTooManyRequests}))
	require.False(t, isRateLimit(rpc.HTTPError{StatusCode: http.StatusInternalServerError, Status: "500 Internal Server Error"}))
	require.True(t, isRateLimit(errors.New("daily request limit exceeded")))
	require.False(t, isRateLimit(errors.New("execution reverted")))
}
