package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 {
	return &v
}

func TestFormatUSDPrice(t *testing.T) {
	require.Equal(t, "N/A", FormatUSDPrice(nil))
	require.Equal(t, "$1,234.5", FormatUSDPrice(ptr(1234.5)))
	require.Equal(t, "$1,234,567.89", FormatUSDPrice(ptr(1234567.891)))
	require.Equal(t, "$3,000", FormatUSDPrice(ptr(3000)))
	require.Equal(t, "$12.30", FormatUSDPrice(ptr(12.3)))
	require.Equal(t, "$1.00", FormatUSDPrice(ptr(1)))
	require.Equal(t, "$999.12", FormatUSDPrice(ptr(999.123)))
	require.Equal(t, "$0.5000", FormatUSDPrice(ptr(0.5)))
	require.Equal(t, "$0.123457", FormatUSDPrice(ptr(0.123456789)))
	require.Equal(t, "$0.01234", FormatUSDPrice(ptr(0.01234)))
}

func TestFormatUSDPriceRoundsHalfUp(t *testing.T) {
	require.Equal(t, "$2.68", FormatUSDPrice(ptr(2.675)))
	require.Equal(t, "$1.01", FormatUSDPrice(ptr(1.005)))
	require.Equal(t, "$0.123457", FormatUSDPrice(ptr(0.1234565)))
	require.Equal(t, "$1,000.01", FormatUSDPrice(ptr(1000.005)))
	require.Equal(t, "$1.0000", FormatUSDPrice(ptr(0.9999999)))
}
