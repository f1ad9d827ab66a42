package client_pool

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

func DecimalToHex(number int64) string {
	return "0x" + strconv.FormatInt(number, 16)
}

func hexaNumberToString(hexaString string) string {
	numberStr := strings.TrimPrefix(hexaString, "0x")
	return strings.TrimPrefix(numberStr, "0X")
}

func HexToInt(hex string) (int64, error) {
	return strconv.ParseInt(hexaNumberToString(hex), 16, 64)
}

// HexToBigInt parses a JSON-RPC quantity such as "0x4a817c800"
func HexToBigInt(hex string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(hexaNumberToString(strings.TrimSpace(hex)), 16)
	if !ok {
		return nil, errors.Errorf("invalid hex quantity %q", hex)
	}
	return v, nil
}
