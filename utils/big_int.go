package utils

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// BigIntToFloat converts a raw token amount to a float rounded to 6 places
func BigIntToFloat(num *big.Int, tokenDecimal int64) float64 {
	if num == nil {
		return 0
	}
	return decimal.NewFromBigInt(num, -int32(tokenDecimal)).Round(6).InexactFloat64()
}

// GasToFee returns gas * price in wei
func GasToFee(gas uint64, price *uint256.Int) *uint256.Int {
	if price == nil {
		return new(uint256.Int)
	}
	return new(uint256.Int).Mul(uint256.NewInt(gas), price)
}

// GasCostWei is GasToFee for a big.Int fee, nil when the fee is missing
// or does not fit 256 bits
func GasCostWei(maxFeePerGas *big.Int, gas uint64) *big.Int {
	if maxFeePerGas == nil || maxFeePerGas.Sign() <= 0 {
		return nil
	}
	price, overflow := uint256.FromBig(maxFeePerGas)
	if overflow {
		return nil
	}
	return GasToFee(gas, price).ToBig()
}

// GasCostUSD prices gas * maxFeePerGas (in native units of the given decimals)
// in USD. Returns nil when fee, gas or price is missing.
func GasCostUSD(maxFeePerGas *big.Int, gas uint64, nativeDecimals int, nativePriceUSD *float64) *float64 {
	if gas == 0 || nativePriceUSD == nil || *nativePriceUSD == 0 {
		return nil
	}
	wei := GasCostWei(maxFeePerGas, gas)
	if wei == nil {
		return nil
	}
	native := decimal.NewFromBigInt(wei, -int32(nativeDecimals))
	usd := native.Mul(decimal.NewFromFloat(*nativePriceUSD)).InexactFloat64()
	return &usd
}
