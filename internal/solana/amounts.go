package solana

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// ToRaw converts a human-readable amount to raw smallest units at the given
// decimal precision, flooring so a raw amount never exceeds the intent.
// Non-positive amounts map to zero.
func ToRaw(amount float64, decimals uint8) uint64 {
	d := decimal.NewFromFloat(amount).Mul(decimal.New(1, int32(decimals))).Floor()
	if d.IsNegative() {
		return 0
	}
	return d.BigInt().Uint64()
}

// ToHuman converts a raw smallest-unit amount to a human-readable amount at
// the given decimal precision.
func ToHuman(raw uint64, decimals uint8) float64 {
	d := decimal.NewFromBigInt(new(big.Int).SetUint64(raw), -int32(decimals))
	return d.InexactFloat64()
}
