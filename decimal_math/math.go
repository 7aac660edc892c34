package decimal_math

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

type Rounding int

const (
	RoundingDown Rounding = iota
	RoundingUp
)

var ErrDivisionByZero = errors.New("MulDiv: division by zero")

// MulDiv returns x*y/denominator.
func MulDiv(x, y, denominator *big.Int, rounding Rounding) (*big.Int, error) {
	if denominator.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	prod := new(big.Int).Mul(x, y)
	q, r := new(big.Int).QuoRem(prod, denominator, new(big.Int))
	if rounding == RoundingUp && r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	return q, nil
}

func Pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

// UiAmount shifts raw base units by decimals.
func UiAmount(raw uint64, decimals uint8) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(raw), -int32(decimals))
}
