package decimal_math

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulDiv(t *testing.T) {
	down, err := MulDiv(big.NewInt(10), big.NewInt(10), big.NewInt(3), RoundingDown)
	require.NoError(t, err)
	assert.Equal(t, int64(33), down.Int64())

	up, err := MulDiv(big.NewInt(10), big.NewInt(10), big.NewInt(3), RoundingUp)
	require.NoError(t, err)
	assert.Equal(t, int64(34), up.Int64())

	exact, err := MulDiv(big.NewInt(6), big.NewInt(10), big.NewInt(3), RoundingUp)
	require.NoError(t, err)
	assert.Equal(t, int64(20), exact.Int64())

	_, err = MulDiv(big.NewInt(1), big.NewInt(1), big.NewInt(0), RoundingDown)
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestUiAmount(t *testing.T) {
	assert.Equal(t, "1.5", UiAmount(1_500_000, 6).String())
	assert.Equal(t, "0.000000001", UiAmount(1, 9).String())
	assert.Equal(t, int64(100_000_000_000), Pow10(11).Int64())
}
