package client

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUSDCToLamports(t *testing.T) {
	// $150.00 per SOL
	const price = 15_000_000_000

	lamports, err := USDCToLamports(1_000_000, price)
	require.NoError(t, err)
	assert.Equal(t, uint64(6_666_667), lamports)

	lamports, err = USDCToLamports(150_000_000, price)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000_000), lamports)

	lamports, err = USDCToLamports(0, price)
	require.NoError(t, err)
	assert.Zero(t, lamports)

	_, err = USDCToLamports(1, 0)
	assert.ErrorIs(t, err, ErrInvalidPrice)
	_, err = USDCToLamports(1, -5)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = USDCToLamports(math.MaxUint64, 1)
	assert.ErrorIs(t, err, ErrAmountOverflow)
}

func TestLamportsToUSDC(t *testing.T) {
	const price = 15_000_000_000

	usdc, err := LamportsToUSDC(1_000_000_000, price)
	require.NoError(t, err)
	assert.Equal(t, uint64(150_000_000), usdc)

	// rounds down
	usdc, err = LamportsToUSDC(6_666_667, price)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), usdc)

	usdc, err = LamportsToUSDC(6_666_666, price)
	require.NoError(t, err)
	assert.Equal(t, uint64(999_999), usdc)

	_, err = LamportsToUSDC(1, 0)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = LamportsToUSDC(math.MaxUint64, math.MaxInt64)
	assert.ErrorIs(t, err, ErrAmountOverflow)
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		raw      uint64
		decimals uint8
		symbol   string
		want     string
	}{
		{1_234_500_000, 6, "USDC", "1,234.50 USDC"},
		{1_234_567_890_000, 6, "USDC", "1,234,567.89 USDC"},
		{0, 9, "SOL", "0.00 SOL"},
		{2_000_000_000, 9, "SOL", "2.00 SOL"},
		{123, 6, "USDC", "0.00 USDC"},
		{999_000, 6, "USDC", "1.00 USDC"},
		{100_000_000_000, 6, "USDC", "100,000.00 USDC"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatAmount(c.raw, c.decimals, c.symbol))
	}
}
