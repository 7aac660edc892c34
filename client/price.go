package client

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	solanago "github.com/gagliardetto/solana-go"

	"github.com/krazyTry/solswap-go/decimal_math"
	"github.com/krazyTry/solswap-go/solana"
	"github.com/krazyTry/solswap-go/solana/token2022"
)

var (
	ErrInvalidPrice   = errors.New("price must be greater than zero")
	ErrAmountOverflow = errors.New("amount exceeds u64")
)

// priceScale relates lamports (9 decimals), USDC base units (6 decimals) and a
// USD per SOL price carrying 8 decimals.
var priceScale = decimal_math.Pow10(11)

func toUint64(v *big.Int) (uint64, error) {
	if !v.IsUint64() {
		return 0, fmt.Errorf("%w: %s", ErrAmountOverflow, v)
	}
	return v.Uint64(), nil
}

// USDCToLamports converts USDC base units to lamports at price, rounding up.
func USDCToLamports(usdcBase uint64, price int64) (uint64, error) {
	if price <= 0 {
		return 0, ErrInvalidPrice
	}
	q, err := decimal_math.MulDiv(new(big.Int).SetUint64(usdcBase), priceScale, big.NewInt(price), decimal_math.RoundingUp)
	if err != nil {
		return 0, err
	}
	return toUint64(q)
}

// LamportsToUSDC converts lamports to USDC base units at price, rounding down.
func LamportsToUSDC(lamports uint64, price int64) (uint64, error) {
	if price <= 0 {
		return 0, ErrInvalidPrice
	}
	q, err := decimal_math.MulDiv(new(big.Int).SetUint64(lamports), big.NewInt(price), priceScale, decimal_math.RoundingDown)
	if err != nil {
		return 0, err
	}
	return toUint64(q)
}

// Quote is what taking an offer moves at a given price.
type Quote struct {
	Offer solanago.PublicKey
	Price int64
	// Deposit is the vault balance released to the taker
	Deposit uint64
	// Received is Deposit net of any Token-2022 transfer fee
	Received uint64
	Fee      uint64
	// Cost is the USDC base units Deposit is worth at Price
	Cost uint64
}

func (s *Solswap) QuoteTakeOffer(ctx context.Context, address solanago.PublicKey, price int64) (*Quote, error) {
	if price <= 0 {
		return nil, ErrInvalidPrice
	}
	offer, err := s.GetOffer(ctx, address)
	if err != nil {
		return nil, err
	}
	if offer == nil {
		return nil, fmt.Errorf("%w: %s", ErrOfferNotFound, address)
	}

	feeConfig, err := token2022.GetTransferFeeConfig(ctx, s.provider.RPC, offer.MintDeposit, s.provider.Commitment)
	if err != nil {
		return nil, fmt.Errorf("failed to get transfer fee of %s: %w", offer.MintDeposit, err)
	}
	var fee token2022.TransferFee
	if feeConfig != nil {
		epoch, err := solana.GetCurrentEpoch(ctx, s.provider.RPC, s.provider.Commitment)
		if err != nil {
			return nil, err
		}
		fee = token2022.GetEpochFee(feeConfig, epoch)
	}

	amount := new(big.Int).SetUint64(offer.AmountDeposit)
	feeAmount := token2022.CalculateFee(fee, amount)

	cost, err := LamportsToUSDC(offer.AmountDeposit, price)
	if err != nil {
		return nil, err
	}
	return &Quote{
		Offer:    address,
		Price:    price,
		Deposit:  offer.AmountDeposit,
		Received: token2022.AmountAfterFee(fee, amount).Uint64(),
		Fee:      feeAmount.Uint64(),
		Cost:     cost,
	}, nil
}
