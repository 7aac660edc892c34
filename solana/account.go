package solana

import (
	"context"
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

type AccountState uint8

const (
	AccountStateUninitialized AccountState = 0
	AccountStateInitialized   AccountState = 1
	AccountStateFrozen        AccountState = 2
)

// TokenAccountSize is the base token account length; Token-2022 extensions follow it.
const TokenAccountSize = 165

// Account is a decoded SPL / Token-2022 token account.
type Account struct {
	Address solana.PublicKey
	Mint    solana.PublicKey
	// Wallet that owns the tokens
	Owner  solana.PublicKey
	Amount uint64

	Delegate        *solana.PublicKey
	DelegatedAmount uint64

	IsInitialized bool
	IsFrozen      bool
	IsNative      bool

	// Rent-exempt reserve of a native (wrapped SOL) account
	RentExemptReserve *uint64
	CloseAuthority    *solana.PublicKey
}

// tokenAccountLayout mirrors the on-chain token account, COption tags included.
type tokenAccountLayout struct {
	Mint                 solana.PublicKey
	Owner                solana.PublicKey
	Amount               uint64
	DelegateOption       uint32
	Delegate             solana.PublicKey
	State                uint8
	IsNativeOption       uint32
	IsNative             uint64
	DelegatedAmount      uint64
	CloseAuthorityOption uint32
	CloseAuthority       solana.PublicKey
}

type AccountLayout struct {
}

func (l *AccountLayout) Decode(data []byte) (*Account, error) {
	if len(data) < TokenAccountSize {
		return nil, fmt.Errorf("token account data too short: %d bytes", len(data))
	}
	raw := &tokenAccountLayout{}
	if err := binary.NewBinDecoder(data[:TokenAccountSize]).Decode(raw); err != nil {
		return nil, err
	}

	acc := &Account{
		Mint:            raw.Mint,
		Owner:           raw.Owner,
		Amount:          raw.Amount,
		DelegatedAmount: raw.DelegatedAmount,
		IsInitialized:   AccountState(raw.State) != AccountStateUninitialized,
		IsFrozen:        AccountState(raw.State) == AccountStateFrozen,
		IsNative:        raw.IsNativeOption > 0,
	}
	if raw.DelegateOption > 0 {
		acc.Delegate = raw.Delegate.ToPointer()
	}
	if raw.IsNativeOption > 0 {
		reserve := raw.IsNative
		acc.RentExemptReserve = &reserve
	}
	if raw.CloseAuthorityOption > 0 {
		acc.CloseAuthority = raw.CloseAuthority.ToPointer()
	}
	return acc, nil
}

// GetTokenAccount loads a token account; rpc.ErrNotFound is passed through unwrapped-compatible.
func GetTokenAccount(ctx context.Context, rpcClient *rpc.Client, address solana.PublicKey, commitment rpc.CommitmentType) (*Account, error) {
	out, err := GetAccountInfo(ctx, rpcClient, address, commitment)
	if err != nil {
		return nil, fmt.Errorf("failed to get token account %s: %w", address, err)
	}
	acc, err := new(AccountLayout).Decode(out.GetBinary())
	if err != nil {
		return nil, fmt.Errorf("failed to decode token account %s: %w", address, err)
	}
	acc.Address = address
	return acc, nil
}
