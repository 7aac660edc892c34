// Package token2022 reads the Token-2022 transfer-fee extension and applies it to amounts.
package token2022

import (
	"context"
	"encoding/binary"
	"fmt"
	"math/big"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Mint data past the base layout: the mint is padded to the token account
// length, followed by an AccountType byte and TLV extension entries.
const (
	accountTypeOffset = 165
	extensionsOffset  = accountTypeOffset + 1

	AccountTypeMint = 1

	ExtensionUninitialized     = 0
	ExtensionTransferFeeConfig = 1

	transferFeeConfigLen = 108
)

const maxFeeBasisPoints = 10000

type TransferFee struct {
	Epoch       uint64
	MaximumFee  uint64
	BasisPoints uint16 // 1/10000
}

type TransferFeeConfig struct {
	TransferFeeConfigAuthority *solana.PublicKey
	WithdrawWithheldAuthority  *solana.PublicKey
	WithheldAmount             uint64
	OlderTransferFee           TransferFee
	NewerTransferFee           TransferFee
}

// transferFeeConfigLayout is the extension value; a zero authority means none.
type transferFeeConfigLayout struct {
	TransferFeeConfigAuthority solana.PublicKey
	WithdrawWithheldAuthority  solana.PublicKey
	WithheldAmount             uint64
	OlderTransferFee           TransferFee
	NewerTransferFee           TransferFee
}

func optionalKey(key solana.PublicKey) *solana.PublicKey {
	if key.IsZero() {
		return nil
	}
	return key.ToPointer()
}

// Extension returns the value of the extType entry of Token-2022 mint data, nil when absent.
func Extension(data []byte, extType uint16) ([]byte, error) {
	if len(data) <= accountTypeOffset {
		return nil, nil
	}
	if data[accountTypeOffset] != AccountTypeMint {
		return nil, fmt.Errorf("account type %d is not a mint", data[accountTypeOffset])
	}
	for off := extensionsOffset; off+4 <= len(data); {
		typ := binary.LittleEndian.Uint16(data[off:])
		length := int(binary.LittleEndian.Uint16(data[off+2:]))
		if typ == ExtensionUninitialized {
			return nil, nil
		}
		value := off + 4
		if value+length > len(data) {
			return nil, fmt.Errorf("extension %d truncated: need %d bytes, have %d", typ, length, len(data)-value)
		}
		if typ == extType {
			return data[value : value+length], nil
		}
		off = value + length
	}
	return nil, nil
}

// GetTransferFeeConfig returns nil when mint carries no transfer fee.
func GetTransferFeeConfig(ctx context.Context, rpcClient *rpc.Client, mint solana.PublicKey, commitment rpc.CommitmentType) (*TransferFeeConfig, error) {
	out, err := rpcClient.GetAccountInfoWithOpts(ctx, mint, &rpc.GetAccountInfoOpts{Commitment: commitment, Encoding: solana.EncodingBase64})
	if err != nil {
		return nil, err
	}
	if !out.Value.Owner.Equals(solana.Token2022ProgramID) {
		return nil, nil
	}
	return ParseTransferFeeConfig(out.GetBinary())
}

func ParseTransferFeeConfig(data []byte) (*TransferFeeConfig, error) {
	value, err := Extension(data, ExtensionTransferFeeConfig)
	if err != nil || value == nil {
		return nil, err
	}
	if len(value) != transferFeeConfigLen {
		return nil, fmt.Errorf("transfer fee config has %d bytes, want %d", len(value), transferFeeConfigLen)
	}

	var raw transferFeeConfigLayout
	if err := bin.NewBinDecoder(value).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode transfer fee config: %w", err)
	}
	return &TransferFeeConfig{
		TransferFeeConfigAuthority: optionalKey(raw.TransferFeeConfigAuthority),
		WithdrawWithheldAuthority:  optionalKey(raw.WithdrawWithheldAuthority),
		WithheldAmount:             raw.WithheldAmount,
		OlderTransferFee:           raw.OlderTransferFee,
		NewerTransferFee:           raw.NewerTransferFee,
	}, nil
}

// GetEpochFee picks the fee in force at currentEpoch; a nil config charges nothing.
func GetEpochFee(cfg *TransferFeeConfig, currentEpoch uint64) TransferFee {
	if cfg == nil {
		return TransferFee{}
	}
	if currentEpoch >= cfg.NewerTransferFee.Epoch {
		return cfg.NewerTransferFee
	}
	return cfg.OlderTransferFee
}

// CalculateFee is ceil(amount * bps / 10000) capped by MaximumFee.
func CalculateFee(tf TransferFee, amount *big.Int) *big.Int {
	if tf.BasisPoints == 0 || amount.Sign() <= 0 {
		return big.NewInt(0)
	}
	if tf.BasisPoints >= maxFeeBasisPoints {
		return new(big.Int).SetUint64(min(tf.MaximumFee, amount.Uint64()))
	}
	fee := new(big.Int).Mul(amount, big.NewInt(int64(tf.BasisPoints)))
	fee.Add(fee, big.NewInt(maxFeeBasisPoints-1))
	fee.Div(fee, big.NewInt(maxFeeBasisPoints))
	maxFee := new(big.Int).SetUint64(tf.MaximumFee)
	if fee.Cmp(maxFee) > 0 {
		return maxFee
	}
	return fee
}

// AmountAfterFee is what the recipient of a transfer of amount receives.
func AmountAfterFee(tf TransferFee, amount *big.Int) *big.Int {
	return new(big.Int).Sub(amount, CalculateFee(tf, amount))
}
