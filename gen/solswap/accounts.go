package solswap

import (
	"bytes"
	"errors"
	"fmt"

	binary "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
)

var ErrDiscriminatorMismatch = errors.New("account discriminator mismatch")

// Offer is an open escrow offer. Seeds: [mint_deposit, depositor].
type Offer struct {
	MintDeposit      solanago.PublicKey
	MintReceive      solanago.PublicKey
	AmountDeposit    uint64
	DepositorAddress solanago.PublicKey
	Vault            solanago.PublicKey
	Bump             uint8
}

// Byte offsets of Offer fields, discriminator included.
const (
	OfferMintDepositOffset      = 8
	OfferMintReceiveOffset      = OfferMintDepositOffset + 32
	OfferAmountDepositOffset    = OfferMintReceiveOffset + 32
	OfferDepositorAddressOffset = OfferAmountDepositOffset + 8
	OfferVaultOffset            = OfferDepositorAddressOffset + 32
	OfferBumpOffset             = OfferVaultOffset + 32
	OfferAccountSize            = OfferBumpOffset + 1
)

func (obj Offer) MarshalWithEncoder(encoder *binary.Encoder) (err error) {
	if err = encoder.WriteBytes(Account_Offer[:], false); err != nil {
		return err
	}
	if err = encoder.Encode(obj.MintDeposit); err != nil {
		return fmt.Errorf("error while marshaling MintDeposit: %w", err)
	}
	if err = encoder.Encode(obj.MintReceive); err != nil {
		return fmt.Errorf("error while marshaling MintReceive: %w", err)
	}
	if err = encoder.Encode(obj.AmountDeposit); err != nil {
		return fmt.Errorf("error while marshaling AmountDeposit: %w", err)
	}
	if err = encoder.Encode(obj.DepositorAddress); err != nil {
		return fmt.Errorf("error while marshaling DepositorAddress: %w", err)
	}
	if err = encoder.Encode(obj.Vault); err != nil {
		return fmt.Errorf("error while marshaling Vault: %w", err)
	}
	if err = encoder.Encode(obj.Bump); err != nil {
		return fmt.Errorf("error while marshaling Bump: %w", err)
	}
	return nil
}

func (obj *Offer) UnmarshalWithDecoder(decoder *binary.Decoder) (err error) {
	if err = readDiscriminator(decoder, Account_Offer, "Offer"); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.MintDeposit); err != nil {
		return fmt.Errorf("error while unmarshaling MintDeposit: %w", err)
	}
	if err = decoder.Decode(&obj.MintReceive); err != nil {
		return fmt.Errorf("error while unmarshaling MintReceive: %w", err)
	}
	if err = decoder.Decode(&obj.AmountDeposit); err != nil {
		return fmt.Errorf("error while unmarshaling AmountDeposit: %w", err)
	}
	if err = decoder.Decode(&obj.DepositorAddress); err != nil {
		return fmt.Errorf("error while unmarshaling DepositorAddress: %w", err)
	}
	if err = decoder.Decode(&obj.Vault); err != nil {
		return fmt.Errorf("error while unmarshaling Vault: %w", err)
	}
	if err = decoder.Decode(&obj.Bump); err != nil {
		return fmt.Errorf("error while unmarshaling Bump: %w", err)
	}
	return nil
}

// Config holds program-wide settings. Seeds: ["config"].
type Config struct {
	UsdcMint solanago.PublicKey
}

const ConfigAccountSize = 8 + 32

func (obj Config) MarshalWithEncoder(encoder *binary.Encoder) (err error) {
	if err = encoder.WriteBytes(Account_Config[:], false); err != nil {
		return err
	}
	if err = encoder.Encode(obj.UsdcMint); err != nil {
		return fmt.Errorf("error while marshaling UsdcMint: %w", err)
	}
	return nil
}

func (obj *Config) UnmarshalWithDecoder(decoder *binary.Decoder) (err error) {
	if err = readDiscriminator(decoder, Account_Config, "Config"); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.UsdcMint); err != nil {
		return fmt.Errorf("error while unmarshaling UsdcMint: %w", err)
	}
	return nil
}

func readDiscriminator(decoder *binary.Decoder, want [8]byte, name string) error {
	got, err := decoder.ReadBytes(8)
	if err != nil {
		return fmt.Errorf("error while reading %s discriminator: %w", name, err)
	}
	if !bytes.Equal(got, want[:]) {
		return fmt.Errorf("%w: expected %s %x, got %x", ErrDiscriminatorMismatch, name, want, got)
	}
	return nil
}

func ParseAccount_Offer(data []byte) (*Offer, error) {
	acc := new(Offer)
	if err := acc.UnmarshalWithDecoder(binary.NewBorshDecoder(data)); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account as Offer: %w", err)
	}
	return acc, nil
}

func ParseAccount_Config(data []byte) (*Config, error) {
	acc := new(Config)
	if err := acc.UnmarshalWithDecoder(binary.NewBorshDecoder(data)); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account as Config: %w", err)
	}
	return acc, nil
}

// ParseAnyAccount decodes data into *Offer or *Config based on its discriminator.
func ParseAnyAccount(data []byte) (any, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("account data too short: %d bytes", len(data))
	}
	var id [8]byte
	copy(id[:], data[:8])
	switch id {
	case Account_Offer:
		return ParseAccount_Offer(data)
	case Account_Config:
		return ParseAccount_Config(data)
	default:
		return nil, fmt.Errorf("%w: unknown discriminator %x", ErrDiscriminatorMismatch, id)
	}
}
