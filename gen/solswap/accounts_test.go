package solswap

import (
	"bytes"
	"errors"
	"testing"

	binary "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferLayout(t *testing.T) {
	offer := Offer{
		MintDeposit:      solanago.WrappedSol,
		MintReceive:      solanago.NewWallet().PublicKey(),
		AmountDeposit:    2_000_000_000,
		DepositorAddress: solanago.NewWallet().PublicKey(),
		Vault:            solanago.NewWallet().PublicKey(),
		Bump:             254,
	}

	buf := new(bytes.Buffer)
	require.NoError(t, offer.MarshalWithEncoder(binary.NewBorshEncoder(buf)))
	data := buf.Bytes()
	require.Len(t, data, OfferAccountSize)

	assert.Equal(t, Account_Offer[:], data[:8])
	assert.Equal(t, offer.DepositorAddress.Bytes(), data[OfferDepositorAddressOffset:OfferDepositorAddressOffset+32])
	assert.Equal(t, byte(254), data[OfferBumpOffset])

	parsed, err := ParseAnyAccount(data)
	require.NoError(t, err)
	assert.Equal(t, &offer, parsed)
}

func TestParseAccountWrongDiscriminator(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, Config{UsdcMint: solanago.NewWallet().PublicKey()}.MarshalWithEncoder(binary.NewBorshEncoder(buf)))

	_, err := ParseAccount_Offer(buf.Bytes())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDiscriminatorMismatch))

	cfg, err := ParseAccount_Config(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, buf.Bytes(), ConfigAccountSize)
	assert.False(t, cfg.UsdcMint.IsZero())
}

func TestParseAnyAccountShortData(t *testing.T) {
	_, err := ParseAnyAccount([]byte{1, 2, 3})
	assert.Error(t, err)
}
