package solswap

import (
	"crypto/sha256"
	"encoding/binary"
	"testing"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscriminators(t *testing.T) {
	sum := sha256.Sum256([]byte("global:create_offer"))
	assert.Equal(t, sum[:8], Instruction_CreateOffer[:])

	sum = sha256.Sum256([]byte("account:Offer"))
	assert.Equal(t, sum[:8], Account_Offer[:])

	assert.Equal(t, "take_offer", InstructionIDToName(Instruction_TakeOffer))
	assert.Equal(t, "", InstructionIDToName([8]byte{}))
}

func TestNewInitializeInstruction(t *testing.T) {
	payer := solanago.NewWallet().PublicKey()

	ix, err := NewInitializeInstruction(payer, ProgramID)
	require.NoError(t, err)
	assert.Equal(t, ProgramID, ix.ProgramID())

	accounts := ix.Accounts()
	require.Len(t, accounts, 1)
	assert.Equal(t, payer, accounts[0].PublicKey)
	assert.True(t, accounts[0].IsSigner)
	assert.True(t, accounts[0].IsWritable)

	data, err := ix.Data()
	require.NoError(t, err)
	assert.Equal(t, Instruction_Initialize[:], data)
}

func TestNewCreateOfferInstruction(t *testing.T) {
	keys := make([]solanago.PublicKey, 9)
	for i := range keys {
		keys[i] = solanago.NewWallet().PublicKey()
	}

	ix, err := NewCreateOfferInstruction(100_000_000,
		keys[0], keys[1], keys[2], keys[3], keys[4], keys[5], keys[6], keys[7], keys[8], ProgramID)
	require.NoError(t, err)

	data, err := ix.Data()
	require.NoError(t, err)
	require.Len(t, data, 16)
	assert.Equal(t, Instruction_CreateOffer[:], data[:8])
	assert.Equal(t, uint64(100_000_000), binary.LittleEndian.Uint64(data[8:]))

	accounts := ix.Accounts()
	require.Len(t, accounts, 9)
	assert.True(t, accounts[0].IsSigner)
	for i, writable := range []bool{true, false, false, true, true, true, false, false, false} {
		assert.Equal(t, keys[i], accounts[i].PublicKey)
		assert.Equal(t, writable, accounts[i].IsWritable, "account %d", i)
	}

	decoded, err := DecodeInstructionData(data)
	require.NoError(t, err)
	assert.Equal(t, "create_offer", decoded.Name)
	require.NotNil(t, decoded.Amount)
	assert.Equal(t, uint64(100_000_000), *decoded.Amount)
}

func TestNewInitConfigInstruction(t *testing.T) {
	mint := solanago.NewWallet().PublicKey()
	payer := solanago.NewWallet().PublicKey()
	config := solanago.NewWallet().PublicKey()

	ix, err := NewInitConfigInstruction(mint, payer, config, solanago.SystemProgramID, ProgramID)
	require.NoError(t, err)

	data, err := ix.Data()
	require.NoError(t, err)
	decoded, err := DecodeInstructionData(data)
	require.NoError(t, err)
	assert.Equal(t, "init_config", decoded.Name)
	require.NotNil(t, decoded.UsdcMint)
	assert.Equal(t, mint, *decoded.UsdcMint)
}

func TestNewTakeOfferInstructionAccounts(t *testing.T) {
	keys := make([]solanago.PublicKey, 12)
	for i := range keys {
		keys[i] = solanago.NewWallet().PublicKey()
	}

	ix, err := NewTakeOfferInstruction(keys[0], keys[1], keys[2], keys[3], keys[4], keys[5],
		keys[6], keys[7], keys[8], keys[9], keys[10], keys[11], ProgramID)
	require.NoError(t, err)

	accounts := ix.Accounts()
	require.Len(t, accounts, 12)
	assert.True(t, accounts[0].IsSigner)
	assert.False(t, accounts[1].IsSigner)
	assert.True(t, accounts[7].IsWritable)
	assert.Equal(t, keys[11], accounts[11].PublicKey)
}

func TestDecodeInstructionDataUnknown(t *testing.T) {
	_, err := DecodeInstructionData([]byte{1, 2, 3})
	assert.Error(t, err)

	_, err = DecodeInstructionData(make([]byte, 8))
	assert.Error(t, err)
}

func TestErrorFromCode(t *testing.T) {
	assert.Same(t, ErrSameToken, ErrorFromCode(6003))
	assert.Equal(t, "AccountNotInitialized", ErrorFromCode(3012).Name)

	unknown := ErrorFromCode(7777)
	assert.Equal(t, uint32(7777), unknown.Code)
	assert.ErrorIs(t, &CustomError{Code: 6000}, ErrAmountZero)
}
