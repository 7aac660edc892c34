package solana

import (
	"context"
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/solswap-go/internal/rpcfake"
)

func TestFindAssociatedTokenAddress(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	want, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	require.NoError(t, err)

	got, err := FindAssociatedTokenAddress(owner, mint, TokenProgramSPL)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got2022, err := FindAssociatedTokenAddress(owner, mint, TokenProgram2022)
	require.NoError(t, err)
	assert.NotEqual(t, want, got2022)
}

func TestTokenProgramOf(t *testing.T) {
	p, ok := TokenProgramOf(solana.Token2022ProgramID)
	assert.True(t, ok)
	assert.Equal(t, TokenProgram2022, p)

	p, ok = TokenProgramOf(solana.TokenProgramID)
	assert.True(t, ok)
	assert.Equal(t, TokenProgramSPL, p)

	_, ok = TokenProgramOf(solana.SystemProgramID)
	assert.False(t, ok)
}

func TestPrepareTokenATA(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	fake := rpcfake.New().HandleResult("getAccountInfo", rpcfake.NullAccount)
	var ixs []solana.Instruction
	ata, err := PrepareTokenATA(context.Background(), fake.RPC(), owner, mint, owner, TokenProgram2022, rpc.CommitmentConfirmed, &ixs)
	require.NoError(t, err)
	require.Len(t, ixs, 1)
	assert.Equal(t, solana.SPLAssociatedTokenAccountProgramID, ixs[0].ProgramID())
	assert.Equal(t, ata, ixs[0].Accounts()[1].PublicKey)
	assert.Equal(t, solana.Token2022ProgramID, ixs[0].Accounts()[5].PublicKey)

	fake.HandleResult("getAccountInfo", rpcfake.AccountInfo(solana.Token2022ProgramID, make([]byte, TokenAccountSize)))
	ixs = nil
	_, err = PrepareTokenATA(context.Background(), fake.RPC(), owner, mint, owner, TokenProgram2022, rpc.CommitmentConfirmed, &ixs)
	require.NoError(t, err)
	assert.Empty(t, ixs)
}

func TestMergeInstructions(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	ata, err := FindAssociatedTokenAddress(owner, mint, TokenProgramSPL)
	require.NoError(t, err)

	create := CreateAssociatedTokenAccountIdempotentInstruction(owner, ata, owner, mint, TokenProgramSPL)
	closeIx := token.NewCloseAccountInstruction(ata, owner, owner, []solana.PublicKey{}).Build()
	mintTo, err := MintToInstruction(mint, ata, owner, 10, 6, TokenProgramSPL)
	require.NoError(t, err)

	merged := MergeInstructions([]solana.Instruction{mintTo, closeIx, create, create, closeIx})
	require.Len(t, merged, 3)
	assert.Same(t, create, merged[0])
	assert.Same(t, mintTo, merged[1])
	assert.Same(t, closeIx, merged[2])
}

func TestCreateMintInstructions(t *testing.T) {
	payer := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()

	fake := rpcfake.New().HandleResult("getMinimumBalanceForRentExemption", "1461600")
	ixs, err := CreateMintInstructions(context.Background(), fake.RPC(), payer, mint, payer, 6, TokenProgram2022, rpc.CommitmentConfirmed)
	require.NoError(t, err)
	require.Len(t, ixs, 2)
	assert.Equal(t, solana.SystemProgramID, ixs[0].ProgramID())
	assert.Equal(t, solana.Token2022ProgramID, ixs[1].ProgramID())

	data, err := ixs[1].Data()
	require.NoError(t, err)
	assert.Equal(t, byte(token.Instruction_InitializeMint2), data[0])
	assert.Equal(t, byte(6), data[1])

	revoke, err := RevokeMintAuthorityInstruction(mint, payer, TokenProgram2022)
	require.NoError(t, err)
	data, err = revoke.Data()
	require.NoError(t, err)
	// SetAuthority, MintTokens, None
	assert.Equal(t, []byte{token.Instruction_SetAuthority, 0, 0}, data)
}

func TestAccountLayoutDecode(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()

	data := make([]byte, 0, TokenAccountSize)
	data = append(data, mint.Bytes()...)
	data = append(data, owner.Bytes()...)
	data = binary.LittleEndian.AppendUint64(data, 1_500_000)
	data = append(data, make([]byte, 4+32)...)
	data = append(data, byte(AccountStateInitialized))
	data = append(data, make([]byte, TokenAccountSize-len(data))...)

	acc, err := new(AccountLayout).Decode(data)
	require.NoError(t, err)
	assert.Equal(t, mint, acc.Mint)
	assert.Equal(t, owner, acc.Owner)
	assert.Equal(t, uint64(1_500_000), acc.Amount)
	assert.True(t, acc.IsInitialized)
	assert.False(t, acc.IsFrozen)
	assert.Nil(t, acc.Delegate)

	_, err = new(AccountLayout).Decode(data[:100])
	assert.Error(t, err)
}

func TestGenProgramAccountFilter(t *testing.T) {
	owner := solana.NewWallet().PublicKey()

	opts := GenProgramAccountFilter("Offer", Filter{}, rpc.CommitmentConfirmed)
	require.Len(t, opts.Filters, 1)
	assert.Equal(t, solana.Base58(AccountDiscriminator("Offer")), opts.Filters[0].Memcmp.Bytes)

	opts = GenProgramAccountFilter("Offer", Filter{Owner: owner, Offset: 80}, rpc.CommitmentConfirmed)
	require.Len(t, opts.Filters, 2)
	assert.Equal(t, uint64(80), opts.Filters[1].Memcmp.Offset)
	assert.Equal(t, solana.Base58(owner.Bytes()), opts.Filters[1].Memcmp.Bytes)
}

func TestParseTokenProgram(t *testing.T) {
	for _, p := range []TokenProgram{TokenProgramSPL, TokenProgram2022} {
		got, err := ParseTokenProgram(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	_, err := ParseTokenProgram("token-2023")
	assert.Error(t, err)
}
