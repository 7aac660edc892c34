package solana

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// FindAssociatedTokenAddress derives the ATA of owner for mint under the given token program.
func FindAssociatedTokenAddress(owner, mint solana.PublicKey, program TokenProgram) (solana.PublicKey, error) {
	ata, _, err := solana.FindProgramAddress(
		[][]byte{owner.Bytes(), program.ID().Bytes(), mint.Bytes()},
		solana.SPLAssociatedTokenAccountProgramID,
	)
	return ata, err
}

// CreateAssociatedTokenAccountIdempotentInstruction succeeds on-chain even if the ATA already exists.
func CreateAssociatedTokenAccountIdempotentInstruction(payer, ata, owner, mint solana.PublicKey, program TokenProgram) solana.Instruction {
	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(payer, true, true),
		solana.NewAccountMeta(ata, true, false),
		solana.NewAccountMeta(owner, false, false),
		solana.NewAccountMeta(mint, false, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
		solana.NewAccountMeta(program.ID(), false, false),
	}
	// 1 = CreateIdempotent
	return solana.NewInstruction(solana.SPLAssociatedTokenAccountProgramID, accounts, []byte{1})
}

// PrepareTokenATA checks if the ATA exists and appends a create instruction when it does not.
func PrepareTokenATA(
	ctx context.Context,
	rpcClient *rpc.Client,
	owner solana.PublicKey,
	tokenMint solana.PublicKey,
	payer solana.PublicKey,
	program TokenProgram,
	commitment rpc.CommitmentType,
	instructions *[]solana.Instruction,
) (solana.PublicKey, error) {
	tokenATA, err := FindAssociatedTokenAddress(owner, tokenMint, program)
	if err != nil {
		return solana.PublicKey{}, err
	}

	_, err = GetAccountInfo(ctx, rpcClient, tokenATA, commitment)
	switch {
	case err == nil:
	case errors.Is(err, rpc.ErrNotFound):
		*instructions = append(*instructions,
			CreateAssociatedTokenAccountIdempotentInstruction(payer, tokenATA, owner, tokenMint, program))
	default:
		return solana.PublicKey{}, err
	}
	return tokenATA, nil
}
