package solana

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
)

// MintSize is the size of a mint account without extensions.
const MintSize = token.MINT_SIZE

// retarget re-addresses an SPL token instruction to program; Token-2022 shares the base layout.
func retarget(ix *token.Instruction, program TokenProgram) (solana.Instruction, error) {
	data, err := ix.Data()
	if err != nil {
		return nil, err
	}
	return solana.NewInstruction(program.ID(), ix.Accounts(), data), nil
}

// CreateMintInstructions allocates mint and initializes it with authority as mint authority.
func CreateMintInstructions(
	ctx context.Context,
	rpcClient *rpc.Client,
	payer solana.PublicKey,
	mint solana.PublicKey,
	authority solana.PublicKey,
	decimals uint8,
	program TokenProgram,
	commitment rpc.CommitmentType,
) ([]solana.Instruction, error) {
	lamports, err := rpcClient.GetMinimumBalanceForRentExemption(ctx, MintSize, commitment)
	if err != nil {
		return nil, fmt.Errorf("failed to get rent exemption for mint: %w", err)
	}

	createIx, err := system.NewCreateAccountInstruction(lamports, MintSize, program.ID(), payer, mint).ValidateAndBuild()
	if err != nil {
		return nil, err
	}

	initIx, err := retarget(
		token.NewInitializeMint2InstructionBuilder().
			SetDecimals(decimals).
			SetMintAuthority(authority).
			SetMintAccount(mint).
			Build(),
		program,
	)
	if err != nil {
		return nil, err
	}
	return []solana.Instruction{createIx, initIx}, nil
}

func MintToInstruction(
	mint solana.PublicKey,
	destination solana.PublicKey,
	authority solana.PublicKey,
	amount uint64,
	decimals uint8,
	program TokenProgram,
) (solana.Instruction, error) {
	return retarget(
		token.NewMintToCheckedInstruction(amount, decimals, mint, destination, authority, []solana.PublicKey{}).Build(),
		program,
	)
}

// RevokeMintAuthorityInstruction fixes the supply of mint.
func RevokeMintAuthorityInstruction(mint, authority solana.PublicKey, program TokenProgram) (solana.Instruction, error) {
	ix, err := token.NewSetAuthorityInstructionBuilder().
		SetAuthorityType(token.AuthorityMintTokens).
		SetSubjectAccount(mint).
		SetAuthorityAccount(authority).
		ValidateAndBuild()
	if err != nil {
		return nil, err
	}
	return retarget(ix, program)
}
