package client

import (
	"context"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/krazyTry/solswap-go/solana"
)

type SetupParams struct {
	// Airdrop lamports requested before creating the mints, zero skips it
	Airdrop         uint64
	DepositDecimals uint8
	ReceiveDecimals uint8
	// MintAmount of the deposit mint credited to the wallet's ATA
	MintAmount uint64
}

type SetupResult struct {
	Signature    string
	DepositMint  solanago.PublicKey
	ReceiveMint  solanago.PublicKey
	TokenAccount solanago.PublicKey
}

// SetupInstructions creates a deposit and a receive mint, funds owner's deposit ATA
// with amount and fixes both supplies.
func SetupInstructions(
	ctx context.Context,
	rpcClient *rpc.Client,
	commitment rpc.CommitmentType,
	program solana.TokenProgram,
	owner solanago.PublicKey,
	depositMint, receiveMint solanago.PublicKey,
	params SetupParams,
) ([]solanago.Instruction, solanago.PublicKey, error) {
	receiveIxs, err := solana.CreateMintInstructions(ctx, rpcClient, owner, receiveMint, owner, params.ReceiveDecimals, program, commitment)
	if err != nil {
		return nil, solanago.PublicKey{}, err
	}
	revokeReceive, err := solana.RevokeMintAuthorityInstruction(receiveMint, owner, program)
	if err != nil {
		return nil, solanago.PublicKey{}, err
	}

	depositIxs, err := solana.CreateMintInstructions(ctx, rpcClient, owner, depositMint, owner, params.DepositDecimals, program, commitment)
	if err != nil {
		return nil, solanago.PublicKey{}, err
	}
	tokenAccount, err := solana.FindAssociatedTokenAddress(owner, depositMint, program)
	if err != nil {
		return nil, solanago.PublicKey{}, err
	}
	mintTo, err := solana.MintToInstruction(depositMint, tokenAccount, owner, params.MintAmount, params.DepositDecimals, program)
	if err != nil {
		return nil, solanago.PublicKey{}, err
	}
	revokeDeposit, err := solana.RevokeMintAuthorityInstruction(depositMint, owner, program)
	if err != nil {
		return nil, solanago.PublicKey{}, err
	}

	instructions := append(receiveIxs, revokeReceive)
	instructions = append(instructions, depositIxs...)
	instructions = append(instructions,
		solana.CreateAssociatedTokenAccountIdempotentInstruction(owner, tokenAccount, owner, depositMint, program),
		mintTo,
		revokeDeposit,
	)
	return instructions, tokenAccount, nil
}

// Setup prepares a local cluster for offers: two fresh mints and a funded deposit account.
func (s *Solswap) Setup(ctx context.Context, params SetupParams) (*SetupResult, error) {
	if params.Airdrop > 0 {
		if _, err := s.provider.Airdrop(ctx, params.Airdrop); err != nil {
			return nil, err
		}
	}

	depositMint := solanago.NewWallet()
	receiveMint := solanago.NewWallet()
	owner := s.provider.PublicKey()

	instructions, tokenAccount, err := SetupInstructions(ctx, s.provider.RPC, s.provider.Commitment, s.tokenProgram, owner, depositMint.PublicKey(), receiveMint.PublicKey(), params)
	if err != nil {
		return nil, err
	}

	// the ATA must follow its mint; send would hoist it
	sig, err := s.provider.Send(ctx, instructions, depositMint, receiveMint)
	if err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	return &SetupResult{
		Signature:    sig.String(),
		DepositMint:  depositMint.PublicKey(),
		ReceiveMint:  receiveMint.PublicKey(),
		TokenAccount: tokenAccount,
	}, nil
}
