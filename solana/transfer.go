package solana

import (
	"context"
	"math/big"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
)

// TransferInstruction moves amount of mint from sender's ATA to receiver's ATA,
// creating either ATA when missing. sender signs.
func TransferInstruction(
	ctx context.Context,
	rpcClient *rpc.Client,
	payer solana.PublicKey,
	sender solana.PublicKey,
	receiver solana.PublicKey,
	mint *Token,
	amount *big.Int,
	commitment rpc.CommitmentType,
) ([]solana.Instruction, error) {
	var instructions []solana.Instruction

	program := mint.Program()
	sendTokenAccount, err := PrepareTokenATA(ctx, rpcClient, sender, mint.Address, payer, program, commitment, &instructions)
	if err != nil {
		return nil, err
	}

	receiveTokenAccount, err := PrepareTokenATA(ctx, rpcClient, receiver, mint.Address, payer, program, commitment, &instructions)
	if err != nil {
		return nil, err
	}

	transferIx, err := retarget(token.NewTransferCheckedInstruction(
		amount.Uint64(),
		mint.Decimals,
		sendTokenAccount,
		mint.Address,
		receiveTokenAccount,
		sender,
		[]solana.PublicKey{},
	).Build(), program)
	if err != nil {
		return nil, err
	}

	return append(instructions, transferIx), nil
}
