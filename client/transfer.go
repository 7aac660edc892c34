package client

import (
	"context"
	"math/big"

	solanago "github.com/gagliardetto/solana-go"

	"github.com/krazyTry/solswap-go/solana"
)

// Transfer sends amount base units of mint from the wallet to receiver, creating ATAs as needed.
func (s *Solswap) Transfer(ctx context.Context, mint, receiver solanago.PublicKey, amount uint64) (string, error) {
	token, err := solana.GetMint(ctx, s.provider.RPC, mint, s.provider.Commitment)
	if err != nil {
		return "", err
	}
	owner := s.provider.PublicKey()
	instructions, err := solana.TransferInstruction(
		ctx,
		s.provider.RPC,
		owner,
		owner,
		receiver,
		token,
		new(big.Int).SetUint64(amount),
		s.provider.Commitment,
	)
	if err != nil {
		return "", err
	}
	return s.send(ctx, "transfer", instructions)
}
