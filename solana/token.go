package solana

import (
	"context"
	"fmt"

	binary "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
)

// Token represents a mint together with the program that owns it.
type Token struct {
	token.Mint
	Address solana.PublicKey
	// Owner is the token program of the mint
	Owner solana.PublicKey
	// Data is the raw account data, Token-2022 extensions included
	Data []byte
}

// Program reports which token program owns the mint.
func (t *Token) Program() TokenProgram {
	p, _ := TokenProgramOf(t.Owner)
	return p
}

// TokenLayout provides methods for decoding mint data
type TokenLayout struct {
}

func (l *TokenLayout) Decode(data []byte) (*Token, error) {
	mint := token.Mint{}

	if err := mint.UnmarshalWithDecoder(binary.NewBinDecoder(data)); err != nil {
		return nil, err
	}
	return &Token{Mint: mint, Data: data}, nil
}

// GetMint loads and decodes a mint account.
func GetMint(ctx context.Context, rpcClient *rpc.Client, mint solana.PublicKey, commitment rpc.CommitmentType) (*Token, error) {
	out, err := GetAccountInfo(ctx, rpcClient, mint, commitment)
	if err != nil {
		return nil, fmt.Errorf("failed to get mint %s: %w", mint, err)
	}
	if _, ok := TokenProgramOf(out.Value.Owner); !ok {
		return nil, fmt.Errorf("account %s is owned by %s, not a token program", mint, out.Value.Owner)
	}

	t, err := new(TokenLayout).Decode(out.GetBinary())
	if err != nil {
		return nil, fmt.Errorf("failed to decode mint %s: %w", mint, err)
	}
	t.Address = mint
	t.Owner = out.Value.Owner
	return t, nil
}

func GetMultipleToken(ctx context.Context, rpcClient *rpc.Client, commitment rpc.CommitmentType, tokens ...solana.PublicKey) ([]*Token, error) {
	outs, err := GetMultipleAccountInfo(ctx, rpcClient, tokens, commitment)
	if err != nil {
		return nil, err
	}
	list := make([]*Token, len(outs.Value))
	for i, out := range outs.Value {
		if out == nil {
			continue
		}

		t, err := new(TokenLayout).Decode(out.Data.GetBinary())
		if err != nil {
			return nil, err
		}
		t.Address = tokens[i]
		t.Owner = out.Owner

		list[i] = t
	}
	return list, nil
}
