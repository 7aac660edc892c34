package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"golang.org/x/sync/errgroup"

	"github.com/krazyTry/solswap-go/solana"
)

// maxBalanceRequests bounds concurrent getTokenAccountBalance calls.
const maxBalanceRequests = 8

type BalanceQuery struct {
	Label string
	Owner solanago.PublicKey
	Mint  solanago.PublicKey
	// Symbol defaults to SOL for wrapped SOL and USDC otherwise
	Symbol string
}

type BalanceRow struct {
	BalanceQuery
	TokenAccount solanago.PublicKey
	Amount       uint64
	Decimals     uint8
}

func (r BalanceRow) String() string {
	return FormatAmount(r.Amount, r.Decimals, r.Symbol)
}

// Balances reads the ATA balance of each query concurrently. The ATA is derived under
// the token program owning the mint, the client's token program when the mint does
// not exist. A missing ATA reads as zero.
func (s *Solswap) Balances(ctx context.Context, queries []BalanceQuery) ([]BalanceRow, error) {
	if len(queries) == 0 {
		return nil, nil
	}

	var mints []solanago.PublicKey
	seen := make(map[solanago.PublicKey]bool)
	for _, q := range queries {
		if !seen[q.Mint] {
			seen[q.Mint] = true
			mints = append(mints, q.Mint)
		}
	}
	tokens, err := solana.GetMultipleToken(ctx, s.provider.RPC, s.provider.Commitment, mints...)
	if err != nil {
		return nil, fmt.Errorf("failed to get mints: %w", err)
	}
	byMint := make(map[solanago.PublicKey]*solana.Token, len(tokens))
	for _, t := range tokens {
		if t == nil {
			continue
		}
		if _, ok := solana.TokenProgramOf(t.Owner); ok {
			byMint[t.Address] = t
		}
	}

	rows := make([]BalanceRow, len(queries))
	for i, q := range queries {
		symbol, decimals := defaultSymbol(q.Mint)
		if q.Symbol == "" {
			q.Symbol = symbol
		}
		program := s.tokenProgram
		if t, ok := byMint[q.Mint]; ok {
			program = t.Program()
			decimals = t.Decimals
		}
		ata, err := solana.FindAssociatedTokenAddress(q.Owner, q.Mint, program)
		if err != nil {
			return nil, err
		}
		rows[i] = BalanceRow{BalanceQuery: q, TokenAccount: ata, Decimals: decimals}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxBalanceRequests)
	for i := range rows {
		row := &rows[i]
		g.Go(func() error {
			out, err := s.provider.RPC.GetTokenAccountBalance(gctx, row.TokenAccount, s.provider.Commitment)
			if err != nil {
				// the node answers with an RPC error for accounts it cannot find
				var rpcErr *jsonrpc.RPCError
				if errors.As(err, &rpcErr) {
					return nil
				}
				return fmt.Errorf("failed to get balance of %s: %w", row.TokenAccount, err)
			}
			if out.Value == nil {
				return nil
			}
			amount, err := strconv.ParseUint(out.Value.Amount, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid balance %q of %s: %w", out.Value.Amount, row.TokenAccount, err)
			}
			row.Amount = amount
			row.Decimals = out.Value.Decimals
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

// WriteBalances prints rows as the balance table.
func WriteBalances(w io.Writer, title string, rows []BalanceRow) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n=== %s ===\n", title)
	fmt.Fprintf(&b, "%-20s | %-44s | %-12s\n", "Account", "Associated Token Address", "Balance")
	b.WriteString(strings.Repeat("-", 80) + "\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%-20s | %s | %s\n", r.Label, r.TokenAccount, r)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
