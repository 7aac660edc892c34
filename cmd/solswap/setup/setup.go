package setup

import (
	"context"
	"fmt"
	"math"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/krazyTry/solswap-go/client"
	"github.com/krazyTry/solswap-go/cmd/solswap/env"
)

var (
	Cmd = cobra.Command{
		Use:   "setup",
		Short: "Fund the wallet and create a deposit and a receive mint on a test cluster",
		Args:  cobra.NoArgs,
		RunE:  run,
	}

	airdropSOL      uint64
	depositDecimals uint8
	receiveDecimals uint8
	mintAmount      uint64
)

func init() {
	Cmd.Flags().Uint64Var(&airdropSOL, "airdrop", 5, "SOL to airdrop first, 0 skips the airdrop")
	Cmd.Flags().Uint8Var(&depositDecimals, "deposit-decimals", client.SOLDecimals, "Decimals of the deposit mint")
	Cmd.Flags().Uint8Var(&receiveDecimals, "receive-decimals", client.USDCDecimals, "Decimals of the receive mint")
	Cmd.Flags().Uint64Var(&mintAmount, "mint-amount", 2*solana.LAMPORTS_PER_SOL, "Deposit tokens minted to the wallet, in base units")
}

// maxAirdropSOL keeps the lamport amount within a u64.
const maxAirdropSOL = math.MaxUint64 / solana.LAMPORTS_PER_SOL

func airdropLamports(sol uint64) (uint64, error) {
	if sol > maxAirdropSOL {
		return 0, fmt.Errorf("--airdrop %d exceeds %d SOL", sol, uint64(maxAirdropSOL))
	}
	return sol * solana.LAMPORTS_PER_SOL, nil
}

func run(c *cobra.Command, _ []string) error {
	lamports, err := airdropLamports(airdropSOL)
	if err != nil {
		return err
	}
	return env.Run(c, func(ctx context.Context, s *client.Solswap) error {
		res, err := s.Setup(ctx, client.SetupParams{
			Airdrop:         lamports,
			DepositDecimals: depositDecimals,
			ReceiveDecimals: receiveDecimals,
			MintAmount:      mintAmount,
		})
		if err != nil {
			return err
		}
		w := c.OutOrStdout()
		fmt.Fprintln(w, "Deposit mint", res.DepositMint)
		fmt.Fprintln(w, "Receive mint", res.ReceiveMint)
		fmt.Fprintln(w, "Token account", res.TokenAccount)
		fmt.Fprintln(w, "Your transaction signature", res.Signature)
		return nil
	})
}
