package transfer

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krazyTry/solswap-go/client"
	"github.com/krazyTry/solswap-go/cmd/solswap/env"
)

var (
	Cmd = cobra.Command{
		Use:   "transfer",
		Short: "Send tokens from the wallet to another owner",
		Args:  cobra.NoArgs,
		RunE:  run,
	}

	mintFlag string
	toFlag   string
	amount   uint64
)

func init() {
	Cmd.Flags().StringVar(&mintFlag, "mint", "", "Token mint")
	Cmd.Flags().StringVar(&toFlag, "to", "", "Receiving wallet")
	Cmd.Flags().Uint64Var(&amount, "amount", 0, "Amount in base units")
}

func run(c *cobra.Command, _ []string) error {
	mint, err := env.PublicKey("mint", mintFlag)
	if err != nil {
		return err
	}
	to, err := env.PublicKey("to", toFlag)
	if err != nil {
		return err
	}
	if amount == 0 {
		return fmt.Errorf("--amount must be greater than zero")
	}
	return env.Run(c, func(ctx context.Context, s *client.Solswap) error {
		sig, err := s.Transfer(ctx, mint, to, amount)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.OutOrStdout(), "Your transaction signature", sig)
		return nil
	})
}
