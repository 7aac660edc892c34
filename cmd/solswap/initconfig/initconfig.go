package initconfig

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krazyTry/solswap-go/client"
	"github.com/krazyTry/solswap-go/cmd/solswap/env"
)

var (
	Cmd = cobra.Command{
		Use:   "init-config",
		Short: "Create the program config account",
		Args:  cobra.NoArgs,
		RunE:  run,
	}

	usdcMint string
)

func init() {
	Cmd.Flags().StringVar(&usdcMint, "usdc-mint", "", "USDC mint recorded in the config")
}

func run(c *cobra.Command, _ []string) error {
	mint, err := env.PublicKey("usdc-mint", usdcMint)
	if err != nil {
		return err
	}
	return env.Run(c, func(ctx context.Context, s *client.Solswap) error {
		sig, err := s.InitConfig(ctx, mint)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.OutOrStdout(), "Your transaction signature", sig)
		return nil
	})
}
