package initialize

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krazyTry/solswap-go/client"
	"github.com/krazyTry/solswap-go/cmd/solswap/env"
)

var Cmd = cobra.Command{
	Use:   "initialize",
	Short: "Invoke the program's initialize instruction and print the signature",
	Args:  cobra.NoArgs,
	RunE:  run,
}

func run(c *cobra.Command, _ []string) error {
	return env.Run(c, func(ctx context.Context, s *client.Solswap) error {
		sig, err := s.Initialize(ctx, client.InitializeAccounts{})
		if err != nil {
			return err
		}
		fmt.Fprintln(c.OutOrStdout(), "Your transaction signature", sig)
		return nil
	})
}
