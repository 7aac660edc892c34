package balances

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krazyTry/solswap-go/client"
	"github.com/krazyTry/solswap-go/cmd/solswap/env"
)

var (
	Cmd = cobra.Command{
		Use:   "balances",
		Short: "Print token balances of owners for mints",
		Args:  cobra.NoArgs,
		RunE:  run,
	}

	owners []string
	mints  []string
	title  string
)

func init() {
	Cmd.Flags().StringSliceVar(&owners, "owner", nil, "Owner wallets, defaults to the provider wallet")
	Cmd.Flags().StringSliceVar(&mints, "mint", nil, "Token mints")
	Cmd.Flags().StringVar(&title, "title", "Balances", "Table title")
}

func run(c *cobra.Command, _ []string) error {
	if len(mints) == 0 {
		return fmt.Errorf("at least one --mint is required")
	}
	return env.Run(c, func(ctx context.Context, s *client.Solswap) error {
		ownerKeys := owners
		if len(ownerKeys) == 0 {
			ownerKeys = []string{s.Provider().PublicKey().String()}
		}

		var queries []client.BalanceQuery
		for _, o := range ownerKeys {
			owner, err := env.PublicKey("owner", o)
			if err != nil {
				return err
			}
			for _, m := range mints {
				mint, err := env.PublicKey("mint", m)
				if err != nil {
					return err
				}
				queries = append(queries, client.BalanceQuery{
					Label: shortKey(owner.String()) + " " + shortKey(mint.String()),
					Owner: owner,
					Mint:  mint,
				})
			}
		}

		rows, err := s.Balances(ctx, queries)
		if err != nil {
			return err
		}
		return client.WriteBalances(c.OutOrStdout(), title, rows)
	})
}

func shortKey(key string) string {
	if len(key) <= 8 {
		return key
	}
	return key[:4] + ".." + key[len(key)-3:]
}
