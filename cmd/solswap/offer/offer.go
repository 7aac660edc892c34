package offer

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/krazyTry/solswap-go/client"
	"github.com/krazyTry/solswap-go/cmd/solswap/env"
)

var (
	CreateCmd = cobra.Command{
		Use:   "create-offer",
		Short: "Escrow tokens in a new offer",
		Args:  cobra.NoArgs,
		RunE:  runCreate,
	}
	TakeCmd = cobra.Command{
		Use:   "take-offer",
		Short: "Accept an open offer",
		Args:  cobra.NoArgs,
		RunE:  runTake,
	}
	ShowCmd = cobra.Command{
		Use:   "offer <address>",
		Short: "Show an offer",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
	ListCmd = cobra.Command{
		Use:   "offers",
		Short: "List open offers",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}

	mintDeposit string
	mintReceive string
	amount      uint64
	offerFlag   string
	depositor   string
	price       int64
)

func init() {
	CreateCmd.Flags().StringVar(&mintDeposit, "mint-deposit", "", "Mint of the escrowed tokens")
	CreateCmd.Flags().StringVar(&mintReceive, "mint-receive", "", "Mint the depositor wants in return")
	CreateCmd.Flags().Uint64Var(&amount, "amount", 0, "Deposit amount in base units")

	TakeCmd.Flags().StringVar(&offerFlag, "offer", "", "Offer address")

	ShowCmd.Flags().Int64Var(&price, "price", 0, "USD per SOL with 8 decimals; when set the take cost is quoted")

	ListCmd.Flags().StringVar(&depositor, "depositor", "", "Only list offers of this depositor")
}

func runCreate(c *cobra.Command, _ []string) error {
	deposit, err := env.PublicKey("mint-deposit", mintDeposit)
	if err != nil {
		return err
	}
	receive, err := env.PublicKey("mint-receive", mintReceive)
	if err != nil {
		return err
	}
	params := client.CreateOfferParams{MintDeposit: deposit, MintReceive: receive, Amount: amount}
	if err := params.Validate(); err != nil {
		return err
	}

	return env.Run(c, func(ctx context.Context, s *client.Solswap) error {
		sig, offer, err := s.CreateOffer(ctx, params)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.OutOrStdout(), "Offer", offer)
		fmt.Fprintln(c.OutOrStdout(), "Your transaction signature", sig)
		return nil
	})
}

func runTake(c *cobra.Command, _ []string) error {
	address, err := env.PublicKey("offer", offerFlag)
	if err != nil {
		return err
	}
	return env.Run(c, func(ctx context.Context, s *client.Solswap) error {
		sig, err := s.TakeOffer(ctx, address)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.OutOrStdout(), "Your transaction signature", sig)
		return nil
	})
}

func runShow(c *cobra.Command, args []string) error {
	address, err := env.PublicKey("offer", args[0])
	if err != nil {
		return err
	}
	return env.Run(c, func(ctx context.Context, s *client.Solswap) error {
		offer, err := s.GetOffer(ctx, address)
		if err != nil {
			return err
		}
		if offer == nil {
			return fmt.Errorf("%w: %s", client.ErrOfferNotFound, address)
		}
		writeOffer(c.OutOrStdout(), offer)

		vault, err := s.GetVault(ctx, offer)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.OutOrStdout(), "%-18s %d\n", "Vault balance", vault.Amount)

		if price == 0 {
			return nil
		}
		quote, err := s.QuoteTakeOffer(ctx, address, price)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.OutOrStdout(), "%-18s %d (fee %d)\n", "Taker receives", quote.Received, quote.Fee)
		fmt.Fprintf(c.OutOrStdout(), "%-18s %s\n", "Cost", client.FormatAmount(quote.Cost, client.USDCDecimals, "USDC"))
		return nil
	})
}

func runList(c *cobra.Command, _ []string) error {
	var owner solana.PublicKey
	if depositor != "" {
		var err error
		if owner, err = env.PublicKey("depositor", depositor); err != nil {
			return err
		}
	}
	return env.Run(c, func(ctx context.Context, s *client.Solswap) error {
		offers, err := s.ListOffers(ctx, owner)
		if err != nil {
			return err
		}
		w := c.OutOrStdout()
		fmt.Fprintf(w, "%-44s | %-44s | %-44s | %s\n", "Offer", "Deposit mint", "Receive mint", "Amount")
		for _, o := range offers {
			fmt.Fprintf(w, "%-44s | %-44s | %-44s | %s\n", o.Address, o.MintDeposit, o.MintReceive, strconv.FormatUint(o.AmountDeposit, 10))
		}
		return nil
	})
}

func writeOffer(w io.Writer, o *client.OfferAccount) {
	fmt.Fprintf(w, "%-18s %s\n", "Offer", o.Address)
	fmt.Fprintf(w, "%-18s %s\n", "Depositor", o.DepositorAddress)
	fmt.Fprintf(w, "%-18s %s\n", "Deposit mint", o.MintDeposit)
	fmt.Fprintf(w, "%-18s %s\n", "Receive mint", o.MintReceive)
	fmt.Fprintf(w, "%-18s %d\n", "Amount", o.AmountDeposit)
	fmt.Fprintf(w, "%-18s %s\n", "Vault", o.Vault)
	fmt.Fprintf(w, "%-18s %d\n", "Bump", o.Bump)
}
