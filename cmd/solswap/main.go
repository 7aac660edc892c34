package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/krazyTry/solswap-go/cmd/solswap/balances"
	"github.com/krazyTry/solswap-go/cmd/solswap/env"
	"github.com/krazyTry/solswap-go/cmd/solswap/initconfig"
	"github.com/krazyTry/solswap-go/cmd/solswap/initialize"
	"github.com/krazyTry/solswap-go/cmd/solswap/offer"
	"github.com/krazyTry/solswap-go/cmd/solswap/setup"
	"github.com/krazyTry/solswap-go/cmd/solswap/transfer"
)

var cmd = cobra.Command{
	Use:          "solswap",
	Short:        "Client for the solswap escrow program",
	SilenceUsage: true,
}

func init() {
	klogFlags := flag.NewFlagSet("klog", flag.ExitOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)
	env.Register(&cmd)

	cmd.AddCommand(
		&initialize.Cmd,
		&initconfig.Cmd,
		&offer.CreateCmd,
		&offer.TakeCmd,
		&offer.ShowCmd,
		&offer.ListCmd,
		&balances.Cmd,
		&setup.Cmd,
		&transfer.Cmd,
	)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	defer klog.Flush()
	cobra.CheckErr(cmd.ExecuteContext(ctx))
}
