package solswap

import (
	"github.com/krazyTry/solswap-go/client"
	"github.com/krazyTry/solswap-go/provider"
	"github.com/krazyTry/solswap-go/workspace"
)

// NewProvider creates a provider from the Anchor environment variables.
//
// Example:
//
// p, _ := NewProvider(ctx)
//
// defer p.Close()
var NewProvider = provider.Env

// LoadWorkspace loads the program registry from $ANCHOR_WORKSPACE or the working directory.
//
// Example:
//
// registry, _ := LoadWorkspace()
//
// program, _ := registry.Lookup("solswap")
var LoadWorkspace = workspace.LoadFromEnv

// NewClient creates a solswap client for a resolved program.
//
// Example:
//
// s := NewClient(p, program)
//
// sig, _ := s.Initialize(ctx, client.InitializeAccounts{})
//
// s.CreateOffer(ctx, client.CreateOfferParams{MintDeposit: mint, MintReceive: usdc, Amount: 2_000_000_000})
var NewClient = client.NewSolswap
