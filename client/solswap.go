// Package client invokes the solswap program through a provider.
package client

import (
	"context"
	"errors"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"k8s.io/klog/v2"

	solswapgen "github.com/krazyTry/solswap-go/gen/solswap"
	"github.com/krazyTry/solswap-go/provider"
	"github.com/krazyTry/solswap-go/solana"
	"github.com/krazyTry/solswap-go/workspace"
)

// ProgramName is the workspace name of the program.
const ProgramName = "solswap"

type Solswap struct {
	provider     *provider.Provider
	program      workspace.Program
	tokenProgram solana.TokenProgram
}

type Option func(*Solswap)

// WithTokenProgram sets the token program used when no mint is at hand to infer it. Default Token-2022.
func WithTokenProgram(program solana.TokenProgram) Option {
	return func(s *Solswap) { s.tokenProgram = program }
}

func NewSolswap(p *provider.Provider, program workspace.Program, opts ...Option) *Solswap {
	s := &Solswap{
		provider:     p,
		program:      program,
		tokenProgram: solana.TokenProgram2022,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromWorkspace resolves name in the registry and binds it to p.
func FromWorkspace(p *provider.Provider, registry *workspace.Registry, name string, opts ...Option) (*Solswap, error) {
	program, err := registry.Lookup(name)
	if err != nil {
		return nil, err
	}
	return NewSolswap(p, program, opts...), nil
}

func (s *Solswap) Program() workspace.Program { return s.program }

func (s *Solswap) Provider() *provider.Provider { return s.provider }

// programError attaches the declared program error to a failed transaction.
func programError(err error) error {
	var txErr *provider.TxError
	if errors.As(err, &txErr) && txErr.Code != nil {
		return fmt.Errorf("%w: %w", solswapgen.ErrorFromCode(*txErr.Code), err)
	}
	return err
}

func (s *Solswap) send(ctx context.Context, name string, instructions []solanago.Instruction, signers ...*solanago.Wallet) (string, error) {
	sig, err := s.provider.Send(ctx, solana.MergeInstructions(instructions), signers...)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, programError(err))
	}
	klog.V(1).InfoS("instruction confirmed", "instruction", name, "signature", sig)
	return sig.String(), nil
}

type InitializeAccounts struct {
	// Payer defaults to the provider wallet when zero
	Payer solanago.PublicKey
}

func InitializeInstruction(payer, programID solanago.PublicKey) ([]solanago.Instruction, error) {
	ix, err := solswapgen.NewInitializeInstruction(payer, programID)
	if err != nil {
		return nil, err
	}
	return []solanago.Instruction{ix}, nil
}

// Initialize invokes the argument-less initialize instruction and returns the confirmed signature.
// signers must include Payer when it is not the provider wallet.
func (s *Solswap) Initialize(ctx context.Context, accounts InitializeAccounts, signers ...*solanago.Wallet) (string, error) {
	if err := s.program.HasInstruction("initialize"); err != nil {
		return "", err
	}
	payer := accounts.Payer
	if payer.IsZero() {
		payer = s.provider.PublicKey()
	}

	instructions, err := InitializeInstruction(payer, s.program.ID)
	if err != nil {
		return "", err
	}
	return s.send(ctx, "initialize", instructions, signers...)
}

func InitConfigInstruction(payer, usdcMint, programID solanago.PublicKey) ([]solanago.Instruction, error) {
	ix, err := solswapgen.NewInitConfigInstruction(
		usdcMint,
		payer,
		DeriveConfigAddress(programID),
		solanago.SystemProgramID,
		programID,
	)
	if err != nil {
		return nil, err
	}
	return []solanago.Instruction{ix}, nil
}

// InitConfig records the USDC mint in the program config account.
func (s *Solswap) InitConfig(ctx context.Context, usdcMint solanago.PublicKey) (string, error) {
	if err := s.program.HasInstruction("init_config"); err != nil {
		return "", err
	}
	instructions, err := InitConfigInstruction(s.provider.PublicKey(), usdcMint, s.program.ID)
	if err != nil {
		return "", err
	}
	return s.send(ctx, "init_config", instructions)
}

// GetConfig returns nil, nil when the config account has not been created.
func (s *Solswap) GetConfig(ctx context.Context) (*solswapgen.Config, error) {
	address := DeriveConfigAddress(s.program.ID)
	out, err := solana.GetAccountInfo(ctx, s.provider.RPC, address, s.provider.Commitment)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get config %s: %w", address, err)
	}
	return solswapgen.ParseAccount_Config(out.GetBinary())
}
