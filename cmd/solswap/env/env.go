// Package env resolves the provider and program shared by every solswap subcommand.
package env

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/krazyTry/solswap-go/client"
	"github.com/krazyTry/solswap-go/provider"
	solanago "github.com/krazyTry/solswap-go/solana"
	"github.com/krazyTry/solswap-go/workspace"
)

var (
	workspaceDir   string
	programName    string
	programID      string
	solanaConfig   string
	wsURL          string
	commitment     string
	confirmTimeout time.Duration
	pollInterval   time.Duration
	metricsFile    string
	tokenProgram   string

	registry = prometheus.NewRegistry()
)

// Register adds the shared persistent flags to root.
func Register(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.StringVar(&workspaceDir, "workspace", "", "Anchor workspace root (default $"+workspace.EnvWorkspace+" or the current directory)")
	flags.StringVar(&programName, "program", client.ProgramName, "Program name in the workspace")
	flags.StringVar(&programID, "program-id", "", "Program address, bypasses the workspace lookup")
	flags.StringVar(&solanaConfig, "solana-config", "", "Solana CLI config used for settings missing from the environment")
	flags.StringVar(&wsURL, "ws", "", "Websocket endpoint used to wait for confirmations")
	flags.StringVar(&commitment, "commitment", "", "Commitment level (processed, confirmed, finalized)")
	flags.DurationVar(&confirmTimeout, "confirm-timeout", provider.DefaultConfirmTimeout, "Maximum wait for a transaction confirmation")
	flags.StringVar(&tokenProgram, "token-program", solanago.TokenProgram2022.String(), "Token program for new mints and for mints that do not exist (spl-token, token-2022)")
	flags.DurationVar(&pollInterval, "poll-interval", provider.DefaultPollInterval, "Signature status polling period when no websocket is configured")
	flags.StringVar(&metricsFile, "metrics-file", "", "Write transaction metrics in Prometheus text format to this file on exit")
}

// ProviderConfig layers flags over the environment, the Solana CLI config and Anchor.toml.
func ProviderConfig(reg *workspace.Registry) (provider.Config, error) {
	cfg := provider.ReadEnv()
	if wsURL != "" {
		cfg.WSURL = wsURL
	}
	if commitment != "" {
		cfg.Commitment = rpc.CommitmentType(commitment)
	}
	cfg.ConfirmTimeout = confirmTimeout

	if solanaConfig != "" {
		cli, err := provider.ReadSolanaCLI(solanaConfig)
		if err != nil {
			return provider.Config{}, err
		}
		cfg = cfg.Merge(cli)
	}
	if reg != nil {
		cfg = reg.ProviderConfig(cfg)
	}
	err := cfg.Validate()
	return cfg, err
}

func loadRegistry() (*workspace.Registry, error) {
	if workspaceDir != "" {
		return workspace.Load(workspaceDir)
	}
	return workspace.LoadFromEnv()
}

// Open builds the provider and binds the program. Configuration errors are
// reported before workspace resolution errors.
func Open(ctx context.Context) (*client.Solswap, error) {
	program, err := solanago.ParseTokenProgram(tokenProgram)
	if err != nil {
		return nil, fmt.Errorf("invalid --token-program: %w", err)
	}
	opts := []client.Option{client.WithTokenProgram(program)}

	var (
		reg    *workspace.Registry
		regErr error
	)
	if programID == "" {
		reg, regErr = loadRegistry()
	}

	cfg, err := ProviderConfig(reg)
	if err != nil {
		return nil, err
	}
	p, err := provider.New(ctx, cfg, provider.WithMetrics(registry), provider.WithPollInterval(pollInterval))
	if err != nil {
		return nil, err
	}

	if programID != "" {
		id, err := solana.PublicKeyFromBase58(programID)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("invalid --program-id: %w", err)
		}
		return client.NewSolswap(p, workspace.Program{Name: programName, ID: id}, opts...), nil
	}
	if regErr != nil {
		p.Close()
		return nil, regErr
	}

	s, err := client.FromWorkspace(p, reg, programName, opts...)
	if err != nil {
		p.Close()
		return nil, err
	}
	klog.V(1).InfoS("program resolved", "name", programName, "id", s.Program().ID, "cluster", reg.Cluster)
	return s, nil
}

// Run opens the client, calls fn and releases the client.
func Run(c *cobra.Command, fn func(ctx context.Context, s *client.Solswap) error) error {
	s, err := Open(c.Context())
	if err != nil {
		return err
	}
	defer s.Provider().Close()
	defer writeMetrics()
	return fn(c.Context(), s)
}

func writeMetrics() {
	if metricsFile == "" {
		return
	}
	if err := prometheus.WriteToTextfile(metricsFile, registry); err != nil {
		klog.Warningf("failed to write metrics to %s: %v", metricsFile, err)
	}
}

// PublicKey parses a base58 flag value.
func PublicKey(name, value string) (solana.PublicKey, error) {
	if value == "" {
		return solana.PublicKey{}, fmt.Errorf("--%s is required", name)
	}
	key, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid --%s %q: %w", name, value, err)
	}
	return key, nil
}
