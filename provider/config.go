package provider

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"gopkg.in/yaml.v3"
)

const (
	EnvProviderURL   = "ANCHOR_PROVIDER_URL"
	EnvProviderWSURL = "ANCHOR_PROVIDER_WS_URL"
	EnvWallet        = "ANCHOR_WALLET"
	EnvCommitment    = "ANCHOR_COMMITMENT"

	DefaultCommitment     = rpc.CommitmentConfirmed
	DefaultConfirmTimeout = 90 * time.Second
)

var (
	ErrMissingProviderURL = errors.New("provider url is not set (" + EnvProviderURL + ")")
	ErrMissingWallet      = errors.New("wallet path is not set (" + EnvWallet + ")")
	ErrInvalidCommitment  = errors.New("invalid commitment")
	ErrInvalidWallet      = errors.New("invalid wallet keypair")
)

// ConfigError reports a provider configuration problem. No network call has been made when it is returned.
type ConfigError struct {
	Err    error
	Detail string
}

func (e *ConfigError) Error() string {
	if e.Detail == "" {
		return "provider config: " + e.Err.Error()
	}
	return fmt.Sprintf("provider config: %s: %s", e.Err, e.Detail)
}

func (e *ConfigError) Unwrap() error { return e.Err }

type Config struct {
	URL        string
	WSURL      string
	WalletPath string
	Commitment rpc.CommitmentType
	// ConfirmTimeout bounds the wait for confirmation after submission
	ConfirmTimeout time.Duration
}

// ReadEnv returns the provider settings present in the Anchor environment variables, unvalidated.
func ReadEnv() Config {
	return Config{
		URL:        strings.TrimSpace(os.Getenv(EnvProviderURL)),
		WSURL:      strings.TrimSpace(os.Getenv(EnvProviderWSURL)),
		WalletPath: strings.TrimSpace(os.Getenv(EnvWallet)),
		Commitment: rpc.CommitmentType(strings.TrimSpace(os.Getenv(EnvCommitment))),
	}
}

// ConfigFromEnv reads the provider from the Anchor environment variables.
func ConfigFromEnv() (Config, error) {
	cfg := ReadEnv()
	err := cfg.Validate()
	return cfg, err
}

// Merge fills the unset fields of c from other.
func (c Config) Merge(other Config) Config {
	if c.URL == "" {
		c.URL = other.URL
	}
	if c.WSURL == "" {
		c.WSURL = other.WSURL
	}
	if c.WalletPath == "" {
		c.WalletPath = other.WalletPath
	}
	if c.Commitment == "" {
		c.Commitment = other.Commitment
	}
	if c.ConfirmTimeout == 0 {
		c.ConfirmTimeout = other.ConfirmTimeout
	}
	return c
}

// solanaCLIConfig is the subset of ~/.config/solana/cli/config.yml the provider uses.
type solanaCLIConfig struct {
	JSONRPCURL   string `yaml:"json_rpc_url"`
	WebsocketURL string `yaml:"websocket_url"`
	KeypairPath  string `yaml:"keypair_path"`
	Commitment   string `yaml:"commitment"`
}

// ReadSolanaCLI reads a Solana CLI config file without validating it.
func ReadSolanaCLI(path string) (Config, error) {
	raw, err := os.ReadFile(ExpandHome(path))
	if err != nil {
		return Config{}, &ConfigError{Err: err, Detail: path}
	}
	var file solanaCLIConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Config{}, &ConfigError{Err: fmt.Errorf("parse %s: %w", path, err)}
	}
	return Config{
		URL:        file.JSONRPCURL,
		WSURL:      file.WebsocketURL,
		WalletPath: ExpandHome(file.KeypairPath),
		Commitment: rpc.CommitmentType(file.Commitment),
	}, nil
}

// ConfigFromSolanaCLI reads a Solana CLI config file.
func ConfigFromSolanaCLI(path string) (Config, error) {
	cfg, err := ReadSolanaCLI(path)
	if err != nil {
		return Config{}, err
	}
	err = cfg.Validate()
	return cfg, err
}

// Validate fills defaults and checks required fields.
func (c *Config) Validate() error {
	if c.URL == "" {
		return &ConfigError{Err: ErrMissingProviderURL}
	}
	if c.WalletPath == "" {
		return &ConfigError{Err: ErrMissingWallet}
	}
	if c.Commitment == "" {
		c.Commitment = DefaultCommitment
	}
	switch c.Commitment {
	case rpc.CommitmentProcessed, rpc.CommitmentConfirmed, rpc.CommitmentFinalized:
	default:
		return &ConfigError{Err: ErrInvalidCommitment, Detail: string(c.Commitment)}
	}
	if c.ConfirmTimeout <= 0 {
		c.ConfirmTimeout = DefaultConfirmTimeout
	}
	return nil
}

// ExpandHome resolves a leading ~ against the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
