// Package provider binds an RPC endpoint, an optional websocket endpoint and
// a signer wallet into the handle every solswap call is made through.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/prometheus/client_golang/prometheus"
	"k8s.io/klog/v2"
)

const DefaultPollInterval = 500 * time.Millisecond

type Provider struct {
	RPC    *rpc.Client
	WS     *ws.Client
	Wallet *solana.Wallet

	Commitment     rpc.CommitmentType
	ConfirmTimeout time.Duration

	pollInterval time.Duration
	metrics      *metrics
	registerer   prometheus.Registerer
}

type Option func(*Provider)

// WithWS confirms transactions through a signature subscription instead of polling.
func WithWS(wsClient *ws.Client) Option {
	return func(p *Provider) { p.WS = wsClient }
}

func WithCommitment(commitment rpc.CommitmentType) Option {
	return func(p *Provider) { p.Commitment = commitment }
}

func WithConfirmTimeout(timeout time.Duration) Option {
	return func(p *Provider) { p.ConfirmTimeout = timeout }
}

func WithPollInterval(interval time.Duration) Option {
	return func(p *Provider) {
		if interval > 0 {
			p.pollInterval = interval
		}
	}
}

// WithMetrics registers the provider's transaction collectors on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(p *Provider) { p.registerer = reg }
}

// New loads the wallet, then dials the configured endpoints.
func New(ctx context.Context, cfg Config, opts ...Option) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	privateKey, err := solana.PrivateKeyFromSolanaKeygenFile(ExpandHome(cfg.WalletPath))
	if err != nil {
		return nil, &ConfigError{Err: ErrInvalidWallet, Detail: err.Error()}
	}
	wallet := &solana.Wallet{PrivateKey: privateKey}

	var wsClient *ws.Client
	if cfg.WSURL != "" {
		if wsClient, err = ws.Connect(ctx, cfg.WSURL); err != nil {
			return nil, fmt.Errorf("failed to connect websocket %s: %w", cfg.WSURL, err)
		}
	}

	base := []Option{WithCommitment(cfg.Commitment), WithConfirmTimeout(cfg.ConfirmTimeout)}
	if wsClient != nil {
		base = append(base, WithWS(wsClient))
	}
	p, err := NewWithClient(rpc.New(cfg.URL), wallet, append(base, opts...)...)
	if err != nil {
		if wsClient != nil {
			wsClient.Close()
		}
		return nil, err
	}
	klog.V(2).InfoS("provider ready", "url", cfg.URL, "ws", cfg.WSURL != "", "wallet", wallet.PublicKey(), "commitment", p.Commitment)
	return p, nil
}

// Env builds a provider from the Anchor environment variables.
func Env(ctx context.Context, opts ...Option) (*Provider, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return New(ctx, cfg, opts...)
}

func NewWithClient(rpcClient *rpc.Client, wallet *solana.Wallet, opts ...Option) (*Provider, error) {
	if wallet == nil {
		return nil, &ConfigError{Err: ErrMissingWallet}
	}
	p := &Provider{
		RPC:            rpcClient,
		Wallet:         wallet,
		Commitment:     DefaultCommitment,
		ConfirmTimeout: DefaultConfirmTimeout,
		pollInterval:   DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(p)
	}

	m, err := newMetrics(p.registerer)
	if err != nil {
		return nil, err
	}
	p.metrics = m
	return p, nil
}

func (p *Provider) PublicKey() solana.PublicKey {
	return p.Wallet.PublicKey()
}

// Balance returns the lamports held by account.
func (p *Provider) Balance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	out, err := p.RPC.GetBalance(ctx, account, p.Commitment)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance of %s: %w", account, err)
	}
	return out.Value, nil
}

// Airdrop requests lamports for the wallet and waits for confirmation.
func (p *Provider) Airdrop(ctx context.Context, lamports uint64) (solana.Signature, error) {
	sig, err := p.RPC.RequestAirdrop(ctx, p.PublicKey(), lamports, p.Commitment)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("airdrop %d lamports: %w", lamports, err)
	}
	klog.V(2).InfoS("airdrop requested", "signature", sig, "lamports", lamports)
	return sig, p.Confirm(ctx, sig)
}

func (p *Provider) Close() error {
	if p.WS != nil {
		p.WS.Close()
	}
	return p.RPC.Close()
}
