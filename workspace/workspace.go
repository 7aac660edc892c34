// Package workspace resolves Anchor programs by name from Anchor.toml and the generated IDLs.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	"github.com/krazyTry/solswap-go/provider"
)

const (
	EnvWorkspace = "ANCHOR_WORKSPACE"
	ManifestName = "Anchor.toml"
)

var (
	ErrProgramNotFound    = errors.New("program not found in workspace")
	ErrAddressMismatch    = errors.New("program address differs between Anchor.toml and IDL")
	ErrUnknownInstruction = errors.New("instruction not found in program IDL")
)

// Program is a deployed program handle.
type Program struct {
	Name string
	ID   solana.PublicKey
	// Instructions lists the IDL instruction names, nil when no IDL was found
	Instructions []string
	IDLPath      string
}

// HasInstruction reports whether name may be invoked. Without an IDL every name is accepted.
func (p Program) HasInstruction(name string) error {
	if p.Instructions == nil {
		return nil
	}
	want := normalize(name)
	for _, ix := range p.Instructions {
		if normalize(ix) == want {
			return nil
		}
	}
	return fmt.Errorf("%w: %s has no %q", ErrUnknownInstruction, p.Name, name)
}

type ProviderSection struct {
	Cluster string `toml:"cluster"`
	Wallet  string `toml:"wallet"`
}

type manifest struct {
	Provider ProviderSection                   `toml:"provider"`
	Programs map[string]map[string]interface{} `toml:"programs"`
}

type Registry struct {
	Root     string
	Cluster  string
	Provider ProviderSection

	programs map[string]Program
}

// Load reads <root>/Anchor.toml and the IDLs under <root>/target/idl.
func Load(root string) (*Registry, error) {
	path := filepath.Join(root, ManifestName)
	var m manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	r := &Registry{
		Root:     root,
		Provider: m.Provider,
		Cluster:  clusterKey(m.Provider.Cluster),
		programs: make(map[string]Program),
	}

	for name, value := range m.Programs[r.Cluster] {
		address, err := programAddress(value)
		if err != nil {
			return nil, fmt.Errorf("programs.%s.%s: %w", r.Cluster, name, err)
		}
		id, err := solana.PublicKeyFromBase58(address)
		if err != nil {
			return nil, fmt.Errorf("programs.%s.%s: invalid address %q: %w", r.Cluster, name, address, err)
		}

		program := Program{Name: name, ID: id}
		if err := loadIDL(root, &program); err != nil {
			return nil, err
		}
		r.programs[normalize(name)] = program
	}
	return r, nil
}

// LoadFromEnv loads the workspace at $ANCHOR_WORKSPACE, or the current directory.
func LoadFromEnv() (*Registry, error) {
	root := os.Getenv(EnvWorkspace)
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		root = wd
	}
	return Load(root)
}

func programAddress(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case map[string]interface{}:
		if address, ok := v["address"].(string); ok {
			return address, nil
		}
	}
	return "", fmt.Errorf("unsupported program entry %v", value)
}

// Lookup finds a program by name; snake, kebab and camel case spellings are equivalent.
func (r *Registry) Lookup(name string) (Program, error) {
	program, ok := r.programs[normalize(name)]
	if !ok {
		names := make([]string, 0, len(r.programs))
		for _, p := range r.Programs() {
			names = append(names, p.Name)
		}
		return Program{}, fmt.Errorf("%w: %q (cluster %s has %s)", ErrProgramNotFound, name, r.Cluster, strings.Join(names, ", "))
	}
	return program, nil
}

// Programs lists the registered programs by name.
func (r *Registry) Programs() []Program {
	out := make([]Program, 0, len(r.programs))
	for _, p := range r.programs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ProviderConfig fills the unset endpoint and wallet of cfg from the [provider] section.
func (r *Registry) ProviderConfig(cfg provider.Config) provider.Config {
	if cfg.URL == "" {
		cfg.URL, cfg.WSURL = clusterURLs(r.Provider.Cluster, cfg.WSURL)
	}
	if cfg.WalletPath == "" && r.Provider.Wallet != "" {
		cfg.WalletPath = provider.ExpandHome(r.Provider.Wallet)
	}
	return cfg
}

func clusterURLs(cluster, ws string) (string, string) {
	var c rpc.Cluster
	switch clusterKey(cluster) {
	case "localnet":
		c = rpc.LocalNet
	case "devnet":
		c = rpc.DevNet
	case "testnet":
		c = rpc.TestNet
	case "mainnet":
		c = rpc.MainNetBeta
	default:
		return cluster, ws
	}
	if ws == "" {
		ws = c.WS
	}
	return c.RPC, ws
}

// clusterKey maps a [provider] cluster value to its [programs.<key>] table name.
func clusterKey(cluster string) string {
	switch strings.ToLower(cluster) {
	case "", "localnet", "localhost", "l", "http://127.0.0.1:8899", "http://localhost:8899":
		return "localnet"
	case "devnet", "d":
		return "devnet"
	case "testnet", "t":
		return "testnet"
	case "mainnet", "mainnet-beta", "m":
		return "mainnet"
	default:
		return strings.ToLower(cluster)
	}
}

func normalize(name string) string {
	return strings.NewReplacer("_", "", "-", "").Replace(strings.ToLower(name))
}
