package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/solswap-go/provider"
)

const solswapID = "3KZKcYZ9zrgDkepQRNBAdKcKiAPuYiQTe8cwY9HjDTH2"

const anchorToml = `[toolchain]

[features]
resolution = true
skip-lint = false

[programs.localnet]
solswap = "` + solswapID + `"

[programs.devnet]
solswap = { address = "` + solswapID + `", idl = "target/idl/solswap.json" }

[registry]
url = "https://api.apr.dev"

[provider]
cluster = "Localnet"
wallet = "~/.config/solana/id.json"

[scripts]
test = "yarn run ts-mocha -p ./tsconfig.json -t 1000000 tests/**/*.ts"
`

const solswapIDL = `{
  "address": "` + solswapID + `",
  "metadata": {"name": "solswap", "version": "0.1.0", "spec": "0.1.0"},
  "instructions": [
    {"name": "create_offer", "discriminator": [237,233,192,168,248,7,249,241], "accounts": [], "args": [{"name": "amount", "type": "u64"}]},
    {"name": "init_config", "discriminator": [23,235,115,232,168,96,1,231], "accounts": [], "args": []},
    {"name": "initialize", "discriminator": [175,175,109,31,13,152,155,237], "accounts": [], "args": []},
    {"name": "take_offer", "discriminator": [128,156,242,207,237,192,103,240], "accounts": [], "args": []}
  ]
}`

func writeWorkspace(t *testing.T, manifest, idl string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ManifestName), []byte(manifest), 0o644))
	if idl != "" {
		require.NoError(t, os.MkdirAll(filepath.Join(root, "target", "idl"), 0o755))
		require.NoError(t, os.WriteFile(IDLPath(root, "solswap"), []byte(idl), 0o644))
	}
	return root
}

func TestLoadAndLookup(t *testing.T) {
	root := writeWorkspace(t, anchorToml, solswapIDL)

	r, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, "localnet", r.Cluster)

	for _, name := range []string{"solswap", "sol_swap", "sol-swap", "SolSwap"} {
		program, err := r.Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, solswapID, program.ID.String())
		assert.Equal(t, "solswap", program.Name)
	}

	program, err := r.Lookup("solswap")
	require.NoError(t, err)
	assert.Len(t, program.Instructions, 4)
	assert.NoError(t, program.HasInstruction("initialize"))
	assert.NoError(t, program.HasInstruction("createOffer"))
	assert.ErrorIs(t, program.HasInstruction("close_offer"), ErrUnknownInstruction)

	_, err = r.Lookup("escrow")
	assert.ErrorIs(t, err, ErrProgramNotFound)
	assert.Contains(t, err.Error(), "has solswap")

	programs := r.Programs()
	require.Len(t, programs, 1)
	assert.Equal(t, "solswap", programs[0].Name)
}

func TestLoadWithoutIDL(t *testing.T) {
	r, err := Load(writeWorkspace(t, anchorToml, ""))
	require.NoError(t, err)

	program, err := r.Lookup("solswap")
	require.NoError(t, err)
	assert.Nil(t, program.Instructions)
	assert.NoError(t, program.HasInstruction("anything"))
}

func TestLoadAddressMismatch(t *testing.T) {
	idl := `{"address": "11111111111111111111111111111111", "instructions": []}`
	_, err := Load(writeWorkspace(t, anchorToml, idl))
	assert.ErrorIs(t, err, ErrAddressMismatch)
}

func TestLoadTableEntry(t *testing.T) {
	manifest := `[programs.devnet]
solswap = { address = "` + solswapID + `" }

[provider]
cluster = "devnet"
wallet = "/keys/id.json"
`
	r, err := Load(writeWorkspace(t, manifest, ""))
	require.NoError(t, err)
	assert.Equal(t, "devnet", r.Cluster)
	_, err = r.Lookup("solswap")
	assert.NoError(t, err)
}

func TestLoadMissingManifest(t *testing.T) {
	_, err := Load(t.TempDir())
	assert.Error(t, err)
}

func TestLoadFromEnv(t *testing.T) {
	root := writeWorkspace(t, anchorToml, solswapIDL)
	t.Setenv(EnvWorkspace, root)

	r, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, root, r.Root)
}

func TestProviderConfig(t *testing.T) {
	r, err := Load(writeWorkspace(t, anchorToml, ""))
	require.NoError(t, err)

	cfg := r.ProviderConfig(provider.Config{})
	assert.Equal(t, rpc.LocalNet.RPC, cfg.URL)
	assert.Equal(t, rpc.LocalNet.WS, cfg.WSURL)
	assert.NotContains(t, cfg.WalletPath, "~")

	// explicit values win
	cfg = r.ProviderConfig(provider.Config{URL: "http://validator:8899", WalletPath: "/w.json"})
	assert.Equal(t, "http://validator:8899", cfg.URL)
	assert.Equal(t, "/w.json", cfg.WalletPath)
	assert.Empty(t, cfg.WSURL)
}
