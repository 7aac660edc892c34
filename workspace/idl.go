package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gagliardetto/solana-go"
	"github.com/tidwall/gjson"
)

// IDLPath is where `anchor build` writes the IDL of name.
func IDLPath(root, name string) string {
	return filepath.Join(root, "target", "idl", name+".json")
}

func loadIDL(root string, program *Program) error {
	path := IDLPath(root, program.Name)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if !gjson.ValidBytes(raw) {
		return fmt.Errorf("invalid IDL %s", path)
	}

	idl := gjson.ParseBytes(raw)
	// older IDLs keep the address under metadata
	address := idl.Get("address")
	if !address.Exists() {
		address = idl.Get("metadata.address")
	}
	if address.Exists() {
		id, err := solana.PublicKeyFromBase58(address.String())
		if err != nil {
			return fmt.Errorf("invalid address in %s: %w", path, err)
		}
		if !id.Equals(program.ID) {
			return fmt.Errorf("%w: %s is %s in %s, %s in %s", ErrAddressMismatch, program.Name, program.ID, ManifestName, id, path)
		}
	}

	program.Instructions = []string{}
	for _, name := range idl.Get("instructions.#.name").Array() {
		program.Instructions = append(program.Instructions, name.String())
	}
	program.IDLPath = path
	return nil
}
