// Package solana holds RPC and SPL token helpers shared by the solswap client and CLI.
package solana

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
)

// Filter represents a filter for querying program accounts by a pubkey field.
type Filter struct {
	Owner  solana.PublicKey // Key to match, zero matches any
	Offset uint64           // Byte offset of the key inside the account data
}

// TokenProgram selects the SPL token program a mint belongs to.
type TokenProgram uint8

const (
	TokenProgramSPL TokenProgram = iota
	TokenProgram2022
)

// ID returns the program address.
func (p TokenProgram) ID() solana.PublicKey {
	if p == TokenProgram2022 {
		return solana.Token2022ProgramID
	}
	return token.ProgramID
}

func (p TokenProgram) String() string {
	if p == TokenProgram2022 {
		return "token-2022"
	}
	return "spl-token"
}

// TokenProgramOf maps a mint owner to its TokenProgram.
func TokenProgramOf(owner solana.PublicKey) (TokenProgram, bool) {
	switch {
	case owner.Equals(solana.Token2022ProgramID):
		return TokenProgram2022, true
	case owner.Equals(token.ProgramID):
		return TokenProgramSPL, true
	default:
		return 0, false
	}
}

// ParseTokenProgram accepts the String form of a TokenProgram.
func ParseTokenProgram(name string) (TokenProgram, error) {
	switch name {
	case "token-2022", "token2022":
		return TokenProgram2022, nil
	case "spl-token", "spl", "token":
		return TokenProgramSPL, nil
	default:
		return 0, fmt.Errorf("unknown token program %q", name)
	}
}
