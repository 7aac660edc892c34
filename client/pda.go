package client

import (
	solanago "github.com/gagliardetto/solana-go"

	"github.com/krazyTry/solswap-go/solana"
)

var configSeed = []byte("config")

func DeriveConfigAddress(programID solanago.PublicKey) solanago.PublicKey {
	pub, _, _ := solanago.FindProgramAddress([][]byte{configSeed}, programID)
	return pub
}

// DeriveOfferAddress returns the offer PDA; a depositor has at most one open offer per deposit mint.
func DeriveOfferAddress(mintDeposit, depositor, programID solanago.PublicKey) (solanago.PublicKey, uint8) {
	pub, bump, _ := solanago.FindProgramAddress([][]byte{mintDeposit.Bytes(), depositor.Bytes()}, programID)
	return pub, bump
}

// DeriveVaultAddress is the offer-owned token account holding the deposit.
func DeriveVaultAddress(offer, mintDeposit solanago.PublicKey, program solana.TokenProgram) (solanago.PublicKey, error) {
	return solana.FindAssociatedTokenAddress(offer, mintDeposit, program)
}
