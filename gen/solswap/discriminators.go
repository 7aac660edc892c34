package solswap

import "crypto/sha256"

// Instruction discriminators: sha256("global:<name>")[:8].
var (
	Instruction_Initialize  = instructionDiscriminator("initialize")
	Instruction_InitConfig  = instructionDiscriminator("init_config")
	Instruction_CreateOffer = instructionDiscriminator("create_offer")
	Instruction_TakeOffer   = instructionDiscriminator("take_offer")
)

// Account discriminators: sha256("account:<Name>")[:8].
var (
	Account_Offer  = accountDiscriminator("Offer")
	Account_Config = accountDiscriminator("Config")
)

func instructionDiscriminator(name string) [8]byte {
	return sighash("global", name)
}

func accountDiscriminator(name string) [8]byte {
	return sighash("account", name)
}

func sighash(namespace, name string) [8]byte {
	sum := sha256.Sum256([]byte(namespace + ":" + name))
	var out [8]byte
	copy(out[:], sum[:8])
	return out
}

// InstructionIDToName returns the IDL name of an instruction discriminator.
func InstructionIDToName(id [8]byte) string {
	switch id {
	case Instruction_Initialize:
		return "initialize"
	case Instruction_InitConfig:
		return "init_config"
	case Instruction_CreateOffer:
		return "create_offer"
	case Instruction_TakeOffer:
		return "take_offer"
	default:
		return ""
	}
}
