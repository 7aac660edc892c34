package solswap

import (
	"bytes"
	"fmt"

	binary "github.com/gagliardetto/binary"
	solanago "github.com/gagliardetto/solana-go"
)

// NewInitializeInstruction builds a "initialize" instruction.
func NewInitializeInstruction(
	// Accounts:
	payerAccount solanago.PublicKey,
	programID solanago.PublicKey,
) (solanago.Instruction, error) {
	buf__ := new(bytes.Buffer)
	enc__ := binary.NewBorshEncoder(buf__)

	if err := enc__.WriteBytes(Instruction_Initialize[:], false); err != nil {
		return nil, fmt.Errorf("failed to write instruction discriminator: %w", err)
	}

	accounts__ := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(payerAccount, true, true),
	}
	return solanago.NewInstruction(programID, accounts__, buf__.Bytes()), nil
}

// NewInitConfigInstruction builds a "init_config" instruction.
func NewInitConfigInstruction(
	// Params:
	usdcMintParam solanago.PublicKey,

	// Accounts:
	payerAccount solanago.PublicKey,
	configAccount solanago.PublicKey,
	systemProgramAccount solanago.PublicKey,
	programID solanago.PublicKey,
) (solanago.Instruction, error) {
	buf__ := new(bytes.Buffer)
	enc__ := binary.NewBorshEncoder(buf__)

	if err := enc__.WriteBytes(Instruction_InitConfig[:], false); err != nil {
		return nil, fmt.Errorf("failed to write instruction discriminator: %w", err)
	}
	if err := enc__.Encode(usdcMintParam); err != nil {
		return nil, fmt.Errorf("failed to encode usdcMint: %w", err)
	}

	accounts__ := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(payerAccount, true, true),
		solanago.NewAccountMeta(configAccount, true, false),
		solanago.NewAccountMeta(systemProgramAccount, false, false),
	}
	return solanago.NewInstruction(programID, accounts__, buf__.Bytes()), nil
}

// NewCreateOfferInstruction builds a "create_offer" instruction.
func NewCreateOfferInstruction(
	// Params:
	amountParam uint64,

	// Accounts:
	signerAccount solanago.PublicKey,
	mintDepositAccount solanago.PublicKey,
	mintReceiveAccount solanago.PublicKey,
	offerAccount solanago.PublicKey,
	vaultAccount solanago.PublicKey,
	userTokenAccount solanago.PublicKey,
	systemProgramAccount solanago.PublicKey,
	tokenProgramAccount solanago.PublicKey,
	associatedTokenProgramAccount solanago.PublicKey,
	programID solanago.PublicKey,
) (solanago.Instruction, error) {
	buf__ := new(bytes.Buffer)
	enc__ := binary.NewBorshEncoder(buf__)

	if err := enc__.WriteBytes(Instruction_CreateOffer[:], false); err != nil {
		return nil, fmt.Errorf("failed to write instruction discriminator: %w", err)
	}
	if err := enc__.Encode(amountParam); err != nil {
		return nil, fmt.Errorf("failed to encode amount: %w", err)
	}

	accounts__ := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(signerAccount, true, true),
		solanago.NewAccountMeta(mintDepositAccount, false, false),
		solanago.NewAccountMeta(mintReceiveAccount, false, false),
		solanago.NewAccountMeta(offerAccount, true, false),
		solanago.NewAccountMeta(vaultAccount, true, false),
		solanago.NewAccountMeta(userTokenAccount, true, false),
		solanago.NewAccountMeta(systemProgramAccount, false, false),
		solanago.NewAccountMeta(tokenProgramAccount, false, false),
		solanago.NewAccountMeta(associatedTokenProgramAccount, false, false),
	}
	return solanago.NewInstruction(programID, accounts__, buf__.Bytes()), nil
}

// NewTakeOfferInstruction builds a "take_offer" instruction.
func NewTakeOfferInstruction(
	// Accounts:
	takerAccount solanago.PublicKey,
	depositorAccount solanago.PublicKey,
	tokenMintInAccount solanago.PublicKey,
	tokenMintOutAccount solanago.PublicKey,
	takerDepositAtaAccount solanago.PublicKey,
	takerReceiveAtaAccount solanago.PublicKey,
	depositorReceiveAtaAccount solanago.PublicKey,
	offerAccount solanago.PublicKey,
	vaultAccount solanago.PublicKey,
	associatedTokenProgramAccount solanago.PublicKey,
	systemProgramAccount solanago.PublicKey,
	tokenProgramAccount solanago.PublicKey,
	programID solanago.PublicKey,
) (solanago.Instruction, error) {
	buf__ := new(bytes.Buffer)
	enc__ := binary.NewBorshEncoder(buf__)

	if err := enc__.WriteBytes(Instruction_TakeOffer[:], false); err != nil {
		return nil, fmt.Errorf("failed to write instruction discriminator: %w", err)
	}

	accounts__ := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(takerAccount, true, true),
		solanago.NewAccountMeta(depositorAccount, false, false),
		solanago.NewAccountMeta(tokenMintInAccount, false, false),
		solanago.NewAccountMeta(tokenMintOutAccount, false, false),
		solanago.NewAccountMeta(takerDepositAtaAccount, true, false),
		solanago.NewAccountMeta(takerReceiveAtaAccount, true, false),
		solanago.NewAccountMeta(depositorReceiveAtaAccount, true, false),
		solanago.NewAccountMeta(offerAccount, true, false),
		solanago.NewAccountMeta(vaultAccount, true, false),
		solanago.NewAccountMeta(associatedTokenProgramAccount, false, false),
		solanago.NewAccountMeta(systemProgramAccount, false, false),
		solanago.NewAccountMeta(tokenProgramAccount, false, false),
	}
	return solanago.NewInstruction(programID, accounts__, buf__.Bytes()), nil
}

// DecodedInstruction is an instruction payload split into its name and Borsh arguments.
type DecodedInstruction struct {
	Name string
	// Set for init_config.
	UsdcMint *solanago.PublicKey
	// Set for create_offer.
	Amount *uint64
}

// DecodeInstructionData parses instruction data produced by the builders above.
func DecodeInstructionData(data []byte) (*DecodedInstruction, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("instruction data too short: %d bytes", len(data))
	}
	var id [8]byte
	copy(id[:], data[:8])

	name := InstructionIDToName(id)
	if name == "" {
		return nil, fmt.Errorf("unknown instruction discriminator %x", id)
	}

	out := &DecodedInstruction{Name: name}
	dec := binary.NewBorshDecoder(data[8:])
	switch id {
	case Instruction_InitConfig:
		var mint solanago.PublicKey
		if err := dec.Decode(&mint); err != nil {
			return nil, fmt.Errorf("failed to decode usdcMint: %w", err)
		}
		out.UsdcMint = &mint
	case Instruction_CreateOffer:
		var amount uint64
		if err := dec.Decode(&amount); err != nil {
			return nil, fmt.Errorf("failed to decode amount: %w", err)
		}
		out.Amount = &amount
	}
	return out, nil
}
