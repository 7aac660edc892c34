package solana

import (
	"bytes"

	"github.com/gagliardetto/solana-go"
)

// closeAccount is the SPL token CloseAccount instruction index, shared by Token-2022.
const closeAccount = 9

func isATACreate(ix solana.Instruction) bool {
	return ix.ProgramID().Equals(solana.SPLAssociatedTokenAccountProgramID)
}

func isCloseAccount(ix solana.Instruction) bool {
	if _, ok := TokenProgramOf(ix.ProgramID()); !ok {
		return false
	}
	data, err := ix.Data()
	return err == nil && len(data) == 1 && data[0] == closeAccount
}

func sameInstruction(a, b solana.Instruction) bool {
	if !a.ProgramID().Equals(b.ProgramID()) {
		return false
	}
	as, bs := a.Accounts(), b.Accounts()
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if !as[i].PublicKey.Equals(bs[i].PublicKey) {
			return false
		}
	}
	ad, aerr := a.Data()
	bd, berr := b.Data()
	return aerr == nil && berr == nil && bytes.Equal(ad, bd)
}

func appendUnique(list []solana.Instruction, ix solana.Instruction) []solana.Instruction {
	for _, v := range list {
		if sameInstruction(v, ix) {
			return list
		}
	}
	return append(list, ix)
}

// SplitInstructions splits instructions into three phases: start, middle, end.
// ATA creates go to start and close-account instructions to end, both deduplicated.
func SplitInstructions(oldInstructions []solana.Instruction) ([]solana.Instruction, []solana.Instruction, []solana.Instruction) {
	var (
		startInstruction  []solana.Instruction
		middleInstruction []solana.Instruction
		endInstruction    []solana.Instruction
	)
	for _, v := range oldInstructions {
		switch {
		case isATACreate(v):
			startInstruction = appendUnique(startInstruction, v)
		case isCloseAccount(v):
			endInstruction = appendUnique(endInstruction, v)
		default:
			middleInstruction = append(middleInstruction, v)
		}
	}
	return startInstruction, middleInstruction, endInstruction
}

// MergeInstructions reorders and deduplicates instructions built by independent helpers.
func MergeInstructions(oldInstructions []solana.Instruction) []solana.Instruction {
	startInstruction, middleInstruction, endInstruction := SplitInstructions(oldInstructions)

	newInstructions := make([]solana.Instruction, 0, len(oldInstructions))
	newInstructions = append(newInstructions, startInstruction...)
	newInstructions = append(newInstructions, middleInstruction...)
	newInstructions = append(newInstructions, endInstruction...)
	return newInstructions
}
