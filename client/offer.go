package client

import (
	"context"
	"errors"
	"fmt"
	"sort"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	solswapgen "github.com/krazyTry/solswap-go/gen/solswap"
	"github.com/krazyTry/solswap-go/solana"
)

type CreateOfferParams struct {
	MintDeposit solanago.PublicKey
	MintReceive solanago.PublicKey
	// Amount of MintDeposit base units moved into the vault
	Amount uint64
}

// Validate mirrors the program's own argument checks.
func (p CreateOfferParams) Validate() error {
	if p.Amount == 0 {
		return solswapgen.ErrAmountZero
	}
	if p.MintDeposit.Equals(p.MintReceive) {
		return solswapgen.ErrSameToken
	}
	return nil
}

// OfferAccount is a decoded offer with its address.
type OfferAccount struct {
	Address solanago.PublicKey
	*solswapgen.Offer
}

func CreateOfferInstruction(
	depositor solanago.PublicKey,
	params CreateOfferParams,
	program solana.TokenProgram,
	programID solanago.PublicKey,
) ([]solanago.Instruction, solanago.PublicKey, error) {
	offer, _ := DeriveOfferAddress(params.MintDeposit, depositor, programID)

	vault, err := DeriveVaultAddress(offer, params.MintDeposit, program)
	if err != nil {
		return nil, solanago.PublicKey{}, err
	}

	userTokenAccount, err := solana.FindAssociatedTokenAddress(depositor, params.MintDeposit, program)
	if err != nil {
		return nil, solanago.PublicKey{}, err
	}

	ix, err := solswapgen.NewCreateOfferInstruction(
		params.Amount,
		depositor,
		params.MintDeposit,
		params.MintReceive,
		offer,
		vault,
		userTokenAccount,
		solanago.SystemProgramID,
		program.ID(),
		solanago.SPLAssociatedTokenAccountProgramID,
		programID,
	)
	if err != nil {
		return nil, solanago.PublicKey{}, err
	}
	return []solanago.Instruction{ix}, offer, nil
}

// CreateOffer escrows params.Amount of the deposit mint and returns the offer address.
func (s *Solswap) CreateOffer(ctx context.Context, params CreateOfferParams) (string, solanago.PublicKey, error) {
	if err := params.Validate(); err != nil {
		return "", solanago.PublicKey{}, err
	}
	if err := s.program.HasInstruction("create_offer"); err != nil {
		return "", solanago.PublicKey{}, err
	}

	mint, err := solana.GetMint(ctx, s.provider.RPC, params.MintDeposit, s.provider.Commitment)
	if err != nil {
		return "", solanago.PublicKey{}, err
	}

	instructions, offer, err := CreateOfferInstruction(s.provider.PublicKey(), params, mint.Program(), s.program.ID)
	if err != nil {
		return "", solanago.PublicKey{}, err
	}

	sig, err := s.send(ctx, "create_offer", instructions)
	if err != nil {
		return "", solanago.PublicKey{}, err
	}
	return sig, offer, nil
}

func TakeOfferInstruction(
	ctx context.Context,
	rpcClient *rpc.Client,
	taker solanago.PublicKey,
	offer *OfferAccount,
	program solana.TokenProgram,
	programID solanago.PublicKey,
	commitment rpc.CommitmentType,
) ([]solanago.Instruction, error) {
	var instructions []solanago.Instruction

	mintIn := offer.MintDeposit
	mintOut := offer.MintReceive

	takerDepositAta, err := solana.FindAssociatedTokenAddress(taker, mintIn, program)
	if err != nil {
		return nil, err
	}

	// the program expects the taker's receive account to exist already
	takerReceiveAta, err := solana.PrepareTokenATA(ctx, rpcClient, taker, mintOut, taker, program, commitment, &instructions)
	if err != nil {
		return nil, err
	}

	depositorReceiveAta, err := solana.FindAssociatedTokenAddress(offer.DepositorAddress, mintOut, program)
	if err != nil {
		return nil, err
	}

	ix, err := solswapgen.NewTakeOfferInstruction(
		taker,
		offer.DepositorAddress,
		mintIn,
		mintOut,
		takerDepositAta,
		takerReceiveAta,
		depositorReceiveAta,
		offer.Address,
		offer.Vault,
		solanago.SPLAssociatedTokenAccountProgramID,
		solanago.SystemProgramID,
		program.ID(),
		programID,
	)
	if err != nil {
		return nil, err
	}
	return append(instructions, ix), nil
}

var ErrOfferNotFound = errors.New("offer not found")

// TakeOffer accepts the offer at address with the provider wallet as taker.
func (s *Solswap) TakeOffer(ctx context.Context, address solanago.PublicKey) (string, error) {
	if err := s.program.HasInstruction("take_offer"); err != nil {
		return "", err
	}

	offer, err := s.GetOffer(ctx, address)
	if err != nil {
		return "", err
	}
	if offer == nil {
		return "", fmt.Errorf("%w: %s", ErrOfferNotFound, address)
	}
	if offer.MintDeposit.Equals(offer.MintReceive) {
		return "", solswapgen.ErrSameToken
	}

	mint, err := solana.GetMint(ctx, s.provider.RPC, offer.MintDeposit, s.provider.Commitment)
	if err != nil {
		return "", err
	}

	instructions, err := TakeOfferInstruction(ctx, s.provider.RPC, s.provider.PublicKey(), offer, mint.Program(), s.program.ID, s.provider.Commitment)
	if err != nil {
		return "", err
	}
	return s.send(ctx, "take_offer", instructions)
}

// GetOffer returns nil, nil when no account exists at address.
func (s *Solswap) GetOffer(ctx context.Context, address solanago.PublicKey) (*OfferAccount, error) {
	out, err := solana.GetAccountInfo(ctx, s.provider.RPC, address, s.provider.Commitment)
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get offer %s: %w", address, err)
	}
	if !out.Value.Owner.Equals(s.program.ID) {
		return nil, fmt.Errorf("account %s is owned by %s, not %s", address, out.Value.Owner, s.program.Name)
	}

	offer, err := solswapgen.ParseAccount_Offer(out.GetBinary())
	if err != nil {
		return nil, fmt.Errorf("failed to decode offer %s: %w", address, err)
	}
	return &OfferAccount{Address: address, Offer: offer}, nil
}

// ListOffers returns the program's offers, only depositor's when it is non-zero.
func (s *Solswap) ListOffers(ctx context.Context, depositor solanago.PublicKey) ([]*OfferAccount, error) {
	opts := solana.GenProgramAccountFilter("Offer", solana.Filter{
		Owner:  depositor,
		Offset: solswapgen.OfferDepositorAddressOffset,
	}, s.provider.Commitment)

	outs, err := s.provider.RPC.GetProgramAccountsWithOpts(ctx, s.program.ID, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}

	list := make([]*OfferAccount, 0, len(outs))
	for _, out := range outs {
		offer, err := solswapgen.ParseAccount_Offer(out.Account.Data.GetBinary())
		if err != nil {
			return nil, fmt.Errorf("failed to decode offer %s: %w", out.Pubkey, err)
		}
		list = append(list, &OfferAccount{Address: out.Pubkey, Offer: offer})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Address.String() < list[j].Address.String() })
	return list, nil
}

// GetVault loads the token account escrowing offer's deposit.
func (s *Solswap) GetVault(ctx context.Context, offer *OfferAccount) (*solana.Account, error) {
	vault, err := solana.GetTokenAccount(ctx, s.provider.RPC, offer.Vault, s.provider.Commitment)
	if err != nil {
		return nil, err
	}
	if !vault.Mint.Equals(offer.MintDeposit) || !vault.Owner.Equals(offer.Address) {
		return nil, fmt.Errorf("vault %s does not hold %s for offer %s", offer.Vault, offer.MintDeposit, offer.Address)
	}
	return vault, nil
}
