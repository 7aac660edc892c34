package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/tidwall/gjson"
	"k8s.io/klog/v2"

	solanago "github.com/krazyTry/solswap-go/solana"
)

var (
	ErrConfirmTimeout = errors.New("transaction confirmation timed out")
	ErrMissingSigner  = errors.New("missing signer")
)

// TxError is a transaction the cluster rejected at preflight or executed with an error.
type TxError struct {
	// Signature is zero when the transaction was rejected before landing
	Signature solana.Signature
	// Code is the custom program error code, when there is one
	Code *uint32
	Logs []string
	Err  error
}

func (e *TxError) Error() string {
	msg := "transaction failed"
	if !e.Signature.IsZero() {
		msg = fmt.Sprintf("transaction %s failed", e.Signature)
	}
	if e.Code != nil {
		msg = fmt.Sprintf("%s: custom program error %d (0x%x)", msg, *e.Code, *e.Code)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TxError) Unwrap() error { return e.Err }

// customCode extracts InstructionError[1].Custom from a transaction error object.
func customCode(txErr gjson.Result) *uint32 {
	custom := txErr.Get("InstructionError.1.Custom")
	if !custom.Exists() {
		return nil
	}
	code := uint32(custom.Uint())
	return &code
}

func toJSON(v interface{}) gjson.Result {
	raw, err := json.Marshal(v)
	if err != nil {
		return gjson.Result{}
	}
	return gjson.ParseBytes(raw)
}

// rejected converts a sendTransaction failure into a TxError when it carries simulation data.
func rejected(err error) error {
	var rpcErr *jsonrpc.RPCError
	if !errors.As(err, &rpcErr) || rpcErr.Data == nil {
		return err
	}
	data := toJSON(rpcErr.Data)
	txErr := &TxError{Code: customCode(data.Get("err")), Err: err}
	for _, l := range data.Get("logs").Array() {
		txErr.Logs = append(txErr.Logs, l.String())
	}
	return txErr
}

// Send builds, signs and submits instructions with the wallet as fee payer, then waits for confirmation.
func (p *Provider) Send(ctx context.Context, instructions []solana.Instruction, signers ...*solana.Wallet) (solana.Signature, error) {
	latestBlockhash, err := solanago.GetLatestBlockhash(ctx, p.RPC, p.Commitment)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to get latest blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(instructions, latestBlockhash, solana.TransactionPayer(p.PublicKey()))
	if err != nil {
		return solana.Signature{}, err
	}

	if _, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(p.PublicKey()) {
			return &p.Wallet.PrivateKey
		}
		for _, s := range signers {
			if key.Equals(s.PublicKey()) {
				return &s.PrivateKey
			}
		}
		return nil
	}); err != nil {
		return solana.Signature{}, fmt.Errorf("%w: %v", ErrMissingSigner, err)
	}

	sig, err := p.RPC.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: p.Commitment,
	})
	if err != nil {
		p.metrics.observe(resultRejected, 0)
		return solana.Signature{}, rejected(err)
	}
	klog.V(2).InfoS("transaction submitted", "signature", sig, "instructions", len(instructions))

	if err := p.Confirm(ctx, sig); err != nil {
		return sig, err
	}
	return sig, nil
}

// Confirm blocks until sig reaches the provider commitment.
func (p *Provider) Confirm(ctx context.Context, sig solana.Signature) error {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, p.ConfirmTimeout)
	defer cancel()

	var err error
	if p.WS != nil {
		err = p.waitSubscription(ctx, sig)
	} else {
		err = p.poll(ctx, sig)
	}

	var txErr *TxError
	switch {
	case err == nil:
		p.metrics.observe(resultConfirmed, time.Since(start))
		klog.V(2).InfoS("transaction confirmed", "signature", sig, "elapsed", time.Since(start))
	case errors.As(err, &txErr):
		p.metrics.observe(resultFailed, time.Since(start))
	case errors.Is(err, context.DeadlineExceeded) && ctx.Err() != nil:
		p.metrics.observe(resultTimeout, time.Since(start))
		return fmt.Errorf("%w: %s after %s", ErrConfirmTimeout, sig, p.ConfirmTimeout)
	}
	return err
}

func (p *Provider) waitSubscription(ctx context.Context, sig solana.Signature) error {
	sub, err := p.WS.SignatureSubscribe(sig, p.Commitment)
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()

	// the notification may have fired before the subscription was registered
	if done, err := p.status(ctx, sig); done || err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case resp, ok := <-sub.Response():
		if !ok {
			return errors.New("signature subscription closed")
		}
		if resp.Value.Err != nil {
			return &TxError{
				Signature: sig,
				Code:      customCode(toJSON(resp.Value.Err)),
				Err:       fmt.Errorf("confirmed transaction with execution error: %v", resp.Value.Err),
			}
		}
		return nil
	case err := <-sub.Err():
		return err
	}
}

func (p *Provider) poll(ctx context.Context, sig solana.Signature) error {
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()
	for {
		done, err := p.status(ctx, sig)
		if done || err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// status reports whether sig has reached the provider commitment.
func (p *Provider) status(ctx context.Context, sig solana.Signature) (bool, error) {
	out, err := p.RPC.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return false, fmt.Errorf("rpc GetSignatureStatuses error: %w", err)
	}
	if len(out.Value) == 0 || out.Value[0] == nil {
		return false, nil
	}
	status := out.Value[0]
	if status.Err != nil {
		return true, &TxError{
			Signature: sig,
			Code:      customCode(toJSON(status.Err)),
			Err:       fmt.Errorf("confirmed transaction with execution error: %v", status.Err),
		}
	}
	return reached(status.ConfirmationStatus, p.Commitment), nil
}

func reached(status rpc.ConfirmationStatusType, want rpc.CommitmentType) bool {
	rank := map[string]int{
		string(rpc.ConfirmationStatusProcessed): 1,
		string(rpc.ConfirmationStatusConfirmed): 2,
		string(rpc.ConfirmationStatusFinalized): 3,
	}
	return rank[string(status)] >= rank[string(want)] && rank[string(status)] > 0
}
