// Package rpcfake is an in-memory stand-in for a Solana JSON-RPC node.
//
// It implements rpc.JSONRPCClient so tests can drive the real solana-go
// client against canned responses and inspect the calls that were made.
package rpcfake

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

// Handler returns the raw JSON result of a method call.
type Handler func(params []interface{}) (string, error)

// Call is a recorded request.
type Call struct {
	Method string
	Params []interface{}
}

type Client struct {
	mu       sync.Mutex
	handlers map[string]Handler
	calls    []Call
}

func New() *Client {
	return &Client{handlers: make(map[string]Handler)}
}

// RPC wraps the fake in a solana-go client.
func (c *Client) RPC() *rpc.Client {
	return rpc.NewWithCustomRPCClient(c)
}

func (c *Client) Handle(method string, h Handler) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers[method] = h
	return c
}

// HandleResult answers every call to method with the same JSON result.
func (c *Client) HandleResult(method, result string) *Client {
	return c.Handle(method, func([]interface{}) (string, error) {
		return result, nil
	})
}

// HandleError answers every call to method with a JSON-RPC error.
func (c *Client) HandleError(method string, rpcErr *jsonrpc.RPCError) *Client {
	return c.Handle(method, func([]interface{}) (string, error) {
		return "", rpcErr
	})
}

func (c *Client) Calls(method string) []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Call
	for _, call := range c.calls {
		if call.Method == method {
			out = append(out, call)
		}
	}
	return out
}

func (c *Client) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

func (c *Client) CallForInto(ctx context.Context, out interface{}, method string, params []interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	c.calls = append(c.calls, Call{Method: method, Params: params})
	h := c.handlers[method]
	c.mu.Unlock()

	if h == nil {
		return fmt.Errorf("rpcfake: no handler for %s", method)
	}
	result, err := h(params)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(result), out)
}

func (c *Client) CallWithCallback(context.Context, string, []interface{}, func(*http.Request, *http.Response) error) error {
	return errors.New("rpcfake: CallWithCallback not supported")
}

func (c *Client) CallBatch(context.Context, jsonrpc.RPCRequests) (jsonrpc.RPCResponses, error) {
	return nil, errors.New("rpcfake: CallBatch not supported")
}

// LatestBlockhash is a getLatestBlockhash result.
func LatestBlockhash(hash solana.Hash) string {
	return fmt.Sprintf(`{"context":{"slot":1},"value":{"blockhash":%q,"lastValidBlockHeight":300}}`, hash.String())
}

// AccountInfo is a getAccountInfo result with base64 data.
func AccountInfo(owner solana.PublicKey, data []byte) string {
	return fmt.Sprintf(`{"context":{"slot":1},"value":%s}`, account(owner, data))
}

// NullAccount is a getAccountInfo result for a missing account.
const NullAccount = `{"context":{"slot":1},"value":null}`

func account(owner solana.PublicKey, data []byte) string {
	return fmt.Sprintf(`{"data":[%q,"base64"],"executable":false,"lamports":2039280,"owner":%q,"rentEpoch":0,"space":%d}`,
		base64.StdEncoding.EncodeToString(data), owner.String(), len(data))
}

// ProgramAccounts is a getProgramAccounts result.
func ProgramAccounts(owner solana.PublicKey, accounts map[solana.PublicKey][]byte) string {
	out := "["
	first := true
	for key, data := range accounts {
		if !first {
			out += ","
		}
		first = false
		out += fmt.Sprintf(`{"pubkey":%q,"account":%s}`, key.String(), account(owner, data))
	}
	return out + "]"
}

// SignatureStatus is a getSignatureStatuses result for a single signature.
// txErr is raw JSON, "null" for success.
func SignatureStatus(status rpc.ConfirmationStatusType, txErr string) string {
	return fmt.Sprintf(`{"context":{"slot":1},"value":[{"slot":1,"confirmations":null,"err":%s,"confirmationStatus":%q}]}`, txErr, status)
}

// UnknownSignature is a getSignatureStatuses result for a signature the node has not seen.
const UnknownSignature = `{"context":{"slot":1},"value":[null]}`

// EchoSignature answers sendTransaction with the first signature of the submitted transaction.
func EchoSignature(params []interface{}) (string, error) {
	if len(params) == 0 {
		return "", errors.New("rpcfake: sendTransaction without params")
	}
	encoded, ok := params[0].(string)
	if !ok {
		return "", fmt.Errorf("rpcfake: unexpected transaction param %T", params[0])
	}
	tx, err := solana.TransactionFromBase64(encoded)
	if err != nil {
		return "", err
	}
	if err := tx.VerifySignatures(); err != nil {
		return "", err
	}
	return fmt.Sprintf("%q", tx.Signatures[0].String()), nil
}

// DecodeTransaction decodes the transaction param of a recorded sendTransaction call.
func DecodeTransaction(call Call) (*solana.Transaction, error) {
	encoded, ok := call.Params[0].(string)
	if !ok {
		return nil, fmt.Errorf("rpcfake: unexpected transaction param %T", call.Params[0])
	}
	return solana.TransactionFromBase64(encoded)
}

// ProgramFailure is the RPC error a node returns when preflight simulation
// fails with a custom program error.
func ProgramFailure(code uint32, logs ...string) *jsonrpc.RPCError {
	logsAny := make([]interface{}, len(logs))
	for i, l := range logs {
		logsAny[i] = l
	}
	return &jsonrpc.RPCError{
		Code:    -32002,
		Message: fmt.Sprintf("Transaction simulation failed: Error processing Instruction 0: custom program error: 0x%x", code),
		Data: map[string]interface{}{
			"err": map[string]interface{}{
				"InstructionError": []interface{}{0, map[string]interface{}{"Custom": code}},
			},
			"logs": logsAny,
		},
	}
}
