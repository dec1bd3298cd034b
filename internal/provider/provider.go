package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strconv"

	"github.com/friendsofgo/errors"

	"github.com/DIMO-Network/transaction-signer/internal/chain"
)

//go:generate mockgen -source provider.go -destination ../mocks/provider.go -package mocks

// Provider is the JSON-RPC surface of a chain node that the signer needs.
type Provider interface {
	// GetBalance returns the funds and current nonce for an address.
	GetBalance(ctx context.Context, address string) (*BalanceResponse, error)
	// CreateTransaction submits a signed transaction and returns the id the
	// node assigned to it.
	CreateTransaction(ctx context.Context, tx *chain.Transaction) (*CreateTransactionResponse, error)
	// GetTransaction looks up a submitted transaction by id.
	GetTransaction(ctx context.Context, id string) (*GetTransactionResponse, error)
	// GetMinimumGasPrice returns the lowest gas price the network accepts
	// in the current epoch.
	GetMinimumGasPrice(ctx context.Context) (*big.Int, error)
}

// BalanceResponse holds an account's funds in the smallest unit and the
// nonce of its latest committed transaction.
type BalanceResponse struct {
	Balance *big.Int
	Nonce   uint64
}

// CreateTransactionResponse acknowledges a submission.
type CreateTransactionResponse struct {
	TranID string `json:"TranID"`
	Info   string `json:"Info"`
}

// TransactionReceipt is the outcome of an on-chain transaction.
type TransactionReceipt struct {
	Success       bool   `json:"success"`
	CumulativeGas string `json:"cumulative_gas"`
	EpochNum      string `json:"epoch_num"`
}

// GetTransactionResponse is the chain's record of a finalized transaction.
type GetTransactionResponse struct {
	ID      string             `json:"ID"`
	Receipt TransactionReceipt `json:"receipt"`
}

// RPCError is a failure reported by the node itself rather than by the
// transport.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type httpProvider struct {
	endpoint string
	client   *http.Client
}

// NewHTTP returns a Provider speaking JSON-RPC 2.0 over HTTP against the
// given endpoint.
func NewHTTP(endpoint string) Provider {
	return &httpProvider{endpoint: endpoint, client: &http.Client{}}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

func (p *httpProvider) call(ctx context.Context, method string, params []any, out any) error {
	body, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "failed to construct request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed calling %s", method)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return errors.Errorf("status code %d calling %s", res.StatusCode, method)
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response body")
	}

	var parsed rpcResponse
	if err := json.Unmarshal(b, &parsed); err != nil {
		return errors.Wrapf(err, "failed to parse %s response", method)
	}

	if parsed.Error != nil {
		return parsed.Error
	}

	return json.Unmarshal(parsed.Result, out)
}

type balanceResult struct {
	Balance string `json:"balance"`
	Nonce   uint64 `json:"nonce"`
}

func (p *httpProvider) GetBalance(ctx context.Context, address string) (*BalanceResponse, error) {
	var res balanceResult
	if err := p.call(ctx, "GetBalance", []any{address}, &res); err != nil {
		return nil, err
	}

	balance, ok := new(big.Int).SetString(res.Balance, 10)
	if !ok {
		return nil, errors.Errorf("malformed balance %q", res.Balance)
	}

	return &BalanceResponse{Balance: balance, Nonce: res.Nonce}, nil
}

// txParams is the wire form of a transaction. The node wants the numeric
// amounts as decimal strings.
type txParams struct {
	Version   uint32 `json:"version"`
	Nonce     uint64 `json:"nonce"`
	ToAddr    string `json:"toAddr"`
	Amount    string `json:"amount"`
	PubKey    string `json:"pubKey"`
	GasPrice  string `json:"gasPrice"`
	GasLimit  string `json:"gasLimit"`
	Code      string `json:"code"`
	Data      string `json:"data"`
	Signature string `json:"signature"`
}

func (p *httpProvider) CreateTransaction(ctx context.Context, tx *chain.Transaction) (*CreateTransactionResponse, error) {
	params := txParams{
		Version:   tx.Version,
		Nonce:     tx.Nonce,
		ToAddr:    tx.ToAddr,
		Amount:    tx.Amount.String(),
		PubKey:    tx.PubKey,
		GasPrice:  tx.GasPrice.String(),
		GasLimit:  strconv.FormatUint(tx.GasLimit, 10),
		Code:      tx.Code,
		Data:      tx.Data,
		Signature: tx.Signature,
	}

	var res CreateTransactionResponse
	if err := p.call(ctx, "CreateTransaction", []any{params}, &res); err != nil {
		return nil, err
	}

	return &res, nil
}

func (p *httpProvider) GetTransaction(ctx context.Context, id string) (*GetTransactionResponse, error) {
	var res GetTransactionResponse
	if err := p.call(ctx, "GetTransaction", []any{id}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (p *httpProvider) GetMinimumGasPrice(ctx context.Context) (*big.Int, error) {
	var res string
	if err := p.call(ctx, "GetMinimumGasPrice", []any{}, &res); err != nil {
		return nil, err
	}

	price, ok := new(big.Int).SetString(res, 10)
	if !ok {
		return nil, errors.Errorf("malformed gas price %q", res)
	}

	return price, nil
}
