package rpcclient

import (
	"context"

	"github.com/web3-fighter/sol-rpc-gateway/internal/rpcerr"
)

// TransactionMeta carries the parts of getTransaction's meta object this
// client exposes.
type TransactionMeta struct {
	Err          any      `json:"err"`
	Fee          uint64   `json:"fee"`
	PreBalances  []uint64 `json:"preBalances"`
	PostBalances []uint64 `json:"postBalances"`
	LogMessages  []string `json:"logMessages"`
}

// TransactionResult mirrors getTransaction's result shape.
type TransactionResult struct {
	Slot      uint64           `json:"slot"`
	BlockTime *int64           `json:"blockTime"`
	Meta      TransactionMeta  `json:"meta"`
	Transaction struct {
		Signatures []string `json:"signatures"`
	} `json:"transaction"`
}

func (c *Client) GetTransaction(ctx context.Context, services Services, cfg Config, signature string) (*TransactionResult, error) {
	if len(signature) < 64 {
		return nil, rpcerr.Validation("invalid signature: %q", signature)
	}
	params := []any{signature, map[string]any{
		"encoding":                       "json",
		"commitment":                     Finalized,
		"maxSupportedTransactionVersion": 0,
	}}
	return call[*TransactionResult](ctx, c, services, cfg, "getTransaction", params, sizeTransaction, false)
}

func (c *Client) GetTransactionCount(ctx context.Context, services Services, cfg Config, commitment CommitmentType) (uint64, error) {
	params := []any{map[string]string{"commitment": string(commitment)}}
	return call[uint64](ctx, c, services, cfg, "getTransactionCount", params, sizeSlot, false)
}

// SignatureInfo mirrors one entry of getSignaturesForAddress's result.
type SignatureInfo struct {
	Signature string `json:"signature"`
	Slot      uint64 `json:"slot"`
	Err       any    `json:"err"`
	BlockTime *int64 `json:"blockTime"`
}

type getSignaturesParams struct {
	Commitment string `json:"commitment,omitempty"`
	Limit      uint64 `json:"limit,omitempty"`
	Before     string `json:"before,omitempty"`
	Until      string `json:"until,omitempty"`
}

func (c *Client) GetSignaturesForAddress(ctx context.Context, services Services, cfg Config, address string, commitment CommitmentType, limit uint64, before, until string) ([]*SignatureInfo, error) {
	params := []any{address, getSignaturesParams{
		Commitment: string(commitment),
		Limit:      limit,
		Before:     before,
		Until:      until,
	}}
	return call[[]*SignatureInfo](ctx, c, services, cfg, "getSignaturesForAddress", params, signaturesForAddressSize(limit), false)
}

// SignatureStatus mirrors one entry of getSignatureStatuses's result.value.
type SignatureStatus struct {
	Slot               uint64 `json:"slot"`
	Confirmations      *int   `json:"confirmations"`
	Err                any    `json:"err"`
	ConfirmationStatus string `json:"confirmationStatus"`
}

func (c *Client) GetSignatureStatuses(ctx context.Context, services Services, cfg Config, signatures []string, searchHistory bool) ([]*SignatureStatus, error) {
	params := []any{signatures, map[string]bool{"searchTransactionHistory": searchHistory}}
	return call[[]*SignatureStatus](ctx, c, services, cfg, "getSignatureStatuses", params, sizeSignatureStatus*uint64(len(signatures)), true)
}

// SendTransactionConfig mirrors sendTransaction's config object.
type SendTransactionConfig struct {
	Encoding           string `json:"encoding,omitempty"`
	SkipPreflight      bool   `json:"skipPreflight,omitempty"`
	PreflightCommitment string `json:"preflightCommitment,omitempty"`
	MaxRetries         *uint64 `json:"maxRetries,omitempty"`
}

func (c *Client) SendTransaction(ctx context.Context, services Services, cfg Config, signedTxBase58 string, txCfg SendTransactionConfig) (string, error) {
	if signedTxBase58 == "" {
		return "", rpcerr.Validation("empty transaction")
	}
	if txCfg.Encoding == "" {
		txCfg.Encoding = "base58"
	}
	return call[string](ctx, c, services, cfg, "sendTransaction", []any{signedTxBase58, txCfg}, sizeSendTransaction, false)
}

// SimulateResult mirrors simulateTransaction's result.value shape.
type SimulateResult struct {
	Err           any      `json:"err"`
	Logs          []string `json:"logs"`
	UnitsConsumed uint64   `json:"unitsConsumed"`
}

type SimulateTransactionConfig struct {
	Commitment    string `json:"commitment,omitempty"`
	Encoding      string `json:"encoding,omitempty"`
	SigVerify     bool   `json:"sigVerify,omitempty"`
	ReplaceRecentBlockhash bool `json:"replaceRecentBlockhash,omitempty"`
}

func (c *Client) SimulateTransaction(ctx context.Context, services Services, cfg Config, signedTxBase64 string, simCfg SimulateTransactionConfig) (*SimulateResult, error) {
	if signedTxBase64 == "" {
		return nil, rpcerr.Validation("empty transaction")
	}
	if simCfg.Encoding == "" {
		simCfg.Encoding = "base64"
	}
	return call[*SimulateResult](ctx, c, services, cfg, "simulateTransaction", []any{signedTxBase64, simCfg}, sizeSimulate, true)
}

func (c *Client) GetFeeForMessage(ctx context.Context, services Services, cfg Config, messageBase64 string) (*uint64, error) {
	params := []any{messageBase64, map[string]string{"commitment": string(Finalized)}}
	return call[*uint64](ctx, c, services, cfg, "getFeeForMessage", params, sizeFee, true)
}
