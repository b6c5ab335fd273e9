package rpcclient

import (
	"context"
	"strings"

	"github.com/web3-fighter/sol-rpc-gateway/internal/rpcerr"
)

// CommitmentType is the read-your-writes commitment level a caller requests
// for a query.
type CommitmentType string

const (
	Processed CommitmentType = "processed"
	Confirmed CommitmentType = "confirmed"
	Finalized CommitmentType = "finalized"
)

// AccountInfo mirrors getAccountInfo's result.value shape.
type AccountInfo struct {
	Lamports   uint64   `json:"lamports"`
	Owner      string   `json:"owner"`
	Executable bool     `json:"executable"`
	RentEpoch  uint64   `json:"rentEpoch"`
	Data       []string `json:"data"`
}

// GetAccountInfo surfaces an AccountNotFound domain error when the upstream
// reports result.value == null, rather than returning an empty struct.
func (c *Client) GetAccountInfo(ctx context.Context, services Services, cfg Config, pubkey string) (*AccountInfo, error) {
	pubkey = strings.TrimSpace(pubkey)
	if pubkey == "" {
		return nil, rpcerr.Validation("empty pubkey")
	}
	params := []any{pubkey, map[string]string{"encoding": "base64"}}

	info, err := call[*AccountInfo](ctx, c, services, cfg, "getAccountInfo", params, sizeAccountInfo, true)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, accountNotFound(pubkey)
	}
	return info, nil
}

// GetBalance returns the lamport balance of pubkey.
func (c *Client) GetBalance(ctx context.Context, services Services, cfg Config, pubkey string) (uint64, error) {
	pubkey = strings.TrimSpace(pubkey)
	if pubkey == "" {
		return 0, rpcerr.Validation("empty pubkey")
	}
	return call[uint64](ctx, c, services, cfg, "getBalance", []any{pubkey}, sizeBalance, true)
}

// TokenAccountBalance mirrors getTokenAccountBalance's result.value shape.
type TokenAccountBalance struct {
	Amount   string `json:"amount"`
	Decimals int    `json:"decimals"`
	UiAmount float64 `json:"uiAmount"`
}

func (c *Client) GetTokenAccountBalance(ctx context.Context, services Services, cfg Config, tokenAccount string) (*TokenAccountBalance, error) {
	return call[*TokenAccountBalance](ctx, c, services, cfg, "getTokenAccountBalance", []any{tokenAccount}, sizeTokenBalance, true)
}

func (c *Client) GetMultipleAccounts(ctx context.Context, services Services, cfg Config, pubkeys []string) ([]*AccountInfo, error) {
	if len(pubkeys) == 0 {
		return nil, rpcerr.Validation("empty pubkey list")
	}
	params := []any{pubkeys, map[string]string{"encoding": "base64"}}
	return call[[]*AccountInfo](ctx, c, services, cfg, "getMultipleAccounts", params, sizeAccountInfo*uint64(len(pubkeys)), true)
}

func (c *Client) GetMinimumBalanceForRentExemption(ctx context.Context, services Services, cfg Config, dataLen uint64) (uint64, error) {
	return call[uint64](ctx, c, services, cfg, "getMinimumBalanceForRentExemption", []any{dataLen}, sizeBalance, false)
}
