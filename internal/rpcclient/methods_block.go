package rpcclient

import "context"

// BlockResult mirrors getBlock's result shape, trimmed to the fields this
// client surfaces to callers.
type BlockResult struct {
	Blockhash         string `json:"blockhash"`
	PreviousBlockhash string `json:"previousBlockhash"`
	ParentSlot        uint64 `json:"parentSlot"`
	BlockTime         *int64 `json:"blockTime"`
	BlockHeight       *uint64 `json:"blockHeight"`
}

type getBlockParams struct {
	Commitment                     CommitmentType `json:"commitment,omitempty"`
	Encoding                       string         `json:"encoding,omitempty"`
	MaxSupportedTransactionVersion int            `json:"maxSupportedTransactionVersion"`
	TransactionDetails             string         `json:"transactionDetails,omitempty"`
	Rewards                        bool           `json:"rewards"`
}

// TransactionDetailsType selects how much transaction detail getBlock
// returns ("full", "accounts", "signatures", "none").
type TransactionDetailsType string

const (
	Full       TransactionDetailsType = "full"
	Accounts   TransactionDetailsType = "accounts"
	Signatures TransactionDetailsType = "signatures"
	None       TransactionDetailsType = "none"
)

func (c *Client) GetBlock(ctx context.Context, services Services, cfg Config, slot uint64, detail TransactionDetailsType) (*BlockResult, error) {
	params := []any{slot, getBlockParams{
		Commitment:         Finalized,
		Encoding:           "json",
		TransactionDetails: string(detail),
	}}
	return call[*BlockResult](ctx, c, services, cfg, "getBlock", params, sizeBlock, false)
}

func (c *Client) GetBlockHeight(ctx context.Context, services Services, cfg Config, commitment CommitmentType) (uint64, error) {
	return call[uint64](ctx, c, services, cfg, "getBlockHeight", []any{map[string]string{"commitment": string(commitment)}}, sizeSlot, false)
}

func (c *Client) GetBlocksWithLimit(ctx context.Context, services Services, cfg Config, startSlot, limit uint64) ([]uint64, error) {
	return call[[]uint64](ctx, c, services, cfg, "getBlocksWithLimit", []any{startSlot, limit}, sizeSlot*limit, false)
}

func (c *Client) GetFirstAvailableBlock(ctx context.Context, services Services, cfg Config) (uint64, error) {
	return call[uint64](ctx, c, services, cfg, "getFirstAvailableBlock", []any{}, sizeSlot, false)
}

func (c *Client) GetGenesisHash(ctx context.Context, services Services, cfg Config) (string, error) {
	return call[string](ctx, c, services, cfg, "getGenesisHash", []any{}, sizeBlockhash, false)
}
