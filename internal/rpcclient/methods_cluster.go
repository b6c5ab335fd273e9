package rpcclient

import "context"

func (c *Client) GetHealth(ctx context.Context, services Services, cfg Config) (string, error) {
	return call[string](ctx, c, services, cfg, "getHealth", []any{}, sizeHealth, false)
}

// LatestBlockhash mirrors getLatestBlockhash's result.value shape.
type LatestBlockhash struct {
	Blockhash            string `json:"blockhash"`
	LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
}

func (c *Client) GetLatestBlockhash(ctx context.Context, services Services, cfg Config, commitment CommitmentType) (*LatestBlockhash, error) {
	params := []any{map[string]string{"commitment": string(commitment)}}
	return call[*LatestBlockhash](ctx, c, services, cfg, "getLatestBlockhash", params, sizeBlockhash, true)
}

func (c *Client) IsBlockhashValid(ctx context.Context, services Services, cfg Config, blockhash string, commitment CommitmentType) (bool, error) {
	params := []any{blockhash, map[string]string{"commitment": string(commitment)}}
	return call[bool](ctx, c, services, cfg, "isBlockhashValid", params, sizeBalance, true)
}

func (c *Client) GetSlot(ctx context.Context, services Services, cfg Config, commitment CommitmentType) (uint64, error) {
	params := []any{map[string]string{"commitment": string(commitment)}}
	return call[uint64](ctx, c, services, cfg, "getSlot", params, sizeSlot, false)
}

func (c *Client) GetVersion(ctx context.Context, services Services, cfg Config) (map[string]any, error) {
	return call[map[string]any](ctx, c, services, cfg, "getVersion", []any{}, sizeVersion, false)
}

func (c *Client) GetIdentity(ctx context.Context, services Services, cfg Config) (string, error) {
	result, err := call[map[string]string](ctx, c, services, cfg, "getIdentity", []any{}, sizeVersion, false)
	if err != nil {
		return "", err
	}
	return result["identity"], nil
}

func (c *Client) GetClusterNodes(ctx context.Context, services Services, cfg Config) ([]map[string]any, error) {
	return call[[]map[string]any](ctx, c, services, cfg, "getClusterNodes", []any{}, sizeVersion, false)
}

func (c *Client) GetEpochInfo(ctx context.Context, services Services, cfg Config, commitment CommitmentType) (map[string]any, error) {
	params := []any{map[string]string{"commitment": string(commitment)}}
	return call[map[string]any](ctx, c, services, cfg, "getEpochInfo", params, sizeVersion, false)
}

func (c *Client) RequestAirdrop(ctx context.Context, services Services, cfg Config, pubkey string, lamports uint64) (string, error) {
	return call[string](ctx, c, services, cfg, "requestAirdrop", []any{pubkey, lamports}, sizeSendTransaction, false)
}
