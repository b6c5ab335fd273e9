package rpcclient

import "context"

// Supply mirrors getSupply's result.value shape.
type Supply struct {
	Total          uint64   `json:"total"`
	Circulating    uint64   `json:"circulating"`
	NonCirculating uint64   `json:"nonCirculating"`
}

func (c *Client) GetSupply(ctx context.Context, services Services, cfg Config) (*Supply, error) {
	return call[*Supply](ctx, c, services, cfg, "getSupply", []any{}, sizeSupply, true)
}

// LargestAccount mirrors one entry of getLargestAccounts's result.value.
type LargestAccount struct {
	Address string `json:"address"`
	Lamports uint64 `json:"lamports"`
}

func (c *Client) GetLargestAccounts(ctx context.Context, services Services, cfg Config) ([]LargestAccount, error) {
	return call[[]LargestAccount](ctx, c, services, cfg, "getLargestAccounts", []any{}, sizeSupply, true)
}

func (c *Client) GetStakeMinimumDelegation(ctx context.Context, services Services, cfg Config) (uint64, error) {
	return call[uint64](ctx, c, services, cfg, "getStakeMinimumDelegation", []any{}, sizeBalance, true)
}

func (c *Client) GetInflationRate(ctx context.Context, services Services, cfg Config) (map[string]float64, error) {
	return call[map[string]float64](ctx, c, services, cfg, "getInflationRate", []any{}, sizeVersion, false)
}
