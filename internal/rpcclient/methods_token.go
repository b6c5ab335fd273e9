package rpcclient

import "context"

type tokenAccountFilter struct {
	Mint      string `json:"mint,omitempty"`
	ProgramID string `json:"programId,omitempty"`
}

// TokenAccount mirrors one entry of getTokenAccountsBy{Owner,Delegate}'s
// result.value.
type TokenAccount struct {
	Pubkey  string `json:"pubkey"`
	Account AccountInfo `json:"account"`
}

func (c *Client) GetTokenAccountsByOwner(ctx context.Context, services Services, cfg Config, owner string, filter tokenAccountFilter) ([]TokenAccount, error) {
	params := []any{owner, filter, map[string]string{"encoding": "base64"}}
	return call[[]TokenAccount](ctx, c, services, cfg, "getTokenAccountsByOwner", params, sizeAccountInfo, true)
}

func (c *Client) GetTokenAccountsByDelegate(ctx context.Context, services Services, cfg Config, delegate string, filter tokenAccountFilter) ([]TokenAccount, error) {
	params := []any{delegate, filter, map[string]string{"encoding": "base64"}}
	return call[[]TokenAccount](ctx, c, services, cfg, "getTokenAccountsByDelegate", params, sizeAccountInfo, true)
}

// TokenAmount mirrors the {amount,decimals,uiAmount} shape shared by
// getTokenSupply and getTokenLargestAccounts entries.
type TokenAmount struct {
	Amount   string  `json:"amount"`
	Decimals int     `json:"decimals"`
	UiAmount float64 `json:"uiAmount"`
}

func (c *Client) GetTokenSupply(ctx context.Context, services Services, cfg Config, mint string) (*TokenAmount, error) {
	return call[*TokenAmount](ctx, c, services, cfg, "getTokenSupply", []any{mint}, sizeTokenBalance, true)
}

type tokenLargestAccount struct {
	Address string `json:"address"`
	TokenAmount
}

func (c *Client) GetTokenLargestAccounts(ctx context.Context, services Services, cfg Config, mint string) ([]tokenLargestAccount, error) {
	return call[[]tokenLargestAccount](ctx, c, services, cfg, "getTokenLargestAccounts", []any{mint}, sizeTokenBalance*20, true)
}
