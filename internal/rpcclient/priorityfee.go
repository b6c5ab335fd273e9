package rpcclient

import (
	"context"
	"sort"
)

// PrioritizationFee mirrors one entry of getRecentPrioritizationFees's
// result.
type PrioritizationFee struct {
	Slot              uint64 `json:"slot"`
	PrioritizationFee uint64 `json:"prioritizationFee"`
}

func (c *Client) GetRecentPrioritizationFees(ctx context.Context, services Services, cfg Config, addresses []string) ([]PrioritizationFee, error) {
	params := []any{}
	if len(addresses) > 0 {
		params = append(params, addresses)
	}
	return call[[]PrioritizationFee](ctx, c, services, cfg, "getRecentPrioritizationFees", params, sizePrioritizationFees, false)
}

// SuggestedPriorityFee returns the 75th-percentile prioritization fee among
// fees, excluding low outliers while avoiding the expense of always paying
// the observed maximum.
func SuggestedPriorityFee(fees []PrioritizationFee) uint64 {
	if len(fees) == 0 {
		return 0
	}

	values := make([]uint64, len(fees))
	for i, f := range fees {
		values[i] = f.PrioritizationFee
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	index := int(float64(len(values)) * 0.75)
	if index >= len(values) {
		index = len(values) - 1
	}
	return values[index]
}

// GetSuggestedPriorityFee fetches recent prioritization fees for addresses
// and reduces them to a single suggested fee via SuggestedPriorityFee.
func (c *Client) GetSuggestedPriorityFee(ctx context.Context, services Services, cfg Config, addresses []string) (uint64, error) {
	fees, err := c.GetRecentPrioritizationFees(ctx, services, cfg, addresses)
	if err != nil {
		return 0, err
	}
	return SuggestedPriorityFee(fees), nil
}
