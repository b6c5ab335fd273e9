// Package rpcclient is the typed Solana JSON-RPC surface: it builds a
// JSON-RPC payload once, fans it out to every resolved provider via
// internal/outcall, reduces the replies via internal/consensus, and decodes
// the agreed-upon result into a typed Go value.
package rpcclient

import (
	"context"

	"github.com/ethereum/go-ethereum/log"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"

	"github.com/web3-fighter/sol-rpc-gateway/internal/consensus"
	"github.com/web3-fighter/sol-rpc-gateway/internal/outcall"
	"github.com/web3-fighter/sol-rpc-gateway/internal/provider"
	"github.com/web3-fighter/sol-rpc-gateway/internal/rpcerr"
)

// Services selects the upstream providers for one logical call: a cluster
// tag, a list of registered provider ids, or literal RpcApis.
type Services struct {
	Cluster   provider.Cluster
	ProviderIDs []string
	Apis      []provider.RpcApi
}

// Config is the per-call override of provider/consensus defaults.
type Config struct {
	ResponseSizeEstimate uint64
	Consensus            consensus.Strategy
}

// Client dispatches Solana JSON-RPC calls across one or more providers and
// reduces their replies to a single agreed-upon result.
type Client struct {
	Registry   *provider.Registry
	Driver     *outcall.Driver
	SubnetSize uint64
}

// requestID is the process-wide, wrapping JSON-RPC request-id counter shared
// by every Client.
var requestID atomic.Uint64

func New(registry *provider.Registry, driver *outcall.Driver, subnetSize uint64) *Client {
	return &Client{Registry: registry, Driver: driver, SubnetSize: subnetSize}
}

func (c *Client) nextID() uint64 {
	return requestID.Inc()
}

func (c *Client) resolveApis(services Services) ([]provider.RpcApi, error) {
	if len(services.Apis) > 0 {
		return services.Apis, nil
	}
	if len(services.ProviderIDs) > 0 {
		apis := make([]provider.RpcApi, 0, len(services.ProviderIDs))
		for _, id := range services.ProviderIDs {
			api, err := c.Registry.Resolve(id)
			if err != nil {
				return nil, err
			}
			apis = append(apis, api)
		}
		return apis, nil
	}
	if services.Cluster != "" {
		api, err := provider.ResolveCluster(services.Cluster)
		if err != nil {
			return nil, err
		}
		return []provider.RpcApi{api}, nil
	}
	return nil, rpcerr.Validation("no providers selected")
}

// call is the generic dispatch helper shared by every typed method: build
// the payload, fan out, reduce, and decode into T. unwrapCtx requests
// {context,value}-wrapped results (as RPC commitment-aware methods return)
// to be unwrapped to their inner value before decoding into T.
func call[T any](ctx context.Context, c *Client, services Services, cfg Config, method string, params any, defaultResponseBytes uint64, unwrapCtx bool) (T, error) {
	var zero T

	apis, err := c.resolveApis(services)
	if err != nil {
		return zero, err
	}

	id := c.nextID()
	payload, err := json.Marshal(request{JsonRPC: "2.0", Method: method, Params: params, ID: id})
	if err != nil {
		return zero, rpcerr.Validation("cannot marshal request: %v", err)
	}

	responseBytes := cfg.ResponseSizeEstimate
	if responseBytes == 0 {
		responseBytes = defaultResponseBytes
	}

	outcomes := make([]consensus.Outcome, len(apis))
	g, gctx := errgroup.WithContext(ctx)
	for i, api := range apis {
		i, api := i, api
		g.Go(func() error {
			body, err := c.Driver.Execute(gctx, api, payload, responseBytes)
			outcomes[i] = consensus.Outcome{API: api, Value: body, Err: err}
			return nil // errors are carried per-outcome, never fail the group
		})
	}
	_ = g.Wait()

	reduced, err := consensus.Reduce(outcomes, cfg.Consensus)
	if err != nil {
		log.Error("rpc call inconsistent", "method", method, "id", id, "err", err)
		return zero, err
	}

	env, err := decodeEnvelope(reduced)
	if err != nil {
		return zero, err
	}

	result := env.Result
	if unwrapCtx {
		if inner, ok := unwrapContext(result); ok {
			result = inner
		}
	}

	if isNullJSON(result) {
		var t T
		return t, nil
	}

	var out T
	if err := json.Unmarshal(result, &out); err != nil {
		return zero, rpcerr.Parse("cannot decode result for %s: %v", method, err)
	}
	return out, nil
}

// Raw dispatches an arbitrary JSON-RPC method and returns the agreed-upon
// result undecoded, for callers (the dev ingress, the CLI) that don't have a
// typed Go method for it.
func (c *Client) Raw(ctx context.Context, services Services, cfg Config, method string, params any) (jsoniter.RawMessage, error) {
	return call[jsoniter.RawMessage](ctx, c, services, cfg, method, params, sizeAccountInfo, false)
}

func isNullJSON(raw []byte) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func accountNotFound(pubkey string) error {
	return rpcerr.Text("AccountNotFound: pubkey=%s", pubkey)
}
