// Package outcall implements the HTTP outcall driver: it turns one RpcApi
// + payload into a canonical request, costs and charges it via
// internal/cost, invokes an abstract HTTPOutcallClient standing in for the
// host runtime, and normalizes the response before handing bytes back to
// the caller.
package outcall

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"context"
	"io"

	"github.com/ethereum/go-ethereum/log"
	"github.com/klauspost/compress/zstd"

	"github.com/web3-fighter/sol-rpc-gateway/internal/cost"
	"github.com/web3-fighter/sol-rpc-gateway/internal/provider"
	"github.com/web3-fighter/sol-rpc-gateway/internal/rpcerr"
)

const headerOverheadBytes = 2 * 1024 // fixed per-call header overhead reservation
const maxOutcallBytes = 2 * 1024 * 1024

// Request is a single canonical HTTP outcall request.
type Request struct {
	API             provider.RpcApi
	Body            []byte
	MaxResponseBytes uint64
}

// Response is the normalized (status, body) pair an outcall returns.
type Response struct {
	Status int
	Body   []byte
}

// HTTPOutcallClient abstracts the host runtime's outcall primitive so this
// package can be driven by a real executor (internal/outcall/resty.go) in
// local/dev mode, or by a fake in tests.
type HTTPOutcallClient interface {
	Do(ctx context.Context, req Request) (Response, error)
}

// ChargeFunc debits cyclesWithCollateral from the caller and returns the
// amount actually reserved (cycles), or an error if the caller did not
// attach enough. A Driver with a nil Charge charges nothing (demo mode).
type ChargeFunc func(cycles, cyclesWithCollateral uint64) (uint64, error)

// RefundFunc returns unspent reserved cycles to the caller.
type RefundFunc func(amount uint64)

// Driver executes a single outcall end to end.
type Driver struct {
	Client     HTTPOutcallClient
	SubnetSize uint64
	Charge     ChargeFunc
	Refund     RefundFunc
}

// Execute builds, costs, charges, sends, and normalizes one outcall
// against a single provider.
func (d *Driver) Execute(ctx context.Context, api provider.RpcApi, payload []byte, responseSizeEstimate uint64) ([]byte, error) {
	if responseSizeEstimate+headerOverheadBytes > maxOutcallBytes {
		return nil, rpcerr.Validation("max_response_bytes %d exceeds outcall limit", responseSizeEstimate)
	}
	maxResponseBytes := responseSizeEstimate + headerOverheadBytes

	headers := api.Headers
	if headers == nil {
		headers = map[string]string{}
	}
	if _, ok := headers["Content-Type"]; !ok {
		headers = cloneHeaders(headers)
		headers["Content-Type"] = "application/json"
	}

	estimate := cost.Calculate(uint64(len(payload)), maxResponseBytes, d.SubnetSize)

	var reserved uint64
	var err error
	if d.Charge != nil {
		reserved, err = d.Charge(estimate.Cycles, estimate.CyclesWithCollateral)
		if err != nil {
			return nil, err
		}
	}
	if d.Refund != nil && reserved > estimate.Cycles {
		d.Refund(reserved - estimate.Cycles)
	}

	resp, err := d.Client.Do(ctx, Request{
		API:              provider.RpcApi{URL: api.URL, Headers: headers},
		Body:             payload,
		MaxResponseBytes: maxResponseBytes,
	})
	if err != nil {
		log.Error("outcall failed", "url", api.URL, "err", err)
		return nil, rpcerr.HttpOutcall(0, err.Error())
	}
	if resp.Status >= 400 {
		return nil, rpcerr.HttpOutcall(int64(resp.Status), string(resp.Body))
	}

	body, err := decompress(resp.Body)
	if err != nil {
		return nil, err
	}
	return body, nil
}

func cloneHeaders(h map[string]string) map[string]string {
	out := make(map[string]string, len(h)+1)
	for k, v := range h {
		out[k] = v
	}
	return out
}

// decompress detects gzip/zlib/zstd magic bytes and inflates the body;
// anything else is returned unchanged, without checking that it is JSON.
func decompress(body []byte) ([]byte, error) {
	switch {
	case len(body) >= 2 && body[0] == 0x1f && body[1] == 0x8b:
		r, err := gzip.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, rpcerr.Parse("gzip: %v", err)
		}
		defer r.Close()
		return io.ReadAll(r)
	case len(body) >= 2 && body[0] == 0x78 && (body[1] == 0x01 || body[1] == 0x9c || body[1] == 0xda):
		r, err := zlib.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, rpcerr.Parse("zlib: %v", err)
		}
		defer r.Close()
		return io.ReadAll(r)
	case len(body) >= 4 && body[0] == 0x28 && body[1] == 0xb5 && body[2] == 0x2f && body[3] == 0xfd:
		dec, err := zstd.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, rpcerr.Parse("zstd: %v", err)
		}
		defer dec.Close()
		return io.ReadAll(dec)
	default:
		return body, nil
	}
}
