package rpcclient

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/web3-fighter/sol-rpc-gateway/internal/rpcerr"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// request is the JSON-RPC 2.0 payload every typed method builds.
type request struct {
	JsonRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
	ID      uint64 `json:"id"`
}

// rpcError is the JSON-RPC error object, non-null on a provider-level
// failure.
type rpcError struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// envelope is the JSON-RPC response shell. Result is decoded lazily via
// json.RawMessage so callers can apply their own typed/context-wrapped
// decoding.
type envelope struct {
	JsonRPC string               `json:"jsonrpc"`
	ID      uint64               `json:"id"`
	Result  jsoniter.RawMessage  `json:"result"`
	Error   *rpcError            `json:"error"`
}

// contextWrapper models the "sometimes T, sometimes {context,value:T}"
// shape several RPC methods return. unwrapContext tries the wrapped shape
// first and falls back to treating raw as the bare value.
type contextWrapper struct {
	Context struct {
		Slot uint64 `json:"slot"`
	} `json:"context"`
	Value jsoniter.RawMessage `json:"value"`
}

func unwrapContext(raw jsoniter.RawMessage) (jsoniter.RawMessage, bool) {
	var fields map[string]jsoniter.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return raw, false
	}
	value, ok := fields["value"]
	if !ok {
		return raw, false
	}
	if value == nil {
		// a present "value": null may decode to a nil RawMessage
		value = jsoniter.RawMessage("null")
	}
	return value, true
}

func decodeEnvelope(body []byte) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, rpcerr.Parse("malformed JSON-RPC envelope: %v", err)
	}
	if env.JsonRPC == "" && env.Result == nil && env.Error == nil {
		return nil, rpcerr.Parse("empty JSON-RPC envelope")
	}
	if env.Error != nil {
		return nil, rpcerr.JsonRpc(env.Error.Code, env.Error.Message)
	}
	return &env, nil
}
