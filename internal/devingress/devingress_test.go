package devingress

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/web3-fighter/sol-rpc-gateway/internal/outcall"
	"github.com/web3-fighter/sol-rpc-gateway/internal/provider"
	"github.com/web3-fighter/sol-rpc-gateway/internal/rpcclient"
)

type scriptedClient struct {
	body []byte
}

func (s scriptedClient) Do(ctx context.Context, req outcall.Request) (outcall.Response, error) {
	return outcall.Response{Status: 200, Body: s.body}, nil
}

func newTestServer(body []byte) *httptest.Server {
	driver := &outcall.Driver{Client: scriptedClient{body: body}, SubnetSize: 1}
	rpc := rpcclient.New(provider.New(nil), driver, 1)
	return httptest.NewServer(NewRouter(&Server{RPC: rpc, Registry: provider.New(nil)}))
}

func TestHandleRPCForwardsResult(t *testing.T) {
	srv := newTestServer([]byte(`{"jsonrpc":"2.0","result":"ok","id":1}`))
	defer srv.Close()

	reqBody, _ := json.Marshal(map[string]any{
		"cluster": "Devnet",
		"method":  "getHealth",
	})
	resp, err := http.Post(srv.URL+"/rpc", "application/json", bytes.NewReader(reqBody))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, "ok", got)
}

func TestHandleRPCRejectsMissingMethod(t *testing.T) {
	srv := newTestServer(nil)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/rpc", "application/json", bytes.NewReader([]byte(`{}`)))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleRPCPropagatesJsonRpcErrorAsBadGateway(t *testing.T) {
	srv := newTestServer([]byte(`{"jsonrpc":"2.0","error":{"code":-32601,"message":"Method not found"},"id":1}`))
	defer srv.Close()

	reqBody, _ := json.Marshal(map[string]any{"cluster": "Devnet", "method": "bogus"})
	resp, err := http.Post(srv.URL+"/rpc", "application/json", bytes.NewReader(reqBody))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestHandleRequestCost(t *testing.T) {
	srv := newTestServer(nil)
	defer srv.Close()

	reqBody, _ := json.Marshal(map[string]any{"requestBytes": 200, "maxResponseBytes": 1024})
	resp, err := http.Post(srv.URL+"/requestCost", "application/json", bytes.NewReader(reqBody))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Cycles               uint64
		CyclesWithCollateral uint64
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Greater(t, out.Cycles, uint64(0))
	require.Greater(t, out.CyclesWithCollateral, out.Cycles)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(nil)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
