package rpcclient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/web3-fighter/sol-rpc-gateway/internal/consensus"
	"github.com/web3-fighter/sol-rpc-gateway/internal/outcall"
	"github.com/web3-fighter/sol-rpc-gateway/internal/provider"
)

type scriptedClient struct {
	bodies map[string][]byte // keyed by url
	fixed  []byte            // used when bodies is nil
}

func (s *scriptedClient) Do(ctx context.Context, req outcall.Request) (outcall.Response, error) {
	if s.bodies != nil {
		return outcall.Response{Status: 200, Body: s.bodies[req.API.URL]}, nil
	}
	return outcall.Response{Status: 200, Body: s.fixed}, nil
}

func newTestClient(sc *scriptedClient) *Client {
	driver := &outcall.Driver{Client: sc, SubnetSize: 34}
	return New(provider.New(nil), driver, 34)
}

func singleProvider(url string) Services {
	return Services{Apis: []provider.RpcApi{{URL: url}}}
}

// getBalance against a single provider returns 228.
func TestScenarioGetBalance(t *testing.T) {
	sc := &scriptedClient{fixed: []byte(`{"jsonrpc":"2.0","result":{"context":{"slot":1},"value":228},"id":1}`)}
	c := newTestClient(sc)

	balance, err := c.GetBalance(context.Background(), singleProvider("https://a"), Config{}, "SomePubkey11111111111111111111111111111")
	require.NoError(t, err)
	require.Equal(t, uint64(228), balance)
}

// getBlock parses blockhash from a canned body.
func TestScenarioGetBlock(t *testing.T) {
	sc := &scriptedClient{fixed: []byte(`{"jsonrpc":"2.0","result":{"blockhash":"FNy3uy9b9EMupvMpzG6Waqtbpt5Hto3naW2NnDwL1eYq","previousBlockhash":"x","parentSlot":1},"id":1}`)}
	c := newTestClient(sc)

	block, err := c.GetBlock(context.Background(), singleProvider("https://a"), Config{}, 123, Signatures)
	require.NoError(t, err)
	require.Equal(t, "FNy3uy9b9EMupvMpzG6Waqtbpt5Hto3naW2NnDwL1eYq", block.Blockhash)
}

// getLatestBlockhash under Equality with 3 matching providers succeeds;
// with one differing it's InconsistentResults.
func TestScenarioGetLatestBlockhashConsensus(t *testing.T) {
	agree := []byte(`{"jsonrpc":"2.0","result":{"context":{"slot":1},"value":{"blockhash":"EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N","lastValidBlockHeight":100}},"id":1}`)

	sc := &scriptedClient{bodies: map[string][]byte{"https://a": agree, "https://b": agree, "https://c": agree}}
	c := newTestClient(sc)
	services := Services{Apis: []provider.RpcApi{{URL: "https://a"}, {URL: "https://b"}, {URL: "https://c"}}}

	bh, err := c.GetLatestBlockhash(context.Background(), services, Config{Consensus: consensus.Equality()}, Finalized)
	require.NoError(t, err)
	require.Equal(t, "EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N", bh.Blockhash)

	differing := []byte(`{"jsonrpc":"2.0","result":{"context":{"slot":1},"value":{"blockhash":"Different11111111111111111111111111111111","lastValidBlockHeight":100}},"id":1}`)
	sc2 := &scriptedClient{bodies: map[string][]byte{"https://a": agree, "https://b": agree, "https://c": differing}}
	c2 := newTestClient(sc2)

	_, err = c2.GetLatestBlockhash(context.Background(), services, Config{Consensus: consensus.Equality()}, Finalized)
	require.Error(t, err)
}

// sendTransaction returns the mocked signature.
func TestScenarioSendTransaction(t *testing.T) {
	sc := &scriptedClient{fixed: []byte(`{"jsonrpc":"2.0","result":"2id3YCrTQrtpb","id":1}`)}
	c := newTestClient(sc)

	sig, err := c.SendTransaction(context.Background(), singleProvider("https://a"), Config{}, "base58tx", SendTransactionConfig{})
	require.NoError(t, err)
	require.Equal(t, "2id3YCrTQrtpb", sig)
}

func TestGetAccountInfoNullValueIsAccountNotFound(t *testing.T) {
	sc := &scriptedClient{fixed: []byte(`{"jsonrpc":"2.0","result":{"context":{"slot":1},"value":null},"id":1}`)}
	c := newTestClient(sc)

	_, err := c.GetAccountInfo(context.Background(), singleProvider("https://a"), Config{}, "SomePubkey11111111111111111111111111111")
	require.Error(t, err)
}

func TestJsonRpcErrorPropagates(t *testing.T) {
	sc := &scriptedClient{fixed: []byte(`{"jsonrpc":"2.0","error":{"code":-32602,"message":"invalid params"},"id":1}`)}
	c := newTestClient(sc)

	_, err := c.GetBalance(context.Background(), singleProvider("https://a"), Config{}, "SomePubkey11111111111111111111111111111")
	require.Error(t, err)
}

func TestSuggestedPriorityFeeP75(t *testing.T) {
	fees := []PrioritizationFee{
		{PrioritizationFee: 10}, {PrioritizationFee: 20}, {PrioritizationFee: 30}, {PrioritizationFee: 40},
	}
	require.Equal(t, uint64(40), SuggestedPriorityFee(fees))
}

func TestSuggestedPriorityFeeEmpty(t *testing.T) {
	require.Equal(t, uint64(0), SuggestedPriorityFee(nil))
}
