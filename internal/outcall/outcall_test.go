package outcall

import (
	"bytes"
	"compress/gzip"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/web3-fighter/sol-rpc-gateway/internal/provider"
)

type fakeClient struct {
	resp Response
	err  error
	last Request
}

func (f *fakeClient) Do(ctx context.Context, req Request) (Response, error) {
	f.last = req
	return f.resp, f.err
}

func TestExecuteSuccess(t *testing.T) {
	fc := &fakeClient{resp: Response{Status: 200, Body: []byte(`{"result":228}`)}}
	d := &Driver{Client: fc, SubnetSize: 34}

	body, err := d.Execute(context.Background(), provider.RpcApi{URL: "https://example.com"}, []byte(`{}`), 256)
	require.NoError(t, err)
	require.Equal(t, `{"result":228}`, string(body))
	require.Equal(t, "application/json", fc.last.API.Headers["Content-Type"])
}

func TestExecuteHTTPError(t *testing.T) {
	fc := &fakeClient{resp: Response{Status: 500, Body: []byte("boom")}}
	d := &Driver{Client: fc, SubnetSize: 34}

	_, err := d.Execute(context.Background(), provider.RpcApi{URL: "https://example.com"}, []byte(`{}`), 256)
	require.Error(t, err)
}

func TestExecuteRejectsOversizeEstimate(t *testing.T) {
	fc := &fakeClient{resp: Response{Status: 200}}
	d := &Driver{Client: fc, SubnetSize: 34}

	_, err := d.Execute(context.Background(), provider.RpcApi{URL: "https://example.com"}, []byte(`{}`), maxOutcallBytes)
	require.Error(t, err)
}

func TestExecuteChargesAndRefunds(t *testing.T) {
	fc := &fakeClient{resp: Response{Status: 200, Body: []byte(`{}`)}}
	var charged, refunded uint64
	d := &Driver{
		Client:     fc,
		SubnetSize: 34,
		Charge: func(cycles, withCollateral uint64) (uint64, error) {
			charged = withCollateral
			return withCollateral, nil
		},
		Refund: func(amount uint64) { refunded = amount },
	}

	_, err := d.Execute(context.Background(), provider.RpcApi{URL: "https://example.com"}, []byte(`{}`), 256)
	require.NoError(t, err)
	require.Greater(t, charged, uint64(0))
	require.Greater(t, refunded, uint64(0))
}

func TestExecuteDecompressesGzip(t *testing.T) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write([]byte(`{"ok":true}`))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	fc := &fakeClient{resp: Response{Status: 200, Body: buf.Bytes()}}
	d := &Driver{Client: fc, SubnetSize: 34}

	body, err := d.Execute(context.Background(), provider.RpcApi{URL: "https://example.com"}, []byte(`{}`), 256)
	require.NoError(t, err)
	require.JSONEq(t, `{"ok":true}`, string(body))
}

func TestExecutePreservesConfiguredContentType(t *testing.T) {
	fc := &fakeClient{resp: Response{Status: 200, Body: []byte(`{}`)}}
	d := &Driver{Client: fc, SubnetSize: 34}

	_, err := d.Execute(context.Background(), provider.RpcApi{
		URL:     "https://example.com",
		Headers: map[string]string{"Content-Type": "application/json; charset=utf-8"},
	}, []byte(`{}`), 256)
	require.NoError(t, err)
	require.Equal(t, "application/json; charset=utf-8", fc.last.API.Headers["Content-Type"])
}
