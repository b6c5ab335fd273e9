package outcall

import (
	"context"

	"github.com/go-resty/resty/v2"

	"github.com/web3-fighter/sol-rpc-gateway/internal/rpcerr"
)

// RestyClient implements HTTPOutcallClient against a real network using
// go-resty, the same client library the bundled Solana service used for its
// JSON-RPC POSTs. It stands in for the host outcall primitive in local
// development and integration tests; production deployment behind the
// hosted platform substitutes a different HTTPOutcallClient that calls the
// real system API instead.
type RestyClient struct {
	client *resty.Client
}

func NewRestyClient(client *resty.Client) *RestyClient {
	return &RestyClient{client: client}
}

func (c *RestyClient) Do(ctx context.Context, req Request) (Response, error) {
	r := c.client.R().SetContext(ctx).SetBody(req.Body)
	for k, v := range req.API.Headers {
		r.SetHeader(k, v)
	}

	resp, err := r.Post(req.API.URL)
	if err != nil {
		return Response{}, rpcerr.HttpOutcall(0, err.Error())
	}

	body := resp.Body()
	if uint64(len(body)) > req.MaxResponseBytes {
		body = body[:req.MaxResponseBytes]
	}

	return Response{Status: resp.StatusCode(), Body: body}, nil
}
