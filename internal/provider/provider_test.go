package provider

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterAndResolve(t *testing.T) {
	r := New(nil)
	err := r.Register("helius", RpcApi{URL: "https://rpc.helius.xyz"}, Auth{Kind: AuthQueryParam, Name: "api-key", Value: "abc"}, "alice")
	require.NoError(t, err)

	api, err := r.Resolve("helius")
	require.NoError(t, err)
	require.Equal(t, "https://rpc.helius.xyz?api-key=abc", api.URL)
}

func TestRegisterDuplicateFails(t *testing.T) {
	r := New(nil)
	require.NoError(t, r.Register("p1", RpcApi{URL: "https://example.com"}, Auth{}, "alice"))
	err := r.Register("p1", RpcApi{URL: "https://example.com"}, Auth{}, "bob")
	require.Error(t, err)
}

func TestRegisterRejectsBlockedHost(t *testing.T) {
	r := New(nil)
	err := r.Register("bad", RpcApi{URL: "http://169.254.169.254/latest"}, Auth{}, "alice")
	require.Error(t, err)
}

func TestRegisterRejectsHostPlaceholder(t *testing.T) {
	r := New(nil)
	err := r.Register("bad", RpcApi{URL: "https://{cluster}.example.com"}, Auth{}, "alice")
	require.Error(t, err)
}

func TestRegisterAllowsPathPlaceholder(t *testing.T) {
	r := New(nil)
	err := r.Register("ok", RpcApi{URL: "https://example.com/{apiKey}/rpc"}, Auth{}, "alice")
	require.NoError(t, err)
}

func TestUpdateOwnerCanChangeAuthOnly(t *testing.T) {
	r := New(nil)
	require.NoError(t, r.Register("p1", RpcApi{URL: "https://example.com"}, Auth{}, "alice"))

	newURL := "https://evil.example.com"
	err := r.Update("p1", &newURL, nil, "alice")
	require.Error(t, err)

	newAuth := Auth{Kind: AuthBearerToken, Token: "tok"}
	err = r.Update("p1", nil, &newAuth, "alice")
	require.NoError(t, err)

	api, err := r.Resolve("p1")
	require.NoError(t, err)
	require.Equal(t, "Bearer tok", api.Headers["Authorization"])
}

func TestUpdateAdminCanChangeURL(t *testing.T) {
	isAdmin := func(caller string) bool { return caller == "root" }
	r := New(isAdmin)
	require.NoError(t, r.Register("p1", RpcApi{URL: "https://example.com"}, Auth{}, "alice"))

	newURL := "https://example.org"
	err := r.Update("p1", &newURL, nil, "root")
	require.NoError(t, err)

	api, err := r.Resolve("p1")
	require.NoError(t, err)
	require.Equal(t, "https://example.org", api.URL)
}

func TestUnregisterRequiresOwnerOrAdmin(t *testing.T) {
	r := New(nil)
	require.NoError(t, r.Register("p1", RpcApi{URL: "https://example.com"}, Auth{}, "alice"))

	err := r.Unregister("p1", "mallory")
	require.Error(t, err)

	err = r.Unregister("p1", "alice")
	require.NoError(t, err)

	_, err = r.Resolve("p1")
	require.Error(t, err)
}

func TestApplyAuthVariants(t *testing.T) {
	base := RpcApi{URL: "https://example.com/rpc"}

	bearer, err := ApplyAuth(base, Auth{Kind: AuthBearerToken, Token: "t"})
	require.NoError(t, err)
	require.Equal(t, "Bearer t", bearer.Headers["Authorization"])

	header, err := ApplyAuth(base, Auth{Kind: AuthHeaderParam, Name: "X-Key", Value: "v"})
	require.NoError(t, err)
	require.Equal(t, "v", header.Headers["X-Key"])

	path, err := ApplyAuth(base, Auth{Kind: AuthPathSegment, Path: "seg"})
	require.NoError(t, err)
	require.Equal(t, "https://example.com/rpc/seg", path.URL)

	query, err := ApplyAuth(RpcApi{URL: "https://example.com/rpc?a=1"}, Auth{Kind: AuthQueryParam, Name: "b", Value: "2"})
	require.NoError(t, err)
	require.Equal(t, "https://example.com/rpc?a=1&b=2", query.URL)
}

func TestResolveCluster(t *testing.T) {
	api, err := ResolveCluster(ClusterMainnet)
	require.NoError(t, err)
	require.Equal(t, "https://api.mainnet-beta.solana.com", api.URL)

	_, err = ResolveCluster(Cluster("unknown"))
	require.Error(t, err)
}
