// Package provider is the registry mapping a provider id or cluster tag to
// an RpcApi (url + headers), the way the gateway resolves "Mainnet" or a
// caller-registered id into a concrete endpoint to outcall.
package provider

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/log"
	"github.com/web3-fighter/sol-rpc-gateway/internal/rpcerr"
)

// Cluster is a named set of well-known Solana RPC endpoints.
type Cluster string

const (
	ClusterMainnet  Cluster = "Mainnet"
	ClusterTestnet  Cluster = "Testnet"
	ClusterDevnet   Cluster = "Devnet"
	ClusterLocalnet Cluster = "Localnet"
)

// RpcApi is {url, headers}; two RpcApis with the same url+headers are the
// same provider for reducer purposes.
type RpcApi struct {
	URL     string
	Headers map[string]string
}

// AuthKind tags the RpcAuth sum type.
type AuthKind string

const (
	AuthBearerToken AuthKind = "BearerToken"
	AuthHeaderParam AuthKind = "HeaderParam"
	AuthPathSegment AuthKind = "PathSegment"
	AuthQueryParam  AuthKind = "QueryParam"
)

// Auth is the concrete RpcAuth value. Only the fields relevant to Kind are
// populated.
type Auth struct {
	Kind  AuthKind
	Token string // BearerToken
	Name  string // HeaderParam, QueryParam
	Value string // HeaderParam, QueryParam
	Path  string // PathSegment
}

// Entry is a registered provider: {id, api, owner, auth}.
type Entry struct {
	ID    string
	API   RpcApi
	Owner string
	Auth  Auth
}

// blocklist holds hosts the registry refuses to register or resolve against,
// e.g. link-local/metadata endpoints an outcall must never reach.
var blocklist = map[string]struct{}{
	"169.254.169.254": {},
	"metadata.google.internal": {},
	"localhost": {},
}

// IsAdmin reports whether caller is one of the platform administrators.
// The registry only ever needs yes/no; the admin set itself is configured
// elsewhere (internal/config).
type IsAdmin func(caller string) bool

// Registry is the provider table, guarded by a single mutex: every
// exported method runs to its next suspension point without interleaving,
// so a plain RWMutex (rather than per-key locking) is enough.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	isAdmin IsAdmin
}

func New(isAdmin IsAdmin) *Registry {
	return &Registry{
		entries: make(map[string]Entry),
		isAdmin: isAdmin,
	}
}

// Register validates the url, then inserts a new entry owned by caller.
// The auth kind is not checked here; Resolve rejects an unknown one. Fails
// with ValidationError if id already exists.
func (r *Registry) Register(id string, api RpcApi, auth Auth, caller string) error {
	if err := validateURL(api.URL); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[id]; exists {
		return rpcerr.Validation("provider %q already registered", id)
	}

	r.entries[id] = Entry{ID: id, API: api, Owner: caller, Auth: auth}
	log.Info("provider registered", "id", id, "owner", caller)
	return nil
}

// Update lets the owner change auth, or an administrator change url+auth.
// Missing keys fail with ValidationError.
func (r *Registry) Update(id string, url *string, auth *Auth, caller string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return rpcerr.Validation("provider %q not found", id)
	}

	isOwner := e.Owner == caller
	isAdmin := r.isAdmin != nil && r.isAdmin(caller)
	if !isOwner && !isAdmin {
		return rpcerr.Validation("caller %q is not owner or administrator of %q", caller, id)
	}

	if url != nil {
		if !isAdmin {
			return rpcerr.Validation("only an administrator may change the url of %q", id)
		}
		if err := validateURL(*url); err != nil {
			return err
		}
		e.API.URL = *url
	}
	if auth != nil {
		e.Auth = *auth
	}

	r.entries[id] = e
	log.Info("provider updated", "id", id, "caller", caller)
	return nil
}

// Unregister removes id. Owner or administrator only.
func (r *Registry) Unregister(id string, caller string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return rpcerr.Validation("provider %q not found", id)
	}
	if e.Owner != caller && (r.isAdmin == nil || !r.isAdmin(caller)) {
		return rpcerr.Validation("caller %q is not owner or administrator of %q", caller, id)
	}

	delete(r.entries, id)
	log.Info("provider unregistered", "id", id, "caller", caller)
	return nil
}

// Resolve applies auth to the base url and returns the RpcApi an outcall
// should use, per the four auth variants below.
func (r *Registry) Resolve(id string) (RpcApi, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return RpcApi{}, rpcerr.Validation("provider %q not found", id)
	}
	return ApplyAuth(e.API, e.Auth)
}

// ApplyAuth mutates a copy of api per auth.Kind, leaving api untouched.
func ApplyAuth(api RpcApi, auth Auth) (RpcApi, error) {
	out := RpcApi{URL: api.URL, Headers: make(map[string]string, len(api.Headers)+1)}
	for k, v := range api.Headers {
		out.Headers[k] = v
	}

	switch auth.Kind {
	case "":
		// no auth configured
	case AuthBearerToken:
		out.Headers["Authorization"] = "Bearer " + auth.Token
	case AuthHeaderParam:
		out.Headers[auth.Name] = auth.Value
	case AuthPathSegment:
		out.URL = strings.TrimRight(out.URL, "/") + "/" + strings.TrimLeft(auth.Path, "/")
	case AuthQueryParam:
		sep := "?"
		if strings.Contains(out.URL, "?") {
			sep = "&"
		}
		out.URL = fmt.Sprintf("%s%s%s=%s", out.URL, sep, auth.Name, auth.Value)
	default:
		return RpcApi{}, rpcerr.Validation("unknown auth kind: %q", auth.Kind)
	}

	return out, nil
}

// validateURL rejects blocklisted hosts and unresolved template placeholders
// ("{...}") inside the hostname; a placeholder inside the path is allowed.
func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return rpcerr.Validation("invalid provider url %q: %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return rpcerr.Validation("provider url must be http(s): %q", raw)
	}

	host := u.Hostname()
	if _, blocked := blocklist[host]; blocked {
		return rpcerr.Validation("host %q is not allowed", host)
	}
	if strings.Contains(host, "{") || strings.Contains(host, "}") {
		return rpcerr.Validation("unresolved template placeholder in host %q", host)
	}
	return nil
}

// ResolveCluster maps a well-known cluster tag to its canonical RpcApi,
// bypassing the registry's owner/auth model entirely.
func ResolveCluster(c Cluster) (RpcApi, error) {
	switch c {
	case ClusterMainnet:
		return RpcApi{URL: "https://api.mainnet-beta.solana.com"}, nil
	case ClusterTestnet:
		return RpcApi{URL: "https://api.testnet.solana.com"}, nil
	case ClusterDevnet:
		return RpcApi{URL: "https://api.devnet.solana.com"}, nil
	case ClusterLocalnet:
		return RpcApi{URL: "http://127.0.0.1:8899"}, nil
	default:
		return RpcApi{}, rpcerr.Validation("unknown cluster: %q", c)
	}
}
