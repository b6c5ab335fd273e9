// Package devingress is the local, non-canister HTTP harness for running
// this module standalone: it exposes the same request/cost shapes the
// gateway's RPC client and cost calculator provide, fronted by plain chi
// routes instead of a canister endpoint, for local development and the
// CLI's serve subcommand.
package devingress

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/web3-fighter/sol-rpc-gateway/internal/consensus"
	"github.com/web3-fighter/sol-rpc-gateway/internal/cost"
	"github.com/web3-fighter/sol-rpc-gateway/internal/provider"
	"github.com/web3-fighter/sol-rpc-gateway/internal/rpcclient"
	"github.com/web3-fighter/sol-rpc-gateway/internal/rpcerr"
)

// Server bundles what the dev routes need to answer a request.
type Server struct {
	RPC      *rpcclient.Client
	Registry *provider.Registry
}

// NewRouter wires /rpc and /requestCost, the two operations a caller can
// drive over plain HTTP without a canister host.
func NewRouter(s *Server) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogging)
	r.Use(middleware.Recoverer)

	r.Post("/rpc", s.handleRPC)
	r.Post("/requestCost", s.handleRequestCost)
	r.Get("/healthz", s.handleHealthz)

	return r
}

func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Debug("devingress request", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start))
	})
}

// rpcRequest is the body /rpc accepts: the same {services, config, method,
// params} a canister call would carry.
type rpcRequest struct {
	Cluster     provider.Cluster   `json:"cluster,omitempty"`
	ProviderIDs []string           `json:"providerIds,omitempty"`
	Method      string             `json:"method"`
	Params      json.RawMessage    `json:"params,omitempty"`
	Threshold   int                `json:"threshold,omitempty"`
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, rpcerr.Validation("malformed request body: %v", err))
		return
	}
	if req.Method == "" {
		writeError(w, http.StatusBadRequest, rpcerr.Validation("method is required"))
		return
	}

	strategy := consensus.Equality()
	if req.Threshold > 0 {
		strategy = consensus.Threshold(req.Threshold)
	}

	services := rpcclient.Services{Cluster: req.Cluster, ProviderIDs: req.ProviderIDs}
	result, err := s.RPC.Raw(r.Context(), services, rpcclient.Config{Consensus: strategy}, req.Method, req.Params)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	writeJSON(w, http.StatusOK, json.RawMessage(result))
}

// requestCostRequest mirrors the Calculate inputs.
type requestCostRequest struct {
	RequestBytes     uint64 `json:"requestBytes"`
	MaxResponseBytes uint64 `json:"maxResponseBytes"`
	SubnetSize       uint64 `json:"subnetSize"`
}

func (s *Server) handleRequestCost(w http.ResponseWriter, r *http.Request) {
	var req requestCostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, rpcerr.Validation("malformed request body: %v", err))
		return
	}
	if req.SubnetSize == 0 {
		req.SubnetSize = cost.DefaultLiveSubnetSize
	}

	writeJSON(w, http.StatusOK, cost.Calculate(req.RequestBytes, req.MaxResponseBytes, req.SubnetSize))
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func statusFor(err error) int {
	rerr, ok := err.(*rpcerr.Error)
	if !ok {
		return http.StatusInternalServerError
	}
	switch rerr.Kind {
	case rpcerr.KindValidation:
		return http.StatusBadRequest
	case rpcerr.KindInconsistent, rpcerr.KindHttpOutcall, rpcerr.KindJsonRpc:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error("devingress: failed to write response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
