// Package wallet implements the signing/submission pipeline: derive a
// per-caller Ed25519 key from the threshold-signing service, fetch a
// blockhash, sign the serialized message, and submit the transaction
// through the RPC client.
package wallet

import (
	"context"

	"github.com/web3-fighter/sol-rpc-gateway/internal/rpcerr"
)

// DerivationPath is the opaque, stable byte-string path the threshold
// service keys signatures to. The wallet always derives with
// [callerBytes]; implementers must never change this shape without
// accepting that every previously-derived address changes.
type DerivationPath [][]byte

func CallerDerivationPath(callerBytes []byte) DerivationPath {
	return DerivationPath{callerBytes}
}

// ThresholdSigner abstracts the two fixed-shape calls a threshold-signing
// canister exposes: schnorr_public_key and sign_with_schnorr, scoped to
// the Ed25519 algorithm and a single key name.
type ThresholdSigner interface {
	PublicKey(ctx context.Context, keyName string, path DerivationPath) ([]byte, error)
	SignMessage(ctx context.Context, keyName string, path DerivationPath, message []byte) ([]byte, error)
}

// Config names the key this wallet signs with; the threshold service may
// host several named keys (e.g. one per environment).
type Config struct {
	KeyName string
}

func (c Config) validate() error {
	if c.KeyName == "" {
		return rpcerr.Validation("wallet: key name must not be empty")
	}
	return nil
}
