package wallet

import (
	"context"

	"github.com/cosmos/btcutil/base58"
	"github.com/davecgh/go-spew/spew"
	"github.com/ethereum/go-ethereum/log"
	"github.com/shopspring/decimal"

	"github.com/web3-fighter/sol-rpc-gateway/internal/codec"
	"github.com/web3-fighter/sol-rpc-gateway/internal/rpcclient"
	"github.com/web3-fighter/sol-rpc-gateway/internal/rpcerr"
)

// lamportsPerSol matches Solana's fixed 10^9 lamport/SOL ratio.
var lamportsPerSol = decimal.New(1, 9)

// Wallet is the signing/submission pipeline: derive a key, fill in a
// blockhash, sign, and submit.
type Wallet struct {
	Signer ThresholdSigner
	RPC    *rpcclient.Client
	Config Config
}

func New(signer ThresholdSigner, rpc *rpcclient.Client, cfg Config) (*Wallet, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Wallet{Signer: signer, RPC: rpc, Config: cfg}, nil
}

// Address derives pk = threshold_pubkey(key_name, [caller_bytes]) and
// returns its base58 Pubkey representation.
func (w *Wallet) Address(ctx context.Context, callerBytes []byte) (codec.Pubkey, error) {
	path := CallerDerivationPath(callerBytes)
	raw, err := w.Signer.PublicKey(ctx, w.Config.KeyName, path)
	if err != nil {
		return codec.Pubkey{}, rpcerr.Text("derive pubkey: %v", err)
	}
	return codec.PubkeyFromBytes(raw)
}

// AddressBase58 is a display helper using the plain base58 alphabet, the
// way the reference wallet formats addresses for humans.
func (w *Wallet) AddressBase58(ctx context.Context, callerBytes []byte) (string, error) {
	pk, err := w.Address(ctx, callerBytes)
	if err != nil {
		return "", err
	}
	return base58.Encode(pk.Bytes()), nil
}

// SignMessage signs messageBytes with the caller's derived key and returns
// a 64-byte Signature.
func (w *Wallet) SignMessage(ctx context.Context, callerBytes, messageBytes []byte) (codec.Signature, error) {
	path := CallerDerivationPath(callerBytes)
	raw, err := w.Signer.SignMessage(ctx, w.Config.KeyName, path, messageBytes)
	if err != nil {
		return codec.Signature{}, rpcerr.Text("sign message: %v", err)
	}
	return codec.SignatureFromBytes(raw)
}

// SendTransactionParams bundles the per-call overrides passed through to
// the final sendTransaction submission.
type SendTransactionParams struct {
	Services rpcclient.Services
	Config   rpcclient.Config
	TxConfig rpcclient.SendTransactionConfig
}

// SendTransaction runs the five-step pipeline: decode, fill in a blockhash
// if missing, sign at position 0, re-encode, submit.
func (w *Wallet) SendTransaction(ctx context.Context, callerBytes []byte, rawTransactionBase58 string, params SendTransactionParams) (string, error) {
	tx, err := codec.DecodeTransaction(rawTransactionBase58, codec.EncodingBase58)
	if err != nil {
		return "", rpcerr.Validation("cannot decode transaction: %v", err)
	}

	if tx.Message.RecentBlockhash.IsDefault() {
		bh, err := w.RPC.GetLatestBlockhash(ctx, params.Services, params.Config, rpcclient.Finalized)
		if err != nil {
			return "", err
		}
		blockhash, err := codec.BlockHashFromBase58(bh.Blockhash)
		if err != nil {
			return "", rpcerr.Parse("invalid blockhash from provider: %v", err)
		}
		tx.Message.RecentBlockhash = blockhash
	}

	messageBytes, err := tx.Message.MarshalBinary()
	if err != nil {
		return "", err
	}

	sig, err := w.SignMessage(ctx, callerBytes, messageBytes)
	if err != nil {
		return "", err
	}

	if len(tx.Signatures) == 0 {
		tx.Signatures = make([]codec.Signature, tx.Message.Header.NumRequiredSignatures)
	}
	tx.Signatures[0] = sig // invariant: position 0 is the payer

	log.Debug("signed transaction ready for submission", "payer_sig", sig.String())
	spew.Dump(tx)

	encoded, err := codec.EncodeTransaction(tx, codec.EncodingBase58)
	if err != nil {
		return "", err
	}

	return w.RPC.SendTransaction(ctx, params.Services, params.Config, encoded, params.TxConfig)
}

// LamportsToSol converts a raw lamport amount to a decimal SOL value using
// shopspring/decimal to avoid floating-point rounding across the 10^9
// lamport/SOL scale.
func LamportsToSol(lamports uint64) decimal.Decimal {
	return decimal.NewFromInt(int64(lamports)).Div(lamportsPerSol)
}

// SolToLamports converts a decimal SOL amount to the nearest lamport count.
func SolToLamports(sol decimal.Decimal) uint64 {
	return uint64(sol.Mul(lamportsPerSol).Round(0).IntPart())
}
