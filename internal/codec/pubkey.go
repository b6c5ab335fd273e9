package codec

import (
	"encoding/hex"

	"github.com/mr-tron/base58"
	"github.com/web3-fighter/sol-rpc-gateway/internal/rpcerr"
)

// Pubkey is a fixed 32-byte Ed25519/curve identifier. Equality is
// byte-equality via the comparable array type.
type Pubkey [32]byte

// Signature is a fixed 64-byte Ed25519 signature. The zero value is the
// all-zero placeholder used in unsigned transactions.
type Signature [64]byte

// BlockHash is a fixed 32-byte hash, framed like Pubkey.
type BlockHash [32]byte

var (
	defaultBlockHash  BlockHash
	defaultSignature  Signature
)

// IsDefault reports whether b is the placeholder all-zero blockhash that
// Wallet.SendTransaction treats as "needs a fresh getLatestBlockhash".
func (b BlockHash) IsDefault() bool { return b == defaultBlockHash }

// IsDefault reports whether s is the all-zero placeholder signature.
func (s Signature) IsDefault() bool { return s == defaultSignature }

func (p Pubkey) String() string { return base58.Encode(p[:]) }
func (b BlockHash) String() string { return base58.Encode(b[:]) }
func (s Signature) String() string { return base58.Encode(s[:]) }

func (p Pubkey) Bytes() []byte { return p[:] }
func (b BlockHash) Bytes() []byte { return b[:] }
func (s Signature) Bytes() []byte { return s[:] }

// PubkeyFromBase58 decodes a base58 pubkey, validating the 32-byte length
// and that the encoded form never exceeds 44 characters.
func PubkeyFromBase58(s string) (Pubkey, error) {
	var out Pubkey
	if len(s) > 44 {
		return out, rpcerr.Validation("pubkey base58 exceeds 44 characters: %d", len(s))
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return out, rpcerr.Validation("invalid base58 pubkey %q: %v", s, err)
	}
	if len(raw) != 32 {
		return out, rpcerr.Validation("pubkey must decode to 32 bytes, got %d", len(raw))
	}
	copy(out[:], raw)
	return out, nil
}

// BlockHashFromBase58 decodes a base58 blockhash, same framing as Pubkey.
func BlockHashFromBase58(s string) (BlockHash, error) {
	pk, err := PubkeyFromBase58(s)
	return BlockHash(pk), err
}

// SignatureFromBase58 decodes a base58 signature, validating the 64-byte
// length and that the encoded form never exceeds 88 characters.
func SignatureFromBase58(s string) (Signature, error) {
	var out Signature
	if len(s) > 88 {
		return out, rpcerr.Validation("signature base58 exceeds 88 characters: %d", len(s))
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return out, rpcerr.Validation("invalid base58 signature %q: %v", s, err)
	}
	if len(raw) != 64 {
		return out, rpcerr.Validation("signature must decode to 64 bytes, got %d", len(raw))
	}
	copy(out[:], raw)
	return out, nil
}

// SignatureFromBytes copies a 64-byte slice (e.g. a threshold-signing
// response) into a Signature.
func SignatureFromBytes(raw []byte) (Signature, error) {
	var out Signature
	if len(raw) != 64 {
		return out, rpcerr.Validation("signature must be 64 bytes, got %d", len(raw))
	}
	copy(out[:], raw)
	return out, nil
}

// PubkeyFromBytes copies a 32-byte slice (e.g. a threshold public key
// response) into a Pubkey.
func PubkeyFromBytes(raw []byte) (Pubkey, error) {
	var out Pubkey
	if len(raw) != 32 {
		return out, rpcerr.Validation("pubkey must be 32 bytes, got %d", len(raw))
	}
	copy(out[:], raw)
	return out, nil
}

// Hex is a debug helper (not part of the wire format) mirroring the
// teacher's hex.EncodeToString use on signing payloads.
func (s Signature) Hex() string { return hex.EncodeToString(s[:]) }
