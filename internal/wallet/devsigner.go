package wallet

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
)

// DevSigner is a deterministic, non-threshold stand-in for the real
// schnorr_public_key/sign_with_schnorr system calls, used in local
// development and tests where no threshold-signing canister is available.
// It derives one Ed25519 keypair per distinct derivation path by hashing
// the path into a seed; it never persists or exposes the private key.
type DevSigner struct {
	masterSeed []byte
}

func NewDevSigner(masterSeed []byte) *DevSigner {
	return &DevSigner{masterSeed: masterSeed}
}

func (d *DevSigner) keyFor(path DerivationPath) ed25519.PrivateKey {
	h := sha256.New()
	h.Write(d.masterSeed)
	for _, segment := range path {
		h.Write(segment)
	}
	seed := h.Sum(nil) // 32 bytes, exactly ed25519.SeedSize
	return ed25519.NewKeyFromSeed(seed)
}

func (d *DevSigner) PublicKey(ctx context.Context, keyName string, path DerivationPath) ([]byte, error) {
	priv := d.keyFor(path)
	pub := priv.Public().(ed25519.PublicKey)
	return []byte(pub), nil
}

func (d *DevSigner) SignMessage(ctx context.Context, keyName string, path DerivationPath, message []byte) ([]byte, error) {
	priv := d.keyFor(path)
	return ed25519.Sign(priv, message), nil
}
