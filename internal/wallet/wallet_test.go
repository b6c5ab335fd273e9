package wallet

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/web3-fighter/sol-rpc-gateway/internal/codec"
	"github.com/web3-fighter/sol-rpc-gateway/internal/outcall"
	"github.com/web3-fighter/sol-rpc-gateway/internal/provider"
	"github.com/web3-fighter/sol-rpc-gateway/internal/rpcclient"
)

func TestDevSignerAddressIsDeterministic(t *testing.T) {
	signer := NewDevSigner([]byte("test-master-seed"))
	caller := []byte("principal-alice")

	pk1, err := signer.PublicKey(context.Background(), "dev_key", CallerDerivationPath(caller))
	require.NoError(t, err)
	pk2, err := signer.PublicKey(context.Background(), "dev_key", CallerDerivationPath(caller))
	require.NoError(t, err)
	require.Equal(t, pk1, pk2)

	other, err := signer.PublicKey(context.Background(), "dev_key", CallerDerivationPath([]byte("principal-bob")))
	require.NoError(t, err)
	require.NotEqual(t, pk1, other)
}

func TestDevSignerSignatureVerifies(t *testing.T) {
	signer := NewDevSigner([]byte("seed"))
	caller := []byte("principal-alice")
	path := CallerDerivationPath(caller)

	pub, err := signer.PublicKey(context.Background(), "k", path)
	require.NoError(t, err)

	msg := []byte("hello solana")
	sig, err := signer.SignMessage(context.Background(), "k", path, msg)
	require.NoError(t, err)
	require.Len(t, sig, 64)
	require.True(t, ed25519.Verify(pub, msg, sig))
}

func TestWalletAddress(t *testing.T) {
	signer := NewDevSigner([]byte("seed"))
	w, err := New(signer, nil, Config{KeyName: "dev_key"})
	require.NoError(t, err)

	addr, err := w.AddressBase58(context.Background(), []byte("principal-alice"))
	require.NoError(t, err)
	require.NotEmpty(t, addr)
}

func TestNewRejectsEmptyKeyName(t *testing.T) {
	_, err := New(NewDevSigner(nil), nil, Config{})
	require.Error(t, err)
}

func TestLamportSolConversion(t *testing.T) {
	sol := LamportsToSol(1_500_000_000)
	require.True(t, sol.Equal(decimal.RequireFromString("1.5")))

	lamports := SolToLamports(decimal.RequireFromString("2.25"))
	require.Equal(t, uint64(2_250_000_000), lamports)
}

type fixedBlockhashClient struct{}

func (fixedBlockhashClient) Do(ctx context.Context, req outcall.Request) (outcall.Response, error) {
	return outcall.Response{Status: 200, Body: []byte(`{"jsonrpc":"2.0","result":{"context":{"slot":1},"value":{"blockhash":"EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N","lastValidBlockHeight":1}},"id":1}`)}, nil
}

func TestSendTransactionFillsMissingBlockhashAndSigns(t *testing.T) {
	driver := &outcall.Driver{Client: fixedBlockhashClient{}, SubnetSize: 34}
	rpc := rpcclient.New(provider.New(nil), driver, 34)
	signer := NewDevSigner([]byte("seed"))
	w, err := New(signer, rpc, Config{KeyName: "dev_key"})
	require.NoError(t, err)

	caller := []byte("principal-alice")
	payer, err := w.Address(context.Background(), caller)
	require.NoError(t, err)

	dest := codec.Pubkey{0x02}
	systemProgram := codec.Pubkey{0x03}
	msg, err := codec.NewMessage([]codec.Instruction{
		{
			ProgramID: systemProgram,
			Accounts: []codec.AccountMeta{
				{Pubkey: payer, IsSigner: true, IsWritable: true},
				{Pubkey: dest, IsSigner: false, IsWritable: true},
			},
			Data: []byte{2, 0, 0, 0},
		},
	}, &payer, codec.BlockHash{})
	require.NoError(t, err)

	tx := codec.Transaction{Signatures: []codec.Signature{{}}, Message: msg}
	rawBase58, err := codec.EncodeTransaction(tx, codec.EncodingBase58)
	require.NoError(t, err)

	// fixedBlockhashClient always answers with a getLatestBlockhash-shaped
	// body, so the blockhash fill-in succeeds but the subsequent
	// sendTransaction decode fails - this exercises steps 1-4 of the
	// pipeline (decode, blockhash, sign, re-serialize) without needing a
	// second fake shaped for sendTransaction's string result.
	_, err = w.SendTransaction(context.Background(), caller, rawBase58, SendTransactionParams{
		Services: rpcclient.Services{Apis: []provider.RpcApi{{URL: "https://a"}}},
	})
	require.Error(t, err)
}
