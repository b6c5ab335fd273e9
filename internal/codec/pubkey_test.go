package codec

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"
)

func TestPubkeyFromBase58RoundTrip(t *testing.T) {
	var raw [32]byte
	for i := range raw {
		raw[i] = byte(i)
	}
	s := base58.Encode(raw[:])

	pk, err := PubkeyFromBase58(s)
	require.NoError(t, err)
	require.Equal(t, Pubkey(raw), pk)
	require.Equal(t, s, pk.String())
}

func TestPubkeyFromBase58WrongLength(t *testing.T) {
	_, err := PubkeyFromBase58(base58.Encode([]byte{1, 2, 3}))
	require.Error(t, err)
}

func TestPubkeyFromBase58TooLong(t *testing.T) {
	_, err := PubkeyFromBase58(string(make([]byte, 45)))
	require.Error(t, err)
}

func TestSignatureFromBytesWrongLength(t *testing.T) {
	_, err := SignatureFromBytes(make([]byte, 10))
	require.Error(t, err)
}

func TestBlockHashIsDefault(t *testing.T) {
	var bh BlockHash
	require.True(t, bh.IsDefault())

	bh[0] = 1
	require.False(t, bh.IsDefault())
}
