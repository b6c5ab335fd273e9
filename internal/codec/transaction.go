package codec

import (
	"bytes"
	"encoding/base64"

	"github.com/mr-tron/base58"
	"github.com/web3-fighter/sol-rpc-gateway/internal/rpcerr"
)

// Transaction is {signatures, message}: a short-vec-prefixed signature
// list followed by the bincode-serialized Message it signs over.
type Transaction struct {
	Signatures []Signature
	Message    Message
}

// Encoding names the wire framing of a serialized Transaction, matching
// Solana's UiTransactionEncoding. Base64 and Base58 are the two framings
// this module round-trips; JSON/JSONParsed belong to RPC response
// decoding, not transaction submission, and are rejected here.
type Encoding string

const (
	EncodingBase58 Encoding = "base58"
	EncodingBase64 Encoding = "base64"
)

// MarshalBinary writes the exact on-wire bincode layout:
//
//	short-vec(signatures, 64 bytes each) ||
//	header (3 bytes)                    ||
//	short-vec(account_keys, 32 bytes each) ||
//	recent_blockhash (32 bytes)          ||
//	short-vec(instructions)
//
// where each instruction is program_id_index(u8) || short-vec(accounts:u8) ||
// short-vec(data:bytes).
func (t Transaction) MarshalBinary() ([]byte, error) {
	if len(t.Signatures) > 0xffff {
		return nil, rpcerr.Validation("transaction: too many signatures: %d", len(t.Signatures))
	}

	var buf bytes.Buffer
	buf.Write(EncodeShortVecLen(uint16(len(t.Signatures))))
	for _, sig := range t.Signatures {
		buf.Write(sig[:])
	}

	msg, err := t.Message.MarshalBinary()
	if err != nil {
		return nil, err
	}
	buf.Write(msg)

	return buf.Bytes(), nil
}

// MarshalBinary serializes only the Message portion, the payload that a
// signer actually signs over.
func (m Message) MarshalBinary() ([]byte, error) {
	if len(m.AccountKeys) > 0xffff {
		return nil, rpcerr.Validation("message: too many account keys: %d", len(m.AccountKeys))
	}
	if len(m.Instructions) > 0xffff {
		return nil, rpcerr.Validation("message: too many instructions: %d", len(m.Instructions))
	}

	var buf bytes.Buffer
	buf.WriteByte(m.Header.NumRequiredSignatures)
	buf.WriteByte(m.Header.NumReadonlySignedAccounts)
	buf.WriteByte(m.Header.NumReadonlyUnsignedAccounts)

	buf.Write(EncodeShortVecLen(uint16(len(m.AccountKeys))))
	for _, pk := range m.AccountKeys {
		buf.Write(pk[:])
	}

	buf.Write(m.RecentBlockhash[:])

	buf.Write(EncodeShortVecLen(uint16(len(m.Instructions))))
	for _, ci := range m.Instructions {
		if len(ci.Accounts) > 0xffff {
			return nil, rpcerr.Validation("instruction: too many accounts: %d", len(ci.Accounts))
		}
		if len(ci.Data) > 0xffff {
			return nil, rpcerr.Validation("instruction: data too long: %d", len(ci.Data))
		}
		buf.WriteByte(ci.ProgramIDIndex)
		buf.Write(EncodeShortVecLen(uint16(len(ci.Accounts))))
		buf.Write(ci.Accounts)
		buf.Write(EncodeShortVecLen(uint16(len(ci.Data))))
		buf.Write(ci.Data)
	}

	return buf.Bytes(), nil
}

// UnmarshalTransaction reverses MarshalBinary, rejecting any trailing bytes
// the short-vec/field lengths didn't account for.
func UnmarshalTransaction(raw []byte) (Transaction, error) {
	r := &reader{buf: raw}

	sigCount, err := r.shortVecLen()
	if err != nil {
		return Transaction{}, err
	}
	sigs := make([]Signature, sigCount)
	for i := range sigs {
		b, err := r.take(64)
		if err != nil {
			return Transaction{}, err
		}
		copy(sigs[i][:], b)
	}

	msg, err := unmarshalMessage(r)
	if err != nil {
		return Transaction{}, err
	}

	if r.remaining() != 0 {
		return Transaction{}, rpcerr.Parse("transaction: %d trailing bytes after message", r.remaining())
	}

	return Transaction{Signatures: sigs, Message: msg}, nil
}

// UnmarshalMessage decodes a standalone serialized Message (e.g. the payload
// a threshold signer is asked to sign).
func UnmarshalMessage(raw []byte) (Message, error) {
	r := &reader{buf: raw}
	msg, err := unmarshalMessage(r)
	if err != nil {
		return Message{}, err
	}
	if r.remaining() != 0 {
		return Message{}, rpcerr.Parse("message: %d trailing bytes", r.remaining())
	}
	return msg, nil
}

func unmarshalMessage(r *reader) (Message, error) {
	headerBytes, err := r.take(3)
	if err != nil {
		return Message{}, err
	}
	header := MessageHeader{
		NumRequiredSignatures:       headerBytes[0],
		NumReadonlySignedAccounts:   headerBytes[1],
		NumReadonlyUnsignedAccounts: headerBytes[2],
	}

	keyCount, err := r.shortVecLen()
	if err != nil {
		return Message{}, err
	}
	keys := make([]Pubkey, keyCount)
	for i := range keys {
		b, err := r.take(32)
		if err != nil {
			return Message{}, err
		}
		copy(keys[i][:], b)
	}

	bhBytes, err := r.take(32)
	if err != nil {
		return Message{}, err
	}
	var bh BlockHash
	copy(bh[:], bhBytes)

	insCount, err := r.shortVecLen()
	if err != nil {
		return Message{}, err
	}
	instructions := make([]CompiledInstruction, insCount)
	for i := range instructions {
		programIdx, err := r.take(1)
		if err != nil {
			return Message{}, err
		}
		accCount, err := r.shortVecLen()
		if err != nil {
			return Message{}, err
		}
		accounts, err := r.take(int(accCount))
		if err != nil {
			return Message{}, err
		}
		dataLen, err := r.shortVecLen()
		if err != nil {
			return Message{}, err
		}
		data, err := r.take(int(dataLen))
		if err != nil {
			return Message{}, err
		}
		instructions[i] = CompiledInstruction{
			ProgramIDIndex: programIdx[0],
			Accounts:       append([]byte(nil), accounts...),
			Data:           append([]byte(nil), data...),
		}
	}

	return Message{
		Header:          header,
		AccountKeys:     keys,
		RecentBlockhash: bh,
		Instructions:    instructions,
	}, nil
}

// reader walks raw bincode bytes, tracking position for UnmarshalTransaction
// and UnmarshalMessage. It deliberately avoids a bytes.Reader because
// shortVecLen needs to peek up to 3 bytes without consuming them on error.
type reader struct {
	buf []byte
	pos int
}

func (r *reader) remaining() int { return len(r.buf) - r.pos }

func (r *reader) take(n int) ([]byte, error) {
	if n < 0 || r.pos+n > len(r.buf) {
		return nil, rpcerr.Parse("unexpected end of input: need %d bytes, have %d", n, r.remaining())
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

func (r *reader) shortVecLen() (uint16, error) {
	n, consumed, err := DecodeShortVecLen(r.buf[r.pos:])
	if err != nil {
		return 0, err
	}
	r.pos += consumed
	return n, nil
}

// EncodeTransaction frames a serialized Transaction for transport. Base58
// is Solana's conventional default for sendTransaction payloads; base64 is
// accepted for larger (post-versioned-transaction) payloads that would
// otherwise exceed base58's size headroom.
func EncodeTransaction(tx Transaction, enc Encoding) (string, error) {
	raw, err := tx.MarshalBinary()
	if err != nil {
		return "", err
	}
	switch enc {
	case EncodingBase58, "":
		return base58.Encode(raw), nil
	case EncodingBase64:
		return base64.StdEncoding.EncodeToString(raw), nil
	default:
		return "", rpcerr.Validation("unsupported transaction encoding: %q", enc)
	}
}

// DecodeTransaction reverses EncodeTransaction.
func DecodeTransaction(s string, enc Encoding) (Transaction, error) {
	var raw []byte
	var err error
	switch enc {
	case EncodingBase58, "":
		raw, err = base58.Decode(s)
	case EncodingBase64:
		raw, err = base64.StdEncoding.DecodeString(s)
	default:
		return Transaction{}, rpcerr.Validation("unsupported transaction encoding: %q", enc)
	}
	if err != nil {
		return Transaction{}, rpcerr.Validation("invalid %s transaction payload: %v", enc, err)
	}
	return UnmarshalTransaction(raw)
}
