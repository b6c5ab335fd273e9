package codec

import (
	"github.com/web3-fighter/sol-rpc-gateway/internal/rpcerr"
)

// MessageHeader is {num_required_signatures, num_readonly_signed_accounts,
// num_readonly_unsigned_accounts}.
type MessageHeader struct {
	NumRequiredSignatures       uint8
	NumReadonlySignedAccounts   uint8
	NumReadonlyUnsignedAccounts uint8
}

// Message is {header, account_keys, recent_blockhash, instructions}.
// account_keys is the deduplicated ordering CompileKeys produces.
type Message struct {
	Header          MessageHeader
	AccountKeys     []Pubkey
	RecentBlockhash BlockHash
	Instructions    []CompiledInstruction
}

type keyFlags struct {
	isSigner   bool
	isWritable bool
}

// CompileKeys implements the CompiledKeys lowering: it turns a batch of
// uncompiled Instructions plus an optional fee-payer into a MessageHeader, a
// deduplicated account_keys ordering, and the corresponding
// CompiledInstructions (pubkeys replaced by indices into account_keys).
func CompileKeys(instructions []Instruction, payer *Pubkey) (MessageHeader, []Pubkey, []CompiledInstruction, error) {
	order := make([]Pubkey, 0, 4+len(instructions))
	flags := make(map[Pubkey]*keyFlags, 4+len(instructions))

	upsert := func(pk Pubkey, signer, writable bool) {
		f, ok := flags[pk]
		if !ok {
			f = &keyFlags{}
			flags[pk] = f
			order = append(order, pk)
		}
		f.isSigner = f.isSigner || signer
		f.isWritable = f.isWritable || writable
	}

	// Inserting the payer before any instruction account guarantees it is
	// the first entry in `order`, which (since writable+signer is monotone)
	// makes it the first writable signer below without a separate
	// prepend step.
	if payer != nil {
		upsert(*payer, true, true)
	}

	for _, ins := range instructions {
		upsert(ins.ProgramID, false, false)
		for _, am := range ins.Accounts {
			upsert(am.Pubkey, am.IsSigner, am.IsWritable)
		}
	}

	var writableSigners, readonlySigners, writableNonSigners, readonlyNonSigners []Pubkey
	for _, pk := range order {
		f := flags[pk]
		switch {
		case f.isSigner && f.isWritable:
			writableSigners = append(writableSigners, pk)
		case f.isSigner && !f.isWritable:
			readonlySigners = append(readonlySigners, pk)
		case !f.isSigner && f.isWritable:
			writableNonSigners = append(writableNonSigners, pk)
		default:
			readonlyNonSigners = append(readonlyNonSigners, pk)
		}
	}

	if payer != nil && (len(writableSigners) == 0 || writableSigners[0] != *payer) {
		return MessageHeader{}, nil, nil, rpcerr.Validation("payer must be the first writable signer")
	}

	accountKeys := make([]Pubkey, 0, len(order))
	accountKeys = append(accountKeys, writableSigners...)
	accountKeys = append(accountKeys, readonlySigners...)
	accountKeys = append(accountKeys, writableNonSigners...)
	accountKeys = append(accountKeys, readonlyNonSigners...)

	numRequiredSignatures := len(writableSigners) + len(readonlySigners)
	numReadonlySigned := len(readonlySigners)
	numReadonlyUnsigned := len(readonlyNonSigners)

	if numRequiredSignatures > 0xff || numReadonlySigned > 0xff || numReadonlyUnsigned > 0xff || len(accountKeys) > 256 {
		return MessageHeader{}, nil, nil, rpcerr.Validation("overflow when compiling message keys")
	}

	header := MessageHeader{
		NumRequiredSignatures:       uint8(numRequiredSignatures),
		NumReadonlySignedAccounts:   uint8(numReadonlySigned),
		NumReadonlyUnsignedAccounts: uint8(numReadonlyUnsigned),
	}

	index := make(map[Pubkey]uint8, len(accountKeys))
	for i, pk := range accountKeys {
		index[pk] = uint8(i)
	}

	compiled := make([]CompiledInstruction, 0, len(instructions))
	for _, ins := range instructions {
		accIdx := make([]uint8, 0, len(ins.Accounts))
		for _, am := range ins.Accounts {
			accIdx = append(accIdx, index[am.Pubkey])
		}
		compiled = append(compiled, CompiledInstruction{
			ProgramIDIndex: index[ins.ProgramID],
			Accounts:       accIdx,
			Data:           ins.Data,
		})
	}

	return header, accountKeys, compiled, nil
}

// NewMessage compiles instructions via CompileKeys and attaches
// recentBlockhash, producing a ready-to-serialize Message.
func NewMessage(instructions []Instruction, payer *Pubkey, recentBlockhash BlockHash) (Message, error) {
	header, keys, compiled, err := CompileKeys(instructions, payer)
	if err != nil {
		return Message{}, err
	}
	return Message{
		Header:          header,
		AccountKeys:     keys,
		RecentBlockhash: recentBlockhash,
		Instructions:    compiled,
	}, nil
}

// ResolveProgramID returns the account_keys entry a CompiledInstruction
// points at, used when inspecting a decoded transaction.
func (m Message) ResolveProgramID(ci CompiledInstruction) (Pubkey, bool) {
	if int(ci.ProgramIDIndex) >= len(m.AccountKeys) {
		return Pubkey{}, false
	}
	return m.AccountKeys[ci.ProgramIDIndex], true
}
