package codec

// AccountMeta is {pubkey, is_signer, is_writable}. Two otherwise equal
// metas that differ on these flags are different for CompileKeys
// purposes: signer+writable dominates during the account-key upsert.
type AccountMeta struct {
	Pubkey     Pubkey
	IsSigner   bool
	IsWritable bool
}

// Instruction is {program_id, accounts, data}, the uncompiled form a
// caller assembles before CompileKeys lowers a batch of them into a
// Message.
type Instruction struct {
	ProgramID Pubkey
	Accounts  []AccountMeta
	Data      []byte
}

// CompiledInstruction is an Instruction with pubkeys replaced by indices
// into the enclosing Message's account_keys table.
type CompiledInstruction struct {
	ProgramIDIndex uint8
	Accounts       []uint8
	Data           []byte
}
