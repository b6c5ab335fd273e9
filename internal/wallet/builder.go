package wallet

import (
	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"

	"github.com/web3-fighter/sol-rpc-gateway/internal/codec"
	"github.com/web3-fighter/sol-rpc-gateway/internal/rpcerr"
)

// BuildTransferTransaction assembles a native SOL transfer the same way
// the reference wallet's BuildUnSignTransaction does for a plain transfer:
// one system-program transfer instruction, the sender as fee payer.
//
// The transaction is built with gagliardetto/solana-go's own instruction
// encoders and message assembly, then immediately re-parsed through this
// package's codec.UnmarshalTransaction. Every call therefore cross-checks
// the hand-rolled bincode/short-vec decoder against solana-go's own wire
// output before the result ever reaches Wallet.SendTransaction.
func BuildTransferTransaction(from, to string, lamports uint64, recentBlockhash codec.BlockHash) (codec.Transaction, error) {
	fromPubKey, err := solana.PublicKeyFromBase58(from)
	if err != nil {
		return codec.Transaction{}, rpcerr.Validation("invalid from address: %v", err)
	}
	toPubKey, err := solana.PublicKeyFromBase58(to)
	if err != nil {
		return codec.Transaction{}, rpcerr.Validation("invalid to address: %v", err)
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{
			system.NewTransferInstruction(lamports, fromPubKey, toPubKey).Build(),
		},
		solana.Hash(recentBlockhash),
		solana.TransactionPayer(fromPubKey),
	)
	if err != nil {
		return codec.Transaction{}, rpcerr.Validation("cannot build transfer transaction: %v", err)
	}

	return decodeBuiltTransaction(tx)
}

// BuildTokenTransferTransaction assembles an SPL token transfer between the
// owner's and recipient's associated token accounts, prepending a
// create-associated-token-account instruction when createRecipientATA is
// set — the same probe-then-create decision the reference wallet's
// BuildSignedTransaction makes after a getAccountInfo lookup on the
// destination ATA comes back empty.
func BuildTokenTransferTransaction(owner, recipient, mint string, amount uint64, createRecipientATA bool, recentBlockhash codec.BlockHash) (codec.Transaction, error) {
	ownerPubKey, err := solana.PublicKeyFromBase58(owner)
	if err != nil {
		return codec.Transaction{}, rpcerr.Validation("invalid owner address: %v", err)
	}
	recipientPubKey, err := solana.PublicKeyFromBase58(recipient)
	if err != nil {
		return codec.Transaction{}, rpcerr.Validation("invalid recipient address: %v", err)
	}
	mintPubKey, err := solana.PublicKeyFromBase58(mint)
	if err != nil {
		return codec.Transaction{}, rpcerr.Validation("invalid mint address: %v", err)
	}

	fromTokenAccount, _, err := solana.FindAssociatedTokenAddress(ownerPubKey, mintPubKey)
	if err != nil {
		return codec.Transaction{}, rpcerr.Text("find sender associated token address: %v", err)
	}
	toTokenAccount, _, err := solana.FindAssociatedTokenAddress(recipientPubKey, mintPubKey)
	if err != nil {
		return codec.Transaction{}, rpcerr.Text("find recipient associated token address: %v", err)
	}

	transferIx := token.NewTransferInstruction(amount, fromTokenAccount, toTokenAccount, ownerPubKey, []solana.PublicKey{}).Build()

	instructions := []solana.Instruction{transferIx}
	if createRecipientATA {
		createIx := associatedtokenaccount.NewCreateInstruction(ownerPubKey, recipientPubKey, mintPubKey).Build()
		instructions = []solana.Instruction{createIx, transferIx}
	}

	tx, err := solana.NewTransaction(instructions, solana.Hash(recentBlockhash), solana.TransactionPayer(ownerPubKey))
	if err != nil {
		return codec.Transaction{}, rpcerr.Validation("cannot build token transfer transaction: %v", err)
	}

	return decodeBuiltTransaction(tx)
}

func decodeBuiltTransaction(tx *solana.Transaction) (codec.Transaction, error) {
	raw, err := tx.MarshalBinary()
	if err != nil {
		return codec.Transaction{}, rpcerr.Text("marshal built transaction: %v", err)
	}
	out, err := codec.UnmarshalTransaction(raw)
	if err != nil {
		return codec.Transaction{}, rpcerr.Parse("built transaction failed codec round-trip: %v", err)
	}
	return out, nil
}
