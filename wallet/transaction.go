package wallet

import (
	"github.com/gagliardetto/solana-go"
)

// TransactionID is the opaque identifier of a built transaction: the
// base58 form of the fee payer's signature, computed locally at build
// time. On a successful submission the ledger reports the same value.
type TransactionID string

func (id TransactionID) String() string { return string(id) }

// Transaction is an immutable signed payment ready for submission. Build
// it with Account.BuildTransaction; the envelope inside is already signed
// and must not be mutated.
type Transaction struct {
	id          TransactionID
	source      solana.PublicKey
	destination solana.PublicKey
	amount      string
	memo        string
	envelope    *solana.Transaction
}

// ID returns the content-derived identifier.
func (t *Transaction) ID() TransactionID { return t.id }

// Source returns the paying account's public address.
func (t *Transaction) Source() string { return t.source.String() }

// Destination returns the receiving account's public address.
func (t *Transaction) Destination() string { return t.destination.String() }

// Amount returns the decimal amount the transaction pays.
func (t *Transaction) Amount() string { return t.amount }

// Memo returns the full memo attached to the transaction, including the
// version and app-id prefix.
func (t *Transaction) Memo() string { return t.memo }
