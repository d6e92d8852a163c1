package wallet

import (
	"context"
	"sync/atomic"
)

// Account is a live handle to one stored account. Handles stay valid
// across client reconciliation passes; once deleted they are inert
// forever and are never reused for a different address.
//
// An Account is not safe for concurrent use: callers invoke operations on
// one handle from at most one goroutine at a time, or synchronize
// externally.
type Account struct {
	keyPair   KeyPair
	keyStore  *keyStore
	sender    *transactionSender
	activator *accountActivator
	decimals  int
	deleted   atomic.Bool
}

func newAccount(pair KeyPair, ks *keyStore, sender *transactionSender, activator *accountActivator, decimals int) *Account {
	return &Account{
		keyPair:   pair,
		keyStore:  ks,
		sender:    sender,
		activator: activator,
		decimals:  decimals,
	}
}

// Address returns the account's public ledger address.
func (a *Account) Address() string {
	return a.keyPair.Address()
}

// Export encrypts this account's private key under passphrase and returns
// the portable backup record.
// passphrase must be []byte for security (caller should zero it after use).
func (a *Account) Export(passphrase []byte) (string, error) {
	if a.deleted.Load() {
		return "", &AccountDeletedError{}
	}
	return a.keyStore.exportAccount(a.Address(), passphrase)
}

// BuildTransaction validates and signs a payment of amount to destination
// with an optional memo. The transaction is not submitted.
func (a *Account) BuildTransaction(ctx context.Context, destination string, amount string, memo string) (*Transaction, error) {
	if a.deleted.Load() {
		return nil, &AccountDeletedError{}
	}
	return a.sender.buildTransaction(ctx, a.keyPair, destination, amount, memo)
}

// Send submits a transaction built by this account. At most one
// submission attempt is made; retry policy belongs to the caller, and
// resubmitting an already-successful transaction is unsafe.
func (a *Account) Send(ctx context.Context, tx *Transaction) (TransactionID, error) {
	if a.deleted.Load() {
		return "", &AccountDeletedError{}
	}
	return a.sender.sendTransaction(ctx, tx)
}

// Activate opts this account in to the configured asset. A no-op when the
// account is already activated.
func (a *Account) Activate(ctx context.Context) error {
	if a.deleted.Load() {
		return &AccountDeletedError{}
	}
	return a.activator.activate(ctx, a.keyPair)
}

// IsActivated reports whether the account holds the asset's trust opt-in.
func (a *Account) IsActivated(ctx context.Context) (bool, error) {
	if a.deleted.Load() {
		return false, &AccountDeletedError{}
	}
	return a.activator.isActivated(ctx, a.keyPair)
}

// Balance returns the account's asset balance as a decimal string.
func (a *Account) Balance(ctx context.Context) (string, error) {
	if a.deleted.Load() {
		return "", &AccountDeletedError{}
	}
	state, err := a.sender.loadActivatedAccount(ctx, a.keyPair.publicKey())
	if err != nil {
		return "", err
	}
	return formatAmount(state.TokenUnits, a.decimals), nil
}

func (a *Account) markDeleted() {
	a.deleted.Store(true)
}
