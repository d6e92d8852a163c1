package wallet

import (
	"errors"
	"fmt"
)

// The wallet reports every failure as one of the typed errors below so
// callers can branch with errors.As instead of matching strings. The one
// deliberate exception: wrong passphrase and corrupted backup ciphertext
// both surface as *CryptoError, so a caller probing the store cannot tell
// which one happened.

// CreateAccountError means a new account could not be generated or
// persisted. The store is left without a partial record.
type CreateAccountError struct {
	cause error
}

func (e *CreateAccountError) Error() string {
	return fmt.Sprintf("failed to create account: %v", e.cause)
}

func (e *CreateAccountError) Unwrap() error { return e.cause }

// DeleteAccountError means a persisted record could not be removed.
type DeleteAccountError struct {
	cause error
}

func (e *DeleteAccountError) Error() string {
	return fmt.Sprintf("failed to delete account: %v", e.cause)
}

func (e *DeleteAccountError) Unwrap() error { return e.cause }

// LoadAccountError means the persisted account set could not be read. It
// is non-fatal: callers treat it as "current accounts unknown".
type LoadAccountError struct {
	cause error
}

func (e *LoadAccountError) Error() string {
	return fmt.Sprintf("failed to load accounts: %v", e.cause)
}

func (e *LoadAccountError) Unwrap() error { return e.cause }

// CryptoError covers both a wrong passphrase and corrupted ciphertext.
// The two are intentionally indistinguishable.
type CryptoError struct {
	cause error
}

func (e *CryptoError) Error() string {
	return "corrupted data or wrong passphrase"
}

func (e *CryptoError) Unwrap() error { return e.cause }

// CorruptedDataError means a backup record is structurally malformed:
// unparseable, or an unsupported format version. Unlike *CryptoError this
// is detectable without knowing the passphrase.
type CorruptedDataError struct {
	cause error
}

func (e *CorruptedDataError) Error() string {
	return fmt.Sprintf("corrupted backup record: %v", e.cause)
}

func (e *CorruptedDataError) Unwrap() error { return e.cause }

// IllegalAmountError rejects a payment before any network call: negative
// amount, more than four decimal places, or a memo over the byte limit.
type IllegalAmountError struct {
	reason string
}

func (e *IllegalAmountError) Error() string { return e.reason }

// InvalidAddressError means the destination does not parse as a ledger
// address.
type InvalidAddressError struct {
	Address string
	cause   error
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid public address %q: %v", e.Address, e.cause)
}

func (e *InvalidAddressError) Unwrap() error { return e.cause }

// AccountNotFoundError means no account exists for the address: on the
// ledger for network operations, in the key store for export.
type AccountNotFoundError struct {
	Address string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account %s was not found", e.Address)
}

// AccountNotActivatedError means the account exists but never opted in to
// the configured asset.
type AccountNotActivatedError struct {
	Address string
}

func (e *AccountNotActivatedError) Error() string {
	return fmt.Sprintf("account %s is not activated for the asset", e.Address)
}

// AccountDeletedError is returned by every operation on a handle after it
// was deleted. The handle never comes back.
type AccountDeletedError struct{}

func (e *AccountDeletedError) Error() string {
	return "account is deleted, operations are not allowed"
}

// InsufficientFundsError means the ledger rejected the payment because the
// source balance cannot cover it.
type InsufficientFundsError struct{}

func (e *InsufficientFundsError) Error() string {
	return "not enough balance to perform the payment"
}

// TransactionFailedError is a submission the ledger rejected for any other
// reason; ResultCodes carries the raw codes for diagnostics.
type TransactionFailedError struct {
	ResultCodes []string
	cause       error
}

func (e *TransactionFailedError) Error() string {
	return fmt.Sprintf("transaction failed: %v", e.ResultCodes)
}

func (e *TransactionFailedError) Unwrap() error { return e.cause }

// OperationFailedError wraps transport and other I/O failures.
type OperationFailedError struct {
	cause error
}

func (e *OperationFailedError) Error() string {
	return fmt.Sprintf("operation failed: %v", e.cause)
}

func (e *OperationFailedError) Unwrap() error { return e.cause }

func opFailed(err error) error {
	var op *OperationFailedError
	if errors.As(err, &op) {
		return err
	}
	return &OperationFailedError{cause: err}
}
