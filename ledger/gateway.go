// Package ledger defines the boundary between the wallet core and the
// ledger it talks to. The wallet only ever sees the Gateway interface and
// the closed set of result codes below; everything RPC-specific stays in
// the concrete implementation.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
)

// ErrAccountNotFound is returned by AccountState when the ledger has no
// record of the requested address.
var ErrAccountNotFound = errors.New("account not found on ledger")

// AccountState is the subset of on-ledger account data the wallet needs.
type AccountState struct {
	Address  solana.PublicKey
	Lamports uint64
	// TokenUnits is the balance of the configured asset in base units.
	// Zero when the account never opted in to the asset.
	TokenUnits uint64
	// Activated reports whether the account holds a token account for the
	// configured asset, i.e. has opted in to receive it.
	Activated bool
}

// ResultCode classifies a failed submission. Raw ledger error strings are
// folded into this closed set at the gateway; anything we cannot classify
// becomes ResultUnrecognized and keeps its raw text on the SubmitError.
type ResultCode string

const (
	ResultOK             ResultCode = "ok"
	ResultUnderfunded    ResultCode = "underfunded"
	ResultNoAccount      ResultCode = "no_account"
	ResultNotActivated   ResultCode = "not_activated"
	ResultBlockhashStale ResultCode = "blockhash_stale"
	ResultUnrecognized   ResultCode = "unrecognized"
)

// SubmitError is a structured submission failure. TxCode describes the
// transaction as a whole, OpCodes the individual operations in order.
type SubmitError struct {
	TxCode  ResultCode
	OpCodes []ResultCode
	Raw     string
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("transaction failed: tx=%s ops=%v: %s", e.TxCode, e.OpCodes, e.Raw)
}

// RawCodes returns the codes as plain strings for diagnostics.
func (e *SubmitError) RawCodes() []string {
	codes := make([]string, 0, len(e.OpCodes)+1)
	codes = append(codes, string(e.TxCode))
	for _, c := range e.OpCodes {
		codes = append(codes, string(c))
	}
	return codes
}

// Gateway is the supplied ledger capability: account lookup and transaction
// submission. All calls block on the network and honor ctx cancellation
// before the request is issued.
type Gateway interface {
	// AccountState returns the current state of addr, or ErrAccountNotFound.
	AccountState(ctx context.Context, addr solana.PublicKey) (*AccountState, error)

	// LatestBlockhash returns the blockhash transactions must reference.
	LatestBlockhash(ctx context.Context) (solana.Hash, error)

	// Submit sends a signed transaction. Exactly one attempt is made.
	// Failures carry a *SubmitError when the ledger rejected the
	// transaction, or a plain error for transport problems.
	Submit(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)

	// MinBalanceForTokenAccount returns the minimum lamport balance the
	// ledger charges to keep a token account alive.
	MinBalanceForTokenAccount(ctx context.Context) (uint64, error)
}

// classifySubmitErr folds a raw submission error string into the closed
// result-code set. Kept here so business logic never string-matches.
func classifySubmitErr(raw string) *SubmitError {
	lower := strings.ToLower(raw)
	var op ResultCode
	switch {
	case strings.Contains(lower, "insufficient funds") ||
		strings.Contains(lower, "insufficient lamports") ||
		strings.Contains(lower, "custom program error: 0x1"):
		op = ResultUnderfunded
	case strings.Contains(lower, "could not find account") ||
		strings.Contains(lower, "accountnotfound") ||
		strings.Contains(lower, "account not found"):
		op = ResultNoAccount
	case strings.Contains(lower, "invalid account data") ||
		strings.Contains(lower, "uninitializedaccount"):
		op = ResultNotActivated
	case strings.Contains(lower, "blockhash not found"):
		op = ResultBlockhashStale
	default:
		op = ResultUnrecognized
	}
	return &SubmitError{TxCode: ResultUnrecognized, OpCodes: []ResultCode{op}, Raw: raw}
}
