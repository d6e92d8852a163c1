package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/clearmint/walletsdk/ledger"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
)

// transactionSender builds and submits payments of the configured asset.
// Building validates everything it can locally before a single network
// call; sending makes exactly one submission attempt.
type transactionSender struct {
	gateway  ledger.Gateway
	mint     solana.PublicKey
	decimals int
	appID    string
}

func newTransactionSender(gateway ledger.Gateway, mint solana.PublicKey, decimals int, appID string) *transactionSender {
	return &transactionSender{gateway: gateway, mint: mint, decimals: decimals, appID: appID}
}

// buildTransaction validates, assembles, and signs a payment from the
// given key pair. The transaction is not submitted; its ID is already the
// final one.
func (s *transactionSender) buildTransaction(ctx context.Context, from KeyPair, destination string, amount string, memo string) (*Transaction, error) {
	if !from.CanSign() {
		return nil, opFailed(fmt.Errorf("source account %s is watch-only and cannot sign", from.Address()))
	}
	units, err := parseAmount(amount, s.decimals)
	if err != nil {
		return nil, err
	}
	if destination == "" {
		return nil, &InvalidAddressError{Address: destination, cause: fmt.Errorf("public address can't be empty")}
	}
	destPub, err := solana.PublicKeyFromBase58(destination)
	if err != nil {
		return nil, &InvalidAddressError{Address: destination, cause: err}
	}
	fullMemo, err := prefixMemo(s.appID, memo)
	if err != nil {
		return nil, err
	}

	// The source must exist and hold the asset before we can move it.
	if _, err := s.loadActivatedAccount(ctx, from.publicKey()); err != nil {
		return nil, err
	}

	blockhash, err := s.gateway.LatestBlockhash(ctx)
	if err != nil {
		return nil, opFailed(err)
	}

	sourceATA, _, err := solana.FindAssociatedTokenAddress(from.publicKey(), s.mint)
	if err != nil {
		return nil, opFailed(fmt.Errorf("failed to derive source token account: %w", err))
	}
	destATA, _, err := solana.FindAssociatedTokenAddress(destPub, s.mint)
	if err != nil {
		return nil, opFailed(fmt.Errorf("failed to derive destination token account: %w", err))
	}

	transfer := token.NewTransferCheckedInstruction(
		units,
		uint8(s.decimals),
		sourceATA,
		s.mint,
		destATA,
		from.publicKey(),
		[]solana.PublicKey{},
	).Build()

	envelope, err := solana.NewTransaction(
		[]solana.Instruction{
			transfer,
			&memoInstruction{text: fullMemo, signer: from.publicKey()},
		},
		blockhash,
		solana.TransactionPayer(from.publicKey()),
	)
	if err != nil {
		return nil, opFailed(fmt.Errorf("failed to create transaction: %w", err))
	}

	if err := signEnvelope(envelope, from); err != nil {
		return nil, opFailed(err)
	}

	return &Transaction{
		id:          TransactionID(envelope.Signatures[0].String()),
		source:      from.publicKey(),
		destination: destPub,
		amount:      formatAmount(units, s.decimals),
		memo:        fullMemo,
		envelope:    envelope,
	}, nil
}

// sendTransaction submits a previously built transaction. The destination
// is checked for asset opt-in first, so a certain-to-fail submission is
// never attempted.
func (s *transactionSender) sendTransaction(ctx context.Context, tx *Transaction) (TransactionID, error) {
	if tx == nil || tx.envelope == nil {
		return "", opFailed(fmt.Errorf("transaction must not be nil"))
	}
	if _, err := s.loadActivatedAccount(ctx, tx.destination); err != nil {
		return "", err
	}

	sig, err := s.gateway.Submit(ctx, tx.envelope)
	if err != nil {
		return "", mapSubmitErr(err)
	}
	if got := TransactionID(sig.String()); got != tx.id {
		// The ledger echoing a different id than we computed means the
		// envelope changed between build and submit. Surface it.
		return "", opFailed(fmt.Errorf("ledger reported transaction id %s, expected %s", got, tx.id))
	}
	return tx.id, nil
}

// loadAccount fetches an account's ledger state, classifying "not found"
// versus other I/O faults. Both build and send paths use it so the two
// stay consistent.
func (s *transactionSender) loadAccount(ctx context.Context, addr solana.PublicKey) (*ledger.AccountState, error) {
	state, err := s.gateway.AccountState(ctx, addr)
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			return nil, &AccountNotFoundError{Address: addr.String()}
		}
		return nil, opFailed(err)
	}
	return state, nil
}

// loadActivatedAccount additionally requires the account to have opted in
// to the asset.
func (s *transactionSender) loadActivatedAccount(ctx context.Context, addr solana.PublicKey) (*ledger.AccountState, error) {
	state, err := s.loadAccount(ctx, addr)
	if err != nil {
		return nil, err
	}
	if !state.Activated {
		return nil, &AccountNotActivatedError{Address: addr.String()}
	}
	return state, nil
}

// mapSubmitErr folds a gateway submission failure into the wallet fault
// taxonomy. An underfunded first operation is the one case callers handle
// specially.
func mapSubmitErr(err error) error {
	var submit *ledger.SubmitError
	if errors.As(err, &submit) {
		if len(submit.OpCodes) > 0 && submit.OpCodes[0] == ledger.ResultUnderfunded {
			return &InsufficientFundsError{}
		}
		return &TransactionFailedError{ResultCodes: submit.RawCodes(), cause: submit}
	}
	if errors.Is(err, ledger.ErrAccountNotFound) {
		return &AccountNotFoundError{}
	}
	return opFailed(err)
}

func signEnvelope(envelope *solana.Transaction, signer KeyPair) error {
	priv := signer.privateKey()
	_, err := envelope.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if signer.publicKey().Equals(key) {
			return &priv
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}
	return nil
}
