package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/clearmint/walletsdk/ledger"
	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
)

// accountActivator opts an account in to the configured asset by creating
// its token account. On this ledger the opt-in carries no limit, so
// activation grants the maximum the asset can represent.
type accountActivator struct {
	gateway ledger.Gateway
	mint    solana.PublicKey
}

func newAccountActivator(gateway ledger.Gateway, mint solana.PublicKey) *accountActivator {
	return &accountActivator{gateway: gateway, mint: mint}
}

// activate ensures account holds a token account for the asset. Already
// activated accounts return immediately with no transaction submitted, so
// the call is safe to repeat.
func (a *accountActivator) activate(ctx context.Context, account KeyPair) error {
	if !account.CanSign() {
		return opFailed(fmt.Errorf("account %s is watch-only and cannot sign", account.Address()))
	}

	state, err := a.gateway.AccountState(ctx, account.publicKey())
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			return &AccountNotFoundError{Address: account.Address()}
		}
		return opFailed(err)
	}
	if state.Activated {
		return nil
	}

	blockhash, err := a.gateway.LatestBlockhash(ctx)
	if err != nil {
		return opFailed(err)
	}

	// The account pays for and owns its new token account.
	create := associatedtokenaccount.NewCreateInstruction(
		account.publicKey(),
		account.publicKey(),
		a.mint,
	).Build()

	envelope, err := solana.NewTransaction(
		[]solana.Instruction{create},
		blockhash,
		solana.TransactionPayer(account.publicKey()),
	)
	if err != nil {
		return opFailed(fmt.Errorf("failed to create transaction: %w", err))
	}
	if err := signEnvelope(envelope, account); err != nil {
		return opFailed(err)
	}

	if _, err := a.gateway.Submit(ctx, envelope); err != nil {
		return mapSubmitErr(err)
	}
	return nil
}

// isActivated reports whether account currently holds a token account for
// the asset.
func (a *accountActivator) isActivated(ctx context.Context, account KeyPair) (bool, error) {
	state, err := a.gateway.AccountState(ctx, account.publicKey())
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			return false, &AccountNotFoundError{Address: account.Address()}
		}
		return false, opFailed(err)
	}
	return state.Activated, nil
}
