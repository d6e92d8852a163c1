package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearmint/walletsdk/ledger"
	"github.com/gagliardetto/solana-go"
)

// senderFixture wires a client, a funded source account, and an activated
// destination against the fake gateway.
type senderFixture struct {
	client  *Client
	gateway *fakeGateway
	source  *Account
	dest    solana.PublicKey
}

func newSenderFixture(t *testing.T) *senderFixture {
	t.Helper()
	gw := newFakeGateway()
	c, err := newTestClient(gw, newMemStore())
	require.NoError(t, err)
	source, err := c.AddAccount()
	require.NoError(t, err)
	gw.addAccount(source.keyPair.publicKey(), true, 1_000_000_000)

	dest := solana.NewWallet().PublicKey()
	gw.addAccount(dest, true, 0)

	return &senderFixture{client: c, gateway: gw, source: source, dest: dest}
}

func TestBuildTransaction(t *testing.T) {
	f := newSenderFixture(t)

	tx, err := f.source.BuildTransaction(t.Context(), f.dest.String(), "12.3400", "hello")
	require.NoError(t, err)

	assert.Equal(t, f.source.Address(), tx.Source())
	assert.Equal(t, f.dest.String(), tx.Destination())
	assert.Equal(t, "12.340000", tx.Amount())
	assert.Equal(t, "1-1acd-hello", tx.Memo())
	assert.NotEmpty(t, tx.ID())
	// Building must not submit anything.
	assert.Empty(t, f.gateway.submitted)
}

func TestBuildTransactionAmountValidation(t *testing.T) {
	f := newSenderFixture(t)
	var illegal *IllegalAmountError

	_, err := f.source.BuildTransaction(t.Context(), f.dest.String(), "1.23456", "")
	assert.ErrorAs(t, err, &illegal, "five fractional digits")

	_, err = f.source.BuildTransaction(t.Context(), f.dest.String(), "-1", "")
	assert.ErrorAs(t, err, &illegal, "negative amount")

	tx, err := f.source.BuildTransaction(t.Context(), f.dest.String(), "1.2345", "")
	require.NoError(t, err, "four fractional digits are fine")
	assert.Equal(t, "1.234500", tx.Amount())
}

func TestBuildTransactionAddressValidation(t *testing.T) {
	f := newSenderFixture(t)
	var invalid *InvalidAddressError

	_, err := f.source.BuildTransaction(t.Context(), "", "1", "")
	assert.ErrorAs(t, err, &invalid)

	_, err = f.source.BuildTransaction(t.Context(), "!!definitely-not-base58!!", "1", "")
	assert.ErrorAs(t, err, &invalid)

	// Validation failures happen before any gateway traffic.
	assert.Empty(t, f.gateway.submitted)
}

func TestBuildTransactionMemoLimit(t *testing.T) {
	f := newSenderFixture(t)

	// Prefix "1-1acd-" is 7 bytes, leaving 14 for the memo itself.
	tx, err := f.source.BuildTransaction(t.Context(), f.dest.String(), "1", "  exactly14bytes  ")
	require.NoError(t, err)
	assert.Equal(t, "1-1acd-exactly14bytes", tx.Memo())

	_, err = f.source.BuildTransaction(t.Context(), f.dest.String(), "1", "this memo is too long")
	var illegal *IllegalAmountError
	assert.ErrorAs(t, err, &illegal)

	// Multi-byte runes count in bytes, not runes.
	_, err = f.source.BuildTransaction(t.Context(), f.dest.String(), "1", "ééééééééé")
	assert.ErrorAs(t, err, &illegal)
}

func TestBuildTransactionSourceChecks(t *testing.T) {
	gw := newFakeGateway()
	c, err := newTestClient(gw, newMemStore())
	require.NoError(t, err)
	source, err := c.AddAccount()
	require.NoError(t, err)
	dest := solana.NewWallet().PublicKey()
	gw.addAccount(dest, true, 0)

	// Source unknown to the ledger.
	_, err = source.BuildTransaction(t.Context(), dest.String(), "1", "")
	var notFound *AccountNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, source.Address(), notFound.Address)

	// Source exists but never opted in to the asset.
	gw.addAccount(source.keyPair.publicKey(), false, 0)
	_, err = source.BuildTransaction(t.Context(), dest.String(), "1", "")
	var notActivated *AccountNotActivatedError
	assert.ErrorAs(t, err, &notActivated)
}

func TestSendTransaction(t *testing.T) {
	f := newSenderFixture(t)
	tx, err := f.source.BuildTransaction(t.Context(), f.dest.String(), "5", "")
	require.NoError(t, err)

	id, err := f.source.Send(t.Context(), tx)
	require.NoError(t, err)
	// The ledger-confirmed id must equal the locally precomputed one.
	assert.Equal(t, tx.ID(), id)
	assert.Len(t, f.gateway.submitted, 1)
}

func TestSendToUnactivatedDestinationDoesNotSubmit(t *testing.T) {
	f := newSenderFixture(t)
	tx, err := f.source.BuildTransaction(t.Context(), f.dest.String(), "5", "")
	require.NoError(t, err)

	// The destination drops its opt-in between build and send.
	f.gateway.addAccount(f.dest, false, 0)

	_, err = f.source.Send(t.Context(), tx)
	var notActivated *AccountNotActivatedError
	require.ErrorAs(t, err, &notActivated)
	assert.Empty(t, f.gateway.submitted, "no submission attempt may be made")
}

func TestSendUnderfundedSource(t *testing.T) {
	f := newSenderFixture(t)
	tx, err := f.source.BuildTransaction(t.Context(), f.dest.String(), "5", "")
	require.NoError(t, err)

	f.gateway.submitErr = &ledger.SubmitError{
		TxCode:  ledger.ResultUnrecognized,
		OpCodes: []ledger.ResultCode{ledger.ResultUnderfunded},
		Raw:     "insufficient funds",
	}

	_, err = f.source.Send(t.Context(), tx)
	var insufficient *InsufficientFundsError
	assert.ErrorAs(t, err, &insufficient)
}

func TestSendOtherFailureKeepsResultCodes(t *testing.T) {
	f := newSenderFixture(t)
	tx, err := f.source.BuildTransaction(t.Context(), f.dest.String(), "5", "")
	require.NoError(t, err)

	f.gateway.submitErr = &ledger.SubmitError{
		TxCode:  ledger.ResultUnrecognized,
		OpCodes: []ledger.ResultCode{ledger.ResultBlockhashStale},
		Raw:     "blockhash not found",
	}

	_, err = f.source.Send(t.Context(), tx)
	var failed *TransactionFailedError
	require.ErrorAs(t, err, &failed)
	assert.Contains(t, failed.ResultCodes, string(ledger.ResultBlockhashStale))
}

func TestSendNilTransaction(t *testing.T) {
	f := newSenderFixture(t)
	_, err := f.source.Send(t.Context(), nil)
	var opErr *OperationFailedError
	assert.ErrorAs(t, err, &opErr)
}

func TestBuildWithEmptyAppID(t *testing.T) {
	gw := newFakeGateway()
	store := newMemStore()
	c, err := New(Config{
		Environment:     testEnvironment(),
		AppID:           "",
		StoreKey:        "scope",
		Store:           store,
		StorePassphrase: []byte("pw"),
		Gateway:         gw,
		Codec:           testCodec(),
	})
	require.NoError(t, err)
	source, err := c.AddAccount()
	require.NoError(t, err)
	gw.addAccount(source.keyPair.publicKey(), true, 1_000_000)
	dest := solana.NewWallet().PublicKey()
	gw.addAccount(dest, true, 0)

	tx, err := source.BuildTransaction(t.Context(), dest.String(), "0.1", "note")
	require.NoError(t, err)
	assert.Equal(t, "1--note", tx.Memo())
}
