package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewrap(t *testing.T) {
	store := newMemStore()
	c, err := newTestClient(newFakeGateway(), store)
	require.NoError(t, err)
	a1, err := c.AddAccount()
	require.NoError(t, err)
	a2, err := c.AddAccount()
	require.NoError(t, err)

	n, err := Rewrap(store, "test-scope", []byte("store-pass"), []byte("rotated"), testCodec())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// The old passphrase no longer opens the scope. Construction itself
	// tolerates the unreadable store and yields an empty account list.
	stale, err := New(Config{
		Environment:     testEnvironment(),
		AppID:           "1acd",
		StoreKey:        "test-scope",
		Store:           store,
		StorePassphrase: []byte("store-pass"),
		Gateway:         newFakeGateway(),
		Codec:           testCodec(),
	})
	require.NoError(t, err)
	assert.Zero(t, stale.AccountCount(), "old passphrase can no longer read any record")

	// The new passphrase sees the same addresses in the same order.
	rotated, err := New(Config{
		Environment:     testEnvironment(),
		AppID:           "1acd",
		StoreKey:        "test-scope",
		Store:           store,
		StorePassphrase: []byte("rotated"),
		Gateway:         newFakeGateway(),
		Codec:           testCodec(),
	})
	require.NoError(t, err)
	require.Equal(t, 2, rotated.AccountCount())
	assert.Equal(t, a1.Address(), rotated.GetAccount(0).Address())
	assert.Equal(t, a2.Address(), rotated.GetAccount(1).Address())
}

func TestRewrapWrongOldPassphraseLeavesStoreUntouched(t *testing.T) {
	store := newMemStore()
	c, err := newTestClient(newFakeGateway(), store)
	require.NoError(t, err)
	_, err = c.AddAccount()
	require.NoError(t, err)
	before := store.docs["test-scope"]

	_, err = Rewrap(store, "test-scope", []byte("not-the-pass"), []byte("rotated"), testCodec())
	require.Error(t, err)
	assert.Equal(t, before, store.docs["test-scope"], "failed rewrap must not write")
}

func TestRewrapEmptyScope(t *testing.T) {
	store := newMemStore()
	n, err := Rewrap(store, "never-written", []byte("old"), []byte("new"), testCodec())
	require.NoError(t, err)
	assert.Zero(t, n)
}
