package wallet

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestKeyStore(store *memStore, scope string) *keyStore {
	return newKeyStore(store, testCodec(), scope, []byte("store-pass"))
}

func TestKeyStoreNewAndLoad(t *testing.T) {
	ks := newTestKeyStore(newMemStore(), "scope")

	first, err := ks.newAccount()
	require.NoError(t, err)
	second, err := ks.newAccount()
	require.NoError(t, err)

	pairs, err := ks.loadAccounts()
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, first.Address(), pairs[0].Address())
	assert.Equal(t, second.Address(), pairs[1].Address())
	assert.True(t, pairs[0].CanSign())
}

func TestKeyStoreNeverPersistsPlaintext(t *testing.T) {
	store := newMemStore()
	ks := newTestKeyStore(store, "scope")

	pair, err := ks.newAccount()
	require.NoError(t, err)

	doc := store.docs["scope"]
	// The base58 private key must not appear anywhere in the persisted
	// document; only the address may.
	assert.NotContains(t, doc, pair.privateKey().String())
	assert.Contains(t, doc, pair.Address())
}

func TestKeyStoreNewAccountStorageFault(t *testing.T) {
	store := newMemStore()
	ks := newTestKeyStore(store, "scope")
	store.failPuts = true

	_, err := ks.newAccount()
	var createErr *CreateAccountError
	require.ErrorAs(t, err, &createErr)

	// All-or-nothing: the failed create left no record behind.
	store.failPuts = false
	pairs, err := ks.loadAccounts()
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestKeyStoreLoadFault(t *testing.T) {
	store := newMemStore()
	ks := newTestKeyStore(store, "scope")
	store.failGets = true

	_, err := ks.loadAccounts()
	var loadErr *LoadAccountError
	assert.ErrorAs(t, err, &loadErr)
}

func TestKeyStoreExportImport(t *testing.T) {
	ks := newTestKeyStore(newMemStore(), "scope")
	pair, err := ks.newAccount()
	require.NoError(t, err)

	exported, err := ks.exportAccount(pair.Address(), []byte("pw1"))
	require.NoError(t, err)

	// Import into a different scope restores the same address.
	other := newTestKeyStore(newMemStore(), "other")
	imported, err := other.importAccount(exported, []byte("pw1"))
	require.NoError(t, err)
	assert.Equal(t, pair.Address(), imported.Address())

	pairs, err := other.loadAccounts()
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, pair.Address(), pairs[0].Address())
}

func TestKeyStoreImportWrongPassphrase(t *testing.T) {
	ks := newTestKeyStore(newMemStore(), "scope")
	pair, err := ks.newAccount()
	require.NoError(t, err)
	exported, err := ks.exportAccount(pair.Address(), []byte("pw1"))
	require.NoError(t, err)

	_, err = ks.importAccount(exported, []byte("pw2"))
	var cryptoErr *CryptoError
	assert.ErrorAs(t, err, &cryptoErr)
}

func TestKeyStoreImportMalformedRecord(t *testing.T) {
	ks := newTestKeyStore(newMemStore(), "scope")
	_, err := ks.importAccount("definitely not a record", []byte("pw"))
	var corrupted *CorruptedDataError
	assert.ErrorAs(t, err, &corrupted)
}

func TestKeyStoreImportExistingAddressSkipsPersist(t *testing.T) {
	store := newMemStore()
	ks := newTestKeyStore(store, "scope")
	pair, err := ks.newAccount()
	require.NoError(t, err)
	exported, err := ks.exportAccount(pair.Address(), []byte("pw1"))
	require.NoError(t, err)

	before := store.docs["scope"]
	imported, err := ks.importAccount(exported, []byte("pw1"))
	require.NoError(t, err)
	assert.Equal(t, pair.Address(), imported.Address())
	assert.Equal(t, before, store.docs["scope"], "existing address must not be re-persisted")
}

func TestKeyStoreExportUnknownAddress(t *testing.T) {
	ks := newTestKeyStore(newMemStore(), "scope")
	_, err := ks.exportAccount("nope", []byte("pw"))
	var notFound *AccountNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestKeyStoreDeleteIsIdempotent(t *testing.T) {
	ks := newTestKeyStore(newMemStore(), "scope")
	pair, err := ks.newAccount()
	require.NoError(t, err)

	require.NoError(t, ks.deleteAccount(pair.Address()))
	require.NoError(t, ks.deleteAccount(pair.Address()))

	pairs, err := ks.loadAccounts()
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestKeyStoreClearAll(t *testing.T) {
	ks := newTestKeyStore(newMemStore(), "scope")
	_, err := ks.newAccount()
	require.NoError(t, err)
	_, err = ks.newAccount()
	require.NoError(t, err)

	require.NoError(t, ks.clearAllAccounts())
	pairs, err := ks.loadAccounts()
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestKeyStoreScopesAreIsolated(t *testing.T) {
	store := newMemStore()
	a := newTestKeyStore(store, "scope-a")
	b := newTestKeyStore(store, "scope-b")

	pairA, err := a.newAccount()
	require.NoError(t, err)

	pairsB, err := b.loadAccounts()
	require.NoError(t, err)
	assert.Empty(t, pairsB)

	require.NoError(t, b.clearAllAccounts())
	pairsA, err := a.loadAccounts()
	require.NoError(t, err)
	require.Len(t, pairsA, 1)
	assert.Equal(t, pairA.Address(), pairsA[0].Address())
}

func TestKeyStoreLoadAccountUnknownAddress(t *testing.T) {
	ks := newTestKeyStore(newMemStore(), "scope")
	_, err := ks.loadAccount("nope")
	var notFound *AccountNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

// Two keyStores over the same scope share one lock, so concurrent creates
// from separate clients cannot lose records to interleaved whole-document
// writes.
func TestKeyStoresSharingScopeSerialize(t *testing.T) {
	store := newMemStore()
	a := newTestKeyStore(store, "shared-scope")
	b := newTestKeyStore(store, "shared-scope")

	var wg sync.WaitGroup
	for _, ks := range []*keyStore{a, b} {
		wg.Add(1)
		go func(ks *keyStore) {
			defer wg.Done()
			for i := 0; i < 4; i++ {
				_, err := ks.newAccount()
				assert.NoError(t, err)
			}
		}(ks)
	}
	wg.Wait()

	addrs, err := a.loadAddresses()
	require.NoError(t, err)
	assert.Len(t, addrs, 8)
}
