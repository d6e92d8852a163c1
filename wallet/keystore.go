package wallet

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/clearmint/walletsdk/internal/storage"
	"github.com/gagliardetto/solana-go"
)

// storeDocVersion versions the persisted per-scope document, independent
// of the backup record format.
const storeDocVersion = 1

// storeDoc is the JSON document persisted per store scope: the full
// ordered account set. Written as a whole on every mutation, which keeps
// each mutation all-or-nothing on top of the backend's atomic Put.
type storeDoc struct {
	Version  int            `json:"version"`
	Accounts []storeAccount `json:"accounts"`
}

type storeAccount struct {
	Address string       `json:"address"`
	Record  BackupRecord `json:"record"`
}

// scopeLocks serializes access per scope name, not per keyStore instance.
// Scope documents are read-modify-written as a whole, so two keyStores over
// the same scope must share one mutex or interleaved mutations could lose
// records.
var scopeLocks sync.Map // scope string -> *sync.Mutex

func lockForScope(scope string) *sync.Mutex {
	mu, _ := scopeLocks.LoadOrStore(scope, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// keyStore persists key pairs encrypted at rest. Private keys pass through
// the backup codec on every write; nothing is ever persisted in plaintext.
// All operations on a scope are serialized by the scope's shared mutex, so
// two goroutines mutating the same scope cannot lose each other's records.
type keyStore struct {
	mu         *sync.Mutex
	store      storage.Store
	codec      *BackupCodec
	scope      string
	passphrase []byte // store-internal protection for records at rest
}

func newKeyStore(store storage.Store, codec *BackupCodec, scope string, passphrase []byte) *keyStore {
	own := make([]byte, len(passphrase))
	copy(own, passphrase)
	return &keyStore{
		mu:         lockForScope(scope),
		store:      store,
		codec:      codec,
		scope:      scope,
		passphrase: own,
	}
}

// newAccount generates a fresh key pair, persists it encrypted, and
// returns it. On any failure the persisted document is untouched.
func (ks *keyStore) newAccount() (KeyPair, error) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	doc, err := ks.readDoc()
	if err != nil {
		return KeyPair{}, &CreateAccountError{cause: err}
	}

	pair := newKeyPair()
	rec, err := ks.codec.Encrypt(pair.privateKey(), ks.passphrase)
	if err != nil {
		return KeyPair{}, &CreateAccountError{cause: err}
	}
	doc.Accounts = append(doc.Accounts, storeAccount{Address: pair.Address(), Record: *rec})

	if err := ks.writeDoc(doc); err != nil {
		return KeyPair{}, &CreateAccountError{cause: err}
	}
	return pair, nil
}

// loadAccounts returns every persisted key pair in persisted order, or an
// empty slice when the scope was never written.
func (ks *keyStore) loadAccounts() ([]KeyPair, error) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	doc, err := ks.readDoc()
	if err != nil {
		return nil, &LoadAccountError{cause: err}
	}
	pairs := make([]KeyPair, 0, len(doc.Accounts))
	for _, acc := range doc.Accounts {
		priv, err := ks.codec.Decrypt(&acc.Record, ks.passphrase)
		if err != nil {
			return nil, &LoadAccountError{cause: fmt.Errorf("record for %s: %w", acc.Address, err)}
		}
		pair, err := keyPairFromPrivate(solana.PrivateKey(priv))
		if err != nil {
			return nil, &LoadAccountError{cause: fmt.Errorf("record for %s: %w", acc.Address, err)}
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

// loadAddresses returns the persisted addresses in order without touching
// any key material. Reconciliation runs on this, so routine list accessors
// never pay the record KDF.
func (ks *keyStore) loadAddresses() ([]string, error) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	doc, err := ks.readDoc()
	if err != nil {
		return nil, &LoadAccountError{cause: err}
	}
	addrs := make([]string, 0, len(doc.Accounts))
	for _, acc := range doc.Accounts {
		addrs = append(addrs, acc.Address)
	}
	return addrs, nil
}

// loadAccount decrypts and returns the single key pair persisted for
// address.
func (ks *keyStore) loadAccount(address string) (KeyPair, error) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	doc, err := ks.readDoc()
	if err != nil {
		return KeyPair{}, &LoadAccountError{cause: err}
	}
	for _, acc := range doc.Accounts {
		if acc.Address != address {
			continue
		}
		priv, err := ks.codec.Decrypt(&acc.Record, ks.passphrase)
		if err != nil {
			return KeyPair{}, &LoadAccountError{cause: fmt.Errorf("record for %s: %w", acc.Address, err)}
		}
		pair, err := keyPairFromPrivate(solana.PrivateKey(priv))
		if err != nil {
			return KeyPair{}, &LoadAccountError{cause: fmt.Errorf("record for %s: %w", acc.Address, err)}
		}
		return pair, nil
	}
	return KeyPair{}, &AccountNotFoundError{Address: address}
}

// importAccount decodes an exported record with the user's passphrase and
// persists the key pair, unless the address is already stored in this
// scope. Idempotent per address.
func (ks *keyStore) importAccount(exported string, passphrase []byte) (KeyPair, error) {
	rec, err := ParseBackupRecord(exported)
	if err != nil {
		return KeyPair{}, err
	}
	priv, err := ks.codec.Decrypt(rec, passphrase)
	if err != nil {
		return KeyPair{}, err
	}
	defer clear(priv)
	pair, err := keyPairFromPrivate(solana.PrivateKey(priv))
	if err != nil {
		return KeyPair{}, &CryptoError{cause: err}
	}

	ks.mu.Lock()
	defer ks.mu.Unlock()

	doc, err := ks.readDoc()
	if err != nil {
		return KeyPair{}, &CreateAccountError{cause: err}
	}
	for _, acc := range doc.Accounts {
		if acc.Address == pair.Address() {
			return pair, nil
		}
	}

	stored, err := ks.codec.Encrypt(pair.privateKey(), ks.passphrase)
	if err != nil {
		return KeyPair{}, &CreateAccountError{cause: err}
	}
	doc.Accounts = append(doc.Accounts, storeAccount{Address: pair.Address(), Record: *stored})
	if err := ks.writeDoc(doc); err != nil {
		return KeyPair{}, &CreateAccountError{cause: err}
	}
	return pair, nil
}

// exportAccount re-encrypts the stored private key of address under the
// user's passphrase and returns the portable record.
func (ks *keyStore) exportAccount(address string, passphrase []byte) (string, error) {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	doc, err := ks.readDoc()
	if err != nil {
		return "", opFailed(err)
	}
	for _, acc := range doc.Accounts {
		if acc.Address != address {
			continue
		}
		priv, err := ks.codec.Decrypt(&acc.Record, ks.passphrase)
		if err != nil {
			return "", err
		}
		rec, err := ks.codec.Encrypt(priv, passphrase)
		clear(priv)
		if err != nil {
			return "", opFailed(err)
		}
		return rec.Marshal()
	}
	return "", &AccountNotFoundError{Address: address}
}

// deleteAccount removes the persisted record for address. No error when
// the address is already absent.
func (ks *keyStore) deleteAccount(address string) error {
	ks.mu.Lock()
	defer ks.mu.Unlock()

	doc, err := ks.readDoc()
	if err != nil {
		return &DeleteAccountError{cause: err}
	}
	kept := doc.Accounts[:0]
	for _, acc := range doc.Accounts {
		if acc.Address != address {
			kept = append(kept, acc)
		}
	}
	if len(kept) == len(doc.Accounts) {
		return nil
	}
	doc.Accounts = kept
	if err := ks.writeDoc(doc); err != nil {
		return &DeleteAccountError{cause: err}
	}
	return nil
}

// clearAllAccounts removes every persisted record in this scope.
func (ks *keyStore) clearAllAccounts() error {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	if err := ks.store.Delete(ks.scope); err != nil {
		return &DeleteAccountError{cause: err}
	}
	return nil
}

func (ks *keyStore) readDoc() (*storeDoc, error) {
	raw, ok, err := ks.store.Get(ks.scope)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &storeDoc{Version: storeDocVersion}, nil
	}
	var doc storeDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("scope document is corrupted: %w", err)
	}
	if doc.Version != storeDocVersion {
		return nil, fmt.Errorf("unsupported scope document version %d", doc.Version)
	}
	return &doc, nil
}

func (ks *keyStore) writeDoc(doc *storeDoc) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal scope document: %w", err)
	}
	return ks.store.Put(ks.scope, string(raw))
}
