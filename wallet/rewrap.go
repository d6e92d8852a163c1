package wallet

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/clearmint/walletsdk/internal/storage"
)

// Rewrap re-encrypts every persisted record in the given store scope under a
// new passphrase. Each record is decrypted with oldPassphrase and re-encrypted
// with newPassphrase in memory first; the scope document is then rewritten in
// one write, so any failure leaves the persisted set untouched under the old
// passphrase. Returns the number of records rewrapped.
func Rewrap(store storage.Store, scope string, oldPassphrase, newPassphrase []byte, codec *BackupCodec) (int, error) {
	if len(newPassphrase) == 0 {
		return 0, fmt.Errorf("new passphrase must not be empty")
	}
	if codec == nil {
		codec = DefaultCodec()
	}

	ks := newKeyStore(store, codec, scope, oldPassphrase)
	ks.mu.Lock()
	defer ks.mu.Unlock()

	doc, err := ks.readDoc()
	if err != nil {
		return 0, err
	}
	if len(doc.Accounts) == 0 {
		return 0, nil
	}

	var faults *multierror.Error
	for i := range doc.Accounts {
		acc := &doc.Accounts[i]
		priv, err := codec.Decrypt(&acc.Record, oldPassphrase)
		if err != nil {
			faults = multierror.Append(faults, fmt.Errorf("record for %s: %w", acc.Address, err))
			continue
		}
		rec, err := codec.Encrypt(priv, newPassphrase)
		clear(priv)
		if err != nil {
			faults = multierror.Append(faults, fmt.Errorf("record for %s: %w", acc.Address, err))
			continue
		}
		acc.Record = *rec
	}
	if err := faults.ErrorOrNil(); err != nil {
		return 0, err
	}

	if err := ks.writeDoc(doc); err != nil {
		return 0, err
	}
	return len(doc.Accounts), nil
}
