package wallet

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// KeyPair is a public ledger address with an optional private signing key.
// Watch-only pairs carry no private key and cannot sign. Immutable once
// constructed; persisted copies exist only inside encrypted store records.
type KeyPair struct {
	pub  solana.PublicKey
	priv solana.PrivateKey
}

func newKeyPair() KeyPair {
	w := solana.NewWallet()
	return KeyPair{pub: w.PublicKey(), priv: w.PrivateKey}
}

func keyPairFromPrivate(priv solana.PrivateKey) (KeyPair, error) {
	if len(priv) != 64 {
		return KeyPair{}, fmt.Errorf("invalid private key length: expected 64 bytes, got %d", len(priv))
	}
	return KeyPair{pub: priv.PublicKey(), priv: priv}, nil
}

// WatchOnlyKeyPair wraps a bare public address.
func WatchOnlyKeyPair(address string) (KeyPair, error) {
	pub, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return KeyPair{}, &InvalidAddressError{Address: address, cause: err}
	}
	return KeyPair{pub: pub}, nil
}

// Address returns the base58 public address.
func (k KeyPair) Address() string {
	return k.pub.String()
}

// CanSign reports whether the pair carries a private key.
func (k KeyPair) CanSign() bool {
	return k.priv != nil
}

func (k KeyPair) publicKey() solana.PublicKey {
	return k.pub
}

// privateKey returns the signing key, nil for watch-only pairs. Callers
// must not retain the slice past the operation they need it for.
func (k KeyPair) privateKey() solana.PrivateKey {
	return k.priv
}
