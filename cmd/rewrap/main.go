// Maintenance tool: re-encrypt every stored account record of one scope under
// a new store passphrase. The old and new passphrases are prompted in the
// terminal; the scope document is rewritten atomically, so an interrupted run
// leaves everything readable under the old passphrase.
// Usage: go run ./cmd/rewrap
package main

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/clearmint/walletsdk/internal/config"
	"github.com/clearmint/walletsdk/internal/storage"
	"github.com/clearmint/walletsdk/wallet"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "rewrap failed:", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Init(); err != nil {
		return err
	}
	cfg := config.Get()

	oldPass, err := promptPassphrase("Enter current store passphrase: ")
	if err != nil {
		return err
	}
	defer clear(oldPass)
	newPass, err := promptPassphrase("Enter new store passphrase: ")
	if err != nil {
		return err
	}
	defer clear(newPass)
	confirm, err := promptPassphrase("Repeat new store passphrase: ")
	if err != nil {
		return err
	}
	defer clear(confirm)
	if string(newPass) != string(confirm) {
		return errors.New("new passphrases do not match")
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := wallet.Rewrap(store, cfg.StoreKey, oldPass, newPass, nil)
	if err != nil {
		return err
	}
	fmt.Printf("rewrapped %d account record(s) in scope %q\n", n, cfg.StoreKey)
	return nil
}

func promptPassphrase(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the tool interactively")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("passphrase cannot be empty")
	}
	return raw, nil
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StoreBackend {
	case "badger":
		return storage.NewBadgerStore(cfg.StoreRoot)
	default:
		return storage.NewFileStore(cfg.StoreRoot)
	}
}
