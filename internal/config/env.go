package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: the store passphrase is prompted at runtime and stored in memory,
// use GetStorePassphrase().
type Config struct {
	Port          string `envconfig:"PORT" default:"8080"`
	StoreBackend  string `envconfig:"STORE_BACKEND" default:"file"` // "file" or "badger"
	StoreRoot     string `envconfig:"STORE_ROOT" required:"true"`
	StoreKey      string `envconfig:"STORE_KEY" default:"default"`
	NetworkName   string `envconfig:"NETWORK_NAME" default:"mainnet"`
	RPCURL        string `envconfig:"RPC_URL" default:"https://api.mainnet-beta.solana.com"`
	AssetMint     string `envconfig:"ASSET_MINT" default:"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"`
	AssetDecimals int    `envconfig:"ASSET_DECIMALS" default:"6"`
	AppID         string `envconfig:"APP_ID"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	cfg = &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if cfg.StoreBackend != "file" && cfg.StoreBackend != "badger" {
		return fmt.Errorf("STORE_BACKEND must be \"file\" or \"badger\", got %q", cfg.StoreBackend)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

var passphraseBytes []byte

// PromptForPassphrase prompts the user for the store passphrase in the
// terminal. The passphrase is read without echoing (hidden input) and stored
// in memory. Call this at startup before the server begins handling requests.
func PromptForPassphrase() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal: run the app interactively to enter the passphrase")
	}
	fmt.Fprint(os.Stderr, "Enter store passphrase: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read passphrase: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("passphrase cannot be empty")
	}

	passphraseBytes = make([]byte, len(raw))
	copy(passphraseBytes, raw)
	clear(raw)
	return nil
}

// GetStorePassphrase returns the passphrase stored in memory (from
// PromptForPassphrase). Returns an error if the passphrase was not set.
// Caller must zero the returned slice after use for security.
func GetStorePassphrase() ([]byte, error) {
	if len(passphraseBytes) == 0 {
		return nil, errors.New("passphrase not set: call PromptForPassphrase at startup")
	}
	out := make([]byte, len(passphraseBytes))
	copy(out, passphraseBytes)
	return out, nil
}
