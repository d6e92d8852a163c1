// Package wallet is a client-side account and transaction manager for a
// ledger-backed asset. It keeps locally-custodied key pairs encrypted at
// rest, builds and signs payments against a remote ledger, and supports
// passphrase-protected export and import of account key material.
package wallet

import (
	"context"
	"fmt"
	"regexp"

	"github.com/clearmint/walletsdk/internal/storage"
	"github.com/clearmint/walletsdk/ledger"
	"github.com/rs/zerolog"
)

var appIDPattern = regexp.MustCompile(`^[a-zA-Z0-9]{3,4}$`)

// Config carries everything a Client needs. Environment, AppID, Store and
// StorePassphrase are required; the rest have defaults.
type Config struct {
	// Environment selects the ledger network and asset.
	Environment Environment
	// AppID is a 3-4 character alphanumeric tag added to every
	// transaction memo. Empty is tolerated with a warning.
	AppID string
	// StoreKey selects which persisted key set to use. Distinct keys are
	// fully isolated account sets on the same Store.
	StoreKey string
	// Store is the persistence backend for encrypted key material.
	Store storage.Store
	// StorePassphrase protects records at rest. Must not be empty.
	// Treated as secret; the Client keeps its own copy.
	StorePassphrase []byte
	// Gateway overrides the ledger gateway. Defaults to an RPC gateway
	// for the environment.
	Gateway ledger.Gateway
	// Codec overrides the backup codec. Defaults to production
	// parameters.
	Codec *BackupCodec
	// Logger receives non-fatal diagnostics. Defaults to a disabled
	// logger.
	Logger zerolog.Logger
}

// Client manages the accounts of one store scope: it reconciles a live
// in-memory account list against persisted key material and hands out
// per-account handles.
//
// A Client is not safe for concurrent use; the key store underneath it
// serializes its own persistence, but list operations must be called from
// one goroutine at a time.
type Client struct {
	env       Environment
	appID     string
	storeKey  string
	keyStore  *keyStore
	sender    *transactionSender
	activator *accountActivator
	gateway   ledger.Gateway
	log       zerolog.Logger
	accounts  []*Account
}

// New builds a Client from cfg. The persisted account set is loaded
// immediately; an unreadable store is logged and treated as empty rather
// than failing construction.
func New(cfg Config) (*Client, error) {
	if err := cfg.Environment.validate(); err != nil {
		return nil, err
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("config store must not be nil")
	}
	if len(cfg.StorePassphrase) == 0 {
		return nil, fmt.Errorf("config store passphrase must not be empty")
	}
	log := cfg.Logger
	if cfg.AppID == "" {
		log.Warn().Msg("client created without an application ID; transactions will carry an empty app-id tag")
	} else if !appIDPattern.MatchString(cfg.AppID) {
		return nil, fmt.Errorf("appId must contain only upper and/or lower case letters and/or digits and the total length must be 3 or 4, for example 1234 or 2ab3 or fqa")
	}

	gateway := cfg.Gateway
	if gateway == nil {
		g, err := ledger.NewRPCGateway(cfg.Environment.NetworkURL, cfg.Environment.AssetMint)
		if err != nil {
			return nil, err
		}
		gateway = g
	}
	codec := cfg.Codec
	if codec == nil {
		codec = DefaultCodec()
	}

	mint := cfg.Environment.mint()
	c := &Client{
		env:       cfg.Environment,
		appID:     cfg.AppID,
		storeKey:  cfg.StoreKey,
		keyStore:  newKeyStore(cfg.Store, codec, cfg.StoreKey, cfg.StorePassphrase),
		sender:    newTransactionSender(gateway, mint, cfg.Environment.AssetDecimals, cfg.AppID),
		activator: newAccountActivator(gateway, mint),
		gateway:   gateway,
		log:       log,
	}
	c.loadAccounts()
	return c, nil
}

// AddAccount creates a new account, persists it encrypted, and returns
// its live handle.
func (c *Client) AddAccount() (*Account, error) {
	pair, err := c.keyStore.newAccount()
	if err != nil {
		return nil, err
	}
	return c.appendAccount(pair), nil
}

// ImportAccount restores an account from an exported backup record. When
// the decoded address already has a live handle that handle is returned
// unchanged, so importing the same record twice cannot duplicate an
// account.
// passphrase must be []byte for security (caller should zero it after use).
func (c *Client) ImportAccount(exported string, passphrase []byte) (*Account, error) {
	pair, err := c.keyStore.importAccount(exported, passphrase)
	if err != nil {
		return nil, err
	}
	c.loadAccounts()
	for _, acc := range c.accounts {
		if acc.Address() == pair.Address() {
			return acc, nil
		}
	}
	return c.appendAccount(pair), nil
}

// GetAccount reconciles against persisted storage and returns the handle
// at index, or nil when no such account exists.
func (c *Client) GetAccount(index int) *Account {
	c.loadAccounts()
	if index >= 0 && index < len(c.accounts) {
		return c.accounts[index]
	}
	return nil
}

// Accounts reconciles against persisted storage once and returns the
// current handles in persisted order. The returned slice is a snapshot.
func (c *Client) Accounts() []*Account {
	c.loadAccounts()
	return append([]*Account(nil), c.accounts...)
}

// HasAccount reports whether at least one account exists.
func (c *Client) HasAccount() bool {
	return c.AccountCount() != 0
}

// AccountCount returns the number of existing accounts.
func (c *Client) AccountCount() int {
	c.loadAccounts()
	return len(c.accounts)
}

// DeleteAccount removes the account at index from persistence and
// transitions its handle to the deleted state. It returns false, without
// touching anything, when no account exists at index.
func (c *Client) DeleteAccount(index int) (bool, error) {
	c.loadAccounts()
	if index < 0 || index >= len(c.accounts) {
		return false, nil
	}
	doomed := c.accounts[index]
	if err := c.keyStore.deleteAccount(doomed.Address()); err != nil {
		return false, err
	}
	c.accounts = append(c.accounts[:index], c.accounts[index+1:]...)
	doomed.markDeleted()
	return true, nil
}

// ClearAllAccounts deletes every account in this client's scope. All live
// handles become permanently inert.
func (c *Client) ClearAllAccounts() error {
	if err := c.keyStore.clearAllAccounts(); err != nil {
		return err
	}
	for _, acc := range c.accounts {
		acc.markDeleted()
	}
	c.accounts = nil
	return nil
}

// MinimumBalance returns the smallest balance, as a lamport count, the
// ledger requires to keep an activated account alive.
func (c *Client) MinimumBalance(ctx context.Context) (uint64, error) {
	minBalance, err := c.gateway.MinBalanceForTokenAccount(ctx)
	if err != nil {
		return 0, opFailed(err)
	}
	return minBalance, nil
}

// Environment returns the environment the client was built with.
func (c *Client) Environment() Environment { return c.env }

// AppID returns the configured application id.
func (c *Client) AppID() string { return c.appID }

// StoreKey returns the scope key of the underlying store.
func (c *Client) StoreKey() string { return c.storeKey }

// loadAccounts reconciles the live list against persisted storage. Load
// faults are non-fatal: the previous list is kept and the fault logged.
func (c *Client) loadAccounts() {
	addrs, err := c.keyStore.loadAddresses()
	if err != nil {
		c.log.Warn().Err(err).Msg("failed to load persisted accounts; keeping current account list")
		return
	}
	c.updateAccounts(addrs)
}

// updateAccounts rebuilds the live list in persisted order, reusing the
// existing handle for every address that already has one. Handles held by
// callers therefore survive reconciliation, and only genuinely new
// addresses pay a record decryption; a handle's key pair is never decrypted
// twice.
func (c *Client) updateAccounts(addrs []string) {
	byAddress := make(map[string]*Account, len(c.accounts))
	for _, acc := range c.accounts {
		byAddress[acc.Address()] = acc
	}
	next := make([]*Account, 0, len(addrs))
	for _, addr := range addrs {
		if acc, ok := byAddress[addr]; ok {
			next = append(next, acc)
			continue
		}
		pair, err := c.keyStore.loadAccount(addr)
		if err != nil {
			c.log.Warn().Err(err).Msg("failed to load persisted account; keeping current account list")
			return
		}
		next = append(next, c.newAccountHandle(pair))
	}
	c.accounts = next
}

func (c *Client) appendAccount(pair KeyPair) *Account {
	acc := c.newAccountHandle(pair)
	c.accounts = append(c.accounts, acc)
	return acc
}

func (c *Client) newAccountHandle(pair KeyPair) *Account {
	return newAccount(pair, c.keyStore, c.sender, c.activator, c.env.AssetDecimals)
}
