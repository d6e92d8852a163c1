package wallet

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/clearmint/walletsdk/ledger"
	"github.com/gagliardetto/solana-go"
)

// testCodec keeps the scrypt work factor tiny so tests stay fast. Record
// portability across parameter sets is not under test.
func testCodec() *BackupCodec {
	return NewBackupCodec(1 << 4)
}

// memStore is a naive in-memory storage backend.
type memStore struct {
	docs     map[string]string
	failPuts bool
	failGets bool
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[string]string)}
}

func (s *memStore) Get(scope string) (string, bool, error) {
	if s.failGets {
		return "", false, fmt.Errorf("backing storage is unreadable")
	}
	doc, ok := s.docs[scope]
	return doc, ok, nil
}

func (s *memStore) Put(scope string, doc string) error {
	if s.failPuts {
		return fmt.Errorf("backing storage is unwritable")
	}
	s.docs[scope] = doc
	return nil
}

func (s *memStore) Delete(scope string) error {
	delete(s.docs, scope)
	return nil
}

func (s *memStore) Close() error { return nil }

// fakeGateway is an in-memory ledger. Accounts are registered per test;
// Submit applies no state transitions, it only records and answers.
type fakeGateway struct {
	states     map[solana.PublicKey]*ledger.AccountState
	blockhash  solana.Hash
	submitErr  error
	submitted  []*solana.Transaction
	minBalance uint64
}

func newFakeGateway() *fakeGateway {
	var blockhash solana.Hash
	rand.Read(blockhash[:])
	return &fakeGateway{
		states:     make(map[solana.PublicKey]*ledger.AccountState),
		blockhash:  blockhash,
		minBalance: 2_039_280,
	}
}

// addAccount registers addr with the given asset opt-in state and balance.
func (g *fakeGateway) addAccount(addr solana.PublicKey, activated bool, tokenUnits uint64) {
	g.states[addr] = &ledger.AccountState{
		Address:    addr,
		Lamports:   1_000_000_000,
		TokenUnits: tokenUnits,
		Activated:  activated,
	}
}

func (g *fakeGateway) AccountState(_ context.Context, addr solana.PublicKey) (*ledger.AccountState, error) {
	state, ok := g.states[addr]
	if !ok {
		return nil, ledger.ErrAccountNotFound
	}
	return state, nil
}

func (g *fakeGateway) LatestBlockhash(context.Context) (solana.Hash, error) {
	return g.blockhash, nil
}

func (g *fakeGateway) Submit(_ context.Context, tx *solana.Transaction) (solana.Signature, error) {
	g.submitted = append(g.submitted, tx)
	if g.submitErr != nil {
		return solana.Signature{}, g.submitErr
	}
	return tx.Signatures[0], nil
}

func (g *fakeGateway) MinBalanceForTokenAccount(context.Context) (uint64, error) {
	return g.minBalance, nil
}

// testMint is an arbitrary fixed mint address for tests.
var testMint = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")

func testEnvironment() Environment {
	return Environment{
		Name:          "unit",
		NetworkURL:    "http://localhost:8899",
		AssetMint:     testMint.String(),
		AssetDecimals: 6,
	}
}

func newTestClient(gw *fakeGateway, store *memStore) (*Client, error) {
	return New(Config{
		Environment:     testEnvironment(),
		AppID:           "1acd",
		StoreKey:        "test-scope",
		Store:           store,
		StorePassphrase: []byte("store-pass"),
		Gateway:         gw,
		Codec:           testCodec(),
	})
}
