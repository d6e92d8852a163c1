package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	_ "github.com/clearmint/walletsdk/docs"
	"github.com/clearmint/walletsdk/internal/api"
	"github.com/clearmint/walletsdk/internal/config"
	"github.com/clearmint/walletsdk/internal/handler"
	"github.com/clearmint/walletsdk/internal/storage"
	"github.com/clearmint/walletsdk/wallet"
)

// @title        Wallet SDK API
// @version      1.0
// @description  HTTP facade over the ledger-backed asset wallet
// @BasePath     /
func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := run(log); err != nil {
		log.Fatal().Err(err).Msg("walletd exited")
	}
}

func run(log zerolog.Logger) error {
	if err := config.Init(); err != nil {
		return err
	}
	cfg := config.Get()

	if err := config.PromptForPassphrase(); err != nil {
		return err
	}
	passphrase, err := config.GetStorePassphrase()
	if err != nil {
		return err
	}
	defer clear(passphrase)

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	client, err := wallet.New(wallet.Config{
		Environment: wallet.Environment{
			Name:          cfg.NetworkName,
			NetworkURL:    cfg.RPCURL,
			AssetMint:     cfg.AssetMint,
			AssetDecimals: cfg.AssetDecimals,
		},
		AppID:           cfg.AppID,
		StoreKey:        cfg.StoreKey,
		Store:           store,
		StorePassphrase: passphrase,
		Logger:          log,
	})
	if err != nil {
		return fmt.Errorf("failed to create wallet client: %w", err)
	}

	router := api.SetupRouter(handler.NewWalletHandler(client, log))

	log.Info().
		Str("port", cfg.Port).
		Str("network", cfg.NetworkName).
		Str("backend", cfg.StoreBackend).
		Msg("walletd listening")
	return http.ListenAndServe(":"+cfg.Port, router)
}

func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.StoreBackend {
	case "badger":
		return storage.NewBadgerStore(cfg.StoreRoot)
	default:
		return storage.NewFileStore(cfg.StoreRoot)
	}
}
