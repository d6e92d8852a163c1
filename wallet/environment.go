package wallet

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// usdcMintMainnet is the USDC mint on mainnet (does not exist on devnet/testnet)
const usdcMintMainnet = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"

// Environment describes which ledger network the wallet operates on and
// what "the asset" means there. Immutable, supplied at client construction.
type Environment struct {
	// Name is a human-readable network label ("mainnet", "testnet", ...).
	Name string
	// NetworkURL is the RPC endpoint of the ledger.
	NetworkURL string
	// AssetMint is the base58 mint address of the asset this wallet holds.
	AssetMint string
	// AssetDecimals is the number of base-unit decimals of the asset.
	AssetDecimals int
}

// MainNet is the production environment, configured for USDC like the
// public endpoint defaults.
var MainNet = Environment{
	Name:          "mainnet",
	NetworkURL:    "https://api.mainnet-beta.solana.com",
	AssetMint:     usdcMintMainnet,
	AssetDecimals: 6,
}

// TestNet points at devnet; the asset mint must be supplied by the caller
// since test assets are created per project.
var TestNet = Environment{
	Name:          "testnet",
	NetworkURL:    "https://api.devnet.solana.com",
	AssetDecimals: 6,
}

func (e Environment) validate() error {
	if e.NetworkURL == "" {
		return fmt.Errorf("environment network URL must not be empty")
	}
	if _, err := solana.PublicKeyFromBase58(e.AssetMint); err != nil {
		return fmt.Errorf("environment asset mint is not a valid address: %w", err)
	}
	if e.AssetDecimals < 0 || e.AssetDecimals > 18 {
		return fmt.Errorf("environment asset decimals out of range: %d", e.AssetDecimals)
	}
	return nil
}

func (e Environment) mint() solana.PublicKey {
	return solana.MustPublicKeyFromBase58(e.AssetMint)
}
