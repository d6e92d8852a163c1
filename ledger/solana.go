package ledger

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Token account size on the ledger is fixed at 165 bytes.
const tokenAccountSize = 165

// RPCGateway implements Gateway against a Solana RPC node for one
// configured asset mint.
type RPCGateway struct {
	rpcClient *rpc.Client
	rpcURL    string
	mint      solana.PublicKey
}

// NewRPCGateway creates a gateway talking to rpcURL about the given asset
// mint address.
func NewRPCGateway(rpcURL string, mint string) (*RPCGateway, error) {
	mintPubkey, err := solana.PublicKeyFromBase58(mint)
	if err != nil {
		return nil, fmt.Errorf("invalid asset mint address: %w", err)
	}
	return &RPCGateway{
		rpcClient: rpc.New(rpcURL),
		rpcURL:    rpcURL,
		mint:      mintPubkey,
	}, nil
}

// Mint returns the configured asset mint.
func (g *RPCGateway) Mint() solana.PublicKey {
	return g.mint
}

func (g *RPCGateway) AccountState(ctx context.Context, addr solana.PublicKey) (*AccountState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lamports, err := g.rpcClient.GetBalance(ctx, addr, rpc.CommitmentConfirmed)
	if err != nil {
		return nil, fmt.Errorf("failed to get account balance: %w", err)
	}
	if lamports.Value == 0 {
		// The ledger reports unknown accounts as zero-balance; confirm
		// with an account info lookup before declaring it missing.
		info, err := g.rpcClient.GetAccountInfo(ctx, addr)
		if err != nil || info.Value == nil {
			return nil, ErrAccountNotFound
		}
	}

	state := &AccountState{
		Address:  addr,
		Lamports: lamports.Value,
	}

	ata, _, err := solana.FindAssociatedTokenAddress(addr, g.mint)
	if err != nil {
		return nil, fmt.Errorf("failed to derive token account address: %w", err)
	}
	balance, err := g.rpcClient.GetTokenAccountBalance(ctx, ata, rpc.CommitmentConfirmed)
	if err != nil {
		if isAccountMissingErr(err) {
			return state, nil
		}
		return nil, fmt.Errorf("failed to get token account balance: %w", err)
	}
	state.Activated = true
	if balance.Value != nil {
		units, err := strconv.ParseUint(balance.Value.Amount, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse token balance amount: %w", err)
		}
		state.TokenUnits = units
	}
	return state, nil
}

func (g *RPCGateway) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	if err := ctx.Err(); err != nil {
		return solana.Hash{}, err
	}
	recent, err := g.rpcClient.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Hash{}, fmt.Errorf("failed to get recent blockhash: %w", err)
	}
	return recent.Value.Blockhash, nil
}

func (g *RPCGateway) Submit(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	if err := ctx.Err(); err != nil {
		return solana.Signature{}, err
	}
	sig, err := g.rpcClient.SendTransactionWithOpts(
		ctx,
		tx,
		rpc.TransactionOpts{
			SkipPreflight:       false,
			PreflightCommitment: rpc.CommitmentFinalized,
		},
	)
	if err != nil {
		if isRejectionErr(err) {
			return solana.Signature{}, classifySubmitErr(err.Error())
		}
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}
	return sig, nil
}

func (g *RPCGateway) MinBalanceForTokenAccount(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	rentExempt, err := g.rpcClient.GetMinimumBalanceForRentExemption(
		ctx,
		tokenAccountSize,
		rpc.CommitmentFinalized,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to get rent-exempt minimum: %w", err)
	}
	return rentExempt, nil
}

// isAccountMissingErr checks if error indicates that the account doesn't exist
func isAccountMissingErr(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "could not find account") ||
		strings.Contains(errStr, "not found")
}

// isRejectionErr reports whether the node processed the submission and
// rejected it, as opposed to the request never reaching the node.
func isRejectionErr(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "transaction simulation failed") ||
		strings.Contains(errStr, "preflight") ||
		strings.Contains(errStr, "custom program error") ||
		strings.Contains(errStr, "insufficient") ||
		strings.Contains(errStr, "blockhash not found")
}
