// Package oracle provides read-only balance and price lookups. Oracles only
// return values; they never mutate wallet state, so callers may fan them out.
package oracle

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/jongan69/volume-bot/internal/solana"
)

// Holding is a wallet's position in one token.
type Holding struct {
	Mint     string
	Raw      uint64
	Decimals uint8
	// Amount is the human-readable quantity, raw / 10^decimals.
	Amount float64
}

// BalanceSource reads wallet balances from the chain.
type BalanceSource interface {
	// SOLBalance returns the owner's native balance in SOL.
	SOLBalance(ctx context.Context, owner string) (float64, error)

	// TokenHolding returns the owner's holding of mint. A missing token
	// account is a zero holding, not an error.
	TokenHolding(ctx context.Context, owner, mint string) (*Holding, error)

	// Holdings fetches several holdings concurrently.
	Holdings(ctx context.Context, owner string, mints []string) (map[string]*Holding, error)
}

// holdingsFetchLimit bounds concurrent RPC lookups in Holdings.
const holdingsFetchLimit = 4

// Balances implements BalanceSource over the node RPC client.
type Balances struct {
	rpc    solana.RPCClient
	logger *log.Logger
}

// NewBalances creates a Balance Oracle.
func NewBalances(rpc solana.RPCClient, logger *log.Logger) *Balances {
	return &Balances{rpc: rpc, logger: logger}
}

// SOLBalance returns the owner's native balance in SOL.
func (b *Balances) SOLBalance(ctx context.Context, owner string) (float64, error) {
	lamports, err := b.rpc.GetBalance(ctx, owner)
	if err != nil {
		return 0, err
	}
	return solana.ToHuman(lamports, solana.SOLDecimals), nil
}

// TokenHolding returns the owner's holding of mint, read from the associated
// token account.
func (b *Balances) TokenHolding(ctx context.Context, owner, mint string) (*Holding, error) {
	ata, err := solana.AssociatedTokenAddress(owner, mint, solana.TokenProgramID)
	if err != nil {
		return nil, err
	}

	amount, err := b.rpc.GetParsedTokenAccount(ctx, ata)
	if err != nil {
		return nil, err
	}
	if amount == nil {
		// Account not created yet: zero holding.
		return &Holding{Mint: mint}, nil
	}

	return &Holding{
		Mint:     mint,
		Raw:      amount.Raw,
		Decimals: amount.Decimals,
		Amount:   solana.ToHuman(amount.Raw, amount.Decimals),
	}, nil
}

// Holdings fetches the owner's holdings for all mints with bounded
// concurrency.
func (b *Balances) Holdings(ctx context.Context, owner string, mints []string) (map[string]*Holding, error) {
	results := make([]*Holding, len(mints))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(holdingsFetchLimit)
	for i, mint := range mints {
		g.Go(func() error {
			h, err := b.TokenHolding(gctx, owner, mint)
			if err != nil {
				return err
			}
			results[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	holdings := make(map[string]*Holding, len(mints))
	for i, mint := range mints {
		holdings[mint] = results[i]
	}
	return holdings, nil
}
