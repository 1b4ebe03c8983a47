// Package guard enforces wallet balance preconditions around swap execution.
// Guarded calls never return an error; they log and report a boolean so the
// trading loop can move on to the next token.
package guard

import (
	"context"
	"log"

	"github.com/jongan69/volume-bot/internal/oracle"
	"github.com/jongan69/volume-bot/internal/swap"
)

// SwapExecutor executes one swap and returns its transaction signature.
type SwapExecutor interface {
	Execute(ctx context.Context, mint string, amount float64, side swap.Side) (string, error)
}

// Guard wraps a SwapExecutor with balance prechecks.
type Guard struct {
	owner    string
	executor SwapExecutor
	balances oracle.BalanceSource
	prices   oracle.PriceSource
	logger   *log.Logger
}

// New creates a Guard checking balances of the owner wallet address.
func New(owner string, executor SwapExecutor, balances oracle.BalanceSource, prices oracle.PriceSource, logger *log.Logger) *Guard {
	return &Guard{
		owner:    owner,
		executor: executor,
		balances: balances,
		prices:   prices,
		logger:   logger,
	}
}

// GuardedSell sells amount token units after verifying the wallet actually
// holds that much. Returns true only when the swap confirmed.
func (g *Guard) GuardedSell(ctx context.Context, mint string, amount float64) bool {
	if amount <= 0 {
		g.logger.Printf("sell %s skipped: non-positive amount %v", mint, amount)
		return false
	}

	holding, err := g.balances.TokenHolding(ctx, g.owner, mint)
	if err != nil {
		g.logger.Printf("sell %s skipped: holding lookup failed: %v", mint, err)
		return false
	}
	if holding.Amount < amount {
		g.logger.Printf("sell %s skipped: hold %v, requested %v", mint, holding.Amount, amount)
		return false
	}

	sig, err := g.executor.Execute(ctx, mint, amount, swap.Sell)
	if err != nil {
		g.logger.Printf("sell %s failed: %v", mint, err)
		return false
	}

	// Value logging is best effort; a missing price never fails the trade.
	if price, ok := g.prices.Price(ctx, mint); ok {
		g.logger.Printf("sold %v %s for ~%v SOL: %s", amount, mint, amount*price, sig)
	} else {
		g.logger.Printf("sold %v %s: %s", amount, mint, sig)
	}
	return true
}

// GuardedBuy spends amount SOL on the token after verifying the wallet can
// cover the spend. Returns true only when the swap confirmed.
func (g *Guard) GuardedBuy(ctx context.Context, mint string, amount float64) bool {
	if amount <= 0 {
		g.logger.Printf("buy %s skipped: non-positive amount %v", mint, amount)
		return false
	}

	balance, err := g.balances.SOLBalance(ctx, g.owner)
	if err != nil {
		g.logger.Printf("buy %s skipped: balance lookup failed: %v", mint, err)
		return false
	}
	if balance < amount {
		g.logger.Printf("buy %s skipped: balance %v SOL below spend %v SOL", mint, balance, amount)
		return false
	}

	sig, err := g.executor.Execute(ctx, mint, amount, swap.Buy)
	if err != nil {
		g.logger.Printf("buy %s failed: %v", mint, err)
		return false
	}
	g.logger.Printf("bought %s for %v SOL: %s", mint, amount, sig)
	return true
}
