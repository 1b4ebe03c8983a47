// Package volume runs the top-level trading scheduler: a fixed-cadence loop
// that cycles buys and sells per configured token and periodically liquidates
// all positions.
package volume

import (
	"context"
	"log"
	"time"

	"github.com/jongan69/volume-bot/internal/config"
	"github.com/jongan69/volume-bot/internal/oracle"
)

// Trader is the guarded trading surface the loop drives. Both calls report
// success as a boolean; a false is logged by the trader and never stops the
// loop.
type Trader interface {
	GuardedBuy(ctx context.Context, mint string, amount float64) bool
	GuardedSell(ctx context.Context, mint string, amount float64) bool
}

// Options configures a Loop.
type Options struct {
	Owner    string
	Tokens   []config.Token
	Trader   Trader
	Balances oracle.BalanceSource
	Prices   oracle.PriceSource
	Logger   *log.Logger

	// Interval is the wait between passes.
	Interval time.Duration
	// ResetThreshold is the pass count after which all positions are
	// liquidated and the counter restarts.
	ResetThreshold int
	// FeeReserveSOL is kept on top of each buy to cover fees and rent.
	FeeReserveSOL float64
}

// Loop is the volume trading scheduler. Passes run strictly sequentially;
// wallet balances are re-read from the chain at every decision point, so the
// loop carries no state beyond the pass counter.
type Loop struct {
	owner    string
	tokens   []config.Token
	trader   Trader
	balances oracle.BalanceSource
	prices   oracle.PriceSource
	logger   *log.Logger

	interval       time.Duration
	resetThreshold int
	feeReserve     float64

	iteration int
}

// New creates a Loop.
func New(opts Options) *Loop {
	if opts.Interval <= 0 {
		opts.Interval = 100 * time.Second
	}
	if opts.ResetThreshold <= 0 {
		opts.ResetThreshold = 10
	}

	return &Loop{
		owner:          opts.Owner,
		tokens:         opts.Tokens,
		trader:         opts.Trader,
		balances:       opts.Balances,
		prices:         opts.Prices,
		logger:         opts.Logger,
		interval:       opts.Interval,
		resetThreshold: opts.ResetThreshold,
		feeReserve:     opts.FeeReserveSOL,
	}
}

// Run executes passes until the context is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		l.runOnce(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.interval):
		}
	}
}

// runOnce executes a single pass: optional liquidation, one trade cycle per
// token, then the counter increment.
func (l *Loop) runOnce(ctx context.Context) {
	l.logger.Printf("pass %d: %d tokens", l.iteration, len(l.tokens))

	if l.iteration >= l.resetThreshold {
		l.liquidate(ctx)
		l.iteration = 0
	}

	for _, token := range l.tokens {
		if ctx.Err() != nil {
			return
		}
		l.tradeToken(ctx, token)
	}

	l.iteration++
}

// liquidate sells every nonzero holding in full.
func (l *Loop) liquidate(ctx context.Context) {
	l.logger.Printf("reset threshold reached, liquidating all positions")

	mints := make([]string, len(l.tokens))
	for i, token := range l.tokens {
		mints[i] = token.Mint
	}

	holdings, err := l.balances.Holdings(ctx, l.owner, mints)
	if err != nil {
		l.logger.Printf("liquidation skipped: holdings lookup failed: %v", err)
		return
	}

	for _, token := range l.tokens {
		if holding := holdings[token.Mint]; holding != nil && holding.Amount > 0 {
			l.trader.GuardedSell(ctx, token.Mint, holding.Amount)
		}
	}
}

// tradeToken runs one token's cycle: raise funds if the balance cannot cover
// the buy plus fee reserve, buy, then pre-sell enough to fund the next buy.
func (l *Loop) tradeToken(ctx context.Context, token config.Token) {
	required := token.BuyAmountSOL + l.feeReserve

	balance, err := l.balances.SOLBalance(ctx, l.owner)
	if err != nil {
		l.logger.Printf("%s skipped: balance lookup failed: %v", token.Mint, err)
		return
	}

	if balance < required {
		shortfall := required - balance
		price, ok := l.prices.Price(ctx, token.Mint)
		if !ok {
			l.logger.Printf("%s skipped: balance %v below required %v and no price to size the funding sell", token.Mint, balance, required)
			return
		}
		l.trader.GuardedSell(ctx, token.Mint, shortfall/price)
	}

	l.trader.GuardedBuy(ctx, token.Mint, token.BuyAmountSOL)

	price, ok := l.prices.Price(ctx, token.Mint)
	if !ok {
		l.logger.Printf("%s: no price, skipping the funding pre-sell", token.Mint)
		return
	}

	sellAmount := token.BuyAmountSOL / price

	holding, err := l.balances.TokenHolding(ctx, l.owner, token.Mint)
	if err != nil {
		l.logger.Printf("%s: holding lookup failed, skipping the funding pre-sell: %v", token.Mint, err)
		return
	}
	if sellAmount > holding.Amount {
		sellAmount = holding.Amount
	}
	if sellAmount <= 0 {
		return
	}

	l.trader.GuardedSell(ctx, token.Mint, sellAmount)
}
