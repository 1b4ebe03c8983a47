// Package swap builds, submits and confirms swap transactions against a
// Raydium-style AMM, retrying transient failures with constant backoff.
package swap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jongan69/volume-bot/internal/solana"
	"github.com/jongan69/volume-bot/internal/wallet"
)

// Side is the direction of a swap.
type Side int

const (
	// Buy spends native SOL for the token; amounts are SOL units.
	Buy Side = iota
	// Sell spends the token for native SOL; amounts are token units.
	Sell
)

func (s Side) String() string {
	if s == Buy {
		return "buy"
	}
	return "sell"
}

// SideParams are the per-side fixed submission parameters.
type SideParams struct {
	MaxAttempts      int
	ComputeUnitPrice uint64
	ComputeUnitLimit uint32
}

// Options configures an Executor. RPC, Pools and Wallet are required;
// Watcher is optional and enables WebSocket confirmation with polling
// fallback.
type Options struct {
	RPC     solana.RPCClient
	Watcher solana.ConfirmationWatcher
	Pools   PoolResolver
	Wallet  *wallet.Wallet
	Logger  *log.Logger

	Buy  SideParams
	Sell SideParams

	// RetryDelay is the constant wait between attempts.
	RetryDelay time.Duration
	// PollInterval is the wait between confirmation status polls.
	PollInterval time.Duration
	// ConfirmTimeout bounds waiting for one submission to confirm.
	ConfirmTimeout time.Duration
}

// Executor executes one swap at a time: build, submit, confirm, classify,
// retry. It absorbs every transport and on-chain failure internally; callers
// only see a signature or one of the package sentinel errors.
//
// Known limitation: submission is not idempotent. A confirmation timeout is
// classified retryable, but the timed-out transaction may still land, so a
// retry can duplicate the swap. There is no client-side nonce/dedup check.
type Executor struct {
	rpc     solana.RPCClient
	watcher solana.ConfirmationWatcher
	pools   PoolResolver
	wallet  *wallet.Wallet
	logger  *log.Logger
	builder *txBuilder

	buy  SideParams
	sell SideParams

	retryDelay     time.Duration
	pollInterval   time.Duration
	confirmTimeout time.Duration
}

// New creates an Executor.
func New(opts Options) *Executor {
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 3 * time.Second
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 500 * time.Millisecond
	}
	if opts.ConfirmTimeout <= 0 {
		opts.ConfirmTimeout = 30 * time.Second
	}
	if opts.Buy.MaxAttempts <= 0 {
		opts.Buy.MaxAttempts = 10
	}
	if opts.Sell.MaxAttempts <= 0 {
		opts.Sell.MaxAttempts = 5
	}

	return &Executor{
		rpc:            opts.RPC,
		watcher:        opts.Watcher,
		pools:          opts.Pools,
		wallet:         opts.Wallet,
		logger:         opts.Logger,
		builder:        &txBuilder{rpc: opts.RPC, wallet: opts.Wallet},
		buy:            opts.Buy,
		sell:           opts.Sell,
		retryDelay:     opts.RetryDelay,
		pollInterval:   opts.PollInterval,
		confirmTimeout: opts.ConfirmTimeout,
	}
}

func (e *Executor) params(side Side) SideParams {
	if side == Buy {
		return e.buy
	}
	return e.sell
}

// Execute performs one swap of amount (SOL units for Buy, token units for
// Sell) and returns the confirmed transaction signature.
func (e *Executor) Execute(ctx context.Context, mint string, amount float64, side Side) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("%w: non-positive %s amount %v", ErrInsufficientFunds, side, amount)
	}

	pool, err := e.pools.ResolvePool(ctx, mint)
	if err != nil {
		e.logger.Printf("%s %s: pool resolution failed: %v", side, mint, err)
		return "", fmt.Errorf("%w: %v", ErrPoolUnavailable, err)
	}

	raw, err := e.precheck(ctx, side, mint, amount)
	if err != nil {
		return "", err
	}

	params := e.params(side)

	for attempt := 1; attempt <= params.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		sig, ok, reason, cause := e.attempt(ctx, side, mint, raw, pool, params)
		if cause != nil && ctx.Err() != nil {
			return "", ctx.Err()
		}
		if ok {
			e.logger.Printf("%s %s confirmed on attempt %d/%d: %s", side, mint, attempt, params.MaxAttempts, sig)
			return sig, nil
		}

		if reason == blockhashExpired {
			// Distinct from generic failure: the validity window
			// elapsed and the next attempt needs a fresh blockhash.
			e.logger.Printf("%s %s attempt %d/%d: transaction expired (block height exceeded), rebuilding: %v",
				side, mint, attempt, params.MaxAttempts, cause)
		} else {
			e.logger.Printf("%s %s attempt %d/%d failed (%s): %v",
				side, mint, attempt, params.MaxAttempts, reason, cause)
		}

		if attempt < params.MaxAttempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(e.retryDelay):
			}
		}
	}

	e.logger.Printf("%s %s: giving up after %d attempts", side, mint, params.MaxAttempts)
	return "", fmt.Errorf("%w: %s %s after %d attempts", ErrRetriesExhausted, side, mint, params.MaxAttempts)
}

// precheck verifies funding before any network submission and scales the
// human amount to raw units.
func (e *Executor) precheck(ctx context.Context, side Side, mint string, amount float64) (uint64, error) {
	owner := e.wallet.PublicKey()

	switch side {
	case Buy:
		raw := solana.ToRaw(amount, solana.SOLDecimals)
		lamports, err := e.rpc.GetBalance(ctx, owner)
		if err != nil {
			// The client already burned its transport retries.
			e.logger.Printf("buy %s: balance precheck failed: %v", mint, err)
			return 0, fmt.Errorf("%w: balance precheck: %v", ErrRetriesExhausted, err)
		}
		if lamports < raw {
			return 0, fmt.Errorf("%w: have %d lamports, need %d", ErrInsufficientFunds, lamports, raw)
		}
		return raw, nil

	default:
		accounts, err := e.rpc.GetTokenAccountsByOwner(ctx, owner, mint)
		if err != nil {
			e.logger.Printf("sell %s: holding precheck failed: %v", mint, err)
			return 0, fmt.Errorf("%w: holding precheck: %v", ErrRetriesExhausted, err)
		}

		var held uint64
		var decimals uint8
		for _, acct := range accounts {
			if acct.Mint == mint {
				held = acct.Amount.Raw
				decimals = acct.Amount.Decimals
				break
			}
		}
		if held == 0 {
			return 0, fmt.Errorf("%w: no %s balance", ErrInsufficientFunds, mint)
		}

		raw := solana.ToRaw(amount, decimals)
		if raw == 0 {
			return 0, fmt.Errorf("%w: %v %s rounds to zero raw units", ErrInsufficientFunds, amount, mint)
		}
		if held < raw {
			return 0, fmt.Errorf("%w: have %d raw units, need %d", ErrInsufficientFunds, held, raw)
		}
		return raw, nil
	}
}

// attempt runs one build/submit/confirm cycle. ok reports success; otherwise
// reason and cause describe the retryable failure.
func (e *Executor) attempt(ctx context.Context, side Side, mint string, raw uint64, pool *PoolKeys, params SideParams) (sig string, ok bool, reason failureReason, cause error) {
	built, err := e.builder.build(ctx, side, mint, raw, pool, params)
	if err != nil {
		return "", false, transportError, fmt.Errorf("build: %w", err)
	}

	sig, err = e.rpc.SendTransaction(ctx, built.Base64)
	if err != nil {
		return "", false, classifySubmitError(err), fmt.Errorf("submit: %w", err)
	}
	e.logger.Printf("%s %s submitted: %s", side, mint, sig)

	status, reason, err := e.confirm(ctx, sig, built.LastValidBlockHeight)
	if err != nil {
		return "", false, transportError, err
	}
	if status != nil && status.Err != nil {
		// Landed on-chain but the program rejected it.
		return "", false, onChainRejection, fmt.Errorf("on-chain error: %v", status.Err)
	}
	if status != nil {
		return sig, true, 0, nil
	}
	return "", false, reason, fmt.Errorf("signature %s not confirmed", sig)
}

// confirm waits for a terminal status: via the WebSocket watcher when
// configured (falling back to polling on watcher failure), else by polling
// signature statuses. A nil status with a reason means the attempt failed
// retryably; an error is only returned on context cancellation.
func (e *Executor) confirm(ctx context.Context, sig string, lastValidBlockHeight uint64) (*solana.SignatureStatus, failureReason, error) {
	if e.watcher != nil {
		wctx, cancel := context.WithTimeout(ctx, e.confirmTimeout)
		status, err := e.watcher.WaitForSignature(wctx, sig)
		cancel()
		if err == nil {
			return status, 0, nil
		}
		if ctx.Err() != nil {
			return nil, 0, ctx.Err()
		}
		e.logger.Printf("confirmation watcher failed for %s, falling back to polling: %v", sig, err)
	}

	deadline := time.Now().Add(e.confirmTimeout)
	for {
		select {
		case <-ctx.Done():
			return nil, 0, ctx.Err()
		case <-time.After(e.pollInterval):
		}

		statuses, err := e.rpc.GetSignatureStatuses(ctx, []string{sig})
		if err != nil {
			if time.Now().After(deadline) {
				return nil, confirmationTimeout, nil
			}
			continue
		}

		var status *solana.SignatureStatus
		if len(statuses) > 0 {
			status = statuses[0]
		}

		if status.Confirmed() {
			return status, 0, nil
		}

		// Unobserved signature past the validity window cannot confirm.
		if status == nil && lastValidBlockHeight > 0 {
			if height, err := e.rpc.GetBlockHeight(ctx); err == nil && height > lastValidBlockHeight {
				return nil, blockhashExpired, nil
			}
		}

		if time.Now().After(deadline) {
			return nil, confirmationTimeout, nil
		}
	}
}

// classifySubmitError maps a submission error to a retryable reason.
func classifySubmitError(err error) failureReason {
	if strings.Contains(strings.ToLower(err.Error()), "block height exceeded") {
		return blockhashExpired
	}
	var rpcErr *solana.RPCError
	if errors.As(err, &rpcErr) {
		return onChainRejection
	}
	return transportError
}
