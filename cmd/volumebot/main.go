package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jongan69/volume-bot/internal/config"
	"github.com/jongan69/volume-bot/internal/guard"
	"github.com/jongan69/volume-bot/internal/oracle"
	"github.com/jongan69/volume-bot/internal/solana"
	"github.com/jongan69/volume-bot/internal/swap"
	"github.com/jongan69/volume-bot/internal/volume"
	"github.com/jongan69/volume-bot/internal/wallet"
)

func main() {
	// Flags override the environment for the endpoints and the cadence.
	rpcEndpoint := flag.String("rpc-endpoint", "", "Solana RPC HTTP endpoint (overrides RPC_HTTPS_URL)")
	wsEndpoint := flag.String("ws-endpoint", "", "Solana WebSocket endpoint (overrides RPC_WSS_URL)")
	interval := flag.Duration("interval", 0, "Trading pass interval (overrides LOOP_INTERVAL)")
	flag.Parse()

	logger := log.New(os.Stdout, "[volumebot] ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		logger.Printf("Configuration error: %v", err)
		os.Exit(1)
	}
	if *rpcEndpoint != "" {
		cfg.RPCEndpoint = *rpcEndpoint
	}
	if *wsEndpoint != "" {
		cfg.WSEndpoint = *wsEndpoint
	}
	if *interval > 0 {
		cfg.LoopInterval = *interval
	}

	w, err := wallet.FromBase58(cfg.PrivateKey)
	if err != nil {
		logger.Printf("Configuration error: %v", err)
		os.Exit(1)
	}
	logger.Printf("Trading wallet: %s", w.PublicKey())
	logger.Printf("Tokens: %d, buy size %v SOL, pass interval %s", len(cfg.Tokens), cfg.Tokens[0].BuyAmountSOL, cfg.LoopInterval)

	rpc := solana.NewHTTPClient(cfg.RPCEndpoint)

	var watcher solana.ConfirmationWatcher
	if cfg.WSEndpoint != "" {
		watcher = solana.NewWSWatcher(cfg.WSEndpoint, nil)
		logger.Printf("WebSocket confirmation enabled: %s", cfg.WSEndpoint)
	}

	balances := oracle.NewBalances(rpc, logger)
	prices := oracle.NewBirdeye(cfg.PriceAPIURL, cfg.PriceAPIKey, logger)
	pools := swap.NewHTTPPoolResolver(cfg.PoolKeysURL)

	executor := swap.New(swap.Options{
		RPC:     rpc,
		Watcher: watcher,
		Pools:   pools,
		Wallet:  w,
		Logger:  logger,
		Buy: swap.SideParams{
			MaxAttempts:      cfg.BuyMaxAttempts,
			ComputeUnitPrice: cfg.BuyComputeUnitPrice,
			ComputeUnitLimit: cfg.BuyComputeUnitLimit,
		},
		Sell: swap.SideParams{
			MaxAttempts:      cfg.SellMaxAttempts,
			ComputeUnitPrice: cfg.SellComputeUnitPrice,
			ComputeUnitLimit: cfg.SellComputeUnitLimit,
		},
		RetryDelay:     cfg.RetryDelay,
		PollInterval:   cfg.ConfirmPollInterval,
		ConfirmTimeout: cfg.ConfirmTimeout,
	})

	trader := guard.New(w.PublicKey(), executor, balances, prices, logger)

	loop := volume.New(volume.Options{
		Owner:          w.PublicKey(),
		Tokens:         cfg.Tokens,
		Trader:         trader,
		Balances:       balances,
		Prices:         prices,
		Logger:         logger,
		Interval:       cfg.LoopInterval,
		ResetThreshold: cfg.ResetThreshold,
		FeeReserveSOL:  cfg.FeeReserveSOL,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan error, 1)
	go func() {
		done <- loop.Run(ctx)
	}()

	select {
	case sig := <-sigCh:
		logger.Printf("Received signal %v, initiating graceful shutdown...", sig)
		cancel()
		select {
		case sig := <-sigCh:
			logger.Printf("Received second signal %v, forcing immediate shutdown", sig)
			os.Exit(1)
		case <-time.After(30 * time.Second):
			logger.Println("Graceful shutdown timed out after 30s, forcing exit")
			os.Exit(1)
		case err = <-done:
		}
	case err = <-done:
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Printf("Trading loop error: %v", err)
		os.Exit(1)
	}
	logger.Println("Shutdown complete")
}
