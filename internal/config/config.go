// Package config reads process-wide configuration once at startup from the
// environment, with sane defaults for the trading cadence.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Token is one tradeable token with its fixed per-iteration buy size.
type Token struct {
	Mint         string
	BuyAmountSOL float64
}

// Config is the process configuration. Loaded once; passed explicitly to
// constructors rather than read from globals.
type Config struct {
	RPCEndpoint string
	WSEndpoint  string // optional; enables WebSocket confirmation
	PrivateKey  string // base58-encoded wallet secret

	ReferenceMint string
	Tokens        []Token

	PriceAPIURL string
	PriceAPIKey string
	PoolKeysURL string

	LoopInterval   time.Duration
	ResetThreshold int
	FeeReserveSOL  float64

	BuyMaxAttempts  int
	SellMaxAttempts int
	RetryDelay      time.Duration

	ConfirmPollInterval time.Duration
	ConfirmTimeout      time.Duration

	BuyComputeUnitPrice  uint64
	BuyComputeUnitLimit  uint32
	SellComputeUnitPrice uint64
	SellComputeUnitLimit uint32
}

// Default trading cadence.
const (
	DefaultBuyAmountSOL   = 0.05
	DefaultLoopInterval   = 100 * time.Second
	DefaultResetThreshold = 10
	DefaultFeeReserveSOL  = 0.01

	DefaultBuyMaxAttempts  = 10
	DefaultSellMaxAttempts = 5
	DefaultRetryDelay      = 3 * time.Second

	DefaultConfirmPollInterval = 500 * time.Millisecond
	DefaultConfirmTimeout      = 30 * time.Second

	DefaultBuyComputeUnitPrice  = 30_000
	DefaultBuyComputeUnitLimit  = 250_000
	DefaultSellComputeUnitPrice = 25_232
	DefaultSellComputeUnitLimit = 200_337

	defaultReferenceMint = "So11111111111111111111111111111111111111112"
	defaultPriceAPIURL   = "https://public-api.birdeye.so"
)

// Load reads configuration from a .env file (best effort) and the
// environment. It returns an error naming every missing required field.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		RPCEndpoint:          os.Getenv("RPC_HTTPS_URL"),
		WSEndpoint:           os.Getenv("RPC_WSS_URL"),
		PrivateKey:           os.Getenv("PRIVATE_KEY"),
		ReferenceMint:        envString("SOLANA_MINT_ADDRESS", defaultReferenceMint),
		PriceAPIURL:          envString("PRICE_API_URL", defaultPriceAPIURL),
		PriceAPIKey:          os.Getenv("PRICE_API_KEY"),
		PoolKeysURL:          os.Getenv("POOL_KEYS_URL"),
		LoopInterval:         envDuration("LOOP_INTERVAL", DefaultLoopInterval),
		ResetThreshold:       envInt("RESET_THRESHOLD", DefaultResetThreshold),
		FeeReserveSOL:        envFloat("FEE_RESERVE_SOL", DefaultFeeReserveSOL),
		BuyMaxAttempts:       envInt("BUY_MAX_ATTEMPTS", DefaultBuyMaxAttempts),
		SellMaxAttempts:      envInt("SELL_MAX_ATTEMPTS", DefaultSellMaxAttempts),
		RetryDelay:           envDuration("RETRY_DELAY", DefaultRetryDelay),
		ConfirmPollInterval:  envDuration("CONFIRM_POLL_INTERVAL", DefaultConfirmPollInterval),
		ConfirmTimeout:       envDuration("CONFIRM_TIMEOUT", DefaultConfirmTimeout),
		BuyComputeUnitPrice:  uint64(envInt("BUY_COMPUTE_UNIT_PRICE", DefaultBuyComputeUnitPrice)),
		BuyComputeUnitLimit:  uint32(envInt("BUY_COMPUTE_UNIT_LIMIT", DefaultBuyComputeUnitLimit)),
		SellComputeUnitPrice: uint64(envInt("SELL_COMPUTE_UNIT_PRICE", DefaultSellComputeUnitPrice)),
		SellComputeUnitLimit: uint32(envInt("SELL_COMPUTE_UNIT_LIMIT", DefaultSellComputeUnitLimit)),
	}

	buySize := envFloat("BUY_AMOUNT_SOL", DefaultBuyAmountSOL)
	for _, mint := range tokenMints() {
		cfg.Tokens = append(cfg.Tokens, Token{Mint: mint, BuyAmountSOL: buySize})
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// tokenMints reads TOKEN_MINTS (comma-separated), falling back to the legacy
// TOKENCA / TOKENCA2 variables.
func tokenMints() []string {
	var mints []string
	if raw := os.Getenv("TOKEN_MINTS"); raw != "" {
		for _, m := range strings.Split(raw, ",") {
			if m = strings.TrimSpace(m); m != "" {
				mints = append(mints, m)
			}
		}
		return mints
	}
	for _, key := range []string{"TOKENCA", "TOKENCA2"} {
		if m := os.Getenv(key); m != "" {
			mints = append(mints, m)
		}
	}
	return mints
}

func (c *Config) validate() error {
	var missing []string
	if c.RPCEndpoint == "" {
		missing = append(missing, "RPC_HTTPS_URL")
	}
	if c.PrivateKey == "" {
		missing = append(missing, "PRIVATE_KEY")
	}
	if len(c.Tokens) == 0 {
		missing = append(missing, "TOKEN_MINTS")
	}
	if c.PoolKeysURL == "" {
		missing = append(missing, "POOL_KEYS_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	if c.ResetThreshold <= 0 {
		return fmt.Errorf("RESET_THRESHOLD must be positive, got %d", c.ResetThreshold)
	}
	if c.BuyMaxAttempts <= 0 || c.SellMaxAttempts <= 0 {
		return fmt.Errorf("max attempts must be positive (buy %d, sell %d)", c.BuyMaxAttempts, c.SellMaxAttempts)
	}
	for _, t := range c.Tokens {
		if t.BuyAmountSOL <= 0 {
			return fmt.Errorf("buy amount for %s must be positive, got %v", t.Mint, t.BuyAmountSOL)
		}
	}
	return nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
