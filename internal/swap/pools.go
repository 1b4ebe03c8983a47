package swap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// PoolKeys is the on-chain account set identifying one Raydium AMM v4
// market. All fields are base58 addresses.
type PoolKeys struct {
	AmmID            string `json:"id"`
	AmmAuthority     string `json:"authority"`
	AmmOpenOrders    string `json:"openOrders"`
	AmmTargetOrders  string `json:"targetOrders"`
	BaseVault        string `json:"baseVault"`
	QuoteVault       string `json:"quoteVault"`
	MarketProgramID  string `json:"marketProgramId"`
	MarketID         string `json:"marketId"`
	MarketBids       string `json:"marketBids"`
	MarketAsks       string `json:"marketAsks"`
	MarketEventQueue string `json:"marketEventQueue"`
	MarketBaseVault  string `json:"marketBaseVault"`
	MarketQuoteVault string `json:"marketQuoteVault"`
	MarketAuthority  string `json:"marketAuthority"`
}

// validate checks all required accounts are present.
func (p *PoolKeys) validate() error {
	fields := map[string]string{
		"id":               p.AmmID,
		"authority":        p.AmmAuthority,
		"openOrders":       p.AmmOpenOrders,
		"targetOrders":     p.AmmTargetOrders,
		"baseVault":        p.BaseVault,
		"quoteVault":       p.QuoteVault,
		"marketProgramId":  p.MarketProgramID,
		"marketId":         p.MarketID,
		"marketBids":       p.MarketBids,
		"marketAsks":       p.MarketAsks,
		"marketEventQueue": p.MarketEventQueue,
		"marketBaseVault":  p.MarketBaseVault,
		"marketQuoteVault": p.MarketQuoteVault,
		"marketAuthority":  p.MarketAuthority,
	}
	for name, v := range fields {
		if v == "" {
			return fmt.Errorf("pool keys missing %s", name)
		}
	}
	return nil
}

// PoolResolver resolves the swap venue metadata for a token mint.
type PoolResolver interface {
	ResolvePool(ctx context.Context, mint string) (*PoolKeys, error)
}

// HTTPPoolResolver fetches pool keys from a registry endpoint and caches
// them; a market's account set never changes once created.
type HTTPPoolResolver struct {
	base   string
	client *http.Client

	mu    sync.Mutex
	cache map[string]*PoolKeys
}

// NewHTTPPoolResolver creates a resolver against the given registry URL.
func NewHTTPPoolResolver(base string) *HTTPPoolResolver {
	return &HTTPPoolResolver{
		base:   base,
		client: &http.Client{Timeout: 15 * time.Second},
		cache:  make(map[string]*PoolKeys),
	}
}

// ResolvePool returns the pool keys for a mint.
func (r *HTTPPoolResolver) ResolvePool(ctx context.Context, mint string) (*PoolKeys, error) {
	r.mu.Lock()
	cached, ok := r.cache[mint]
	r.mu.Unlock()
	if ok {
		return cached, nil
	}

	u := fmt.Sprintf("%s?mint=%s", r.base, url.QueryEscape(mint))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch pool keys: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch pool keys: status %d", resp.StatusCode)
	}

	var keys PoolKeys
	if err := json.NewDecoder(resp.Body).Decode(&keys); err != nil {
		return nil, fmt.Errorf("decode pool keys: %w", err)
	}

	if err := keys.validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[mint] = &keys
	r.mu.Unlock()

	return &keys, nil
}
