package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

// PriceSource returns the reference-currency price of a token unit. The
// boolean is false on any lookup failure; callers treat an absent price as a
// skip, never a fault.
type PriceSource interface {
	Price(ctx context.Context, mint string) (float64, bool)
}

// BirdeyeClient implements PriceSource against a Birdeye-compatible price
// endpoint.
type BirdeyeClient struct {
	base   string
	apiKey string
	client *http.Client
	logger *log.Logger
}

// NewBirdeye creates a price oracle for the given API base URL.
func NewBirdeye(base, apiKey string, logger *log.Logger) *BirdeyeClient {
	return &BirdeyeClient{
		base:   base,
		apiKey: apiKey,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

// Price returns the current price of one token unit, or false when the
// lookup fails.
func (c *BirdeyeClient) Price(ctx context.Context, mint string) (float64, bool) {
	u := fmt.Sprintf("%s/defi/price?address=%s", c.base, url.QueryEscape(mint))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		c.logger.Printf("price lookup for %s: %v", mint, err)
		return 0, false
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-KEY", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Printf("price lookup for %s: %v", mint, err)
		return 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Printf("price lookup for %s: status %d", mint, resp.StatusCode)
		return 0, false
	}

	var body struct {
		Data struct {
			Value float64 `json:"value"`
		} `json:"data"`
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Printf("price lookup for %s: decode: %v", mint, err)
		return 0, false
	}

	if !body.Success || body.Data.Value <= 0 {
		c.logger.Printf("price lookup for %s: no price available", mint)
		return 0, false
	}

	return body.Data.Value, true
}
