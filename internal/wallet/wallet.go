// Package wallet holds the process signing identity: a single wallet loaded
// from a base58-encoded secret key.
package wallet

import (
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
)

// Wallet is an opaque signing identity owning exactly one secret key.
type Wallet struct {
	key solanago.PrivateKey
}

// FromBase58 constructs a wallet from a base58-encoded secret key.
func FromBase58(secret string) (*Wallet, error) {
	key, err := solanago.PrivateKeyFromBase58(secret)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return &Wallet{key: key}, nil
}

// PublicKey returns the wallet's base58 public address.
func (w *Wallet) PublicKey() string {
	return w.key.PublicKey().String()
}

// PrivateKey exposes the signing key for transaction signing.
func (w *Wallet) PrivateKey() solanago.PrivateKey {
	return w.key
}
