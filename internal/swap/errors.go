package swap

import "errors"

// Terminal errors crossing the executor boundary. Everything transient is
// absorbed by the retry loop; callers only ever see these or a signature.
var (
	// ErrPoolUnavailable means pool metadata could not be resolved. Not
	// retried: metadata lookup failure is not transaction-related.
	ErrPoolUnavailable = errors.New("pool metadata unavailable")

	// ErrInsufficientFunds means the wallet cannot cover the requested
	// amount. Not retried: the caller must fund first.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrRetriesExhausted means every attempt failed with a retryable
	// classification.
	ErrRetriesExhausted = errors.New("swap retries exhausted")
)

// failureReason classifies one failed attempt. All reasons are retryable;
// they exist for logging and for distinguishing expiry from generic errors.
type failureReason int

const (
	transportError failureReason = iota
	confirmationTimeout
	onChainRejection
	blockhashExpired
)

func (r failureReason) String() string {
	switch r {
	case transportError:
		return "transport error"
	case confirmationTimeout:
		return "confirmation timeout"
	case onChainRejection:
		return "on-chain rejection"
	case blockhashExpired:
		return "blockhash expired"
	default:
		return "unknown"
	}
}
