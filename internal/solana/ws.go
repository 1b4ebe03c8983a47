package solana

import "context"

// ConfirmationWatcher awaits the terminal confirmation status of a submitted
// transaction. Implementations may use WebSocket subscriptions; callers fall
// back to HTTP status polling when a watcher fails.
type ConfirmationWatcher interface {
	// WaitForSignature blocks until the node reports a confirmed-level
	// status for the signature, the context expires, or the transport
	// fails.
	WaitForSignature(ctx context.Context, signature string) (*SignatureStatus, error)
}
