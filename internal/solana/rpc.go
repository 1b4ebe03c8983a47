package solana

import "context"

// RPCClient defines the node JSON-RPC primitives the trading loop consumes.
type RPCClient interface {
	// GetBalance returns the lamport balance of an account.
	GetBalance(ctx context.Context, pubkey string) (uint64, error)

	// GetAccountInfo retrieves raw account info by public key.
	// Returns nil if the account does not exist.
	GetAccountInfo(ctx context.Context, pubkey string) (*AccountInfo, error)

	// GetParsedTokenAccount retrieves the token amount held by an SPL token
	// account. Returns nil if the account does not exist.
	GetParsedTokenAccount(ctx context.Context, account string) (*TokenAmount, error)

	// GetTokenAccountsByOwner lists the owner's token accounts for a mint.
	GetTokenAccountsByOwner(ctx context.Context, owner, mint string) ([]TokenAccount, error)

	// GetLatestBlockhash returns a recent blockhash and its validity bound.
	GetLatestBlockhash(ctx context.Context) (*LatestBlockhash, error)

	// GetBlockHeight returns the current block height.
	GetBlockHeight(ctx context.Context) (uint64, error)

	// GetMinimumBalanceForRentExemption returns the rent-exempt floor for an
	// account of the given data length.
	GetMinimumBalanceForRentExemption(ctx context.Context, dataLen uint64) (uint64, error)

	// SendTransaction submits a signed, base64-encoded transaction and
	// returns its signature. Submission is never retried at the transport
	// level: the caller owns resubmission.
	SendTransaction(ctx context.Context, txBase64 string) (string, error)

	// GetSignatureStatuses returns confirmation statuses for signatures.
	// Entries are nil for signatures the node has not observed.
	GetSignatureStatuses(ctx context.Context, signatures []string) ([]*SignatureStatus, error)
}
