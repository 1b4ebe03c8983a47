package solana

// Well-known program and account addresses.
const (
	SystemProgramID          = "11111111111111111111111111111111"
	TokenProgramID           = "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA"
	Token2022ProgramID       = "TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb"
	AssociatedTokenProgramID = "ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL"
	ComputeBudgetProgramID   = "ComputeBudget111111111111111111111111111111"
	SysvarRentID             = "SysvarRent111111111111111111111111111111111"

	// WSOLMint is the wrapped native SOL mint.
	WSOLMint = "So11111111111111111111111111111111111111112"
)

// LamportsPerSOL is the smallest-unit scaling of the native currency.
const LamportsPerSOL = 1_000_000_000

// SOLDecimals is the fixed decimal precision of the native currency.
const SOLDecimals = 9

// TokenAccountSpan is the serialized size of an SPL token account.
const TokenAccountSpan = 165

// AccountInfo represents raw Solana account information.
type AccountInfo struct {
	Lamports   uint64
	Owner      string
	Data       string // base64 encoded
	Executable bool
	RentEpoch  uint64
}

// TokenAmount is an SPL token balance in raw smallest units.
type TokenAmount struct {
	Raw      uint64
	Decimals uint8
}

// TokenAccount is one entry from getTokenAccountsByOwner.
type TokenAccount struct {
	Pubkey string
	Mint   string
	Amount TokenAmount
}

// LatestBlockhash from getLatestBlockhash. A transaction built on Blockhash
// is only valid while the chain height stays at or below
// LastValidBlockHeight.
type LatestBlockhash struct {
	Blockhash            string
	LastValidBlockHeight uint64
}

// SignatureStatus is the node-reported status of a submitted transaction.
type SignatureStatus struct {
	Slot uint64
	// Err is non-nil when the transaction landed on-chain but failed.
	Err interface{}
	// ConfirmationStatus is "processed", "confirmed" or "finalized".
	ConfirmationStatus string
}

// Confirmed reports whether the status has reached at least the confirmed
// commitment level.
func (s *SignatureStatus) Confirmed() bool {
	return s != nil && (s.ConfirmationStatus == "confirmed" || s.ConfirmationStatus == "finalized")
}
