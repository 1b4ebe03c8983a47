package swap

import (
	"encoding/binary"

	solanago "github.com/gagliardetto/solana-go"

	"github.com/jongan69/volume-bot/internal/solana"
)

// RaydiumAMMV4 is the Raydium AMM v4 program ID.
const RaydiumAMMV4 = "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"

// Raydium AMM v4 instruction tag for swapBaseIn.
const raydiumSwapBaseIn = 9

// SPL token program instruction tags.
const (
	tokenInitializeAccount = 1
	tokenCloseAccount      = 9
)

// Compute budget program instruction tags.
const (
	computeBudgetSetUnitLimit = 2
	computeBudgetSetUnitPrice = 3
)

func mustKey(s string) solanago.PublicKey {
	return solanago.MustPublicKeyFromBase58(s)
}

// makeSwapInstruction builds the Raydium AMM v4 swapBaseIn instruction.
// Layout: u8 tag | u64 amountIn | u64 minAmountOut, little endian.
func makeSwapInstruction(amountIn, minAmountOut uint64, source, dest, owner solanago.PublicKey, pool *PoolKeys, tokenProgram solanago.PublicKey) solanago.Instruction {
	data := make([]byte, 17)
	data[0] = raydiumSwapBaseIn
	binary.LittleEndian.PutUint64(data[1:9], amountIn)
	binary.LittleEndian.PutUint64(data[9:17], minAmountOut)

	accounts := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(tokenProgram, false, false),
		solanago.NewAccountMeta(mustKey(pool.AmmID), true, false),
		solanago.NewAccountMeta(mustKey(pool.AmmAuthority), false, false),
		solanago.NewAccountMeta(mustKey(pool.AmmOpenOrders), true, false),
		solanago.NewAccountMeta(mustKey(pool.AmmTargetOrders), true, false),
		solanago.NewAccountMeta(mustKey(pool.BaseVault), true, false),
		solanago.NewAccountMeta(mustKey(pool.QuoteVault), true, false),
		solanago.NewAccountMeta(mustKey(pool.MarketProgramID), false, false),
		solanago.NewAccountMeta(mustKey(pool.MarketID), true, false),
		solanago.NewAccountMeta(mustKey(pool.MarketBids), true, false),
		solanago.NewAccountMeta(mustKey(pool.MarketAsks), true, false),
		solanago.NewAccountMeta(mustKey(pool.MarketEventQueue), true, false),
		solanago.NewAccountMeta(mustKey(pool.MarketBaseVault), true, false),
		solanago.NewAccountMeta(mustKey(pool.MarketQuoteVault), true, false),
		solanago.NewAccountMeta(mustKey(pool.MarketAuthority), false, false),
		solanago.NewAccountMeta(source, true, false),
		solanago.NewAccountMeta(dest, true, false),
		solanago.NewAccountMeta(owner, false, true),
	}

	return solanago.NewInstruction(mustKey(RaydiumAMMV4), accounts, data)
}

// setComputeUnitLimit builds a compute-budget instruction fixing the unit
// limit.
func setComputeUnitLimit(limit uint32) solanago.Instruction {
	data := make([]byte, 5)
	data[0] = computeBudgetSetUnitLimit
	binary.LittleEndian.PutUint32(data[1:5], limit)
	return solanago.NewInstruction(mustKey(solana.ComputeBudgetProgramID), solanago.AccountMetaSlice{}, data)
}

// setComputeUnitPrice builds a compute-budget instruction fixing the price in
// micro-lamports per compute unit.
func setComputeUnitPrice(microLamports uint64) solanago.Instruction {
	data := make([]byte, 9)
	data[0] = computeBudgetSetUnitPrice
	binary.LittleEndian.PutUint64(data[1:9], microLamports)
	return solanago.NewInstruction(mustKey(solana.ComputeBudgetProgramID), solanago.AccountMetaSlice{}, data)
}

// createAccountInstruction builds a system-program createAccount funding a
// fresh account. Layout: u32 tag | u64 lamports | u64 space | owner pubkey.
func createAccountInstruction(funder, newAccount solanago.PublicKey, lamports, space uint64, owner solanago.PublicKey) solanago.Instruction {
	data := make([]byte, 52)
	binary.LittleEndian.PutUint32(data[0:4], 0) // CreateAccount
	binary.LittleEndian.PutUint64(data[4:12], lamports)
	binary.LittleEndian.PutUint64(data[12:20], space)
	copy(data[20:52], owner[:])

	accounts := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(funder, true, true),
		solanago.NewAccountMeta(newAccount, true, true),
	}

	return solanago.NewInstruction(mustKey(solana.SystemProgramID), accounts, data)
}

// initializeAccountInstruction builds an SPL initializeAccount binding a
// fresh account to a mint and owner.
func initializeAccountInstruction(account, mint, owner, tokenProgram solanago.PublicKey) solanago.Instruction {
	accounts := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(account, true, false),
		solanago.NewAccountMeta(mint, false, false),
		solanago.NewAccountMeta(owner, false, false),
		solanago.NewAccountMeta(mustKey(solana.SysvarRentID), false, false),
	}

	return solanago.NewInstruction(tokenProgram, accounts, []byte{tokenInitializeAccount})
}

// closeAccountInstruction builds an SPL closeAccount returning the account's
// lamports to dest. Closing a wrapped-SOL account unwraps its balance.
func closeAccountInstruction(account, dest, owner, tokenProgram solanago.PublicKey) solanago.Instruction {
	accounts := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(account, true, false),
		solanago.NewAccountMeta(dest, true, false),
		solanago.NewAccountMeta(owner, false, true),
	}

	return solanago.NewInstruction(tokenProgram, accounts, []byte{tokenCloseAccount})
}

// createAssociatedTokenAccountInstruction builds the ATA-program create
// instruction for owner's associated account of mint.
func createAssociatedTokenAccountInstruction(payer, ata, owner, mint, tokenProgram solanago.PublicKey) solanago.Instruction {
	accounts := solanago.AccountMetaSlice{
		solanago.NewAccountMeta(payer, true, true),
		solanago.NewAccountMeta(ata, true, false),
		solanago.NewAccountMeta(owner, false, false),
		solanago.NewAccountMeta(mint, false, false),
		solanago.NewAccountMeta(mustKey(solana.SystemProgramID), false, false),
		solanago.NewAccountMeta(tokenProgram, false, false),
	}

	return solanago.NewInstruction(mustKey(solana.AssociatedTokenProgramID), accounts, []byte{})
}
