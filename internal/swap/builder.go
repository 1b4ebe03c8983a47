package swap

import (
	"context"
	"encoding/base64"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"

	"github.com/jongan69/volume-bot/internal/solana"
	"github.com/jongan69/volume-bot/internal/wallet"
)

// builtTransaction is one signed, submit-ready transaction. Valid only while
// the chain height stays at or below LastValidBlockHeight.
type builtTransaction struct {
	Base64               string
	LastValidBlockHeight uint64
}

// txBuilder assembles and signs swap transactions. Every build fetches a
// fresh blockhash, so a rebuilt transaction is always submittable after a
// failed attempt.
type txBuilder struct {
	rpc    solana.RPCClient
	wallet *wallet.Wallet
}

// build assembles the full transaction for one swap attempt.
//
// Both sides route native SOL through an ephemeral wrapped-SOL account that
// is closed in the same transaction, so no dust account survives: Buy wraps
// amountIn lamports into it as the swap source, Sell uses it as the swap
// destination and unwraps the proceeds on close.
func (b *txBuilder) build(ctx context.Context, side Side, mint string, rawAmount uint64, pool *PoolKeys, params SideParams) (*builtTransaction, error) {
	owner := mustKey(b.wallet.PublicKey())
	tokenProgram := mustKey(solana.TokenProgramID)

	mintInfo, err := b.rpc.GetAccountInfo(ctx, mint)
	if err != nil {
		return nil, fmt.Errorf("mint account info: %w", err)
	}
	if mintInfo == nil {
		return nil, fmt.Errorf("mint %s not found", mint)
	}
	// The mint's owning program governs its associated account (token-2022
	// mints live under a different program id).
	mintProgram := mustKey(mintInfo.Owner)

	ataAddr, err := solana.AssociatedTokenAddress(b.wallet.PublicKey(), mint, mintInfo.Owner)
	if err != nil {
		return nil, fmt.Errorf("derive associated token account: %w", err)
	}
	ata := mustKey(ataAddr)

	ataAmount, err := b.rpc.GetParsedTokenAccount(ctx, ataAddr)
	if err != nil {
		return nil, fmt.Errorf("associated account lookup: %w", err)
	}

	rent, err := b.rpc.GetMinimumBalanceForRentExemption(ctx, solana.TokenAccountSpan)
	if err != nil {
		return nil, fmt.Errorf("rent exemption: %w", err)
	}

	wsolKey, err := solanago.NewRandomPrivateKey()
	if err != nil {
		return nil, fmt.Errorf("generate wrapped account key: %w", err)
	}
	wsol := wsolKey.PublicKey()
	wsolMint := mustKey(solana.WSOLMint)

	blockhash, err := b.rpc.GetLatestBlockhash(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest blockhash: %w", err)
	}
	hash, err := solanago.HashFromBase58(blockhash.Blockhash)
	if err != nil {
		return nil, fmt.Errorf("parse blockhash: %w", err)
	}

	instructions := []solanago.Instruction{
		setComputeUnitPrice(params.ComputeUnitPrice),
		setComputeUnitLimit(params.ComputeUnitLimit),
	}

	switch side {
	case Buy:
		// Wrap amountIn lamports on top of the rent floor.
		instructions = append(instructions,
			createAccountInstruction(owner, wsol, rent+rawAmount, solana.TokenAccountSpan, tokenProgram),
			initializeAccountInstruction(wsol, wsolMint, owner, tokenProgram),
		)
		if ataAmount == nil {
			instructions = append(instructions,
				createAssociatedTokenAccountInstruction(owner, ata, owner, mustKey(mint), mintProgram))
		}
		instructions = append(instructions,
			makeSwapInstruction(rawAmount, 0, wsol, ata, owner, pool, tokenProgram),
			closeAccountInstruction(wsol, owner, owner, tokenProgram),
		)

	case Sell:
		instructions = append(instructions,
			createAccountInstruction(owner, wsol, rent, solana.TokenAccountSpan, tokenProgram),
			initializeAccountInstruction(wsol, wsolMint, owner, tokenProgram),
			makeSwapInstruction(rawAmount, 0, ata, wsol, owner, pool, tokenProgram),
			closeAccountInstruction(wsol, owner, owner, tokenProgram),
		)

	default:
		return nil, fmt.Errorf("unknown side %v", side)
	}

	tx, err := solanago.NewTransaction(instructions, hash, solanago.TransactionPayer(owner))
	if err != nil {
		return nil, fmt.Errorf("assemble transaction: %w", err)
	}

	walletKey := b.wallet.PrivateKey()
	_, err = tx.Sign(func(key solanago.PublicKey) *solanago.PrivateKey {
		switch {
		case key.Equals(owner):
			return &walletKey
		case key.Equals(wsol):
			return &wsolKey
		default:
			return nil
		}
	})
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}

	raw, err := tx.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("serialize transaction: %w", err)
	}

	return &builtTransaction{
		Base64:               base64.StdEncoding.EncodeToString(raw),
		LastValidBlockHeight: blockhash.LastValidBlockHeight,
	}, nil
}
