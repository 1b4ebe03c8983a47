package solana

import (
	"testing"

	"github.com/mr-tron/base58"
)

func TestAssociatedTokenAddress(t *testing.T) {
	owner := "J1S9H3QjnRtBbbuD4HjPV6RpRhwuk4zKbxsnCHuTgh9w"

	tests := []struct {
		name string
		mint string
		want string
	}{
		{
			name: "wrapped SOL",
			mint: WSOLMint,
			want: "GYqzGFX5zRpCT7zZs4MgVAZBySaG6LYHosbvgVrWq7jC",
		},
		{
			name: "USDC",
			mint: "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
			want: "BHEe3cZ5rD6AmPJsmxMPrJ4RVqLhwX5uwjzGPsL2a2r4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AssociatedTokenAddress(owner, tt.mint, TokenProgramID)
			if err != nil {
				t.Fatalf("AssociatedTokenAddress: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestAssociatedTokenAddress_Deterministic(t *testing.T) {
	owner := "J1S9H3QjnRtBbbuD4HjPV6RpRhwuk4zKbxsnCHuTgh9w"

	first, err := AssociatedTokenAddress(owner, WSOLMint, TokenProgramID)
	if err != nil {
		t.Fatalf("AssociatedTokenAddress: %v", err)
	}

	for i := 0; i < 5; i++ {
		got, err := AssociatedTokenAddress(owner, WSOLMint, TokenProgramID)
		if err != nil {
			t.Fatalf("AssociatedTokenAddress: %v", err)
		}
		if got != first {
			t.Fatalf("derivation not deterministic: %s vs %s", got, first)
		}
	}
}

func TestAssociatedTokenAddress_BadInput(t *testing.T) {
	_, err := AssociatedTokenAddress("not-base58-0OIl", WSOLMint, TokenProgramID)
	if err == nil {
		t.Fatal("expected error for invalid owner")
	}
}

func TestIsOnCurve(t *testing.T) {
	// A real ed25519 public key decodes to a curve point.
	onCurve, err := base58.Decode(TokenProgramID)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !isOnCurve(onCurve) {
		t.Error("expected token program id to be on curve")
	}

	// A derived PDA must be off the curve.
	ata, err := AssociatedTokenAddress("J1S9H3QjnRtBbbuD4HjPV6RpRhwuk4zKbxsnCHuTgh9w", WSOLMint, TokenProgramID)
	if err != nil {
		t.Fatalf("AssociatedTokenAddress: %v", err)
	}
	pdaBytes, err := base58.Decode(ata)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if isOnCurve(pdaBytes) {
		t.Error("expected derived address to be off curve")
	}

	if isOnCurve([]byte{1, 2, 3}) {
		t.Error("expected short input to be rejected")
	}
}
