// Package validate classifies raw operator input before anything is
// sent to the network.
package validate

import (
	"strings"

	"github.com/gagliardetto/solana-go"

	"solex/pkg/models"
)

// Classify reports whether text is a transaction signature (base58 of
// exactly 64 bytes), an account address (base58 of exactly 32 bytes) or
// neither. It is a pure function of the trimmed text.
func Classify(text string) models.QueryKind {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return models.KindInvalid
	}
	if _, err := solana.SignatureFromBase58(trimmed); err == nil {
		return models.KindSignature
	}
	if _, err := solana.PublicKeyFromBase58(trimmed); err == nil {
		return models.KindAddress
	}
	return models.KindInvalid
}
