package utils

import (
	"fmt"
	"math/big"
	"strings"
)

// lamportsPerSol is the fixed conversion between the chain's base unit
// and SOL.
const lamportsPerSol = 1_000_000_000

func TruncateString(str string, num int) string {
	if len(str) <= num {
		return str
	}
	if num <= 3 {
		return str[:num]
	}
	return str[0:num-3] + "..."
}

func AddCommas(s string) string {
	if len(s) == 0 {
		return s
	}
	parts := strings.Split(s, ".")
	integerPart := parts[0]
	sign := ""
	if strings.HasPrefix(integerPart, "-") {
		sign = "-"
		integerPart = integerPart[1:]
	}

	n := len(integerPart)
	if n <= 3 {
		return s
	}

	var result strings.Builder
	result.WriteString(sign)
	remainder := n % 3
	if remainder > 0 {
		result.WriteString(integerPart[:remainder])
		result.WriteString(",")
	}
	for i := remainder; i < n; i += 3 {
		if i > remainder {
			result.WriteString(",")
		}
		result.WriteString(integerPart[i : i+3])
	}

	if len(parts) > 1 {
		result.WriteString(".")
		result.WriteString(parts[1])
	}
	return result.String()
}

func FormatFloat(f float64, decimals int) string {
	return AddCommas(fmt.Sprintf("%.*f", decimals, f))
}

// FormatLamports renders a lamport amount in SOL with trailing zeros
// trimmed, e.g. 1500000000 -> "1.5".
func FormatLamports(lamports uint64) string {
	sol := new(big.Float).Quo(new(big.Float).SetUint64(lamports), big.NewFloat(lamportsPerSol))
	return AddCommas(trimTrailingZeros(sol.Text('f', 9)))
}

// FormatSignedLamports renders a balance delta in SOL with an explicit
// sign for nonzero values.
func FormatSignedLamports(delta int64) string {
	switch {
	case delta > 0:
		return "+" + FormatLamports(uint64(delta))
	case delta < 0:
		return "-" + FormatLamports(uint64(-delta))
	default:
		return "0"
	}
}

// FormatTokenAmount renders a raw SPL token amount. When decimals are
// unknown the raw integer is shown as-is, marked "(raw)".
func FormatTokenAmount(amount uint64, decimals uint8, decimalsKnown bool) string {
	if !decimalsKnown {
		return AddCommas(fmt.Sprintf("%d", amount)) + " (raw)"
	}
	if decimals == 0 {
		return AddCommas(fmt.Sprintf("%d", amount))
	}
	divisor := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	value := new(big.Float).Quo(new(big.Float).SetUint64(amount), divisor)
	return AddCommas(trimTrailingZeros(value.Text('f', int(decimals))))
}

func trimTrailingZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
