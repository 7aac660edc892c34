package client

import (
	"strings"

	solanago "github.com/gagliardetto/solana-go"

	"github.com/krazyTry/solswap-go/decimal_math"
)

const (
	SOLDecimals  = 9
	USDCDecimals = 6
)

// FormatAmount renders raw base units as "1,234.50 SYMBOL".
func FormatAmount(raw uint64, decimals uint8, symbol string) string {
	fixed := decimal_math.UiAmount(raw, decimals).StringFixed(2)

	integer, fraction, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, ch := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	return b.String() + "." + fraction + " " + symbol
}

// defaultSymbol labels the wrapped SOL mint SOL and anything else USDC.
func defaultSymbol(mint solanago.PublicKey) (string, uint8) {
	if mint.Equals(solanago.WrappedSol) {
		return "SOL", SOLDecimals
	}
	return "USDC", USDCDecimals
}
