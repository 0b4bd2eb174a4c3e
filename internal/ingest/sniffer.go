package ingest

import "strings"

// Format identifies which adapter parses a decoded export.
type Format int

// The closed set of supported export formats.
const (
	FormatGeneric Format = iota
	FormatWalletA
	FormatWalletW
)

func (f Format) String() string {
	switch f {
	case FormatWalletA:
		return "walletA"
	case FormatWalletW:
		return "walletW"
	default:
		return "generic"
	}
}

// sniffLineLimit caps how many leading lines are examined for markers.
const sniffLineLimit = 10

// Marker substrings the wallet apps embed in their export headers.
const (
	markerWalletA = "支付宝"
	markerWalletW = "微信支付"
)

// Sniff classifies decoded export lines by scanning the leading lines for
// wallet markers. First match wins; absence of either marker classifies the
// file as Generic. The caller keeps the lines, so the matched adapter
// re-reads from the top.
func Sniff(lines []string) Format {
	limit := sniffLineLimit
	if len(lines) < limit {
		limit = len(lines)
	}

	for _, line := range lines[:limit] {
		switch {
		case strings.Contains(line, markerWalletA):
			return FormatWalletA
		case strings.Contains(line, markerWalletW):
			return FormatWalletW
		}
	}
	return FormatGeneric
}
