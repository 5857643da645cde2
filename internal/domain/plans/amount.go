package plans

import "strings"

// MajorUnits converts a gateway amount in minor units to major units.
// Zero-decimal currencies are passed through unchanged.
func MajorUnits(amount int64, currency string) float64 {
	if zeroDecimal[strings.ToLower(strings.TrimSpace(currency))] {
		return float64(amount)
	}
	return float64(amount) / 100.0
}

var zeroDecimal = map[string]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true,
	"kmf": true, "krw": true, "mga": true, "pyg": true, "rwf": true,
	"ugx": true, "vnd": true, "vuv": true, "xaf": true, "xof": true, "xpf": true,
}
