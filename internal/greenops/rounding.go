package greenops

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// RoundingMode selects how results are rounded to ResultPrecision places.
type RoundingMode string

const (
	// RoundHalfUp rounds ties away from zero on the decimal value, so that
	// 1.825 becomes 1.83. This is the default.
	RoundHalfUp RoundingMode = "half-up"

	// RoundHalfEven rounds ties to the even neighbour (banker's rounding), so
	// that 1.825 becomes 1.82.
	RoundHalfEven RoundingMode = "half-even"
)

// RoundingModes lists the accepted modes.
func RoundingModes() []RoundingMode {
	return []RoundingMode{RoundHalfUp, RoundHalfEven}
}

// ParseRoundingMode maps a mode name to a RoundingMode. An empty name
// selects RoundHalfUp. Underscores are accepted in place of dashes.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-") {
	case "", string(RoundHalfUp):
		return RoundHalfUp, nil
	case string(RoundHalfEven):
		return RoundHalfEven, nil
	default:
		return "", fmt.Errorf("%w: %q (want %s or %s)", ErrUnknownRounding, s, RoundHalfUp, RoundHalfEven)
	}
}

func (m RoundingMode) round(d decimal.Decimal) decimal.Decimal {
	if m == RoundHalfEven {
		return d.RoundBank(ResultPrecision)
	}
	return d.Round(ResultPrecision)
}

// Round rounds v to ResultPrecision places using the mode. The decimal
// value is taken from the shortest representation of v, so 1.825 rounds as
// written rather than as its binary approximation.
func (m RoundingMode) Round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return m.round(decimal.NewFromFloat(v)).InexactFloat64()
}
