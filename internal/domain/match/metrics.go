package match

import (
	"fmt"
	"strings"
)

// RateMode selects the overs denominator for run rate and economy.
type RateMode string

const (
	// RateModeTrueOvers divides by overs as a true fraction (2.3 -> 2.5).
	RateModeTrueOvers RateMode = "true_overs"
	// RateModeDisplayOvers divides by the scorebook decimal (2.3 -> 2.3).
	RateModeDisplayOvers RateMode = "display_overs"
)

func ParseRateMode(v string) (RateMode, error) {
	switch RateMode(strings.ToLower(strings.TrimSpace(v))) {
	case "", RateModeTrueOvers:
		return RateModeTrueOvers, nil
	case RateModeDisplayOvers:
		return RateModeDisplayOvers, nil
	default:
		return "", fmt.Errorf("invalid rate mode %q: valid values are %s, %s", v, RateModeTrueOvers, RateModeDisplayOvers)
	}
}

func (m RateMode) denominator(o Overs) float64 {
	if m == RateModeDisplayOvers {
		return o.Decimal()
	}
	return o.TrueOvers()
}

// RunRate is team runs per over.
func RunRate(t Team, mode RateMode) float64 {
	overs := mode.denominator(t.Overs)
	if overs <= 0 {
		return 0
	}
	return float64(t.Score) / overs
}

// StrikeRate is batsman runs per hundred balls.
func StrikeRate(p Player) float64 {
	if p.Balls <= 0 {
		return 0
	}
	return float64(p.Runs) / float64(p.Balls) * 100
}

// Economy is runs conceded per over bowled.
func Economy(p Player, mode RateMode) float64 {
	overs := mode.denominator(p.Overs)
	if overs <= 0 {
		return 0
	}
	return float64(p.RunsConceded) / overs
}

func FormatRate(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
