package engine

import (
	"math"

	"eventbt/types"

	"github.com/shopspring/decimal"
)

// Performance metrics are pure functions of the holdings history. They
// never touch portfolio state, so re-running the same event sequence
// reproduces them exactly. Undefined values come back as NaN.

func equityCurve(holdings []types.HoldingsSnapshot) []decimal.Decimal {
	curve := make([]decimal.Decimal, len(holdings))
	for i, h := range holdings {
		curve[i] = h.TotalEquity
	}
	return curve
}

// periodReturns is r_i = equity_i/equity_{i-1} - 1 for i >= 1. The first
// snapshot has no return.
func periodReturns(equity []decimal.Decimal) []float64 {
	if len(equity) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		prev := equity[i-1]
		if prev.IsZero() {
			returns = append(returns, math.NaN())
			continue
		}
		r := equity[i].Div(prev).Sub(decimal.NewFromInt(1))
		returns = append(returns, r.InexactFloat64())
	}
	return returns
}

func cumulativeReturn(equity []decimal.Decimal) float64 {
	if len(equity) == 0 || equity[0].IsZero() {
		return math.NaN()
	}
	last := equity[len(equity)-1]
	return last.Div(equity[0]).Sub(decimal.NewFromInt(1)).InexactFloat64()
}

// sharpeRatio annualizes mean(r)/stdev(r) by sqrt(periods), where periods
// is the number of bars per trading year. NaN when fewer than 2 returns
// exist or the returns have zero variance.
func sharpeRatio(returns []float64, periods float64) float64 {
	if len(returns) < 2 {
		return math.NaN()
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	var varianceSum float64
	for _, r := range returns {
		diff := r - mean
		varianceSum += diff * diff
	}
	stdev := math.Sqrt(varianceSum / float64(len(returns)-1))
	if stdev == 0 {
		return math.NaN()
	}

	return mean / stdev * math.Sqrt(periods)
}

// maxDrawdown returns the largest peak-to-trough decline as a fraction of
// the running peak, plus the longest stretch of consecutive bars spent in
// drawdown. Both are 0 for a monotonically non-decreasing curve.
func maxDrawdown(equity []decimal.Decimal) (float64, int) {
	if len(equity) == 0 {
		return 0, 0
	}

	peak := equity[0]
	maxDD := decimal.Zero
	maxDuration := 0
	duration := 0

	for _, eq := range equity {
		if eq.GreaterThan(peak) {
			peak = eq
		}
		if eq.LessThan(peak) {
			duration++
			if duration > maxDuration {
				maxDuration = duration
			}
			if peak.GreaterThan(decimal.Zero) {
				dd := peak.Sub(eq).Div(peak)
				if dd.GreaterThan(maxDD) {
					maxDD = dd
				}
			}
		} else {
			duration = 0
		}
	}

	return maxDD.InexactFloat64(), maxDuration
}
