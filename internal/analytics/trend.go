package analytics

import "math"

// TrendDirection classifies how an exercise's estimated 1RM is moving.
type TrendDirection string

const (
	TrendUp               TrendDirection = "up"
	TrendDown             TrendDirection = "down"
	TrendFlat             TrendDirection = "flat"
	TrendInsufficientData TrendDirection = "insufficient_data"
)

// Trend thresholds. The UI color-codes on these exact values, so changing
// them is a product decision, not a refactor.
const (
	// minTrendPoints is the minimum number of history points with a valid
	// 1RM estimate needed before a direction is claimed.
	minTrendPoints = 3
	// DefaultTrendThresholdPct is the percentage change beyond which a trend
	// is reported as up (>+2.0) or down (<-2.0) instead of flat.
	DefaultTrendThresholdPct = 2.0
)

// Trend is the classification of an exercise's recent 1RM movement.
// Percentage is the change of the later half's mean estimate relative to the
// earlier half's, rounded to one decimal. Confidence is in [0,100].
type Trend struct {
	Direction  TrendDirection `json:"direction"`
	Percentage float64        `json:"percentage"`
	Confidence float64        `json:"confidence"`
}

// ClassifyTrend classifies the direction of an exercise's 1RM history using
// the default ±2% threshold. It is total: degenerate input yields
// insufficient_data, never a panic.
func ClassifyTrend(history []HistoryPoint) Trend {
	return ClassifyTrendWithThreshold(history, DefaultTrendThresholdPct)
}

// ClassifyTrendWithThreshold is ClassifyTrend with a caller-supplied flat
// band, for deployments that tune the threshold in config.
//
// The usable points (those with a 1RM estimate) are split into an earlier
// and a later half — on odd counts the later half gets the extra point —
// and the halves' means are compared.
func ClassifyTrendWithThreshold(history []HistoryPoint, thresholdPct float64) Trend {
	values := make([]float64, 0, len(history))
	for _, p := range history {
		if p.Estimated1RM != nil {
			values = append(values, *p.Estimated1RM)
		}
	}

	if len(values) < minTrendPoints {
		return Trend{Direction: TrendInsufficientData}
	}

	half := len(values) / 2
	earlier := values[:half]
	later := values[half:]

	earlierMean := mean(earlier)
	if earlierMean == 0 {
		return Trend{Direction: TrendInsufficientData}
	}
	laterMean := mean(later)

	// Dividing by the magnitude keeps the sign meaningful for any baseline:
	// negating a rising series yields a falling one with the same percentage.
	pct := round1((laterMean - earlierMean) / math.Abs(earlierMean) * 100)

	direction := TrendFlat
	switch {
	case pct > thresholdPct:
		direction = TrendUp
	case pct < -thresholdPct:
		direction = TrendDown
	}

	return Trend{
		Direction:  direction,
		Percentage: pct,
		Confidence: confidence(values, later),
	}
}

// confidence scores how much to trust a classification, in [0,100].
//
// Two monotonic components: sample size (up to 60 points, saturating at 12
// usable history points) and consistency of the later half (up to 40 points,
// scaled by the inverse of its coefficient of variation — a noisy recent
// block means the mean comparison is less meaningful).
func confidence(all, later []float64) float64 {
	n := float64(len(all))
	if n > 12 {
		n = 12
	}
	sampleScore := 60 * n / 12

	consistencyScore := 0.0
	if m := mean(later); m > 0 {
		cv := stddev(later) / m
		consistencyScore = 40 / (1 + cv)
	}

	return round1(sampleScore + consistencyScore)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
