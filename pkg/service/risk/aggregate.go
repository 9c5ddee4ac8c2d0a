package risk

// Aggregator reduces per-factor scores into a single assessment score. The
// aggregation rule is a policy choice, not a fixed law: the default is
// MaxAggregator (weakest-link posture), which is the most auditable
// interpretation for compliance work.
type Aggregator func(scores []float64) float64

// MaxAggregator returns the maximum per-factor score. The score of an
// assessment is driven by its worst factor.
func MaxAggregator(scores []float64) float64 {
	var max float64
	for _, s := range scores {
		if s > max {
			max = s
		}
	}
	return max
}

// WeightedAverageAggregator averages per-factor scores. Callers preferring
// portfolio-style semantics can install it via WithAggregator.
func WeightedAverageAggregator(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}
