package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/types"
)

// Default threshold values on the 1-25 matrix scale
const (
	DefaultLowMax               = 5.0
	DefaultMediumMax            = 10.0
	DefaultHighMax              = 15.0
	DefaultWeakControlThreshold = 50.0
	DefaultMaxScore             = 25.0
)

// RiskPolicy holds the configurable scoring thresholds. Scores are on the
// 5x5 matrix scale (1-25). A residual score at or below LowMax maps to Low,
// at or below MediumMax to Medium, at or below HighMax to High, and anything
// above HighMax to Critical.
type RiskPolicy struct {
	LowMax    float64
	MediumMax float64
	HighMax   float64

	// WeakControlThreshold is the control effectiveness percentage below
	// which an improvement recommendation is always emitted, regardless of
	// the residual risk level.
	WeakControlThreshold float64
}

// DefaultRiskPolicy returns the standard 5x5 matrix thresholds
func DefaultRiskPolicy() *RiskPolicy {
	return &RiskPolicy{
		LowMax:               DefaultLowMax,
		MediumMax:            DefaultMediumMax,
		HighMax:              DefaultHighMax,
		WeakControlThreshold: DefaultWeakControlThreshold,
	}
}

// Validate checks that the threshold bands are monotonic. This is detected
// at engine initialization, not per call.
func (p *RiskPolicy) Validate() error {
	if p.LowMax <= 0 {
		return goerr.New("low threshold must be positive", goerr.V("low_max", p.LowMax))
	}
	if p.MediumMax <= p.LowMax {
		return goerr.New("medium threshold must be greater than low threshold",
			goerr.V("low_max", p.LowMax), goerr.V("medium_max", p.MediumMax))
	}
	if p.HighMax <= p.MediumMax {
		return goerr.New("high threshold must be greater than medium threshold",
			goerr.V("medium_max", p.MediumMax), goerr.V("high_max", p.HighMax))
	}
	if p.HighMax > DefaultMaxScore {
		return goerr.New("high threshold exceeds the 5x5 matrix maximum",
			goerr.V("high_max", p.HighMax), goerr.V("max", DefaultMaxScore))
	}
	if p.WeakControlThreshold < 0 || p.WeakControlThreshold > 100 {
		return goerr.New("weak control threshold must be between 0 and 100",
			goerr.V("threshold", p.WeakControlThreshold))
	}
	return nil
}

// Level maps a residual score to its qualitative risk level. Boundaries are
// inclusive on the upper bound of each band.
func (p *RiskPolicy) Level(score float64) types.RiskLevel {
	switch {
	case score <= p.LowMax:
		return types.RiskLevelLow
	case score <= p.MediumMax:
		return types.RiskLevelMedium
	case score <= p.HighMax:
		return types.RiskLevelHigh
	default:
		return types.RiskLevelCritical
	}
}
