package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// RiskLevel is the qualitative bucket derived from a residual risk score
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "Low"
	RiskLevelMedium   RiskLevel = "Medium"
	RiskLevelHigh     RiskLevel = "High"
	RiskLevelCritical RiskLevel = "Critical"
)

var riskLevelOrder = map[RiskLevel]int{
	RiskLevelLow:      1,
	RiskLevelMedium:   2,
	RiskLevelHigh:     3,
	RiskLevelCritical: 4,
}

// Validate checks if the RiskLevel is one of the known levels
func (r RiskLevel) Validate() error {
	if _, ok := riskLevelOrder[r]; !ok {
		return goerr.New("unknown risk level", goerr.V("level", r))
	}
	return nil
}

// AtLeast reports whether the level is equal to or more severe than other
func (r RiskLevel) AtLeast(other RiskLevel) bool {
	return riskLevelOrder[r] >= riskLevelOrder[other]
}

// String returns the string representation of RiskLevel
func (r RiskLevel) String() string {
	return string(r)
}
