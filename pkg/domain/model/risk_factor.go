package model

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/types"
)

// RiskFactor is one named driver of risk with its own likelihood, impact and
// controls. Values are immutable inputs constructed per assessment request.
type RiskFactor struct {
	Name                 string         `json:"name" firestore:"name"`
	Category             types.Category `json:"category" firestore:"category"`
	Likelihood           int            `json:"likelihood" firestore:"likelihood"`
	Impact               int            `json:"impact" firestore:"impact"`
	CurrentControls      string         `json:"current_controls" firestore:"current_controls"`
	ControlEffectiveness float64        `json:"control_effectiveness" firestore:"control_effectiveness"`
}

// NewRiskFactor builds a RiskFactor with likelihood and impact clamped to
// [1,5], control effectiveness clamped to [0,100] and the category
// normalized to its lowercase form. Out-of-range values from noisy upstream
// input are repaired rather than rejected.
func NewRiskFactor(name string, category types.Category, likelihood, impact int, currentControls string, controlEffectiveness float64) RiskFactor {
	return RiskFactor{
		Name:                 name,
		Category:             category.Normalize(),
		Likelihood:           clampInt(likelihood, 1, 5),
		Impact:               clampInt(impact, 1, 5),
		CurrentControls:      currentControls,
		ControlEffectiveness: clampFloat(controlEffectiveness, 0, 100),
	}
}

// Validate checks the fields that cannot be repaired by clamping
func (f *RiskFactor) Validate() error {
	if f.Name == "" {
		return goerr.Wrap(ErrEmptyFactorName, "invalid risk factor")
	}
	if err := f.Category.Validate(); err != nil {
		return goerr.Wrap(err, "invalid risk factor", goerr.V("name", f.Name))
	}
	if f.Likelihood < 1 || f.Likelihood > 5 {
		return goerr.New("likelihood must be between 1 and 5", goerr.V("name", f.Name), goerr.V("likelihood", f.Likelihood))
	}
	if f.Impact < 1 || f.Impact > 5 {
		return goerr.New("impact must be between 1 and 5", goerr.V("name", f.Name), goerr.V("impact", f.Impact))
	}
	if f.ControlEffectiveness < 0 || f.ControlEffectiveness > 100 {
		return goerr.New("control effectiveness must be between 0 and 100", goerr.V("name", f.Name), goerr.V("effectiveness", f.ControlEffectiveness))
	}
	return nil
}

// Clamped returns a copy with likelihood, impact and effectiveness forced
// into their valid ranges and the category normalized
func (f RiskFactor) Clamped() RiskFactor {
	f.Category = f.Category.Normalize()
	f.Likelihood = clampInt(f.Likelihood, 1, 5)
	f.Impact = clampInt(f.Impact, 1, 5)
	f.ControlEffectiveness = clampFloat(f.ControlEffectiveness, 0, 100)
	return f
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
