package risk

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/model"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/model/config"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/types"
)

// Assessor computes inherent and residual risk scores from weighted risk
// factors on the 5x5 matrix. It is a pure, stateless computation: safe for
// concurrent use without synchronization.
type Assessor struct {
	policy    *config.RiskPolicy
	aggregate Aggregator
}

type Option func(*Assessor)

// WithAggregator replaces the default max (weakest-link) aggregation
func WithAggregator(agg Aggregator) Option {
	return func(a *Assessor) {
		a.aggregate = agg
	}
}

// New builds an Assessor. The policy is validated here so that non-monotonic
// threshold bands fail at initialization rather than per call. A nil policy
// selects the documented defaults.
func New(policy *config.RiskPolicy, opts ...Option) (*Assessor, error) {
	if policy == nil {
		policy = config.DefaultRiskPolicy()
	}
	if err := policy.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid risk policy")
	}

	a := &Assessor{
		policy:    policy,
		aggregate: MaxAggregator,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// MustNew is like New but panics on an invalid policy. Intended for
// defaults and tests where the policy is statically known to be valid.
func MustNew(policy *config.RiskPolicy, opts ...Option) *Assessor {
	a, err := New(policy, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// Assess transforms risk factors into a RiskAssessment. Factor order is
// preserved in the result for traceability. Likelihood, impact and control
// effectiveness are clamped into range rather than rejected; only an empty
// factor list, an empty risk ID or an unrepairable factor (empty name,
// malformed category) fail.
func (a *Assessor) Assess(factors []model.RiskFactor, riskID types.RiskID, description string) (*model.RiskAssessment, error) {
	if len(factors) == 0 {
		return nil, goerr.Wrap(model.ErrEmptyFactors, "cannot assess risk", goerr.V("risk_id", riskID))
	}
	if err := riskID.Validate(); err != nil {
		return nil, goerr.Wrap(model.ErrEmptyRiskID, "cannot assess risk")
	}

	clamped := make([]model.RiskFactor, len(factors))
	for i, f := range factors {
		c := f.Clamped()
		if err := c.Validate(); err != nil {
			return nil, goerr.Wrap(err, "cannot assess risk", goerr.V("risk_id", riskID), goerr.V("factor_index", i))
		}
		clamped[i] = c
	}

	scores := make([]model.FactorScore, len(clamped))
	inherents := make([]float64, len(clamped))
	residuals := make([]float64, len(clamped))
	for i, f := range clamped {
		inherent := float64(f.Likelihood * f.Impact)
		residual := inherent * (1 - f.ControlEffectiveness/100)
		if residual < 0 {
			residual = 0
		}
		if residual > inherent {
			residual = inherent
		}

		scores[i] = model.FactorScore{
			Name:          f.Name,
			InherentScore: inherent,
			ResidualScore: residual,
		}
		inherents[i] = inherent
		residuals[i] = residual
	}

	residualScore := a.aggregate(residuals)

	return &model.RiskAssessment{
		ID:                types.NewAssessmentID(),
		RiskID:            riskID,
		Description:       description,
		Factors:           clamped,
		FactorScores:      scores,
		InherentRiskScore: a.aggregate(inherents),
		ResidualRiskScore: residualScore,
		RiskLevel:         a.policy.Level(residualScore),
		Recommendations:   a.recommend(clamped, scores),
		CreatedAt:         time.Now().UTC(),
	}, nil
}
