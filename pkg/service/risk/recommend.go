package risk

import (
	"fmt"

	"github.com/nexcomply-lab/nexcomply/pkg/domain/model"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/types"
)

// recommend emits mitigation guidance per factor. A factor whose residual
// score maps to High or Critical gets a strengthen-or-reduce recommendation;
// a factor with control effectiveness below the policy threshold always gets
// an improvement recommendation, even when its residual level is Low. This
// catches weakly-controlled risks before they manifest as severe.
func (a *Assessor) recommend(factors []model.RiskFactor, scores []model.FactorScore) []string {
	var recommendations []string

	for i, f := range factors {
		level := a.policy.Level(scores[i].ResidualScore)
		if level.AtLeast(types.RiskLevelHigh) {
			if f.CurrentControls != "" {
				recommendations = append(recommendations, fmt.Sprintf(
					"%s: residual risk is %s; strengthen the existing controls (%s) or reduce the likelihood/impact drivers",
					f.Name, level, f.CurrentControls))
			} else {
				recommendations = append(recommendations, fmt.Sprintf(
					"%s: residual risk is %s; establish mitigating controls or reduce the likelihood/impact drivers",
					f.Name, level))
			}
		}

		if f.ControlEffectiveness < a.policy.WeakControlThreshold {
			recommendations = append(recommendations, fmt.Sprintf(
				"%s: control effectiveness is %.0f%%; improve control effectiveness to at least %.0f%%",
				f.Name, f.ControlEffectiveness, a.policy.WeakControlThreshold))
		}
	}

	return recommendations
}
