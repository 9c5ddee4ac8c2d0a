package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/model"
)

// csvHeader documents the row layout: one row per factor, with the
// assessment-level columns repeated on each row. This keeps the per-factor
// breakdown available to spreadsheet consumers.
var csvHeader = []string{
	"risk_id",
	"description",
	"risk_level",
	"inherent_risk_score",
	"residual_risk_score",
	"factor_name",
	"factor_category",
	"likelihood",
	"impact",
	"control_effectiveness",
	"factor_inherent_score",
	"factor_residual_score",
	"recommendations",
}

// WriteCSV renders assessments as CSV, one row per factor
func (g *Generator) WriteCSV(w io.Writer, assessments []*model.RiskAssessment) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return goerr.Wrap(err, "failed to write CSV header")
	}

	for _, a := range assessments {
		recommendations := strings.Join(a.Recommendations, "; ")
		for i, f := range a.Factors {
			row := []string{
				a.RiskID.String(),
				a.Description,
				a.RiskLevel.String(),
				formatScore(a.InherentRiskScore),
				formatScore(a.ResidualRiskScore),
				f.Name,
				f.Category.String(),
				strconv.Itoa(f.Likelihood),
				strconv.Itoa(f.Impact),
				formatScore(f.ControlEffectiveness),
				formatScore(a.FactorScores[i].InherentScore),
				formatScore(a.FactorScores[i].ResidualScore),
				recommendations,
			}
			if err := cw.Write(row); err != nil {
				return goerr.Wrap(err, "failed to write CSV row", goerr.V("risk_id", a.RiskID))
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return goerr.Wrap(err, "failed to flush CSV")
	}
	return nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
