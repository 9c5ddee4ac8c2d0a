package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/model"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/types"
)

type jsonMetadata struct {
	GeneratedAt time.Time `json:"generated_at"`
	Version     string    `json:"version"`
	ReportType  string    `json:"report_type"`
}

type jsonSummary struct {
	TotalAssessments int                     `json:"total_assessments"`
	LevelCounts      map[types.RiskLevel]int `json:"level_counts"`
}

type jsonReport struct {
	Metadata    jsonMetadata            `json:"report_metadata"`
	Summary     jsonSummary             `json:"summary"`
	Assessments []*model.RiskAssessment `json:"assessments"`
}

// WriteJSON renders assessments as a nested JSON report with metadata and a
// severity summary
func (g *Generator) WriteJSON(w io.Writer, assessments []*model.RiskAssessment) error {
	counts := make(map[types.RiskLevel]int)
	for _, a := range assessments {
		counts[a.RiskLevel]++
	}

	doc := jsonReport{
		Metadata: jsonMetadata{
			GeneratedAt: g.now(),
			Version:     g.version,
			ReportType:  "risk_assessment",
		},
		Summary: jsonSummary{
			TotalAssessments: len(assessments),
			LevelCounts:      counts,
		},
		Assessments: assessments,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return goerr.Wrap(err, "failed to encode JSON report")
	}
	return nil
}
