package model

import (
	"time"

	"github.com/nexcomply-lab/nexcomply/pkg/domain/types"
)

// FactorScore is the per-factor score breakdown. It is kept in the same order
// as the input factors so callers needing other aggregation semantics
// (e.g. weighted average) can recompute from it.
type FactorScore struct {
	Name          string  `json:"name" firestore:"name"`
	InherentScore float64 `json:"inherent_score" firestore:"inherent_score"`
	ResidualScore float64 `json:"residual_score" firestore:"residual_score"`
}

// RiskAssessment is the result of one assessment call. It is created once,
// returned to the caller and never mutated afterwards; downstream consumers
// treat it as a read-only snapshot.
type RiskAssessment struct {
	ID                types.AssessmentID `json:"id" firestore:"id"`
	RiskID            types.RiskID       `json:"risk_id" firestore:"risk_id"`
	Description       string             `json:"description" firestore:"description"`
	Factors           []RiskFactor       `json:"factors" firestore:"factors"`
	FactorScores      []FactorScore      `json:"factor_scores" firestore:"factor_scores"`
	InherentRiskScore float64            `json:"inherent_risk_score" firestore:"inherent_risk_score"`
	ResidualRiskScore float64            `json:"residual_risk_score" firestore:"residual_risk_score"`
	RiskLevel         types.RiskLevel    `json:"risk_level" firestore:"risk_level"`
	Recommendations   []string           `json:"recommendations" firestore:"recommendations"`
	CreatedAt         time.Time          `json:"created_at" firestore:"created_at"`
}
