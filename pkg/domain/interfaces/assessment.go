package interfaces

import (
	"context"

	"github.com/nexcomply-lab/nexcomply/pkg/domain/model"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/types"
)

type AssessmentRepository interface {
	// Create stores a new assessment snapshot. The assessment is never
	// mutated after creation.
	Create(ctx context.Context, assessment *model.RiskAssessment) error

	// Get retrieves an assessment by ID
	Get(ctx context.Context, id types.AssessmentID) (*model.RiskAssessment, error)

	// List retrieves all assessments, newest first
	List(ctx context.Context) ([]*model.RiskAssessment, error)

	// ListByRisk retrieves all assessments for a risk, newest first
	ListByRisk(ctx context.Context, riskID types.RiskID) ([]*model.RiskAssessment, error)

	// Delete deletes an assessment by ID
	Delete(ctx context.Context, id types.AssessmentID) error
}
