package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/model"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/types"
)

type assessmentRepository struct {
	mu          sync.RWMutex
	assessments map[types.AssessmentID]*model.RiskAssessment
}

func newAssessmentRepository() *assessmentRepository {
	return &assessmentRepository{
		assessments: make(map[types.AssessmentID]*model.RiskAssessment),
	}
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *model.RiskAssessment) error {
	if err := assessment.ID.Validate(); err != nil {
		return goerr.Wrap(err, "cannot store assessment")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.assessments[assessment.ID]; exists {
		return goerr.Wrap(ErrAlreadyExists, "assessment already stored", goerr.V("id", assessment.ID))
	}

	r.assessments[assessment.ID] = copyAssessment(assessment)
	return nil
}

func (r *assessmentRepository) Get(ctx context.Context, id types.AssessmentID) (*model.RiskAssessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assessment, exists := r.assessments[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
	}

	return copyAssessment(assessment), nil
}

func (r *assessmentRepository) List(ctx context.Context) ([]*model.RiskAssessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assessments := make([]*model.RiskAssessment, 0, len(r.assessments))
	for _, a := range r.assessments {
		assessments = append(assessments, copyAssessment(a))
	}

	sort.Slice(assessments, func(i, j int) bool {
		return assessments[i].CreatedAt.After(assessments[j].CreatedAt)
	})

	return assessments, nil
}

func (r *assessmentRepository) ListByRisk(ctx context.Context, riskID types.RiskID) ([]*model.RiskAssessment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var assessments []*model.RiskAssessment
	for _, a := range r.assessments {
		if a.RiskID == riskID {
			assessments = append(assessments, copyAssessment(a))
		}
	}

	sort.Slice(assessments, func(i, j int) bool {
		return assessments[i].CreatedAt.After(assessments[j].CreatedAt)
	})

	return assessments, nil
}

func (r *assessmentRepository) Delete(ctx context.Context, id types.AssessmentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.assessments[id]; !exists {
		return goerr.Wrap(ErrNotFound, "assessment not found", goerr.V("id", id))
	}

	delete(r.assessments, id)
	return nil
}

// copyAssessment returns a deep copy to prevent external modification of the
// stored snapshot
func copyAssessment(a *model.RiskAssessment) *model.RiskAssessment {
	copied := *a
	copied.Factors = append([]model.RiskFactor(nil), a.Factors...)
	copied.FactorScores = append([]model.FactorScore(nil), a.FactorScores...)
	copied.Recommendations = append([]string(nil), a.Recommendations...)
	return &copied
}
