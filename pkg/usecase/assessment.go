package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/interfaces"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/model"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/types"
	"github.com/nexcomply-lab/nexcomply/pkg/service/risk"
	"github.com/nexcomply-lab/nexcomply/pkg/service/slack"
	"github.com/nexcomply-lab/nexcomply/pkg/utils/async"
	"github.com/nexcomply-lab/nexcomply/pkg/utils/logging"
)

type AssessmentUseCase struct {
	repo         interfaces.Repository
	assessor     *risk.Assessor
	slackService slack.Service
}

func NewAssessmentUseCase(repo interfaces.Repository, assessor *risk.Assessor, slackService slack.Service) *AssessmentUseCase {
	return &AssessmentUseCase{
		repo:         repo,
		assessor:     assessor,
		slackService: slackService,
	}
}

// AssessInput carries one assessment request
type AssessInput struct {
	RiskID      types.RiskID
	Description string
	Factors     []model.RiskFactor
}

// Assess scores the factors, stores the resulting snapshot and notifies
// Slack asynchronously for High/Critical results. Scoring errors surface
// synchronously; there is no partial success.
func (uc *AssessmentUseCase) Assess(ctx context.Context, input AssessInput) (*model.RiskAssessment, error) {
	assessment, err := uc.assessor.Assess(input.Factors, input.RiskID, input.Description)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Assessment().Create(ctx, assessment); err != nil {
		return nil, goerr.Wrap(err, "failed to store assessment", goerr.V("risk_id", input.RiskID))
	}

	logging.From(ctx).Info("risk assessed",
		"risk_id", assessment.RiskID,
		"level", assessment.RiskLevel,
		"inherent", assessment.InherentRiskScore,
		"residual", assessment.ResidualRiskScore,
	)

	if uc.slackService != nil {
		async.Dispatch(ctx, func(ctx context.Context) error {
			return uc.slackService.NotifyAssessment(ctx, assessment)
		})
	}

	return assessment, nil
}

// Get retrieves a stored assessment by ID
func (uc *AssessmentUseCase) Get(ctx context.Context, id types.AssessmentID) (*model.RiskAssessment, error) {
	assessment, err := uc.repo.Assessment().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get assessment", goerr.V("id", id))
	}
	return assessment, nil
}

// List retrieves all stored assessments, newest first
func (uc *AssessmentUseCase) List(ctx context.Context) ([]*model.RiskAssessment, error) {
	assessments, err := uc.repo.Assessment().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assessments")
	}
	return assessments, nil
}

// ListByRisk retrieves all stored assessments for a risk, newest first
func (uc *AssessmentUseCase) ListByRisk(ctx context.Context, riskID types.RiskID) ([]*model.RiskAssessment, error) {
	assessments, err := uc.repo.Assessment().ListByRisk(ctx, riskID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list assessments by risk", goerr.V("risk_id", riskID))
	}
	return assessments, nil
}

// Delete removes a stored assessment
func (uc *AssessmentUseCase) Delete(ctx context.Context, id types.AssessmentID) error {
	if err := uc.repo.Assessment().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete assessment", goerr.V("id", id))
	}
	return nil
}
