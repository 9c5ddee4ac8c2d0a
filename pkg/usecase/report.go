package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/interfaces"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/model"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/types"
	"github.com/nexcomply-lab/nexcomply/pkg/service/report"
)

type ReportUseCase struct {
	repo     interfaces.Repository
	reporter *report.Generator
}

func NewReportUseCase(repo interfaces.Repository, reporter *report.Generator) *ReportUseCase {
	return &ReportUseCase{
		repo:     repo,
		reporter: reporter,
	}
}

// Generate renders a report of the given assessments to dest. An empty ID
// list selects every stored assessment.
func (uc *ReportUseCase) Generate(ctx context.Context, ids []types.AssessmentID, dest string, formats []report.Format) ([]string, error) {
	var assessments []*model.RiskAssessment

	if len(ids) == 0 {
		all, err := uc.repo.Assessment().List(ctx)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list assessments for report")
		}
		assessments = all
	} else {
		for _, id := range ids {
			a, err := uc.repo.Assessment().Get(ctx, id)
			if err != nil {
				return nil, goerr.Wrap(err, "failed to load assessment for report", goerr.V("id", id))
			}
			assessments = append(assessments, a)
		}
	}

	if len(assessments) == 0 {
		return nil, goerr.Wrap(ErrNoAssessments, "cannot generate report")
	}

	locations, err := uc.reporter.Generate(ctx, assessments, dest, formats)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate report", goerr.V("dest", dest))
	}
	return locations, nil
}
