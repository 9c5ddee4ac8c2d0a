package usecase

import (
	"github.com/nexcomply-lab/nexcomply/pkg/domain/interfaces"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/model"
	"github.com/nexcomply-lab/nexcomply/pkg/service/report"
	"github.com/nexcomply-lab/nexcomply/pkg/service/risk"
	"github.com/nexcomply-lab/nexcomply/pkg/service/slack"
)

type UseCases struct {
	repo         interfaces.Repository
	assessor     *risk.Assessor
	registry     *model.FrameworkRegistry
	slackService slack.Service
	reporter     *report.Generator

	Assessment *AssessmentUseCase
	Framework  *FrameworkUseCase
	Report     *ReportUseCase
}

type Option func(*UseCases)

// WithAssessor installs a scoring engine built from a non-default policy
func WithAssessor(assessor *risk.Assessor) Option {
	return func(uc *UseCases) {
		uc.assessor = assessor
	}
}

// WithFrameworkRegistry installs the frameworks loaded at startup
func WithFrameworkRegistry(registry *model.FrameworkRegistry) Option {
	return func(uc *UseCases) {
		uc.registry = registry
	}
}

// WithSlackService enables assessment notifications
func WithSlackService(svc slack.Service) Option {
	return func(uc *UseCases) {
		uc.slackService = svc
	}
}

// WithReportGenerator replaces the default report generator
func WithReportGenerator(g *report.Generator) Option {
	return func(uc *UseCases) {
		uc.reporter = g
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.assessor == nil {
		uc.assessor = risk.MustNew(nil)
	}
	if uc.registry == nil {
		uc.registry = model.NewFrameworkRegistry()
	}
	if uc.reporter == nil {
		uc.reporter = report.New()
	}

	uc.Assessment = NewAssessmentUseCase(repo, uc.assessor, uc.slackService)
	uc.Framework = NewFrameworkUseCase(uc.registry)
	uc.Report = NewReportUseCase(repo, uc.reporter)

	return uc
}
