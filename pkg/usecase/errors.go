package usecase

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for use case layer
var (
	ErrFrameworkNotFound = goerr.New("framework not found")
	ErrNoAssessments     = goerr.New("no assessments available for reporting")
)
