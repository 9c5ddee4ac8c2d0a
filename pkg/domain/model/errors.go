package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for input validation. These mark caller mistakes and are
// never retried; HTTP layers map them to 422.
var (
	ErrEmptyFactors    = goerr.New("at least one risk factor is required")
	ErrEmptyRiskID     = goerr.New("risk ID is required")
	ErrEmptyFactorName = goerr.New("risk factor name is required")
)

// ErrAssessmentNotFound is returned by repositories when the requested
// assessment does not exist. HTTP layers map it to 404.
var ErrAssessmentNotFound = goerr.New("assessment not found")
