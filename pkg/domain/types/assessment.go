package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// AssessmentID is the repository-level identifier of a stored assessment.
// It is generated by the engine, unlike RiskID which is caller-supplied.
type AssessmentID string

// NewAssessmentID generates a new random AssessmentID
func NewAssessmentID() AssessmentID {
	return AssessmentID(uuid.New().String())
}

// Validate checks if the AssessmentID is valid
func (a AssessmentID) Validate() error {
	if a == "" {
		return goerr.New("assessment ID cannot be empty")
	}
	return nil
}

// String returns the string representation of AssessmentID
func (a AssessmentID) String() string {
	return string(a)
}

// RiskID is a caller-supplied identifier attached to an assessment. It is
// used only as an output label; uniqueness is a caller concern.
type RiskID string

// Validate checks if the RiskID is valid
func (r RiskID) Validate() error {
	if r == "" {
		return goerr.New("risk ID cannot be empty")
	}
	return nil
}

// String returns the string representation of RiskID
func (r RiskID) String() string {
	return string(r)
}
