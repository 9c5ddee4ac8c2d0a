package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// FrameworkID represents a unique identifier for a compliance framework
type FrameworkID string

// Validate checks if the FrameworkID is valid
func (f FrameworkID) Validate() error {
	if f == "" {
		return goerr.New("framework ID cannot be empty")
	}
	if !idPattern.MatchString(string(f)) {
		return goerr.New("framework ID must be lowercase alphanumeric with hyphens", goerr.V("id", f))
	}
	return nil
}

// String returns the string representation of FrameworkID
func (f FrameworkID) String() string {
	return string(f)
}

// ControlID represents an identifier of a single framework control (e.g. "A.5.1").
// Control IDs follow each framework's own numbering, so only emptiness is checked.
type ControlID string

// Validate checks if the ControlID is valid
func (c ControlID) Validate() error {
	if c == "" {
		return goerr.New("control ID cannot be empty")
	}
	return nil
}

// String returns the string representation of ControlID
func (c ControlID) String() string {
	return string(c)
}
