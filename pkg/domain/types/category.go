package types

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ErrInvalidCategory is the sentinel for malformed category values
var ErrInvalidCategory = goerr.New("invalid category")

// Category represents a risk factor category
type Category string

const (
	CategoryTechnical   Category = "technical"
	CategoryOperational Category = "operational"
	CategoryStrategic   Category = "strategic"
	CategoryCompliance  Category = "compliance"
	CategoryFinancial   Category = "financial"
)

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Validate checks if the Category is valid. Custom categories are allowed as
// long as they follow the lowercase-hyphen ID format.
func (c Category) Validate() error {
	if c == "" {
		return goerr.Wrap(ErrInvalidCategory, "category cannot be empty")
	}
	if !idPattern.MatchString(string(c)) {
		return goerr.Wrap(ErrInvalidCategory, "category must be lowercase alphanumeric with hyphens", goerr.V("category", c))
	}
	return nil
}

// Normalize lowercases and trims the category so that enum spellings like
// "Technical" are accepted at input boundaries.
func (c Category) Normalize() Category {
	return Category(strings.ToLower(strings.TrimSpace(string(c))))
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}
