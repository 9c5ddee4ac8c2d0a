package memory

import (
	"github.com/nexcomply-lab/nexcomply/pkg/domain/interfaces"
)

// Memory is an in-memory repository for development and tests
type Memory struct {
	assessment *assessmentRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		assessment: newAssessmentRepository(),
	}
}

func (m *Memory) Assessment() interfaces.AssessmentRepository {
	return m.assessment
}

func (m *Memory) Close() error {
	return nil
}
