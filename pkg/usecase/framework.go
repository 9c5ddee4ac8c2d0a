package usecase

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/model"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/types"
)

type FrameworkUseCase struct {
	registry *model.FrameworkRegistry
}

func NewFrameworkUseCase(registry *model.FrameworkRegistry) *FrameworkUseCase {
	return &FrameworkUseCase{
		registry: registry,
	}
}

// List returns all loaded frameworks
func (uc *FrameworkUseCase) List() []*model.Framework {
	return uc.registry.List()
}

// Get returns the framework with the given ID
func (uc *FrameworkUseCase) Get(id types.FrameworkID) (*model.Framework, error) {
	fw := uc.registry.Get(id)
	if fw == nil {
		return nil, goerr.Wrap(ErrFrameworkNotFound, "unknown framework", goerr.V("id", id))
	}
	return fw, nil
}
