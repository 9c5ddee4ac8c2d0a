package model

import (
	"github.com/nexcomply-lab/nexcomply/pkg/domain/types"
)

// FrameworkControl is a single control of a compliance framework
type FrameworkControl struct {
	ID          types.ControlID `json:"control_id"`
	Name        string          `json:"control_name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
}

// Framework is a compliance framework definition loaded from configuration
type Framework struct {
	ID       types.FrameworkID  `json:"id"`
	Name     string             `json:"name"`
	Version  string             `json:"version"`
	Controls []FrameworkControl `json:"controls"`
}

// ControlCount returns the number of controls in the framework
func (f *Framework) ControlCount() int {
	return len(f.Controls)
}

// ControlsByCategory groups controls by their category. Controls without a
// category fall into "general".
func (f *Framework) ControlsByCategory() map[string][]FrameworkControl {
	grouped := make(map[string][]FrameworkControl)
	for _, c := range f.Controls {
		category := c.Category
		if category == "" {
			category = "general"
		}
		grouped[category] = append(grouped[category], c)
	}
	return grouped
}

// FrameworkRegistry holds the frameworks loaded at startup. It is read-only
// after construction.
type FrameworkRegistry struct {
	frameworks map[types.FrameworkID]*Framework
	order      []types.FrameworkID
}

// NewFrameworkRegistry creates an empty registry
func NewFrameworkRegistry() *FrameworkRegistry {
	return &FrameworkRegistry{
		frameworks: make(map[types.FrameworkID]*Framework),
	}
}

// Register adds a framework to the registry, keeping registration order
func (r *FrameworkRegistry) Register(fw *Framework) {
	if _, exists := r.frameworks[fw.ID]; !exists {
		r.order = append(r.order, fw.ID)
	}
	r.frameworks[fw.ID] = fw
}

// Get returns the framework with the given ID, or nil if not registered
func (r *FrameworkRegistry) Get(id types.FrameworkID) *Framework {
	return r.frameworks[id]
}

// List returns all registered frameworks in registration order
func (r *FrameworkRegistry) List() []*Framework {
	out := make([]*Framework, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.frameworks[id])
	}
	return out
}
