package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/model"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Frameworks holds CLI flags for compliance framework definitions
type Frameworks struct {
	paths []string
}

// frameworkFile is the TOML shape of a framework definition file
type frameworkFile struct {
	ID       string             `toml:"id"`
	Name     string             `toml:"name"`
	Version  string             `toml:"version"`
	Controls []frameworkControl `toml:"control"`
}

type frameworkControl struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Category    string `toml:"category"`
}

// Flags returns CLI flags for framework configuration
func (f *Frameworks) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "framework-config",
			Usage:       "Path to framework definition TOML file (repeatable)",
			Sources:     cli.EnvVars("NEXCOMPLY_FRAMEWORK_CONFIG"),
			Destination: &f.paths,
		},
	}
}

// Configure loads all framework definition files into a registry
func (f *Frameworks) Configure() (*model.FrameworkRegistry, error) {
	registry := model.NewFrameworkRegistry()

	for _, path := range f.paths {
		fw, err := loadFramework(path)
		if err != nil {
			return nil, err
		}
		if registry.Get(fw.ID) != nil {
			return nil, goerr.Wrap(ErrDuplicateFramework, "framework already registered",
				goerr.V(FrameworkIDKey, fw.ID), goerr.V(ConfigPathKey, path))
		}
		registry.Register(fw)
	}

	return registry, nil
}

func loadFramework(path string) (*model.Framework, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is provided by CLI argument
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "framework file", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read framework file", goerr.V(ConfigPathKey, path))
	}

	var file frameworkFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse framework TOML", goerr.V(ConfigPathKey, path))
	}

	id := types.FrameworkID(file.ID)
	if err := id.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid framework ID", goerr.V(ConfigPathKey, path))
	}
	if file.Name == "" {
		return nil, goerr.Wrap(ErrMissingName, "framework name", goerr.V(FrameworkIDKey, file.ID), goerr.V(ConfigPathKey, path))
	}

	controls := make([]model.FrameworkControl, len(file.Controls))
	seen := make(map[string]bool)
	for i, c := range file.Controls {
		controlID := types.ControlID(c.ID)
		if err := controlID.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid control ID",
				goerr.V(FrameworkIDKey, file.ID), goerr.V(ConfigPathKey, path))
		}
		if seen[c.ID] {
			return nil, goerr.Wrap(ErrDuplicateControl, "control already defined",
				goerr.V(ControlIDKey, c.ID), goerr.V(FrameworkIDKey, file.ID), goerr.V(ConfigPathKey, path))
		}
		seen[c.ID] = true

		if c.Name == "" {
			return nil, goerr.Wrap(ErrMissingName, "control name",
				goerr.V(ControlIDKey, c.ID), goerr.V(FrameworkIDKey, file.ID), goerr.V(ConfigPathKey, path))
		}

		controls[i] = model.FrameworkControl{
			ID:          controlID,
			Name:        c.Name,
			Description: c.Description,
			Category:    c.Category,
		}
	}

	return &model.Framework{
		ID:       id,
		Name:     file.Name,
		Version:  file.Version,
		Controls: controls,
	}, nil
}
