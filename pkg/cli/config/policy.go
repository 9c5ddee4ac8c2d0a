package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	domainConfig "github.com/nexcomply-lab/nexcomply/pkg/domain/model/config"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Policy holds CLI flags for risk scoring policy configuration
type Policy struct {
	path string
}

// policyFile is the TOML shape of a risk policy file
type policyFile struct {
	LowMax               float64 `toml:"low_max"`
	MediumMax            float64 `toml:"medium_max"`
	HighMax              float64 `toml:"high_max"`
	WeakControlThreshold float64 `toml:"weak_control_threshold"`
}

// Flags returns CLI flags for policy configuration
func (p *Policy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "risk-policy",
			Usage:       "Path to risk policy TOML file (built-in 5x5 thresholds when empty)",
			Sources:     cli.EnvVars("NEXCOMPLY_RISK_POLICY"),
			Destination: &p.path,
		},
	}
}

// Configure loads the risk policy. An unset path yields the default policy.
// Fields omitted from the file keep their default values.
func (p *Policy) Configure() (*domainConfig.RiskPolicy, error) {
	policy := domainConfig.DefaultRiskPolicy()
	if p.path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(p.path) // #nosec G304 - path is provided by CLI argument
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "risk policy file", goerr.V(ConfigPathKey, p.path))
		}
		return nil, goerr.Wrap(err, "failed to read risk policy file", goerr.V(ConfigPathKey, p.path))
	}

	file := policyFile{
		LowMax:               policy.LowMax,
		MediumMax:            policy.MediumMax,
		HighMax:              policy.HighMax,
		WeakControlThreshold: policy.WeakControlThreshold,
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse risk policy TOML", goerr.V(ConfigPathKey, p.path))
	}

	policy.LowMax = file.LowMax
	policy.MediumMax = file.MediumMax
	policy.HighMax = file.HighMax
	policy.WeakControlThreshold = file.WeakControlThreshold

	if err := policy.Validate(); err != nil {
		return nil, goerr.Wrap(err, "risk policy validation failed", goerr.V(ConfigPathKey, p.path))
	}
	return policy, nil
}
