package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nexcomply-lab/nexcomply/pkg/cli/config"
	"github.com/nexcomply-lab/nexcomply/pkg/service/risk"
	"github.com/nexcomply-lab/nexcomply/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var policyCfg config.Policy
	var frameworksCfg config.Frameworks

	var flags []cli.Flag
	flags = append(flags, policyCfg.Flags()...)
	flags = append(flags, frameworksCfg.Flags()...)

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate risk policy and framework configuration files",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			policy, err := policyCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "risk policy validation failed")
			}
			if _, err := risk.New(policy); err != nil {
				return goerr.Wrap(err, "risk policy rejected by scoring engine")
			}
			logger.Info("Risk policy validated",
				"low_max", policy.LowMax,
				"medium_max", policy.MediumMax,
				"high_max", policy.HighMax,
				"weak_control_threshold", policy.WeakControlThreshold,
			)

			registry, err := frameworksCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "framework validation failed")
			}
			for _, fw := range registry.List() {
				logger.Info("Framework validated",
					"id", fw.ID,
					"name", fw.Name,
					"version", fw.Version,
					"control_count", fw.ControlCount(),
				)
			}

			logger.Info("Configuration validation passed", "framework_count", len(registry.List()))
			return nil
		},
	}
}
