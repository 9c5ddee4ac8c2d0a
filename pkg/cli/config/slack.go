package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/types"
	"github.com/nexcomply-lab/nexcomply/pkg/service/slack"
	"github.com/nexcomply-lab/nexcomply/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Slack holds CLI flags for Slack notification configuration
type Slack struct {
	webhookURL string
	minLevel   string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL for risk notifications (disabled when empty)",
			Sources:     cli.EnvVars("NEXCOMPLY_SLACK_WEBHOOK_URL"),
			Destination: &s.webhookURL,
		},
		&cli.StringFlag{
			Name:        "slack-notify-level",
			Usage:       "Minimum risk level that triggers a notification (Low, Medium, High, Critical)",
			Value:       "High",
			Sources:     cli.EnvVars("NEXCOMPLY_SLACK_NOTIFY_LEVEL"),
			Destination: &s.minLevel,
		},
	}
}

// IsConfigured returns true when a webhook URL is set
func (s *Slack) IsConfigured() bool {
	return s.webhookURL != ""
}

// Configure builds the Slack notification service, or returns nil when no
// webhook URL is configured.
func (s *Slack) Configure() (slack.Service, error) {
	if s.webhookURL == "" {
		return nil, nil
	}

	level := types.RiskLevel(s.minLevel)
	if err := level.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid slack notify level", goerr.V("level", s.minLevel))
	}

	svc, err := slack.New(s.webhookURL, slack.WithMinLevel(level))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize slack service")
	}

	logging.Default().Info("Slack notifications enabled", "min_level", s.minLevel)
	return svc, nil
}

// LogValue renders the configuration for startup logging. The webhook URL
// is redacted.
func (s Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("configured", s.webhookURL != ""),
		slog.String("min_level", s.minLevel),
	)
}
