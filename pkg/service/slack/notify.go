package slack

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/model"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/types"
	"github.com/slack-go/slack"
)

// Service posts assessment notifications to Slack
type Service interface {
	NotifyAssessment(ctx context.Context, assessment *model.RiskAssessment) error
}

// client implements Service via an incoming webhook
type client struct {
	webhookURL string
	minLevel   types.RiskLevel
}

// Option is a functional option for client configuration
type Option func(*client)

// WithMinLevel sets the minimum risk level that triggers a notification.
// Default is High.
func WithMinLevel(level types.RiskLevel) Option {
	return func(c *client) {
		c.minLevel = level
	}
}

// New creates a new Slack notification service with the provided webhook URL
func New(webhookURL string, opts ...Option) (Service, error) {
	if webhookURL == "" {
		return nil, goerr.New("Slack webhook URL is required")
	}

	c := &client{
		webhookURL: webhookURL,
		minLevel:   types.RiskLevelHigh,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// NotifyAssessment posts a message for assessments at or above the
// configured minimum level. Lower levels are silently skipped.
func (c *client) NotifyAssessment(ctx context.Context, assessment *model.RiskAssessment) error {
	if !assessment.RiskLevel.AtLeast(c.minLevel) {
		return nil
	}

	msg := &slack.WebhookMessage{
		Text: buildNotificationText(assessment),
	}
	if err := slack.PostWebhookContext(ctx, c.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post Slack notification", goerr.V("risk_id", assessment.RiskID))
	}

	return nil
}

func buildNotificationText(a *model.RiskAssessment) string {
	var b strings.Builder
	fmt.Fprintf(&b, ":rotating_light: Risk assessment *%s* is *%s*\n", a.RiskID, a.RiskLevel)
	if a.Description != "" {
		fmt.Fprintf(&b, "> %s\n", a.Description)
	}
	fmt.Fprintf(&b, "Inherent: %.1f / Residual: %.1f\n", a.InherentRiskScore, a.ResidualRiskScore)
	for _, rec := range a.Recommendations {
		fmt.Fprintf(&b, "• %s\n", rec)
	}
	return b.String()
}
