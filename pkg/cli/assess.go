package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"

	"github.com/nexcomply-lab/nexcomply/pkg/cli/config"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/model"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/types"
	"github.com/nexcomply-lab/nexcomply/pkg/service/risk"
	"github.com/urfave/cli/v3"
)

// assessInput is the JSON shape accepted by the assess command. It matches
// the POST /api/v1/assess-risk request body.
type assessInput struct {
	RiskID      string `json:"risk_id"`
	Description string `json:"description"`
	RiskFactors []struct {
		Name                 string  `json:"name"`
		Category             string  `json:"category"`
		Likelihood           int     `json:"likelihood"`
		Impact               int     `json:"impact"`
		CurrentControls      string  `json:"current_controls"`
		ControlEffectiveness float64 `json:"control_effectiveness"`
	} `json:"risk_factors"`
}

func cmdAssess() *cli.Command {
	var input string
	var outputJSON bool
	var policyCfg config.Policy

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Path to assessment request JSON file ('-' for stdin)",
			Value:       "-",
			Sources:     cli.EnvVars("NEXCOMPLY_ASSESS_INPUT"),
			Destination: &input,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the raw assessment JSON instead of the summary",
			Destination: &outputJSON,
		},
	}
	flags = append(flags, policyCfg.Flags()...)

	return &cli.Command{
		Name:    "assess",
		Aliases: []string{"a"},
		Usage:   "Score a risk from a JSON request file",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			policy, err := policyCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load risk policy")
			}
			assessor, err := risk.New(policy)
			if err != nil {
				return goerr.Wrap(err, "failed to build scoring engine")
			}

			req, err := readAssessInput(input)
			if err != nil {
				return err
			}

			factors := make([]model.RiskFactor, len(req.RiskFactors))
			for i, rf := range req.RiskFactors {
				factors[i] = model.NewRiskFactor(rf.Name, types.Category(rf.Category), rf.Likelihood, rf.Impact, rf.CurrentControls, rf.ControlEffectiveness)
			}

			assessment, err := assessor.Assess(factors, types.RiskID(req.RiskID), req.Description)
			if err != nil {
				return goerr.Wrap(err, "assessment failed")
			}

			if outputJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(assessment)
			}

			printAssessment(os.Stdout, assessment)
			return nil
		},
	}
}

func readAssessInput(path string) (*assessInput, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path) // #nosec G304 - path is provided by CLI argument
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open input file", goerr.V("path", path))
		}
		defer func() {
			_ = f.Close()
		}()
		r = f
	}

	var input assessInput
	if err := json.NewDecoder(r).Decode(&input); err != nil {
		return nil, goerr.Wrap(err, "failed to parse input JSON", goerr.V("path", path))
	}
	return &input, nil
}

func levelColor(level types.RiskLevel) *color.Color {
	switch level {
	case types.RiskLevelLow:
		return color.New(color.FgGreen)
	case types.RiskLevelMedium:
		return color.New(color.FgYellow)
	case types.RiskLevelHigh:
		return color.New(color.FgRed)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

func printAssessment(w io.Writer, a *model.RiskAssessment) {
	bold := color.New(color.Bold)

	_, _ = bold.Fprintf(w, "Risk Assessment: %s\n", a.RiskID)
	if a.Description != "" {
		_, _ = fmt.Fprintf(w, "  %s\n", a.Description)
	}
	_, _ = fmt.Fprintln(w)

	for _, fs := range a.FactorScores {
		_, _ = fmt.Fprintf(w, "  %-30s inherent %5.1f  residual %5.1f\n", fs.Name, fs.InherentScore, fs.ResidualScore)
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintf(w, "  Inherent risk score: %.1f\n", a.InherentRiskScore)
	_, _ = fmt.Fprintf(w, "  Residual risk score: %.1f\n", a.ResidualRiskScore)
	_, _ = fmt.Fprintf(w, "  Risk level:          %s\n", levelColor(a.RiskLevel).Sprint(a.RiskLevel))

	if len(a.Recommendations) > 0 {
		_, _ = fmt.Fprintln(w)
		_, _ = bold.Fprintln(w, "Recommendations:")
		for _, rec := range a.Recommendations {
			_, _ = fmt.Fprintf(w, "  - %s\n", rec)
		}
	}
}
