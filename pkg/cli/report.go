package cli

import (
	"context"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"

	"github.com/nexcomply-lab/nexcomply/pkg/cli/config"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/types"
	"github.com/nexcomply-lab/nexcomply/pkg/service/report"
	"github.com/nexcomply-lab/nexcomply/pkg/usecase"
	"github.com/nexcomply-lab/nexcomply/pkg/utils/logging"
	"github.com/nexcomply-lab/nexcomply/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdReport(version string) *cli.Command {
	var output string
	var formats []string
	var assessmentIDs []string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Report destination (local directory or gs://bucket/prefix)",
			Value:       "./reports",
			Sources:     cli.EnvVars("NEXCOMPLY_REPORT_OUTPUT"),
			Destination: &output,
		},
		&cli.StringSliceFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Report format, csv or json (repeatable, both when omitted)",
			Destination: &formats,
		},
		&cli.StringSliceFlag{
			Name:        "assessment-id",
			Usage:       "Assessment ID to include (repeatable, all stored assessments when omitted)",
			Destination: &assessmentIDs,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "report",
		Aliases: []string{"r"},
		Usage:   "Generate a risk assessment report from stored assessments",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			parsed := make([]report.Format, 0, len(formats))
			for _, f := range formats {
				format, err := report.ParseFormat(f)
				if err != nil {
					return err
				}
				parsed = append(parsed, format)
			}

			reportOpts := []report.Option{report.WithVersion(version)}
			if strings.HasPrefix(output, "gs://") {
				gcs, err := storage.NewClient(ctx)
				if err != nil {
					return goerr.Wrap(err, "failed to create storage client for gs:// destination")
				}
				defer safe.Close(ctx, gcs)
				reportOpts = append(reportOpts, report.WithStorageClient(gcs))
			}

			uc := usecase.New(repo, usecase.WithReportGenerator(report.New(reportOpts...)))

			ids := make([]types.AssessmentID, len(assessmentIDs))
			for i, id := range assessmentIDs {
				ids[i] = types.AssessmentID(id)
			}

			locations, err := uc.Report.Generate(ctx, ids, output, parsed)
			if err != nil {
				return err
			}

			for _, location := range locations {
				logging.Default().Info("Report generated", "location", location)
			}
			return nil
		},
	}
}
