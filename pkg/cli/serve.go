package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"

	"github.com/nexcomply-lab/nexcomply/pkg/cli/config"
	httpctrl "github.com/nexcomply-lab/nexcomply/pkg/controller/http"
	"github.com/nexcomply-lab/nexcomply/pkg/service/report"
	"github.com/nexcomply-lab/nexcomply/pkg/service/risk"
	"github.com/nexcomply-lab/nexcomply/pkg/usecase"
	"github.com/nexcomply-lab/nexcomply/pkg/utils/logging"
	"github.com/nexcomply-lab/nexcomply/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdServe(version string) *cli.Command {
	var addr string
	var policyCfg config.Policy
	var frameworksCfg config.Frameworks
	var repoCfg config.Repository
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("NEXCOMPLY_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, policyCfg.Flags()...)
	flags = append(flags, frameworksCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
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

			registry, err := frameworksCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load framework definitions")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			slackSvc, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure slack notifications")
			}
			if !slackCfg.IsConfigured() {
				logging.Default().Info("Slack notifications disabled (no webhook URL)")
			}

			reportOpts := []report.Option{report.WithVersion(version)}
			if gcs, err := storage.NewClient(ctx); err != nil {
				logging.Default().Warn("GCS client unavailable, gs:// report destinations disabled", "error", err.Error())
			} else {
				reportOpts = append(reportOpts, report.WithStorageClient(gcs))
				defer safe.Close(ctx, gcs)
			}

			ucOpts := []usecase.Option{
				usecase.WithAssessor(assessor),
				usecase.WithFrameworkRegistry(registry),
				usecase.WithReportGenerator(report.New(reportOpts...)),
			}
			if slackSvc != nil {
				ucOpts = append(ucOpts, usecase.WithSlackService(slackSvc))
			}

			uc := usecase.New(repo, ucOpts...)
			handler := httpctrl.New(uc, httpctrl.WithVersion(version))

			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server",
					"addr", addr,
					"backend", repoCfg.Backend(),
					"frameworks", len(registry.List()),
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
