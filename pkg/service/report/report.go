package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/nexcomply-lab/nexcomply/pkg/domain/model"
	"github.com/nexcomply-lab/nexcomply/pkg/utils/logging"
	"golang.org/x/sync/errgroup"
)

// Format is a report output format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a format string
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", goerr.New("unsupported report format", goerr.V("format", s))
	}
}

// Generator renders risk assessment reports. The destination is either a
// local directory or a gs://bucket/prefix URL.
type Generator struct {
	version string
	gcs     *storage.Client
	now     func() time.Time
}

type Option func(*Generator)

// WithVersion sets the version string embedded in report metadata
func WithVersion(version string) Option {
	return func(g *Generator) {
		g.version = version
	}
}

// WithStorageClient injects a GCS client for gs:// destinations
func WithStorageClient(client *storage.Client) Option {
	return func(g *Generator) {
		g.gcs = client
	}
}

// WithClock overrides the timestamp source, for tests
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

func New(opts ...Option) *Generator {
	g := &Generator{
		version: "dev",
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate writes one file per requested format and returns the written
// locations. Formats are rendered concurrently.
func (g *Generator) Generate(ctx context.Context, assessments []*model.RiskAssessment, dest string, formats []Format) ([]string, error) {
	if len(assessments) == 0 {
		return nil, goerr.New("no assessments to report")
	}
	if len(formats) == 0 {
		formats = []Format{FormatCSV, FormatJSON}
	}

	suffix := g.now().Format("20060102_150405")
	locations := make([]string, len(formats))

	eg, ctx := errgroup.WithContext(ctx)
	for i, format := range formats {
		name := fmt.Sprintf("risk_report_%s.%s", suffix, format)
		eg.Go(func() error {
			location, err := g.write(ctx, dest, name, format, assessments)
			if err != nil {
				return err
			}
			locations[i] = location
			logging.From(ctx).Info("report written", "location", location, "format", string(format))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return locations, nil
}

func (g *Generator) write(ctx context.Context, dest, name string, format Format, assessments []*model.RiskAssessment) (string, error) {
	w, location, err := g.openWriter(ctx, dest, name)
	if err != nil {
		return "", err
	}

	var renderErr error
	switch format {
	case FormatCSV:
		renderErr = g.WriteCSV(w, assessments)
	case FormatJSON:
		renderErr = g.WriteJSON(w, assessments)
	default:
		renderErr = goerr.New("unsupported report format", goerr.V("format", format))
	}

	if closeErr := w.Close(); renderErr == nil && closeErr != nil {
		renderErr = goerr.Wrap(closeErr, "failed to finalize report", goerr.V("location", location))
	}
	if renderErr != nil {
		return "", renderErr
	}
	return location, nil
}

func (g *Generator) openWriter(ctx context.Context, dest, name string) (io.WriteCloser, string, error) {
	if bucket, prefix, ok := strings.Cut(strings.TrimPrefix(dest, "gs://"), "/"); ok && strings.HasPrefix(dest, "gs://") {
		if g.gcs == nil {
			return nil, "", goerr.New("gs:// destination requires a storage client", goerr.V("dest", dest))
		}
		object := filepath.ToSlash(filepath.Join(prefix, name))
		w := g.gcs.Bucket(bucket).Object(object).NewWriter(ctx)
		return w, "gs://" + bucket + "/" + object, nil
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, "", goerr.Wrap(err, "failed to create report directory", goerr.V("dest", dest))
	}
	path := filepath.Join(dest, name)
	f, err := os.Create(path) // #nosec G304 - dest is an operator-supplied output directory
	if err != nil {
		return nil, "", goerr.Wrap(err, "failed to create report file", goerr.V("path", path))
	}
	return f, path, nil
}
