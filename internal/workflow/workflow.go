// Package workflow runs the export pipelines: wait for the server, fetch,
// normalize, and write the export files.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ALT-F4-LLC/sonarexport/internal/config"
	"github.com/ALT-F4-LLC/sonarexport/internal/export"
	"github.com/ALT-F4-LLC/sonarexport/internal/model"
	"github.com/ALT-F4-LLC/sonarexport/internal/sonar"
)

var (
	// ErrUnavailable means the server never answered its health endpoint
	// within the probe budget.
	ErrUnavailable = errors.New("server unavailable")
	// ErrFetch wraps any failure while retrieving data.
	ErrFetch = errors.New("fetch failed")
	// ErrNothingToExport means the fetch succeeded but returned no records.
	ErrNothingToExport = errors.New("nothing to export")
	// ErrExport wraps any failure while writing export files.
	ErrExport = errors.New("export failed")
)

// Reporter receives progress messages.
type Reporter interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
}

// Runner holds the collaborators shared by all workflows.
type Runner struct {
	Config   *config.Config
	Client   *sonar.Client
	Prober   *sonar.Prober
	Exporter *export.Exporter
	Reporter Reporter
	Now      func() time.Time
}

// New wires a Runner from cfg.
func New(cfg *config.Config, rep Reporter) *Runner {
	client := sonar.NewClient(cfg.URL, cfg.Username, cfg.Password)
	return NewWithClient(cfg, client, rep)
}

// NewWithClient wires a Runner around an existing client.
func NewWithClient(cfg *config.Config, client *sonar.Client, rep Reporter) *Runner {
	prober := sonar.NewProber(client)
	prober.MaxAttempts = cfg.ProbeAttempts
	prober.Interval = cfg.ProbeInterval
	prober.Timeout = cfg.ProbeTimeout
	prober.OnRetry = func(attempt, maxAttempts int, err error) {
		rep.Info("Waiting for server (attempt %d/%d): %v", attempt, maxAttempts, err)
	}

	return &Runner{
		Config:   cfg,
		Client:   client,
		Prober:   prober,
		Exporter: export.New(cfg.OutputDir),
		Reporter: rep,
		Now:      time.Now,
	}
}

// waitReady blocks until the server is ready or the probe budget is spent.
func (r *Runner) waitReady(ctx context.Context) error {
	r.Reporter.Info("Checking server availability at %s", r.Client.BaseURL())
	if !r.Prober.Wait(ctx) {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return fmt.Errorf("%w: %s did not respond after %d attempts", ErrUnavailable, r.Client.BaseURL(), r.Prober.MaxAttempts)
	}
	r.Reporter.Info("Server is ready")
	return nil
}

// projectInfo returns the metadata block for an export taken at at.
func (r *Runner) projectInfo(at time.Time) model.ProjectInfo {
	return model.ProjectInfo{
		Project:    r.Config.ProjectKey,
		ExportedAt: at.Format(export.DateLayout),
		ServerURL:  r.Client.BaseURL(),
	}
}

// write persists b and reports the written files.
func (r *Runner) write(b export.Bundle, at time.Time) ([]export.File, error) {
	files, err := r.Exporter.Write(b, at)
	if err != nil {
		return files, fmt.Errorf("%w: %w", ErrExport, err)
	}
	for _, f := range files {
		if f.Truncated > 0 {
			r.Reporter.Warn("%s: %d cells exceed %d characters and were truncated; the JSON file keeps the full values",
				f.Path, f.Truncated, excelize.TotalCellChars)
		}
	}
	r.Reporter.Info("Wrote %d files to %s", len(files), r.Exporter.Dir)
	return files, nil
}

func fetchErr(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrFetch, what, err)
}
