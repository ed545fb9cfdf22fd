// Package app implements the application layer for imprint.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.trai.ch/imprint/internal/core/domain"
	"go.trai.ch/imprint/internal/core/ports"
	"go.trai.ch/imprint/internal/engine/orchestrator"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	orchestrator *orchestrator.Orchestrator
	logger       ports.Logger
	telemetry    ports.Telemetry
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	orch *orchestrator.Orchestrator,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *App {
	return &App{
		configLoader: loader,
		orchestrator: orch,
		logger:       logger,
		telemetry:    telemetry,
	}
}

// Options configures how the configuration is loaded.
type Options struct {
	// EnvFiles are dotenv files applied before reading the environment.
	EnvFiles []string
}

// Run executes the build-or-reuse workflow.
func (a *App) Run(ctx context.Context, opts Options) (err error) {
	cfg, err := a.load(opts)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := a.telemetry.Close(); closeErr != nil {
			err = errors.Join(err, zerr.Wrap(closeErr, "failed to close telemetry"))
		}
	}()

	report, err := a.orchestrator.Run(ctx, cfg)
	if err != nil {
		return zerr.Wrap(err, "build execution failed")
	}

	a.logger.Info(fmt.Sprintf("Image '%s' ready via %s path (%d commands)", report.Image, report.Path, report.Commands))
	return nil
}

// Plan writes the resolved commands of a run to w as YAML without executing them.
func (a *App) Plan(ctx context.Context, opts Options, w io.Writer) error {
	cfg, err := a.load(opts)
	if err != nil {
		return err
	}

	plan, err := a.orchestrator.Plan(ctx, cfg)
	if err != nil {
		return zerr.Wrap(err, "failed to plan workflow")
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(plan); err != nil {
		return zerr.Wrap(err, "failed to encode plan")
	}
	return enc.Close()
}

// Fingerprint writes the image tag to w, followed by the computed fingerprint
// when a forced tag overrides it.
func (a *App) Fingerprint(ctx context.Context, opts Options, w io.Writer) error {
	cfg, err := a.load(opts)
	if err != nil {
		return err
	}

	fingerprint, tag, err := a.orchestrator.Fingerprint(ctx, cfg)
	if err != nil {
		return zerr.Wrap(err, "failed to compute fingerprint")
	}

	if tag != fingerprint {
		_, err = fmt.Fprintf(w, "%s\n%s\n", tag, fingerprint)
	} else {
		_, err = fmt.Fprintln(w, tag)
	}
	return err
}

func (a *App) load(opts Options) (*domain.Config, error) {
	cfg, err := a.configLoader.Load(opts.EnvFiles)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	a.logger.SetVerbose(cfg.Debug)
	return cfg, nil
}
