// Package orchestrator implements the build-or-reuse workflow.
package orchestrator

import (
	"context"
	"fmt"

	"go.trai.ch/imprint/internal/core/domain"
	"go.trai.ch/imprint/internal/core/ports"
	"go.trai.ch/zerr"
)

// Orchestrator drives one image through login, probe, build or reuse, push and post-commands.
type Orchestrator struct {
	executor  ports.Executor
	hasher    ports.Hasher
	env       ports.Environment
	logger    ports.Logger
	telemetry ports.Telemetry
}

// New creates a new Orchestrator.
func New(
	executor ports.Executor,
	hasher ports.Hasher,
	env ports.Environment,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *Orchestrator {
	return &Orchestrator{
		executor:  executor,
		hasher:    hasher,
		env:       env,
		logger:    logger,
		telemetry: telemetry,
	}
}

// Fingerprint computes the fingerprint and the tag it resolves to.
func (o *Orchestrator) Fingerprint(ctx context.Context, cfg *domain.Config) (fingerprint, tag string, err error) {
	w, err := o.prepare(ctx, cfg)
	if err != nil {
		return "", "", err
	}
	return w.fingerprint, w.tag, nil
}

// Plan resolves every command a run would issue without executing any of them.
func (o *Orchestrator) Plan(ctx context.Context, cfg *domain.Config) (*domain.Plan, error) {
	w, err := o.prepare(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return w.plan()
}

// Run executes the workflow to a terminal state. Commands run strictly one after another.
// The returned report is never nil and lists the visited states, ending in done or failed.
func (o *Orchestrator) Run(ctx context.Context, cfg *domain.Config) (*domain.Report, error) {
	r := &run{o: o, cfg: cfg, report: &domain.Report{}}

	state := domain.StateInit
	for !state.Terminal() {
		r.report.States = append(r.report.States, state)
		next, err := r.step(ctx, state)
		if err != nil {
			r.report.States = append(r.report.States, domain.StateFailed)
			return r.report, zerr.With(zerr.Wrap(err, "workflow failed"), "state", string(state))
		}
		state = next
	}
	r.report.States = append(r.report.States, state)

	return r.report, nil
}

// run is the mutable state of a single Run call.
type run struct {
	o      *Orchestrator
	cfg    *domain.Config
	w      *workflow
	report *domain.Report
}

func (r *run) step(ctx context.Context, state domain.State) (domain.State, error) {
	switch state {
	case domain.StateInit:
		return r.init(ctx)
	case domain.StateLogin:
		return r.login(ctx)
	case domain.StateProbing:
		return r.probe(ctx)
	case domain.StateReusing:
		return r.reuse(ctx)
	case domain.StateBuilding:
		return r.build(ctx)
	case domain.StatePushingTags:
		return r.push(ctx)
	case domain.StateRunningPostCommands:
		return r.postCommands(ctx)
	default:
		return domain.StateFailed, zerr.With(zerr.New("unknown workflow state"), "state", string(state))
	}
}

func (r *run) init(ctx context.Context) (domain.State, error) {
	w, err := r.o.prepare(ctx, r.cfg)
	if err != nil {
		return domain.StateFailed, err
	}
	r.w = w
	r.report.Fingerprint = w.fingerprint
	r.report.Tag = w.tag
	r.report.Image = w.image()
	r.o.logger.Debug("get_full_hash : " + w.fingerprint)

	if r.cfg.Login {
		return domain.StateLogin, nil
	}
	return domain.StateProbing, nil
}

func (r *run) login(ctx context.Context) (domain.State, error) {
	r.o.logger.Info("Logging in to " + r.cfg.Registry)
	policy := domain.ExecPolicy{Secrets: []string{r.cfg.Password}}
	_, err := r.exec(ctx, "login "+r.cfg.Registry, r.w.loginArgs(r.cfg.Password), policy)
	if err != nil {
		return domain.StateFailed, zerr.Wrap(err, "registry login failed")
	}
	return domain.StateProbing, nil
}

func (r *run) probe(ctx context.Context) (domain.State, error) {
	res, err := r.exec(ctx, "pull "+r.w.image(), r.w.pullArgs(), domain.NoRaisePolicy())
	if err != nil {
		return domain.StateFailed, err
	}
	if res.Succeeded() {
		return domain.StateReusing, nil
	}
	return domain.StateBuilding, nil
}

func (r *run) reuse(ctx context.Context) (domain.State, error) {
	r.report.Path = domain.PathReuse
	r.o.logger.Info(fmt.Sprintf("Image '%s' found. Skipping build.", r.w.image()))

	_, v := r.o.telemetry.Record(ctx, "build "+r.w.image())
	v.Cached()
	v.Complete(nil)

	return domain.StateRunningPostCommands, nil
}

func (r *run) build(ctx context.Context) (domain.State, error) {
	r.report.Path = domain.PathBuild
	r.o.logger.Info(fmt.Sprintf("Image '%s' not found. Building..", r.w.image()))

	argv, err := r.w.buildArgs()
	if err != nil {
		return domain.StateFailed, err
	}

	res, err := r.exec(ctx, "build "+r.w.image(), argv, domain.NoRaisePolicy())
	if err != nil {
		return domain.StateFailed, err
	}
	if !res.Succeeded() {
		return domain.StateFailed, zerr.Wrap(domain.NewCommandError(res), "image build failed")
	}

	if r.cfg.PushTags {
		return domain.StatePushingTags, nil
	}
	return domain.StateRunningPostCommands, nil
}

func (r *run) push(ctx context.Context) (domain.State, error) {
	r.o.logger.Info(fmt.Sprintf("Pushing all tags for image '%s'", r.cfg.FullRepository()))

	pushes, err := r.w.pushArgs()
	if err != nil {
		return domain.StateFailed, err
	}
	for _, argv := range pushes {
		if _, err := r.exec(ctx, describe(argv[1:]), argv, domain.RaisePolicy()); err != nil {
			return domain.StateFailed, err
		}
	}
	return domain.StateRunningPostCommands, nil
}

func (r *run) postCommands(ctx context.Context) (domain.State, error) {
	commands, err := r.w.postCommands()
	if err != nil {
		return domain.StateFailed, err
	}
	for _, argv := range commands {
		if _, err := r.exec(ctx, describe(argv), argv, domain.RaisePolicy()); err != nil {
			return domain.StateFailed, err
		}
	}
	return domain.StateDone, nil
}

// exec runs a single command inside its own telemetry vertex.
func (r *run) exec(
	ctx context.Context, name string, argv []string, policy domain.ExecPolicy,
) (*domain.CommandResult, error) {
	ctx, v := r.o.telemetry.Record(ctx, name)
	r.report.Commands++

	res, err := r.o.executor.Execute(ctx, argv, policy)
	v.Complete(err)
	return res, err
}
