package orchestrator

import (
	"context"
	"strings"

	"go.trai.ch/imprint/internal/core/domain"
	"go.trai.ch/imprint/internal/engine/template"
	"go.trai.ch/zerr"
)

// workflow holds the per-run values derived from the configuration and builds
// the argument lists of every command the run issues.
type workflow struct {
	cfg         *domain.Config
	fingerprint string
	tag         string
	resolver    *template.Resolver
}

func (o *Orchestrator) prepare(ctx context.Context, cfg *domain.Config) (*workflow, error) {
	fingerprint, err := o.hasher.Fingerprint(ctx, cfg.FingerprintSpec())
	if err != nil {
		return nil, zerr.Wrap(err, "failed to compute fingerprint")
	}

	tag := fingerprint
	if cfg.ForceTag != "" {
		tag = cfg.ForceTag
	}
	if tag == "" {
		return nil, domain.ErrMissingFingerprint
	}

	return &workflow{
		cfg:         cfg,
		fingerprint: fingerprint,
		tag:         tag,
		resolver:    template.New(cfg, fingerprint, o.env, o.logger),
	}, nil
}

// ref returns the full image reference for tag.
func (w *workflow) ref(tag string) string {
	return w.cfg.FullRepository() + ":" + tag
}

func (w *workflow) image() string {
	return w.ref(w.tag)
}

func (w *workflow) loginArgs(password string) []string {
	return []string{w.cfg.Docker, "login", "-u", w.cfg.Username, "-p", password, w.cfg.Registry}
}

func (w *workflow) pullArgs() []string {
	return []string{w.cfg.Docker, "pull", w.image()}
}

// tags resolves the declared tags in order.
func (w *workflow) tags() ([]string, error) {
	return w.resolver.ResolveAll(w.cfg.Tags)
}

func (w *workflow) buildArgs() ([]string, error) {
	buildArgs, err := w.resolver.ResolveAll(w.cfg.BuildArgs)
	if err != nil {
		return nil, err
	}
	tags, err := w.tags()
	if err != nil {
		return nil, err
	}

	argv := []string{w.cfg.Docker, "build", "--no-cache", "--force-rm"}
	for _, arg := range buildArgs {
		argv = append(argv, "--build-arg", arg)
	}
	argv = append(argv, "-t", w.image())
	for _, tag := range tags {
		argv = append(argv, "-t", w.ref(tag))
	}
	if w.cfg.Dockerfile != "" {
		argv = append(argv, "-f", w.cfg.Dockerfile)
	}
	return append(argv, w.cfg.Context), nil
}

// pushArgs pushes the image tag first, then every declared tag in order.
func (w *workflow) pushArgs() ([][]string, error) {
	tags, err := w.tags()
	if err != nil {
		return nil, err
	}
	pushes := [][]string{{w.cfg.Docker, "push", w.image()}}
	for _, tag := range tags {
		pushes = append(pushes, []string{w.cfg.Docker, "push", w.ref(tag)})
	}
	return pushes, nil
}

func (w *workflow) postCommands() ([][]string, error) {
	commands := make([][]string, 0, len(w.cfg.PostCommands))
	for _, line := range w.cfg.PostCommands {
		resolved, err := w.resolver.Resolve(line)
		if err != nil {
			return nil, err
		}
		argv := domain.SplitCommand(resolved)
		if len(argv) == 0 {
			return nil, zerr.With(zerr.Wrap(domain.ErrEmptyCommand, "post-command resolved to nothing"), "command", line)
		}
		commands = append(commands, argv)
	}
	return commands, nil
}

// plan resolves every command without running anything.
func (w *workflow) plan() (*domain.Plan, error) {
	build, err := w.buildArgs()
	if err != nil {
		return nil, err
	}
	post, err := w.postCommands()
	if err != nil {
		return nil, err
	}

	p := &domain.Plan{
		Repository:   w.cfg.FullRepository(),
		Fingerprint:  w.fingerprint,
		Tag:          w.tag,
		Probe:        w.pullArgs(),
		Build:        build,
		PostCommands: post,
	}
	if w.cfg.Login {
		p.Login = w.loginArgs(domain.Redacted)
	}
	if w.cfg.PushTags {
		if p.Push, err = w.pushArgs(); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func describe(argv []string) string {
	return strings.Join(argv, " ")
}
