// Package template resolves %NAME% placeholders in configuration strings.
package template

import (
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/imprint/internal/core/domain"
	"go.trai.ch/imprint/internal/core/ports"
	"go.trai.ch/zerr"
)

// MaxPasses bounds the number of rescans of a single string.
const MaxPasses = 32

// Missing is substituted for placeholders that name neither a field nor a set variable.
const Missing = "None"

var placeholder = regexp.MustCompile(`%([A-Za-z_][A-Za-z0-9_]*)%`)

// Resolver substitutes placeholders from configuration fields, then from the environment.
type Resolver struct {
	fields map[string]func() string
	env    ports.Environment
	logger ports.Logger
}

// New builds a Resolver over cfg. fingerprint is the computed content fingerprint;
// the image tag is the forced tag when configured, else the fingerprint.
func New(cfg *domain.Config, fingerprint string, env ports.Environment, logger ports.Logger) *Resolver {
	tag := fingerprint
	if cfg.ForceTag != "" {
		tag = cfg.ForceTag
	}

	str := func(s string) func() string { return func() string { return s } }
	list := func(l []string) func() string { return str(strings.Join(l, ",")) }
	flag := func(b bool) func() string { return str(strconv.FormatBool(b)) }

	return &Resolver{
		fields: map[string]func() string{
			"context":         str(cfg.Context),
			"debug":           flag(cfg.Debug),
			"push_tags":       flag(cfg.PushTags),
			"tags":            list(cfg.Tags),
			"files_to_hash":   list(cfg.FilesToHash),
			"commands":        list(cfg.PostCommands),
			"post_commands":   list(cfg.PostCommands),
			"build_args":      list(cfg.BuildArgs),
			"commit_id":       str(cfg.CommitID),
			"commit_branch":   str(cfg.Branch),
			"branch":          str(cfg.Branch),
			"login":           flag(cfg.Login),
			"username":        str(cfg.Username),
			"password":        str(cfg.Password),
			"repository":      str(cfg.Repository),
			"registry":        str(cfg.Registry),
			"dockerfile":      str(cfg.Dockerfile),
			"force_tag":       str(cfg.ForceTag),
			"image_hash":      str(tag),
			"tag":             str(tag),
			"fingerprint":     str(fingerprint),
			"full_repository": cfg.FullRepository,
		},
		env:    env,
		logger: logger,
	}
}

// Resolve strips one layer of enclosing quotes from s and substitutes placeholders
// until none is left. A string that reappears, or more than MaxPasses rescans,
// fails with domain.ErrTemplateResolution.
func (r *Resolver) Resolve(s string) (string, error) {
	out := domain.TrimQuotes(s)
	seen := make(map[string]struct{})

	for pass := 0; placeholder.MatchString(out); pass++ {
		if _, cycle := seen[out]; cycle || pass >= MaxPasses {
			return "", zerr.With(zerr.Wrap(domain.ErrTemplateResolution, "placeholders keep reappearing"), "input", s)
		}
		seen[out] = struct{}{}
		out = placeholder.ReplaceAllStringFunc(out, func(match string) string {
			return r.lookup(match[1 : len(match)-1])
		})
	}

	if out != s {
		r.logger.Debug("resolved string from '" + s + "' to '" + out + "'")
	}
	return out, nil
}

// ResolveAll resolves every string in order, stopping at the first failure.
func (r *Resolver) ResolveAll(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for _, s := range in {
		resolved, err := r.Resolve(s)
		if err != nil {
			return nil, err
		}
		out = append(out, resolved)
	}
	return out, nil
}

func (r *Resolver) lookup(name string) string {
	if field, ok := r.fields[strings.ToLower(name)]; ok {
		return field()
	}
	if v, ok := r.env.LookupEnv(name); ok {
		return v
	}
	return Missing
}
