// Package config provides the configuration loader for imprint.
package config

import (
	"errors"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.trai.ch/imprint/internal/core/domain"
	"go.trai.ch/imprint/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Keys and the environment variables bound to them, in lookup order.
const (
	keyContext      = "context"
	keyDebug        = "debug"
	keyPushTags     = "push_tags"
	keyTags         = "tags"
	keyFiles        = "files"
	keyCommands     = "commands"
	keyArgs         = "args"
	keyCommitID     = "commit_id"
	keyBranch       = "branch"
	keyLogin        = "login"
	keyUsername     = "username"
	keyPassword     = "password"
	keyRepository   = "repository"
	keyRegistry     = "registry"
	keyDockerfile   = "dockerfile"
	keyForceTag     = "force_tag"
	keyHashLength   = "hash_length"
	keyDigest       = "digest"
	keyDockerBinary = "docker"
)

// Switches read set-but-empty variables as false instead of falling back to the default.
var switches = map[string][]string{
	keyDebug:    {"PLUGIN_DEBUG"},
	keyPushTags: {"PLUGIN_PUSHTAGS"},
	keyLogin:    {"PLUGIN_LOGIN"},
}

var bindings = map[string][]string{
	keyContext:      {"PLUGIN_CONTEXT"},
	keyTags:         {"PLUGIN_TAGS"},
	keyFiles:        {"PLUGIN_FILES"},
	keyCommands:     {"PLUGIN_COMMANDS"},
	keyArgs:         {"PLUGIN_ARGS"},
	keyCommitID:     {"DRONE_COMMIT_AFTER", "DRONE_COMMIT_SHA"},
	keyBranch:       {"DRONE_BRANCH"},
	keyUsername:     {"PLUGIN_USERNAME"},
	keyPassword:     {"PLUGIN_PASSWORD"},
	keyRepository:   {"PLUGIN_REPO"},
	keyRegistry:     {"PLUGIN_REGISTRY"},
	keyDockerfile:   {"PLUGIN_DOCKERFILE"},
	keyForceTag:     {"PLUGIN_FORCETAG"},
	keyHashLength:   {"PLUGIN_HASHLENGTH"},
	keyDigest:       {"PLUGIN_DIGEST"},
	keyDockerBinary: {"PLUGIN_DOCKER"},
}

// Loader implements ports.ConfigLoader on top of the process environment.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load applies the given dotenv files, then reads every bound variable once.
// Empty variables count as unset, except for the boolean switches.
func (l *Loader) Load(envFiles []string) (*domain.Config, error) {
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil {
			return nil, zerr.With(zerr.Wrap(errors.Join(domain.ErrEnvFile, err), "failed to read env file"), "path", path)
		}
		l.logger.Debug("loaded env file " + path)
	}

	v, err := bind(viper.New(), bindings)
	if err != nil {
		return nil, err
	}
	sw := viper.New()
	sw.AllowEmptyEnv(true)
	if _, err := bind(sw, switches); err != nil {
		return nil, err
	}

	v.SetDefault(keyContext, domain.DefaultContext)
	sw.SetDefault(keyPushTags, "true")
	v.SetDefault(keyRegistry, domain.DefaultRegistry)
	v.SetDefault(keyHashLength, strconv.Itoa(domain.DefaultHashLength))
	v.SetDefault(keyDigest, string(domain.DigestSHA256))
	v.SetDefault(keyDockerBinary, domain.DefaultDocker)

	hashLength, err := strconv.Atoi(strings.TrimSpace(v.GetString(keyHashLength)))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidHashLength, err.Error()), "value", v.GetString(keyHashLength))
	}

	cfg := &domain.Config{
		Context:      v.GetString(keyContext),
		Registry:     v.GetString(keyRegistry),
		Repository:   strings.TrimSpace(v.GetString(keyRepository)),
		Dockerfile:   v.GetString(keyDockerfile),
		FilesToHash:  ParseList(v.GetString(keyFiles)),
		Tags:         ParseList(v.GetString(keyTags)),
		BuildArgs:    ParseList(v.GetString(keyArgs)),
		PostCommands: ParseList(v.GetString(keyCommands)),
		Username:     v.GetString(keyUsername),
		Password:     v.GetString(keyPassword),
		Login:        ParseBool(sw.GetString(keyLogin)),
		PushTags:     ParseBool(sw.GetString(keyPushTags)),
		Debug:        ParseBool(sw.GetString(keyDebug)),
		ForceTag:     v.GetString(keyForceTag),
		CommitID:     v.GetString(keyCommitID),
		Branch:       v.GetString(keyBranch),
		HashLength:   hashLength,
		Digest:       domain.DigestAlgorithm(strings.ToLower(strings.TrimSpace(v.GetString(keyDigest)))),
		Docker:       v.GetString(keyDockerBinary),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Login && cfg.Username == "" {
		l.logger.Warn("login requested without PLUGIN_USERNAME")
	}

	return cfg, nil
}

func bind(v *viper.Viper, keys map[string][]string) (*viper.Viper, error) {
	for key, envs := range keys {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to bind environment"), "key", key)
		}
	}
	return v, nil
}

// ParseBool reports false for empty, "false" and "no" (case-insensitive), true otherwise.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false", "no":
		return false
	default:
		return true
	}
}

// ParseList splits a comma separated value, trimming items and dropping empty ones.
func ParseList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
