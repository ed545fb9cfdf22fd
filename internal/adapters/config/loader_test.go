package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/imprint/internal/adapters/config"
	"go.trai.ch/imprint/internal/core/domain"
	"go.trai.ch/imprint/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

var pluginVars = []string{
	"PLUGIN_CONTEXT", "PLUGIN_DEBUG", "PLUGIN_PUSHTAGS", "PLUGIN_TAGS", "PLUGIN_FILES",
	"PLUGIN_COMMANDS", "PLUGIN_ARGS", "DRONE_COMMIT_AFTER", "DRONE_COMMIT_SHA", "DRONE_BRANCH",
	"PLUGIN_LOGIN", "PLUGIN_USERNAME", "PLUGIN_PASSWORD", "PLUGIN_REPO", "PLUGIN_REGISTRY",
	"PLUGIN_DOCKERFILE", "PLUGIN_FORCETAG", "PLUGIN_HASHLENGTH", "PLUGIN_DIGEST", "PLUGIN_DOCKER",
}

// clearEnv unsets every plugin variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range pluginVars {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	return config.NewLoader(log)
}

func TestLoader_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLUGIN_REPO", "acme/app")
	t.Setenv("DRONE_COMMIT_AFTER", "abc123")

	cfg, err := newLoader(t).Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Context)
	assert.Equal(t, "docker.io", cfg.Registry)
	assert.Equal(t, "acme/app", cfg.Repository)
	assert.True(t, cfg.PushTags)
	assert.False(t, cfg.Debug)
	assert.False(t, cfg.Login)
	assert.Empty(t, cfg.Tags)
	assert.Empty(t, cfg.FilesToHash)
	assert.Empty(t, cfg.Dockerfile)
	assert.Empty(t, cfg.ForceTag)
	assert.Equal(t, "abc123", cfg.CommitID)
	assert.Equal(t, domain.DefaultHashLength, cfg.HashLength)
	assert.Equal(t, domain.DigestSHA256, cfg.Digest)
	assert.Equal(t, "docker", cfg.Docker)
}

func TestLoader_AllFields(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLUGIN_CONTEXT", "./build")
	t.Setenv("PLUGIN_DEBUG", "yes")
	t.Setenv("PLUGIN_PUSHTAGS", "No")
	t.Setenv("PLUGIN_TAGS", "latest, %DRONE_BRANCH%,")
	t.Setenv("PLUGIN_FILES", "go.mod,go.sum")
	t.Setenv("PLUGIN_COMMANDS", "docker run %REPOSITORY%:%IMAGE_HASH% make test")
	t.Setenv("PLUGIN_ARGS", "VERSION=%DRONE_TAG%")
	t.Setenv("DRONE_BRANCH", "main")
	t.Setenv("PLUGIN_LOGIN", "true")
	t.Setenv("PLUGIN_USERNAME", "bot")
	t.Setenv("PLUGIN_PASSWORD", "secret")
	t.Setenv("PLUGIN_REPO", "acme/app")
	t.Setenv("PLUGIN_REGISTRY", "registry.example.com")
	t.Setenv("PLUGIN_DOCKERFILE", "Dockerfile")
	t.Setenv("PLUGIN_FORCETAG", "stable")
	t.Setenv("PLUGIN_HASHLENGTH", "12")
	t.Setenv("PLUGIN_DIGEST", "XXHash")
	t.Setenv("PLUGIN_DOCKER", "podman")

	cfg, err := newLoader(t).Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "./build", cfg.Context)
	assert.True(t, cfg.Debug)
	assert.False(t, cfg.PushTags)
	assert.Equal(t, []string{"latest", "%DRONE_BRANCH%"}, cfg.Tags)
	assert.Equal(t, []string{"go.mod", "go.sum"}, cfg.FilesToHash)
	assert.Equal(t, []string{"docker run %REPOSITORY%:%IMAGE_HASH% make test"}, cfg.PostCommands)
	assert.Equal(t, []string{"VERSION=%DRONE_TAG%"}, cfg.BuildArgs)
	assert.Equal(t, "main", cfg.Branch)
	assert.True(t, cfg.Login)
	assert.Equal(t, "bot", cfg.Username)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, "registry.example.com", cfg.Registry)
	assert.Equal(t, "Dockerfile", cfg.Dockerfile)
	assert.Equal(t, "stable", cfg.ForceTag)
	assert.Equal(t, 12, cfg.HashLength)
	assert.Equal(t, domain.DigestXXHash, cfg.Digest)
	assert.Equal(t, "podman", cfg.Docker)
}

func TestLoader_CommitFallback(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLUGIN_REPO", "acme/app")
	t.Setenv("DRONE_COMMIT_SHA", "sha-only")

	cfg, err := newLoader(t).Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "sha-only", cfg.CommitID)

	t.Setenv("DRONE_COMMIT_AFTER", "after")
	cfg, err = newLoader(t).Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "after", cfg.CommitID, "DRONE_COMMIT_AFTER takes precedence")
}

func TestLoader_EmptySwitches(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLUGIN_REPO", "acme/app")
	t.Setenv("DRONE_COMMIT_SHA", "sha-only")
	t.Setenv("DRONE_COMMIT_AFTER", "")
	t.Setenv("PLUGIN_PUSHTAGS", "")
	t.Setenv("PLUGIN_LOGIN", "")

	cfg, err := newLoader(t).Load(nil)
	require.NoError(t, err)
	assert.False(t, cfg.PushTags, "a set but empty switch reads as false")
	assert.False(t, cfg.Login)
	assert.Equal(t, "sha-only", cfg.CommitID, "empty values still fall through for other keys")
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		expected error
	}{
		{"MissingRepository", map[string]string{"DRONE_COMMIT_AFTER": "abc"}, domain.ErrMissingRepository},
		{"NoFingerprintSource", map[string]string{"PLUGIN_REPO": "acme/app"}, domain.ErrMissingFingerprint},
		{"BadHashLength", map[string]string{"PLUGIN_REPO": "acme/app", "DRONE_COMMIT_AFTER": "abc", "PLUGIN_HASHLENGTH": "seven"}, domain.ErrInvalidHashLength},
		{"HashLengthOutOfRange", map[string]string{"PLUGIN_REPO": "acme/app", "DRONE_COMMIT_AFTER": "abc", "PLUGIN_HASHLENGTH": "0"}, domain.ErrInvalidHashLength},
		{"UnknownDigest", map[string]string{"PLUGIN_REPO": "acme/app", "DRONE_COMMIT_AFTER": "abc", "PLUGIN_DIGEST": "md5"}, domain.ErrUnknownDigest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := newLoader(t).Load(nil)
			require.ErrorIs(t, err, tt.expected)
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
		})
	}
}

func TestLoader_EnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("PLUGIN_REGISTRY", "registry.example.com")

	dir := t.TempDir()
	path := filepath.Join(dir, "plugin.env")
	content := "PLUGIN_REPO=acme/app\nDRONE_COMMIT_AFTER=fromfile\nPLUGIN_REGISTRY=ignored.example.com\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("PLUGIN_REPO")
		_ = os.Unsetenv("DRONE_COMMIT_AFTER")
	})

	cfg, err := newLoader(t).Load([]string{path})
	require.NoError(t, err)
	assert.Equal(t, "acme/app", cfg.Repository)
	assert.Equal(t, "fromfile", cfg.CommitID)
	assert.Equal(t, "registry.example.com", cfg.Registry, "variables already set win over the file")
}

func TestLoader_MissingEnvFile(t *testing.T) {
	clearEnv(t)

	_, err := newLoader(t).Load([]string{filepath.Join(t.TempDir(), "missing.env")})
	require.ErrorIs(t, err, domain.ErrEnvFile)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"", "false", "FALSE", " no ", "No"} {
		assert.False(t, config.ParseBool(s), s)
	}
	for _, s := range []string{"true", "yes", "1", "0", "anything"} {
		assert.True(t, config.ParseBool(s), s)
	}
}

func TestParseList(t *testing.T) {
	assert.Empty(t, config.ParseList(""))
	assert.Empty(t, config.ParseList(" , ,"))
	assert.Equal(t, []string{"a", "b c", "d"}, config.ParseList(",a, b c ,,d,\n"))
}
