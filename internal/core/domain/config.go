// Package domain contains the core domain models for the image build/reuse workflow.
package domain

import "strings"

const (
	// DefaultRegistry is the registry that is never prefixed onto repository names.
	DefaultRegistry = "docker.io"
	// DefaultContext is the build context used when none is configured.
	DefaultContext = "."
	// DefaultHashLength is the number of hex characters kept per file digest.
	DefaultHashLength = 7
	// MaxHashLength is the length of a hex encoded sha256 digest.
	MaxHashLength = 64
	// DefaultDocker is the container CLI invoked for login, pull, build and push.
	DefaultDocker = "docker"
)

// Config is the immutable snapshot of plugin inputs.
// It is built once by the config loader and only read afterwards.
type Config struct {
	Context      string
	Registry     string
	Repository   string
	Dockerfile   string
	FilesToHash  []string
	Tags         []string
	BuildArgs    []string
	PostCommands []string

	Username string
	Password string

	Login    bool
	PushTags bool
	Debug    bool

	ForceTag string
	CommitID string
	Branch   string

	HashLength int
	Digest     DigestAlgorithm
	Docker     string
}

// FullRepository returns the repository prefixed with the registry host, unless the
// registry is the default one or the repository already starts with it.
func (c *Config) FullRepository() string {
	if c.Registry == "" || c.Registry == DefaultRegistry {
		return c.Repository
	}
	if strings.HasPrefix(c.Repository, c.Registry+"/") {
		return c.Repository
	}
	return c.Registry + "/" + c.Repository
}

// HashInputs returns the ordered list of files the fingerprint is computed from.
// The dockerfile leads the list whenever files are declared.
func (c *Config) HashInputs() []string {
	if len(c.FilesToHash) == 0 {
		return nil
	}
	inputs := make([]string, 0, len(c.FilesToHash)+1)
	if c.Dockerfile != "" {
		inputs = append(inputs, c.Dockerfile)
	}
	return append(inputs, c.FilesToHash...)
}

// FingerprintSpec describes how to compute the fingerprint for this configuration.
func (c *Config) FingerprintSpec() FingerprintSpec {
	return FingerprintSpec{
		Files:        c.HashInputs(),
		Fallback:     c.CommitID,
		PrefixLength: c.HashLength,
		Algorithm:    c.Digest,
	}
}

// Validate checks the invariants the loader cannot express through defaults.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Repository) == "" {
		return ErrMissingRepository
	}
	if c.HashLength < 1 || c.HashLength > MaxHashLength {
		return ErrInvalidHashLength
	}
	if !c.Digest.Valid() {
		return ErrUnknownDigest
	}
	if len(c.FilesToHash) == 0 && c.CommitID == "" && c.ForceTag == "" {
		return ErrMissingFingerprint
	}
	return nil
}
