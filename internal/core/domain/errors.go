package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidConfig is the root of every configuration error.
	ErrInvalidConfig = zerr.New("invalid configuration")

	// ErrMissingRepository is returned when no repository name is configured.
	ErrMissingRepository = zerr.Wrap(ErrInvalidConfig, "repository is required")

	// ErrInvalidHashLength is returned when the fingerprint prefix length is out of range.
	ErrInvalidHashLength = zerr.Wrap(ErrInvalidConfig, "hash length must be between 1 and 64")

	// ErrUnknownDigest is returned when the configured digest algorithm is not supported.
	ErrUnknownDigest = zerr.Wrap(ErrInvalidConfig, "unknown digest algorithm")

	// ErrMissingFingerprint is returned when there are no files to hash, no commit id
	// and no forced tag, so no image tag can be derived.
	ErrMissingFingerprint = zerr.Wrap(ErrInvalidConfig, "no files to hash, commit id or forced tag")

	// ErrInputUnreadable is returned when a file listed for hashing cannot be read.
	ErrInputUnreadable = zerr.Wrap(ErrInvalidConfig, "input file unreadable")

	// ErrEnvFile is returned when a dotenv file cannot be loaded.
	ErrEnvFile = zerr.Wrap(ErrInvalidConfig, "failed to load env file")

	// ErrCommandFailed is returned when an external command exits with an unexpected code.
	ErrCommandFailed = zerr.New("command failed")

	// ErrEmptyCommand is returned when a command line has no arguments after splitting.
	ErrEmptyCommand = zerr.New("empty command")

	// ErrTemplateResolution is returned when placeholder resolution does not reach a fixed point.
	ErrTemplateResolution = zerr.New("template resolution did not converge")
)
