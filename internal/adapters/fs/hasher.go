// Package fs provides the filesystem backed fingerprint hasher.
package fs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/imprint/internal/core/domain"
	"go.trai.ch/imprint/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes fingerprints from file contents.
type Hasher struct {
	logger ports.Logger
}

// NewHasher creates a new Hasher.
func NewHasher(logger ports.Logger) *Hasher {
	return &Hasher{logger: logger}
}

// Fingerprint digests every file of spec concurrently and joins the truncated
// digests in input order. Without files it returns spec.Fallback and reads nothing.
func (h *Hasher) Fingerprint(ctx context.Context, spec domain.FingerprintSpec) (string, error) {
	if len(spec.Files) == 0 {
		h.logger.Debug("no files to hash, using fallback " + spec.Fallback)
		return spec.Fallback, nil
	}

	prefixes := make([]string, len(spec.Files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range spec.Files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sum, err := ComputeFileDigest(path, spec.Algorithm)
			if err != nil {
				return err
			}
			prefixes[i] = truncate(sum, spec.PrefixLength)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return "", err
	}

	for i, path := range spec.Files {
		h.logger.Debug(fmt.Sprintf("hashed %s: %s", path, prefixes[i]))
	}

	return strings.Join(prefixes, ""), nil
}

// ComputeFileDigest returns the hex encoded digest of a file's content.
func ComputeFileDigest(path string, algorithm domain.DigestAlgorithm) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by the pipeline configuration
	if err != nil {
		return "", unreadable(err, path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	switch algorithm {
	case domain.DigestXXHash:
		d := xxhash.New()
		if _, err := io.Copy(d, f); err != nil {
			return "", unreadable(err, path)
		}
		return fmt.Sprintf("%016x", d.Sum64()), nil
	case domain.DigestSHA256, "":
		return digest(sha256.New(), f, path)
	default:
		return "", zerr.With(zerr.Wrap(domain.ErrUnknownDigest, string(algorithm)), "path", path)
	}
}

func digest(d hash.Hash, r io.Reader, path string) (string, error) {
	if _, err := io.Copy(d, r); err != nil {
		return "", unreadable(err, path)
	}
	return hex.EncodeToString(d.Sum(nil)), nil
}

func unreadable(err error, path string) error {
	return zerr.With(zerr.Wrap(errors.Join(domain.ErrInputUnreadable, err), "failed to hash file"), "path", path)
}

func truncate(sum string, length int) string {
	if length <= 0 || length >= len(sum) {
		return sum
	}
	return sum[:length]
}
