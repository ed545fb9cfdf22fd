package fs_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/imprint/internal/adapters/fs"
	"go.trai.ch/imprint/internal/core/domain"
	"go.trai.ch/imprint/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newHasher(t *testing.T) *fs.Hasher {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	return fs.NewHasher(log)
}

func spec(files ...string) domain.FingerprintSpec {
	return domain.FingerprintSpec{
		Files:        files,
		Fallback:     "commit",
		PrefixLength: domain.DefaultHashLength,
		Algorithm:    domain.DigestSHA256,
	}
}

func TestHasher_Fingerprint_Concatenation(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "alpha")
	b := writeFile(t, dir, "b.txt", "beta")

	sumA := sha256.Sum256([]byte("alpha"))
	sumB := sha256.Sum256([]byte("beta"))
	expected := hex.EncodeToString(sumA[:])[:7] + hex.EncodeToString(sumB[:])[:7]

	got, err := newHasher(t).Fingerprint(context.Background(), spec(a, b))
	require.NoError(t, err)
	assert.Equal(t, expected, got)
	assert.Len(t, got, 14)
}

func TestHasher_Fingerprint_Deterministic(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "alpha")
	b := writeFile(t, dir, "b.txt", "beta")
	h := newHasher(t)

	first, err := h.Fingerprint(context.Background(), spec(a, b))
	require.NoError(t, err)
	second, err := h.Fingerprint(context.Background(), spec(a, b))
	require.NoError(t, err)
	assert.Equal(t, first, second)

	reordered, err := h.Fingerprint(context.Background(), spec(b, a))
	require.NoError(t, err)
	assert.NotEqual(t, first, reordered, "order is significant")
}

func TestHasher_Fingerprint_ContentChange(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "alpha")
	h := newHasher(t)

	before, err := h.Fingerprint(context.Background(), spec(a))
	require.NoError(t, err)

	writeFile(t, dir, "a.txt", "alphb")
	after, err := h.Fingerprint(context.Background(), spec(a))
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
}

func TestHasher_Fingerprint_Fallback(t *testing.T) {
	got, err := newHasher(t).Fingerprint(context.Background(), spec())
	require.NoError(t, err)
	assert.Equal(t, "commit", got)
}

func TestHasher_Fingerprint_MissingFile(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "alpha")

	_, err := newHasher(t).Fingerprint(context.Background(), spec(a, filepath.Join(dir, "missing.txt")))
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrInputUnreadable)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestHasher_Fingerprint_PrefixLength(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "alpha")

	s := spec(a)
	s.PrefixLength = 12
	got, err := newHasher(t).Fingerprint(context.Background(), s)
	require.NoError(t, err)
	assert.Len(t, got, 12)

	s.PrefixLength = domain.MaxHashLength
	full, err := newHasher(t).Fingerprint(context.Background(), s)
	require.NoError(t, err)
	assert.Len(t, full, 64)
	assert.Equal(t, full[:12], got)
}

func TestHasher_Fingerprint_XXHash(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "alpha")

	s := spec(a)
	s.Algorithm = domain.DigestXXHash
	s.PrefixLength = domain.MaxHashLength

	got, err := newHasher(t).Fingerprint(context.Background(), s)
	require.NoError(t, err)
	assert.Len(t, got, 16, "xxhash digests are never padded")

	sha, err := newHasher(t).Fingerprint(context.Background(), spec(a))
	require.NoError(t, err)
	assert.NotEqual(t, sha, got[:7])
}

func TestHasher_Fingerprint_Cancelled(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "alpha")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newHasher(t).Fingerprint(ctx, spec(a))
	require.ErrorIs(t, err, context.Canceled)
}

func TestComputeFileDigest_UnknownAlgorithm(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", "alpha")

	_, err := fs.ComputeFileDigest(a, "md5")
	require.ErrorIs(t, err, domain.ErrUnknownDigest)
}
