package ports

import (
	"context"

	"go.trai.ch/imprint/internal/core/domain"
)

// Hasher defines the interface for computing content fingerprints.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Fingerprint concatenates truncated digests of spec.Files in order,
	// or returns spec.Fallback when there are no files.
	Fingerprint(ctx context.Context, spec domain.FingerprintSpec) (string, error)
}
