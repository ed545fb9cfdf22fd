package domain

// DigestAlgorithm names the content digest used per hashed file.
type DigestAlgorithm string

const (
	// DigestSHA256 is the default, collision-resistant digest.
	DigestSHA256 DigestAlgorithm = "sha256"
	// DigestXXHash is a fast non-cryptographic digest for large inputs.
	DigestXXHash DigestAlgorithm = "xxhash"
)

// Valid reports whether the algorithm is supported.
func (d DigestAlgorithm) Valid() bool {
	return d == DigestSHA256 || d == DigestXXHash
}

// FingerprintSpec holds everything needed to compute a fingerprint.
type FingerprintSpec struct {
	// Files are hashed in order; reordering them changes the fingerprint.
	Files []string
	// Fallback is returned unchanged when Files is empty.
	Fallback string
	// PrefixLength is the number of hex characters kept per file digest.
	PrefixLength int
	Algorithm    DigestAlgorithm
}
