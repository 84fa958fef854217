// Package cryptoutil provides hashing utilities used to fingerprint templates
package cryptoutil

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"strings"

	"github.com/deploymenttheory/go-workflow-templates/internal/common/errors"
	"golang.org/x/crypto/blake2b"
)

// Bytes2Hex encodes a byte slice to hex string
func Bytes2Hex(d []byte) string {
	return hex.EncodeToString(d)
}

// HashAlgorithm represents supported hash algorithms
type HashAlgorithm string

const (
	// SHA256 algorithm
	SHA256 HashAlgorithm = "sha256"

	// SHA512 algorithm
	SHA512 HashAlgorithm = "sha512"

	// BLAKE2b256 algorithm, the default for template digests
	BLAKE2b256 HashAlgorithm = "blake2b"
)

// Hasher provides an interface for hashing operations
type Hasher interface {
	// Algorithm returns the algorithm the hasher uses
	Algorithm() HashAlgorithm

	// Hash hashes the provided data
	Hash(data []byte) (string, error)

	// HashReader hashes data from a reader
	HashReader(reader io.Reader) (string, error)

	// Verify checks if the provided hash matches the calculated hash for the data
	Verify(data []byte, expectedHash string) (bool, error)
}

// hasherImpl implements the Hasher interface
type hasherImpl struct {
	algorithm HashAlgorithm
	newHash   func() (hash.Hash, error)
}

// NewHasher creates a new Hasher for the specified algorithm
func NewHasher(algorithm HashAlgorithm) (Hasher, error) {
	var newHashFunc func() (hash.Hash, error)

	switch HashAlgorithm(strings.ToLower(string(algorithm))) {
	case SHA256:
		newHashFunc = func() (hash.Hash, error) { return sha256.New(), nil }
	case SHA512:
		newHashFunc = func() (hash.Hash, error) { return sha512.New(), nil }
	case BLAKE2b256:
		newHashFunc = func() (hash.Hash, error) { return blake2b.New256(nil) }
	default:
		return nil, fmt.Errorf("%w: unsupported hash algorithm '%s'", errors.ErrInvalidHasher, algorithm)
	}

	return &hasherImpl{
		algorithm: HashAlgorithm(strings.ToLower(string(algorithm))),
		newHash:   newHashFunc,
	}, nil
}

// Algorithm returns the algorithm the hasher uses
func (h *hasherImpl) Algorithm() HashAlgorithm {
	return h.algorithm
}

// Hash hashes the provided data
func (h *hasherImpl) Hash(data []byte) (string, error) {
	hasher, err := h.newHash()
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidHasher, err)
	}
	if _, err := hasher.Write(data); err != nil {
		return "", fmt.Errorf("hash operation failed: %w", err)
	}

	return Bytes2Hex(hasher.Sum(nil)), nil
}

// HashReader hashes data from a reader
func (h *hasherImpl) HashReader(reader io.Reader) (string, error) {
	hasher, err := h.newHash()
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidHasher, err)
	}
	if _, err := io.Copy(hasher, reader); err != nil {
		return "", fmt.Errorf("hash operation failed: %w", err)
	}

	return Bytes2Hex(hasher.Sum(nil)), nil
}

// Verify checks if the provided hash matches the calculated hash for the data
func (h *hasherImpl) Verify(data []byte, expectedHash string) (bool, error) {
	actualHash, err := h.Hash(data)
	if err != nil {
		return false, err
	}

	return strings.EqualFold(actualHash, expectedHash), nil
}

// FormatDigest prefixes a hex digest with its algorithm, e.g. "sha256:1234abcd..."
func FormatDigest(algorithm HashAlgorithm, digest string) string {
	return string(algorithm) + ":" + digest
}

// ParseHashWithAlgorithm parses a hash string that might include the algorithm as a prefix
// Example formats: "sha256:1234abcd..." or "1234abcd..."
func ParseHashWithAlgorithm(hashStr string) (string, HashAlgorithm) {
	parts := strings.SplitN(hashStr, ":", 2)

	if len(parts) == 2 {
		algorithmStr := HashAlgorithm(strings.ToLower(parts[0]))

		// Check if the algorithm part is a known algorithm
		switch algorithmStr {
		case SHA256, SHA512, BLAKE2b256:
			return parts[1], algorithmStr
		}
	}

	// If no algorithm was specified or it wasn't recognized, just return the hash as-is
	return hashStr, ""
}
