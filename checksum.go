package fatkit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"hash/crc32"
	"io"

	"github.com/cespare/xxhash/v2"
)

// ChecksumAlgorithm selects the digest used for file integrity verification.
type ChecksumAlgorithm string

const (
	// ChecksumCRC32 is the CRC32 checksum (32-bit, fastest, integrity only)
	ChecksumCRC32 ChecksumAlgorithm = "crc32"
	// ChecksumSHA256 is the SHA-256 hash algorithm (256-bit, recommended)
	ChecksumSHA256 ChecksumAlgorithm = "sha256"
	// ChecksumXXHash is the xxHash algorithm (64-bit, extremely fast)
	ChecksumXXHash ChecksumAlgorithm = "xxhash"
)

// NewHasher creates a new hash.Hash for the given algorithm.
// Returns an error if the algorithm is not supported.
func NewHasher(algorithm ChecksumAlgorithm) (hash.Hash, error) {
	switch algorithm {
	case ChecksumCRC32:
		return crc32.NewIEEE(), nil
	case ChecksumSHA256:
		return sha256.New(), nil
	case ChecksumXXHash:
		return xxhash.New(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported checksum algorithm: %s", ErrNotSupported, algorithm)
	}
}

// Checksum reads f from its current cursor to end of file and returns the
// hex-encoded digest. The handle's cursor is left at end of file.
func Checksum(f *FileHandle, algorithm ChecksumAlgorithm) (string, error) {
	h, err := NewHasher(algorithm)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to calculate checksum: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyRootFile opens name read-only in the root directory of the volume at
// index and reports whether its digest matches expected. Every handle opened
// along the way is released before the call returns.
func VerifyRootFile(c Controller, index int, name, expected string, algorithm ChecksumAlgorithm) (bool, error) {
	vol, err := c.Volume(index)
	if err != nil {
		return false, err
	}

	root, err := vol.Root()
	if err != nil {
		return false, err
	}
	defer root.Release()

	f, err := root.File(name, ModeReadOnly)
	if err != nil {
		return false, err
	}
	defer f.Release()

	actual, err := Checksum(f, algorithm)
	if err != nil {
		return false, err
	}

	return actual == expected, nil
}
