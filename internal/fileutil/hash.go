package fileutil

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// DefaultHashChunkSize is the read size used when streaming file content.
	DefaultHashChunkSize = 64 * 1024
	minHashChunkSize     = 4 * 1024
)

// Digest is a SHA-256 content fingerprint. The zero value is the unknown
// digest, produced when a file could not be read; it never equals anything,
// including another unknown digest.
type Digest struct {
	sum   [sha256.Size]byte
	known bool
}

// Known reports whether the digest was computed from file content.
func (d Digest) Known() bool {
	return d.known
}

// Equal reports whether both digests are known and identical.
func (d Digest) Equal(other Digest) bool {
	return d.known && other.known && d.sum == other.sum
}

// String returns the hex digest or "unknown".
func (d Digest) String() string {
	if !d.known {
		return "unknown"
	}
	return hex.EncodeToString(d.sum[:])
}

// Hasher streams files through SHA-256 in fixed-size chunks so memory use
// stays bounded for large inputs.
type Hasher struct {
	chunkSize int
}

// NewHasher returns a hasher reading chunkSize bytes at a time. Values below
// 4 KiB fall back to DefaultHashChunkSize.
func NewHasher(chunkSize int) *Hasher {
	if chunkSize < minHashChunkSize {
		chunkSize = DefaultHashChunkSize
	}
	return &Hasher{chunkSize: chunkSize}
}

// ChunkSize returns the configured read size.
func (h *Hasher) ChunkSize() int {
	if h == nil || h.chunkSize <= 0 {
		return DefaultHashChunkSize
	}
	return h.chunkSize
}

// Hash computes the digest of the file at path. On any read failure it
// returns the unknown digest together with the error.
func (h *Hasher) Hash(path string) (Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("open for hashing: %w", err)
	}
	defer f.Close()

	sum := sha256.New()
	buf := make([]byte, h.ChunkSize())
	for {
		n, readErr := f.Read(buf)
		if n > 0 {
			sum.Write(buf[:n])
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return Digest{}, fmt.Errorf("read for hashing: %w", readErr)
		}
	}

	var d Digest
	copy(d.sum[:], sum.Sum(nil))
	d.known = true
	return d, nil
}
