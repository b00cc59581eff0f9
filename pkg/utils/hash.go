package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

const (
	// QuickHashPrefixSize is how many leading bytes feed the quick hash.
	// Files shorter than this are hashed in full. Changing it only shifts
	// work between the quick-hash and full-hash stages; the full hash
	// re-verifies every candidate group regardless.
	QuickHashPrefixSize = 8 * 1024

	// FullHashBufferSize is the read chunk size used when streaming a
	// whole file through SHA-256, so memory use stays independent of
	// file size.
	FullHashBufferSize = 64 * 1024
)

// QuickHash computes a fast, non-cryptographic XXH64 digest over the first
// QuickHashPrefixSize bytes of a file. The seed is fixed (zero), so results
// are deterministic and comparable across files and runs. Quick hashes are
// a pruning filter only, never proof of duplication.
func QuickHash(path string) (uint64, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	buf := make([]byte, QuickHashPrefixSize)
	n, err := io.ReadFull(file, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return 0, err
	}

	return xxhash.Sum64(buf[:n]), nil
}

// FullHash streams the entire file content through SHA-256 and returns the
// lowercase hex digest. This is the authoritative duplicate-equality test.
func FullHash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := sha256.New()
	buf := make([]byte, FullHashBufferSize)
	for {
		n, err := file.Read(buf)
		if n > 0 {
			hash.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
