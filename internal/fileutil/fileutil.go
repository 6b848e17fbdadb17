package fileutil

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// PrefixHash returns the SHA256 of at most the first limit bytes of the
// file. Files shorter than limit hash whatever is present.
func PrefixHash(path string, limit int64) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, io.LimitReader(file, limit)); err != nil {
		return nil, fmt.Errorf("hash %q: %w", path, err)
	}
	return hasher.Sum(nil), nil
}

// SameFile reports whether the two paths resolve to the same file on disk
// (same device and inode, or the same path after resolution). Either path
// failing to stat reports false with the error.
func SameFile(a, b string) (bool, error) {
	infoA, err := os.Stat(a)
	if err != nil {
		return false, fmt.Errorf("stat %q: %w", a, err)
	}
	infoB, err := os.Stat(b)
	if err != nil {
		return false, fmt.Errorf("stat %q: %w", b, err)
	}
	return os.SameFile(infoA, infoB), nil
}
