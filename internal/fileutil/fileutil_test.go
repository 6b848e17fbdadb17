package fileutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestPrefixHashLimitsBytes(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.bin")
	b := filepath.Join(dir, "b.bin")

	prefix := bytes.Repeat([]byte{0xAB}, 64)
	if err := os.WriteFile(a, append(append([]byte{}, prefix...), []byte("tail-one")...), 0o644); err != nil {
		t.Fatalf("write a: %v", err)
	}
	if err := os.WriteFile(b, append(append([]byte{}, prefix...), []byte("tail-two")...), 0o644); err != nil {
		t.Fatalf("write b: %v", err)
	}

	hashA, err := PrefixHash(a, 64)
	if err != nil {
		t.Fatalf("hash a: %v", err)
	}
	hashB, err := PrefixHash(b, 64)
	if err != nil {
		t.Fatalf("hash b: %v", err)
	}
	if !bytes.Equal(hashA, hashB) {
		t.Fatalf("identical prefixes must hash equal")
	}

	fullA, err := PrefixHash(a, 1<<20)
	if err != nil {
		t.Fatalf("hash full a: %v", err)
	}
	fullB, err := PrefixHash(b, 1<<20)
	if err != nil {
		t.Fatalf("hash full b: %v", err)
	}
	if bytes.Equal(fullA, fullB) {
		t.Fatalf("different tails must hash different when within limit")
	}
}

func TestSameFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.mp3")
	if err := os.WriteFile(path, []byte("data"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	same, err := SameFile(path, filepath.Join(dir, ".", "song.mp3"))
	if err != nil {
		t.Fatalf("SameFile: %v", err)
	}
	if !same {
		t.Fatalf("expected same file through cleaned path")
	}

	other := filepath.Join(dir, "other.mp3")
	if err := os.WriteFile(other, []byte("data"), 0o644); err != nil {
		t.Fatalf("write other: %v", err)
	}
	same, err = SameFile(path, other)
	if err != nil {
		t.Fatalf("SameFile: %v", err)
	}
	if same {
		t.Fatalf("distinct files reported as same")
	}

	if _, err := SameFile(path, filepath.Join(dir, "missing.mp3")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
