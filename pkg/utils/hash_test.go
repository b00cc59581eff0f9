package utils

import (
	"bytes"
	"testing"

	"github.com/Andrewsimsd/duplicate-file-finder/internal/testutil"
)

func TestFullHashKnownDigest(t *testing.T) {
	f := testutil.NewFixture(t)
	path := f.CreateFile("test_file.txt", []byte("Hello, world!\n"))

	digest, err := FullHash(path)
	if err != nil {
		t.Fatalf("FullHash() error = %v", err)
	}

	// Precomputed SHA-256 of "Hello, world!\n".
	want := "d9014c4624844aa5bac314773d6b689ad467fa4e1d1a50a1b8a99d5a95f72ff5"
	if digest != want {
		t.Errorf("FullHash() = %s, want %s", digest, want)
	}
}

func TestFullHashLargeFile(t *testing.T) {
	f := testutil.NewFixture(t)
	// Larger than FullHashBufferSize so the streaming loop runs more
	// than once.
	content := bytes.Repeat([]byte("abc123"), 3*FullHashBufferSize/6)
	a := f.CreateFile("a.bin", content)
	b := f.CreateFile("b.bin", content)

	digestA, err := FullHash(a)
	if err != nil {
		t.Fatalf("FullHash(a) error = %v", err)
	}
	digestB, err := FullHash(b)
	if err != nil {
		t.Fatalf("FullHash(b) error = %v", err)
	}
	if digestA != digestB {
		t.Errorf("identical content produced different digests: %s vs %s", digestA, digestB)
	}
}

func TestFullHashMissingFile(t *testing.T) {
	if _, err := FullHash("/nonexistent/file"); err == nil {
		t.Error("FullHash() on missing file expected error, got nil")
	}
}

func TestQuickHashDeterministic(t *testing.T) {
	f := testutil.NewFixture(t)
	a := f.CreateFile("a.txt", []byte("quick hash me"))
	b := f.CreateFile("b.txt", []byte("quick hash me"))

	hashA1, err := QuickHash(a)
	if err != nil {
		t.Fatalf("QuickHash() error = %v", err)
	}
	hashA2, _ := QuickHash(a)
	hashB, _ := QuickHash(b)

	if hashA1 != hashA2 {
		t.Errorf("repeated QuickHash of same file differs: %d vs %d", hashA1, hashA2)
	}
	if hashA1 != hashB {
		t.Errorf("QuickHash of identical content differs: %d vs %d", hashA1, hashB)
	}
}

func TestQuickHashPrefixOnly(t *testing.T) {
	f := testutil.NewFixture(t)

	prefix := bytes.Repeat([]byte{0x5a}, QuickHashPrefixSize)
	a := f.CreateFile("a.bin", append(append([]byte(nil), prefix...), []byte("tail-a")...))
	b := f.CreateFile("b.bin", append(append([]byte(nil), prefix...), []byte("tail-b")...))

	hashA, err := QuickHash(a)
	if err != nil {
		t.Fatalf("QuickHash(a) error = %v", err)
	}
	hashB, err := QuickHash(b)
	if err != nil {
		t.Fatalf("QuickHash(b) error = %v", err)
	}

	// Same first 8 KiB, so the quick hash cannot tell them apart.
	if hashA != hashB {
		t.Errorf("QuickHash over identical prefixes differs: %d vs %d", hashA, hashB)
	}

	// The full hash must tell them apart.
	fullA, _ := FullHash(a)
	fullB, _ := FullHash(b)
	if fullA == fullB {
		t.Error("FullHash of differing content collided")
	}
}

func TestQuickHashShortAndEmptyFiles(t *testing.T) {
	f := testutil.NewFixture(t)

	short := f.CreateFile("short.txt", []byte("x"))
	empty := f.CreateFile("empty.txt", nil)

	if _, err := QuickHash(short); err != nil {
		t.Errorf("QuickHash(short) error = %v", err)
	}
	if _, err := QuickHash(empty); err != nil {
		t.Errorf("QuickHash(empty) error = %v", err)
	}

	hashShort, _ := QuickHash(short)
	hashEmpty, _ := QuickHash(empty)
	if hashShort == hashEmpty {
		t.Error("QuickHash of differing short files collided")
	}
}

func TestQuickHashMissingFile(t *testing.T) {
	if _, err := QuickHash("/nonexistent/file"); err == nil {
		t.Error("QuickHash() on missing file expected error, got nil")
	}
}
