package scanner

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/Andrewsimsd/duplicate-file-finder/internal/testutil"
)

func entryPaths(entries []FileEntry) []string {
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, e.Path)
	}
	sort.Strings(paths)
	return paths
}

func TestCollectFilesRegularOnly(t *testing.T) {
	f := testutil.NewFixture(t)
	a := f.CreateFile("a.txt", []byte("one"))
	b := f.CreateFile("sub/b.txt", []byte("two"))
	f.CreateDir("emptydir")

	entries := New().collectFiles([]string{f.RootDir})

	got := entryPaths(entries)
	want := []string{a, b}
	sort.Strings(want)
	if len(got) != len(want) {
		t.Fatalf("collectFiles() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("collectFiles()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestCollectFilesRecordsSize(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateFileOfSize("sized.bin", 2048)

	entries := New().collectFiles([]string{f.RootDir})

	if len(entries) != 1 {
		t.Fatalf("collectFiles() returned %d entries, want 1", len(entries))
	}
	if entries[0].Size != 2048 {
		t.Errorf("entry size = %d, want 2048", entries[0].Size)
	}
}

func TestCollectFilesSkipsSymlinks(t *testing.T) {
	f := testutil.NewFixture(t)
	target := f.CreateFile("target.txt", []byte("linked content"))
	f.CreateSymlink(target, "link.txt")
	f.CreateDir("realdir")
	f.CreateFile("realdir/inner.txt", []byte("inner"))
	f.CreateSymlink(f.Path("realdir"), "dirlink")

	entries := New().collectFiles([]string{f.RootDir})

	for _, e := range entries {
		if filepath.Base(e.Path) == "link.txt" {
			t.Error("symlink emitted as file entry")
		}
		if filepath.Dir(e.Path) == f.Path("dirlink") {
			t.Error("walker followed a directory symlink")
		}
	}
	if len(entries) != 2 {
		t.Errorf("collectFiles() returned %d entries, want 2", len(entries))
	}
}

func TestCollectFilesSkipsUnreadableDir(t *testing.T) {
	testutil.SkipIfRoot(t)

	f := testutil.NewFixture(t)
	readable := f.CreateFile("readable.txt", []byte("ok"))
	locked := f.CreateDir("locked")
	f.CreateFile("locked/hidden.txt", []byte("unreachable"))

	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod failed: %v", err)
	}
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	entries := New().collectFiles([]string{f.RootDir})

	got := entryPaths(entries)
	if len(got) != 1 || got[0] != readable {
		t.Errorf("collectFiles() = %v, want only %s", got, readable)
	}
}

func TestCollectFilesMinSize(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateFileOfSize("small.bin", 100)
	big := f.CreateFileOfSize("big.bin", 5000)
	f.CreateFile("empty.bin", nil)

	entries := New(WithMinFileSize(1000)).collectFiles([]string{f.RootDir})

	got := entryPaths(entries)
	if len(got) != 1 || got[0] != big {
		t.Errorf("collectFiles() = %v, want only %s", got, big)
	}
}

func TestExcluded(t *testing.T) {
	s := New(WithExcludePatterns([]string{"*.tmp", "*.bak", "node_modules"}))

	tests := []struct {
		path string
		want bool
	}{
		{"/home/user/cache.tmp", true},
		{"/home/user/backup.bak", true},
		{"/home/user/node_modules", true},
		{"/home/user/report.txt", false},
		{"/home/user/tmp.file", false},
		{"/home/user/sub/other.tmp", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := s.excluded(tt.path); got != tt.want {
				t.Errorf("excluded(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestExcludedNoPatterns(t *testing.T) {
	s := New()
	if s.excluded("/any/path/at/all") {
		t.Error("excluded() must be false with no patterns configured")
	}
}
