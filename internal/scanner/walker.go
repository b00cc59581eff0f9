package scanner

import (
	"io/fs"
	"path/filepath"
)

// collectFiles recursively enumerates regular files under each root.
// Entries that error during traversal (permission denied, broken symlink,
// race-deleted file) are skipped without failing the walk, and directories
// are never emitted. No ordering is guaranteed; downstream stages do not
// depend on one.
func (s *Scanner) collectFiles(roots []string) []FileEntry {
	var entries []FileEntry

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				s.log.WithError(err).Debugf("skipping unreadable entry %s", path)
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !d.Type().IsRegular() {
				return nil
			}
			if s.excluded(path) {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				s.log.WithError(err).Debugf("skipping unstattable file %s", path)
				s.stats.FilesDropped.Add(1)
				return nil
			}
			if info.Size() < s.minFileSize {
				return nil
			}

			entries = append(entries, FileEntry{Path: path, Size: info.Size()})
			s.stats.FilesFound.Add(1)
			s.publishWalk(path)
			return nil
		})
		if err != nil {
			// WalkDir only returns an error our callback produced; the
			// callback swallows everything, so this is unreachable in
			// practice. Logged for safety.
			s.log.WithError(err).Warnf("walk of %s ended early", root)
		}
	}

	return entries
}

// excluded reports whether the path matches any configured exclude pattern.
func (s *Scanner) excluded(path string) bool {
	for _, pattern := range s.excludePatterns {
		if matched, _ := filepath.Match(pattern, path); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, filepath.Base(path)); matched {
			return true
		}
	}
	return false
}
