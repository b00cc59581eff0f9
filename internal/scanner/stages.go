package scanner

import (
	"github.com/Andrewsimsd/duplicate-file-finder/internal/progress"
	"github.com/Andrewsimsd/duplicate-file-finder/pkg/utils"
)

// groupBySize partitions discovered files into buckets keyed by exact byte
// length. This is the highest-value pruning step: a metadata compare costs
// nothing next to content I/O, and most files are alone in their bucket.
func groupBySize(entries []FileEntry) SizeBuckets {
	buckets := make(SizeBuckets)
	for _, entry := range entries {
		buckets[entry.Size] = append(buckets[entry.Size], entry.Path)
	}
	return buckets
}

// groupByQuickHash sub-partitions each size bucket by an XXH64 hash of the
// first 8 KiB of each file. Buckets are independent, so they are processed
// in parallel; each worker builds a partial map over one bucket and the
// results are merged. Files that fail to open or read are dropped without
// affecting their siblings. Hash-value collisions across buckets can merge
// unrelated candidates into one group; that is harmless because the full
// hash re-verifies every member.
func (s *Scanner) groupByQuickHash(buckets SizeBuckets) QuickHashGroups {
	jobs := make([][]string, 0, len(buckets))
	for _, paths := range buckets {
		jobs = append(jobs, paths)
	}

	return mapWorkers(jobs, s.workers, func(paths []string) map[uint64][]string {
		local := make(map[uint64][]string)
		for _, path := range paths {
			hash, err := utils.QuickHash(path)
			if err != nil {
				s.log.WithError(err).Debugf("quick hash failed for %s", path)
				s.stats.FilesDropped.Add(1)
				continue
			}
			local[hash] = append(local[hash], path)
		}
		s.publish(progress.StageQuickHash, s.quickDone.Add(1), s.quickTotal, "")
		return pruneSingletons(local)
	})
}

// groupByFullHash streams every surviving candidate through SHA-256 and
// groups by the hex digest. Only digest groups with two or more members are
// confirmed duplicates. Each candidate group is an independent work unit.
func (s *Scanner) groupByFullHash(candidates QuickHashGroups) DuplicateGroups {
	jobs := make([][]string, 0, len(candidates))
	for _, paths := range candidates {
		jobs = append(jobs, paths)
	}

	return mapWorkers(jobs, s.workers, func(paths []string) map[string][]string {
		local := make(map[string][]string)
		for _, path := range paths {
			digest, err := utils.FullHash(path)
			if err != nil {
				s.log.WithError(err).Debugf("full hash failed for %s", path)
				s.stats.FilesDropped.Add(1)
			} else {
				local[digest] = append(local[digest], path)
			}
			s.publish(progress.StageFullHash, s.fullDone.Add(1), s.fullTotal, path)
		}
		return pruneSingletons(local)
	})
}
