package scanner

import "sync"

// pruneSingletons drops every group with fewer than two members. All three
// pipeline stages share this filter: a bucket of one cannot contain
// duplicates.
func pruneSingletons[K comparable](groups map[K][]string) map[K][]string {
	pruned := make(map[K][]string, len(groups))
	for key, paths := range groups {
		if len(paths) >= 2 {
			pruned[key] = paths
		}
	}
	return pruned
}

// mergeGroups folds src into dst, appending members for keys present in
// both. Used by the collector goroutine to combine per-worker partial maps
// so workers never share a mutable map.
func mergeGroups[K comparable](dst, src map[K][]string) {
	for key, paths := range src {
		dst[key] = append(dst[key], paths...)
	}
}

// mapWorkers fans jobs out over a fixed-size worker pool. Each worker
// produces a local partial grouping from its job; the single collector
// merges them. Job order is irrelevant and no ordering of the merged keys
// is guaranteed.
func mapWorkers[J any, K comparable](jobs []J, workers int, fn func(J) map[K][]string) map[K][]string {
	if workers < 1 {
		workers = 1
	}

	jobCh := make(chan J)
	partials := make(chan map[K][]string)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				partials <- fn(job)
			}
		}()
	}

	go func() {
		for _, job := range jobs {
			jobCh <- job
		}
		close(jobCh)
	}()

	go func() {
		wg.Wait()
		close(partials)
	}()

	merged := make(map[K][]string)
	for partial := range partials {
		mergeGroups(merged, partial)
	}
	return merged
}
