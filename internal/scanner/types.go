package scanner

// FileEntry is a discovered regular file: its absolute path plus the byte
// length observed at discovery time. Identity is the path; the length is a
// derived attribute used for bucketing.
type FileEntry struct {
	Path string
	Size int64
}

// SizeBuckets maps an exact byte length to the paths sharing that length.
type SizeBuckets map[int64][]string

// QuickHashGroups maps a 64-bit prefix hash to the paths sharing it. Quick
// hashes are not collision-free; they are a filter, not proof of duplication.
type QuickHashGroups map[uint64][]string

// DuplicateGroups maps a full-content SHA-256 hex digest to the paths
// confirmed to share byte-identical content. Every group in a final scan
// result has at least two members.
type DuplicateGroups map[string][]string

// Stats holds aggregate counters for one pipeline run. They are
// observability data only, not part of the correctness contract.
type Stats struct {
	FilesFound      int64
	SizeBuckets     int64
	CandidateGroups int64
	DuplicateGroups int64
	FilesDropped    int64
}
