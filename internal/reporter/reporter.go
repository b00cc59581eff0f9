// Package reporter assembles and renders duplicate-file reports. It
// consumes the confirmed duplicate groups produced by the scanner; the
// scan result itself is never mutated, so a failed write can be retried
// against a different destination.
package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Andrewsimsd/duplicate-file-finder/internal/scanner"
	"github.com/Andrewsimsd/duplicate-file-finder/pkg/utils"
)

// TimeFormat is the timestamp layout used in report headers.
const TimeFormat = "20060102 15:04:05"

// DefaultFilename is used when no output path is given, or when the given
// path is a directory.
const DefaultFilename = "duplicate_file_report.txt"

// OutputFormat selects a report rendering.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatSummary OutputFormat = "summary"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
)

// ParseFormat validates a format name from config or flags.
func ParseFormat(name string) (OutputFormat, error) {
	switch OutputFormat(name) {
	case FormatText, FormatSummary, FormatJSON, FormatYAML:
		return OutputFormat(name), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", name)
	}
}

// Metadata describes the scan a report covers.
type Metadata struct {
	GeneratedBy string    `json:"generated_by" yaml:"generated_by"`
	StartTime   time.Time `json:"start_time" yaml:"start_time"`
	EndTime     time.Time `json:"end_time" yaml:"end_time"`
	Roots       []string  `json:"scanned_roots" yaml:"scanned_roots"`
}

// Group is one confirmed duplicate group: files sharing a content digest.
type Group struct {
	Digest string   `json:"digest" yaml:"digest"`
	Size   int64    `json:"size" yaml:"size"`
	Paths  []string `json:"paths" yaml:"paths"`
}

// Report is an assembled, renderable duplicate report.
type Report struct {
	Meta         Metadata `json:"metadata" yaml:"metadata"`
	Groups       []Group  `json:"groups" yaml:"groups"`
	TotalSavings int64    `json:"total_potential_savings" yaml:"total_potential_savings"`
	TotalFiles   int      `json:"total_files" yaml:"total_files"`
}

// Build assembles a Report from the scanner's output. Groups are ordered by
// descending representative file size (digest as tie-break, so output is
// stable), and the potential space savings is the sum over groups of
// size × (count − 1): the bytes reclaimable by keeping one copy of each.
func Build(duplicates scanner.DuplicateGroups, meta Metadata) *Report {
	report := &Report{Meta: meta, Groups: make([]Group, 0, len(duplicates))}

	for digest, paths := range duplicates {
		sorted := append([]string(nil), paths...)
		sort.Strings(sorted)

		var size int64
		if info, err := os.Stat(sorted[0]); err == nil {
			size = info.Size()
		}

		report.Groups = append(report.Groups, Group{Digest: digest, Size: size, Paths: sorted})
		report.TotalSavings += size * int64(len(sorted)-1)
		report.TotalFiles += len(sorted)
	}

	sort.Slice(report.Groups, func(i, j int) bool {
		if report.Groups[i].Size != report.Groups[j].Size {
			return report.Groups[i].Size > report.Groups[j].Size
		}
		return report.Groups[i].Digest < report.Groups[j].Digest
	})

	return report
}

// Reporter renders reports to a writer in a chosen format.
type Reporter struct {
	writer io.Writer
	format OutputFormat
}

// New creates a Reporter.
func New(writer io.Writer, format OutputFormat) *Reporter {
	return &Reporter{writer: writer, format: format}
}

// Write renders the report. A write failure is terminal for this
// destination only.
func (r *Reporter) Write(report *Report) error {
	switch r.format {
	case FormatText:
		return r.writeText(report)
	case FormatSummary:
		return r.writeSummary(report)
	case FormatJSON:
		return r.writeJSON(report)
	case FormatYAML:
		return r.writeYAML(report)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

// writeText renders the plain-text report.
func (r *Reporter) writeText(report *Report) error {
	w := r.writer

	if _, err := fmt.Fprintln(w, "Duplicate File Finder Report"); err != nil {
		return err
	}
	fmt.Fprintf(w, "Generated by: %s\n", report.Meta.GeneratedBy)
	fmt.Fprintf(w, "Start Time: %s\n", report.Meta.StartTime.Format(TimeFormat))
	fmt.Fprintf(w, "End Time: %s\n", report.Meta.EndTime.Format(TimeFormat))
	if len(report.Meta.Roots) == 1 {
		fmt.Fprintf(w, "Base Directory: %s\n", report.Meta.Roots[0])
	} else {
		fmt.Fprintln(w, "Base Directories:")
		for _, root := range report.Meta.Roots {
			fmt.Fprintf(w, " - %s\n", root)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Total Potential Space Savings: %s\n", utils.FormatBytes(report.TotalSavings))
	fmt.Fprintln(w)

	for _, group := range report.Groups {
		fmt.Fprintf(w, "Size: %s\n", utils.FormatBytes(group.Size))
		for _, path := range group.Paths {
			fmt.Fprintln(w, path)
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	return nil
}

// writeSummary renders aggregate counts only.
func (r *Reporter) writeSummary(report *Report) error {
	w := r.writer

	if _, err := fmt.Fprintln(w, "=== Duplicate Scan Summary ==="); err != nil {
		return err
	}
	fmt.Fprintf(w, "Duplicate Groups: %d\n", len(report.Groups))
	fmt.Fprintf(w, "Duplicate Files: %d\n", report.TotalFiles)
	fmt.Fprintf(w, "Potential Space Savings: %s\n", utils.FormatBytes(report.TotalSavings))
	_, err := fmt.Fprintf(w, "Scanned Roots: %d\n", len(report.Meta.Roots))
	return err
}

func (r *Reporter) writeJSON(report *Report) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func (r *Reporter) writeYAML(report *Report) error {
	encoder := yaml.NewEncoder(r.writer)
	defer encoder.Close()
	return encoder.Encode(report)
}

// SaveToFile writes the report to a file, creating or truncating it.
func SaveToFile(report *Report, path string, format OutputFormat) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := New(file, format).Write(report); err != nil {
		return err
	}
	return file.Sync()
}
