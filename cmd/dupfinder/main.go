package main

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Andrewsimsd/duplicate-file-finder/internal/config"
	"github.com/Andrewsimsd/duplicate-file-finder/internal/logging"
	"github.com/Andrewsimsd/duplicate-file-finder/internal/progress"
	"github.com/Andrewsimsd/duplicate-file-finder/internal/reporter"
	"github.com/Andrewsimsd/duplicate-file-finder/internal/scanner"
	"github.com/Andrewsimsd/duplicate-file-finder/internal/ui"
)

var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath  string
	directories []string
	outputPath  string
	outputFmt   string
	workers     int
	minSize     string
	verbose     bool
	noProgress  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dupfinder [dir]",
	Short: "Find files with byte-identical content",
	Long: `dupfinder scans one or more directory trees for duplicate files.

Files are grouped by size, filtered by a quick hash of their first 8 KiB,
and confirmed duplicates are verified with a full SHA-256 content hash.
No files are modified or deleted; results are written to a text report.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
	Args:    cobra.ArbitraryArgs,
	RunE:    runScan,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file if none exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.EnsureConfigExists()
		if err != nil {
			return fmt.Errorf("failed to create config: %w", err)
		}
		fmt.Printf("Config file: %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.Flags().StringArrayVarP(&directories, "directories", "d", nil, "directories to scan for duplicates")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file or directory for the report")
	rootCmd.Flags().StringVarP(&outputFmt, "format", "f", "", "report format: text, summary, json, yaml")
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 0, "worker count for hashing (0 = auto)")
	rootCmd.Flags().StringVarP(&minSize, "min-size", "s", "", "ignore files smaller than this (e.g. 1KB)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the interactive progress display")

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configInitCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlagOverrides(cmd, cfg)

	roots, err := resolveRoots(args)
	if err != nil {
		return err
	}

	// Invalid roots are a precondition failure; reject them before any
	// pipeline work starts.
	if err := scanner.ValidateRoots(roots); err != nil {
		return err
	}

	log, logFile, err := logging.Setup(cfg.LogFile, cfg.Verbose)
	if err != nil {
		return err
	}
	defer logFile.Close()

	if len(roots) == 1 {
		fmt.Printf("Scanning directory: %s\n", roots[0])
		log.Infof("starting duplicate file detection in %s", roots[0])
	} else {
		fmt.Printf("Scanning %d directories\n", len(roots))
		log.Infof("starting duplicate file detection across %d directories", len(roots))
	}

	minBytes := cfg.MinFileSizeBytes()
	prg := progress.NewReporter()
	scnr := scanner.New(
		scanner.WithWorkers(cfg.Scan.Workers),
		scanner.WithMinFileSize(minBytes),
		scanner.WithExcludePatterns(cfg.Scan.ExcludePatterns),
		scanner.WithReporter(prg),
		scanner.WithLogger(log),
	)

	startTime := time.Now()
	done := make(chan ui.ScanOutcome, 1)
	go func() {
		groups, err := scnr.Scan(roots)
		done <- ui.ScanOutcome{Groups: groups, Err: err}
	}()

	var groups scanner.DuplicateGroups
	if noProgress || !ui.StdoutIsTTY() {
		printer := ui.NewLivePrinter(prg)
		outcome := <-done
		printer.Stop()
		groups, err = outcome.Groups, outcome.Err
	} else {
		groups, err = ui.RunScan(prg, done)
	}
	if err != nil {
		log.WithError(err).Error("scan failed")
		return fmt.Errorf("scan failed: %w", err)
	}

	stats := scnr.Stats()
	fmt.Printf("%d files identified across %d directories\n", stats.FilesFound, len(roots))

	if len(groups) == 0 {
		fmt.Println("No duplicate files found.")
		log.Info("no duplicate files found")
		return nil
	}

	formatName := cfg.Report.Format
	if formatName == "" {
		formatName = string(reporter.FormatText)
	}
	format, err := reporter.ParseFormat(formatName)
	if err != nil {
		return err
	}

	report := reporter.Build(groups, reporter.Metadata{
		GeneratedBy: currentUsername(),
		StartTime:   startTime,
		EndTime:     time.Now(),
		Roots:       roots,
	})

	output := resolveOutput(cfg.Report.Output)
	if err := reporter.SaveToFile(report, output, format); err != nil {
		log.WithError(err).Error("failed to write report")
		return err
	}

	fmt.Printf("Duplicate file report saved to %s\n", output)
	log.Infof("duplicate file report saved to %s", output)
	return nil
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		defaultPath, err := config.GetConfigPath()
		if err != nil {
			return config.GetDefault(), nil
		}
		path = defaultPath
	}
	return config.Load(path)
}

// applyFlagOverrides lets explicit flags win over the config file.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("output") {
		cfg.Report.Output = outputPath
	}
	if cmd.Flags().Changed("format") {
		cfg.Report.Format = outputFmt
	}
	if cmd.Flags().Changed("workers") {
		cfg.Scan.Workers = workers
	}
	if cmd.Flags().Changed("min-size") {
		cfg.Scan.MinFileSize = minSize
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = verbose
	}
}

// resolveRoots combines positional and -d directories, defaulting to the
// current directory, and makes every path absolute.
func resolveRoots(args []string) ([]string, error) {
	roots := append(append([]string(nil), args...), directories...)
	if len(roots) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("cannot determine current directory: %w", err)
		}
		roots = []string{cwd}
	}

	for i, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("invalid directory %s: %w", root, err)
		}
		roots[i] = abs
	}
	return roots, nil
}

// resolveOutput returns the report destination, dropping the default
// filename into the target when it is an existing directory.
func resolveOutput(output string) string {
	if output == "" {
		return reporter.DefaultFilename
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, reporter.DefaultFilename)
	}
	return output
}

func currentUsername() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "unknown"
}
