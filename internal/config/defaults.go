package config

// GetDefault returns the default configuration.
func GetDefault() *Config {
	return &Config{
		Scan: ScanConfig{
			MinFileSize:     "0B", // consider every file
			Workers:         0,    // auto-size from CPU count
			ExcludePatterns: []string{},
		},
		Report: ReportConfig{
			Output: "duplicate_file_report.txt",
			Format: "text",
		},
		LogFile: "duplicate_finder.log",
		Verbose: false,
	}
}
