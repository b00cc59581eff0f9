package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaultIsValid(t *testing.T) {
	cfg := GetDefault()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
	if cfg.Report.Output == "" {
		t.Error("default config has no report output")
	}
	if cfg.LogFile == "" {
		t.Error("default config has no log file")
	}
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() of missing file error = %v", err)
	}

	def := GetDefault()
	if cfg.Report.Output != def.Report.Output || cfg.LogFile != def.LogFile {
		t.Errorf("Load() of missing file = %+v, want defaults %+v", cfg, def)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	original := &Config{
		Scan: ScanConfig{
			MinFileSize:     "4KB",
			Workers:         6,
			ExcludePatterns: []string{"*.tmp", "*.bak"},
		},
		Report: ReportConfig{
			Output: "/tmp/out.txt",
			Format: "json",
		},
		LogFile: "scan.log",
		Verbose: true,
	}

	if err := Save(original, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.Scan.MinFileSize != "4KB" || loaded.Scan.Workers != 6 {
		t.Errorf("scan config not preserved: %+v", loaded.Scan)
	}
	if len(loaded.Scan.ExcludePatterns) != 2 {
		t.Errorf("exclude patterns not preserved: %v", loaded.Scan.ExcludePatterns)
	}
	if loaded.Report.Output != "/tmp/out.txt" || loaded.Report.Format != "json" {
		t.Errorf("report config not preserved: %+v", loaded.Report)
	}
	if loaded.LogFile != "scan.log" || !loaded.Verbose {
		t.Errorf("top-level fields not preserved: %+v", loaded)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("scan:\n  workers: -2\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() of invalid config expected error")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("scan: [unclosed"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() of malformed YAML expected error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"negative workers", func(c *Config) { c.Scan.Workers = -1 }, true},
		{"bad min size", func(c *Config) { c.Scan.MinFileSize = "lots" }, true},
		{"bad pattern", func(c *Config) { c.Scan.ExcludePatterns = []string{"["} }, true},
		{"unknown format", func(c *Config) { c.Report.Format = "pdf" }, true},
		{"empty format allowed", func(c *Config) { c.Report.Format = "" }, false},
		{"yaml format", func(c *Config) { c.Report.Format = "yaml" }, false},
		{"empty min size allowed", func(c *Config) { c.Scan.MinFileSize = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefault()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMinFileSizeBytes(t *testing.T) {
	tests := []struct {
		value string
		want  int64
	}{
		{"", 0},
		{"0B", 0},
		{"512B", 512},
		{"1KB", 1024},
		{"2MB", 2 * 1024 * 1024},
		{"garbage", 0},
	}

	for _, tt := range tests {
		cfg := GetDefault()
		cfg.Scan.MinFileSize = tt.value
		if got := cfg.MinFileSizeBytes(); got != tt.want {
			t.Errorf("MinFileSizeBytes(%q) = %d, want %d", tt.value, got, tt.want)
		}
	}
}
