package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mmfinance/installment-calc/pkg/constants"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") unexpected error: %v", err)
	}
	if cfg.Address != constants.DefaultServerAddress {
		t.Errorf("Address = %q, expected %q", cfg.Address, constants.DefaultServerAddress)
	}
	if cfg.BodySizeBytes() != constants.DefaultMaxBodySizeBytes {
		t.Errorf("BodySizeBytes() = %d, expected %d", cfg.BodySizeBytes(), constants.DefaultMaxBodySizeBytes)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() for missing file unexpected error: %v", err)
	}
	if cfg.Address != constants.DefaultServerAddress {
		t.Errorf("Address = %q, expected default", cfg.Address)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server-config.yaml")
	content := "address: \":9090\"\nmaxBodySize: 128KB\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() unexpected error: %v", err)
	}
	if cfg.Address != ":9090" {
		t.Errorf("Address = %q, expected :9090", cfg.Address)
	}
	if cfg.BodySizeBytes() != 128*1024 {
		t.Errorf("BodySizeBytes() = %d, expected %d", cfg.BodySizeBytes(), 128*1024)
	}
}

func TestParseByteSize(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  int64
		expectErr bool
	}{
		{name: "Plain bytes", input: "1024", expected: 1024},
		{name: "Bytes suffix", input: "512B", expected: 512},
		{name: "Kilobytes", input: "64KB", expected: 64 * 1024},
		{name: "Megabytes", input: "2MB", expected: 2 * 1024 * 1024},
		{name: "Lowercase suffix", input: "4kb", expected: 4 * 1024},
		{name: "Empty uses default", input: "", expected: constants.DefaultMaxBodySizeBytes},
		{name: "Bad suffix", input: "64GB", expectErr: true},
		{name: "No digits", input: "KB", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parseByteSize(tt.input)
			if (err != nil) != tt.expectErr {
				t.Fatalf("parseByteSize(%q) error = %v, expectErr = %v", tt.input, err, tt.expectErr)
			}
			if !tt.expectErr && result != tt.expected {
				t.Errorf("parseByteSize(%q) = %d, expected %d", tt.input, result, tt.expected)
			}
		})
	}
}
