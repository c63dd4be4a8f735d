package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "default (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v; want nil, nil", got, err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty line",
			input:    "",
			expected: "",
		},
		{
			name:     "plain text",
			input:    "panic: something",
			expected: "panic: something",
		},
		{
			name:     "zap entry with fields",
			input:    `{"level":"warn","ts":"2026-01-02T15:04:05.000Z","caller":"loader/loader.go:90","msg":"document fetch failed, retrying","resource":"link.xml","attempt":1}`,
			expected: "15:04:05 WARN document fetch failed, retrying attempt=1 resource=link.xml",
		},
		{
			name:     "entry without timestamp",
			input:    `{"level":"info","msg":"level up","level_reached":3}`,
			expected: "INFO level up level_reached=3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.input).String(); got != tt.expected {
				t.Errorf("Parse().String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseLines_KeepsLevel(t *testing.T) {
	entries := ParseLines([]string{
		`{"level":"error","msg":"document unavailable"}`,
		"not json",
	})
	if len(entries) != 2 {
		t.Fatalf("ParseLines returned %d entries, want 2", len(entries))
	}
	if entries[0].Level != "ERROR" {
		t.Errorf("Level = %q, want ERROR", entries[0].Level)
	}
	if entries[1].Raw != "not json" {
		t.Errorf("Raw = %q, want %q", entries[1].Raw, "not json")
	}
}
