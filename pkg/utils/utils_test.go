package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("failed to get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "expand tilde",
			input:    "~/test/path",
			expected: filepath.Join(home, "test/path"),
		},
		{
			name:     "no expansion needed",
			input:    "/absolute/path",
			expected: "/absolute/path",
		},
		{
			name:     "empty path",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: "~",
		},
		{
			name:     "tilde in middle",
			input:    "/home/user~/test",
			expected: "/home/user~/test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ExpandHome(tt.input)
			if result != tt.expected {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{
			name:     "existing file",
			path:     tmpDir + "/testfile.txt",
			expected: true,
		},
		{
			name:     "non-existent file",
			path:     tmpDir + "/nonexistent.txt",
			expected: false,
		},
		{
			name:     "directory",
			path:     tmpDir,
			expected: false,
		},
	}

	if err := os.WriteFile(tmpDir+"/testfile.txt", []byte("test"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FileExists(tt.path)
			if result != tt.expected {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestDirExists(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{
			name:     "existing directory",
			path:     tmpDir,
			expected: true,
		},
		{
			name:     "non-existent directory",
			path:     tmpDir + "/nonexistent",
			expected: false,
		},
		{
			name:     "file",
			path:     tmpDir + "/testfile.txt",
			expected: false,
		},
	}

	if err := os.WriteFile(tmpDir+"/testfile.txt", []byte("test"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := DirExists(tt.path)
			if result != tt.expected {
				t.Errorf("DirExists(%q) = %v, want %v", tt.path, result, tt.expected)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	newDir := filepath.Join(tmpDir, "level1", "level2", "level3")

	if err := EnsureDir(newDir); err != nil {
		t.Errorf("EnsureDir(%q) error = %v", newDir, err)
	}

	if !DirExists(newDir) {
		t.Errorf("EnsureDir(%q) did not create directory", newDir)
	}

	if err := EnsureDir(newDir); err != nil {
		t.Errorf("EnsureDir(%q) on existing dir error = %v", newDir, err)
	}
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple name",
			input:    "Notifications",
			expected: "notifications",
		},
		{
			name:     "spaces to dashes",
			input:    "Daily routine",
			expected: "daily-routine",
		},
		{
			name:     "underscores to dashes",
			input:    "quiet_hours",
			expected: "quiet-hours",
		},
		{
			name:     "special characters removed",
			input:    "Sound & Vibration!",
			expected: "sound--vibration",
		},
		{
			name:     "numbers preserved",
			input:    "Page 2",
			expected: "page-2",
		},
		{
			name:     "multiple dashes collapsed",
			input:    "a---b",
			expected: "a---b",
		},
		{
			name:     "leading dashes kept",
			input:    "-leading",
			expected: "-leading",
		},
		{
			name:     "trailing dashes kept",
			input:    "trailing-",
			expected: "trailing-",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeName(tt.input)
			if result != tt.expected {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestEnsureParentDir(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "data", "prefedit", "prefs.db")

	if err := EnsureParentDir(file); err != nil {
		t.Fatalf("EnsureParentDir(%q) error = %v", file, err)
	}
	if !DirExists(filepath.Dir(file)) {
		t.Errorf("EnsureParentDir(%q) did not create the parent", file)
	}
	if FileExists(file) {
		t.Errorf("EnsureParentDir(%q) created the file itself", file)
	}
	if err := EnsureParentDir("prefs.db"); err != nil {
		t.Errorf("EnsureParentDir on a bare name error = %v", err)
	}
}
