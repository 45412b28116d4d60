package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dtg01100/prefedit/internal/models"
	"gopkg.in/yaml.v3"
)

// ImportMode defines how imported values combine with stored ones.
type ImportMode int

const (
	// ImportModeMerge keeps stored values and only fills keys that are unset.
	ImportModeMerge ImportMode = iota
	// ImportModeReplace overwrites stored values and resets keys missing from
	// the import.
	ImportModeReplace
)

// ExportData is the file layout used by Export and Import.
type ExportData struct {
	Version  string            `json:"version" yaml:"version"`
	Values   map[string]string `json:"values" yaml:"values"`
	Exported string            `json:"exported" yaml:"exported"`
}

// Export writes every stored preference in schema to filePath. The format is
// chosen by extension (.json, .yaml or .yml).
func Export(values Store, schema *models.Schema, filePath string) error {
	data := ExportData{
		Version:  schema.Version,
		Values:   make(map[string]string),
		Exported: time.Now().Format(time.RFC3339),
	}
	for _, p := range schema.All() {
		if values.Contains(p.Key) {
			data.Values[p.Key] = Read(values, p)
		}
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported file format: %s (use .json, .yaml, or .yml)", ext)
	}

	if dir := filepath.Dir(filePath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	switch ext {
	case ".json":
		encoder := json.NewEncoder(file)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	default:
		encoder := yaml.NewEncoder(file)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
	}

	return nil
}

// ImportReport lists what Import did with each key.
type ImportReport struct {
	Written []string `json:"written"`
	Skipped []string `json:"skipped"`
	Reset   []string `json:"reset"`
}

// Import reads a file produced by Export and writes its values. Every value
// is validated before anything is written.
func Import(values Store, schema *models.Schema, filePath string, mode ImportMode) (*ImportReport, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("import file does not exist: %s", filePath)
		}
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}

	var data ExportData
	ext := strings.ToLower(filepath.Ext(filePath))

	switch ext {
	case ".json":
		if err := json.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("failed to decode JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &data); err != nil {
			return nil, fmt.Errorf("failed to decode YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported file format: %s (use .json, .yaml, or .yml)", ext)
	}

	if len(data.Values) == 0 {
		return nil, fmt.Errorf("invalid import file: no values found")
	}

	// Validate into a scratch store first so a bad entry writes nothing.
	scratch := NewMemory()
	keys := make([]string, 0, len(data.Values))
	for key := range data.Values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		p := schema.Find(key)
		if p == nil {
			return nil, fmt.Errorf("import file has unknown key %q", key)
		}
		if err := Write(scratch, *p, data.Values[key]); err != nil {
			return nil, err
		}
	}

	report := &ImportReport{}
	for _, key := range keys {
		p := schema.Find(key)
		if mode == ImportModeMerge && values.Contains(key) {
			report.Skipped = append(report.Skipped, key)
			continue
		}
		if err := Write(values, *p, Read(scratch, *p)); err != nil {
			return report, err
		}
		report.Written = append(report.Written, key)
	}

	if mode == ImportModeReplace {
		for _, p := range schema.All() {
			if _, ok := data.Values[p.Key]; ok || !values.Contains(p.Key) {
				continue
			}
			if err := values.Remove(p.Key); err != nil {
				return report, err
			}
			report.Reset = append(report.Reset, p.Key)
		}
	}

	return report, nil
}
