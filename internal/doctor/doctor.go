// Package doctor runs the start-up checks for prefedit's configuration,
// schema and preference store.
package doctor

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dtg01100/prefedit/internal/config"
	apperrors "github.com/dtg01100/prefedit/internal/errors"
	"github.com/dtg01100/prefedit/internal/models"
	"github.com/dtg01100/prefedit/internal/store"
	"github.com/dtg01100/prefedit/pkg/utils"
)

// CheckResult represents the result of a single check.
type CheckResult struct {
	Name       string // Name of the check
	Passed     bool   // Whether the check passed
	Message    string // Error or success message
	Suggestion string // User-friendly suggestion for fixing the issue
	IsCritical bool   // If true, the application cannot start without this check passing
}

// Env supplies the loaders the checks exercise.
type Env struct {
	LoadConfig func() (*config.Config, error)
	LoadSchema func(path string) (*models.Schema, error)
	OpenStore  func(path string) (store.Store, error)
}

// DefaultEnv uses the real config file, schema loader and BoltDB store.
func DefaultEnv() Env {
	return Env{
		LoadConfig: config.Load,
		LoadSchema: models.LoadSchema,
		OpenStore: func(path string) (store.Store, error) {
			return store.OpenBolt(path)
		},
	}
}

// Run runs every check. Checks that depend on a failed configuration are
// reported as skipped.
func Run(env Env) []CheckResult {
	cfgResult, cfg := checkConfig(env)
	results := []CheckResult{cfgResult}

	if cfg == nil {
		for _, name := range []string{"Schema", "Preference Store"} {
			results = append(results, CheckResult{
				Name:       name,
				Message:    "Skipped: configuration could not be loaded",
				Suggestion: "Fix the configuration first",
				IsCritical: true,
			})
		}
		return results
	}

	results = append(results, checkSchema(env, cfg))
	results = append(results, checkStore(env, cfg))
	results = append(results, checkLogDir(cfg))

	return results
}

func checkConfig(env Env) (CheckResult, *config.Config) {
	result := CheckResult{
		Name:       "Configuration",
		IsCritical: true,
	}

	cfg, err := env.LoadConfig()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		result.Message = err.Error()
		result.Suggestion = suggestionFor(err, "Check config.yaml in the prefedit config directory")
		return result, nil
	}

	result.Passed = true
	result.Message = "Configuration loaded"
	return result, cfg
}

func checkSchema(env Env, cfg *config.Config) CheckResult {
	result := CheckResult{
		Name:       "Schema",
		IsCritical: true,
	}

	schema, err := env.LoadSchema(cfg.Schema.Path)
	if err != nil {
		result.Message = err.Error()
		result.Suggestion = suggestionFor(err, "Run 'prefedit schema' to print the built-in schema as a starting point")
		return result
	}

	source := "built-in schema"
	if cfg.Schema.Path != "" {
		source = cfg.Schema.Path
	}
	result.Passed = true
	result.Message = fmt.Sprintf("%s: %d pages, %d preferences", source, len(schema.Pages), len(schema.All()))
	return result
}

func checkStore(env Env, cfg *config.Config) CheckResult {
	result := CheckResult{
		Name:       "Preference Store",
		IsCritical: true,
	}

	values, err := env.OpenStore(cfg.Store.Path)
	if err != nil {
		result.Message = err.Error()
		result.Suggestion = suggestionFor(err, "Check that the data directory is writable")
		return result
	}
	if err := values.Close(); err != nil {
		result.Message = fmt.Sprintf("failed to close store: %v", err)
		return result
	}

	result.Passed = true
	result.Message = fmt.Sprintf("Opened %s", cfg.Store.Path)
	return result
}

func checkLogDir(cfg *config.Config) CheckResult {
	result := CheckResult{
		Name: "Log Directory",
	}

	if cfg.Log.File == "" {
		result.Passed = true
		result.Message = "File logging disabled"
		return result
	}

	dir := filepath.Dir(cfg.Log.File)
	existed := utils.DirExists(dir)

	if err := utils.EnsureParentDir(cfg.Log.File); err != nil {
		result.Message = fmt.Sprintf("cannot create log directory: %v", err)
		result.Suggestion = "Set log.file to a writable location"
		return result
	}

	result.Passed = true
	if existed {
		result.Message = fmt.Sprintf("Logging to %s", cfg.Log.File)
	} else {
		result.Message = fmt.Sprintf("Created log directory %s", dir)
	}
	return result
}

func suggestionFor(err error, fallback string) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Suggestion != "" {
		return appErr.Suggestion
	}
	return fallback
}

// HasCriticalFailure returns true if any check result has a critical failure.
func HasCriticalFailure(results []CheckResult) bool {
	for _, r := range results {
		if !r.Passed && r.IsCritical {
			return true
		}
	}
	return false
}

// AllPassed returns true if all checks passed.
func AllPassed(results []CheckResult) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

// FormatResults formats the check results for display.
func FormatResults(results []CheckResult) string {
	var sb strings.Builder

	sb.WriteString("Pre-flight Check Results:\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")

	for _, r := range results {
		status := "✓ PASS"
		if !r.Passed {
			if r.IsCritical {
				status = "✗ FAIL (critical)"
			} else {
				status = "⚠ FAIL (optional)"
			}
		}

		sb.WriteString(fmt.Sprintf("\n[%s] %s\n", status, r.Name))
		sb.WriteString(fmt.Sprintf("  %s\n", r.Message))
		if r.Suggestion != "" {
			sb.WriteString(fmt.Sprintf("  Suggestion: %s\n", r.Suggestion))
		}
	}

	return sb.String()
}
