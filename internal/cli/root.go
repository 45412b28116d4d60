// Package cli implements the prefedit command line interface.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dtg01100/prefedit/internal/config"
	"github.com/dtg01100/prefedit/internal/doctor"
	apperrors "github.com/dtg01100/prefedit/internal/errors"
	"github.com/dtg01100/prefedit/internal/models"
	"github.com/dtg01100/prefedit/internal/store"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	outputJSON bool
	cliVersion = "dev"
)

// ErrOutsidePeriod is returned by check when the time is outside the range.
// It only sets the exit status.
var ErrOutsidePeriod = errors.New("outside period")

var rootCmd = &cobra.Command{
	Use:   "prefedit",
	Short: "Edit and inspect application preferences",
	Long: `prefedit edits the preferences described by a schema and stored in a
local database. Run it without arguments for the interactive editor, or use
the commands below from scripts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config directory (default is $XDG_CONFIG_HOME/prefedit)")
	rootCmd.PersistentFlags().BoolVarP(&outputJSON, "json", "j", false, "output in JSON format")
	rootCmd.AddCommand(doctorCmd)
}

// Execute runs the root command and reports errors on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, ErrOutsidePeriod) {
		printError(err)
	}
	return err
}

func SetVersion(v string) {
	cliVersion = v
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// loadConfig returns the application configuration, using the --config flag
// if provided. This function is injectable for testing purposes.
var loadConfig = func() (*config.Config, error) {
	if cfgFile != "" {
		if err := os.Setenv("XDG_CONFIG_HOME", cfgFile); err != nil {
			return nil, fmt.Errorf("failed to set config directory: %w", err)
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// loadSchema returns the schema named by the configuration.
// This function is injectable for testing purposes.
var loadSchema = func(cfg *config.Config) (*models.Schema, error) {
	return models.LoadSchema(cfg.Schema.Path)
}

// openStore opens the preference store named by the configuration.
// This function is injectable for testing purposes.
var openStore = func(cfg *config.Config) (store.Store, error) {
	return store.OpenBolt(cfg.Store.Path)
}

// saveConfig persists configuration changes such as the recent files list.
// This function is injectable for testing purposes.
var saveConfig = func(cfg *config.Config) error {
	return cfg.Save()
}

// doctorEnv supplies the loaders used by the doctor command.
// This function is injectable for testing purposes.
var doctorEnv = func() doctor.Env {
	return doctor.Env{
		LoadConfig: loadConfig,
		LoadSchema: models.LoadSchema,
		OpenStore: func(path string) (store.Store, error) {
			return store.OpenBolt(path)
		},
	}
}

// withStore loads the configuration and schema, opens the store and runs fn.
// The store is closed when fn returns.
func withStore(fn func(cfg *config.Config, schema *models.Schema, values store.Store) error) (err error) {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	schema, err := loadSchema(cfg)
	if err != nil {
		return err
	}

	values, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := values.Close(); err == nil && cerr != nil {
			err = apperrors.Wrap(cerr, "failed to close store")
		}
	}()

	return fn(cfg, schema, values)
}

// findPreference looks key up in schema.
func findPreference(schema *models.Schema, key string) (models.Preference, error) {
	p := schema.Find(key)
	if p == nil {
		return models.Preference{}, apperrors.NewUnknownKeyError(key)
	}
	return *p, nil
}

func printJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func printError(err error) {
	fmt.Fprint(os.Stderr, pterm.Error.Sprintln(err))
	if appErr := apperrors.GetAppError(err); appErr != nil && appErr.Suggestion != "" {
		fmt.Fprint(os.Stderr, pterm.Info.Sprintln(appErr.Suggestion))
	}
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the configuration, schema and preference store",
	Long: `Run the same checks the interactive editor runs at start-up:
1. The configuration file loads and validates
2. The schema loads and validates
3. The preference store can be opened (it is not locked by another process)
4. The log directory is writable`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	results := doctor.Run(doctorEnv())

	if outputJSON {
		if err := printJSON(cmd.OutOrStdout(), results); err != nil {
			return err
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), doctor.FormatResults(results))
	}

	if doctor.HasCriticalFailure(results) {
		return fmt.Errorf("critical checks failed")
	}
	return nil
}
