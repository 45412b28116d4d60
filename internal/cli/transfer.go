package cli

import (
	"fmt"
	"path/filepath"

	"github.com/dtg01100/prefedit/internal/config"
	"github.com/dtg01100/prefedit/internal/models"
	"github.com/dtg01100/prefedit/internal/store"
	"github.com/dtg01100/prefedit/pkg/utils"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export stored preferences to a JSON or YAML file",
	Long: `Export every stored preference to a file. The format is chosen by the
extension: .json, .yaml or .yml. Defaults that were never changed are not
exported.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import preferences from a file written by export",
	Long: `Import preferences from a file written by export. Every value is
validated first and nothing is written if one is invalid.

By default values already stored are kept. With --replace the file wins and
preferences missing from it are reset to their defaults.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the active schema as YAML",
	Args:  cobra.NoArgs,
	RunE:  runSchema,
}

var (
	exportForce   bool
	importReplace bool
)

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(schemaCmd)

	exportCmd.Flags().BoolVarP(&exportForce, "force", "f", false, "overwrite an existing file")
	importCmd.Flags().BoolVar(&importReplace, "replace", false, "replace stored values instead of merging")
}

func runExport(cmd *cobra.Command, args []string) error {
	path := utils.ExpandHome(args[0])
	if utils.FileExists(path) && !exportForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	return withStore(func(cfg *config.Config, schema *models.Schema, values store.Store) error {
		if err := store.Export(values, schema, path); err != nil {
			return err
		}
		rememberFile(cmd, cfg, path)

		fmt.Fprintf(cmd.OutOrStdout(), "Exported preferences to %s\n", path)
		return nil
	})
}

func runImport(cmd *cobra.Command, args []string) error {
	path := utils.ExpandHome(args[0])

	mode := store.ImportModeMerge
	if importReplace {
		mode = store.ImportModeReplace
	}

	return withStore(func(cfg *config.Config, schema *models.Schema, values store.Store) error {
		report, err := store.Import(values, schema, path, mode)
		if err != nil {
			return err
		}
		rememberFile(cmd, cfg, path)

		if outputJSON {
			return printJSON(cmd.OutOrStdout(), report)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Imported %d preference(s) from %s\n", len(report.Written), path)
		if len(report.Skipped) > 0 {
			fmt.Fprintf(out, "Kept %d stored value(s); use --replace to overwrite them\n", len(report.Skipped))
		}
		if len(report.Reset) > 0 {
			fmt.Fprintf(out, "Reset %d preference(s) to their defaults\n", len(report.Reset))
		}
		return nil
	})
}

// rememberFile records path in the recent files list. Failing to save the
// configuration only warns.
func rememberFile(cmd *cobra.Command, cfg *config.Config, path string) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	cfg.AddRecentFile(path)
	if err := saveConfig(cfg); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to update recent files: %v\n", err)
	}
}

func runSchema(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	schema, err := loadSchema(cfg)
	if err != nil {
		return err
	}

	if outputJSON {
		return printJSON(cmd.OutOrStdout(), schema)
	}

	data, err := schema.Marshal()
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
