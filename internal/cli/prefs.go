package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dtg01100/prefedit/internal/config"
	apperrors "github.com/dtg01100/prefedit/internal/errors"
	"github.com/dtg01100/prefedit/internal/models"
	"github.com/dtg01100/prefedit/internal/period"
	"github.com/dtg01100/prefedit/internal/store"
	"github.com/dtg01100/prefedit/pkg/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List preferences and their current values",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var getCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the current value of a preference",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a preference",
	Long: `Set a preference. The value is validated against the schema:

  switch      true or false
  list        one of the choice values
  number      an integer within the bounds
  time        H:MM on a 24 hour clock
  time_range  H:MM-H:MM, where the end may be earlier than the start`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

var resetCmd = &cobra.Command{
	Use:   "reset <key>",
	Short: "Remove a stored value so the default applies",
	Args:  cobra.ExactArgs(1),
	RunE:  runReset,
}

var checkCmd = &cobra.Command{
	Use:   "check <key>",
	Short: "Report whether a time range contains the current time",
	Long: `Report whether a time range preference contains the current time, or the
time given with --at. Ranges that end earlier than they start wrap past
midnight. The exit status is 1 when the time is outside the range.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

var (
	listPage string
	checkAt  string
)

// now is the clock used by check. It is injectable for testing purposes.
var now = time.Now

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(checkCmd)

	listCmd.Flags().StringVarP(&listPage, "page", "p", "", "only list the page with this title or slug")
	checkCmd.Flags().StringVar(&checkAt, "at", "", "time to check (H:MM) instead of now")
}

// prefEntry is the JSON and table shape of one preference.
type prefEntry struct {
	Page    string `json:"page"`
	Key     string `json:"key"`
	Title   string `json:"title"`
	Kind    string `json:"kind"`
	Value   string `json:"value"`
	Default string `json:"default"`
	Stored  bool   `json:"stored"`
}

func runList(cmd *cobra.Command, args []string) error {
	return withStore(func(_ *config.Config, schema *models.Schema, values store.Store) error {
		var entries []prefEntry
		matched := listPage == ""
		for _, page := range schema.Pages {
			if listPage != "" && !matchesPage(page, listPage) {
				continue
			}
			matched = true
			for _, p := range page.Preferences {
				entries = append(entries, prefEntry{
					Page:    page.Title,
					Key:     p.Key,
					Title:   p.Title,
					Kind:    p.Kind.String(),
					Value:   store.Read(values, p),
					Default: p.Default,
					Stored:  values.Contains(p.Key),
				})
			}
		}
		if !matched {
			return apperrors.NewInvalidArgumentError("page", listPage, "no page with that title")
		}

		if outputJSON {
			return printJSON(cmd.OutOrStdout(), entries)
		}

		data := pterm.TableData{{"PAGE", "KEY", "TITLE", "VALUE", "DEFAULT"}}
		for _, e := range entries {
			value := e.Value
			if e.Stored {
				value += " *"
			}
			data = append(data, []string{e.Page, e.Key, e.Title, value, e.Default})
		}

		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), table)
		fmt.Fprintln(cmd.OutOrStdout(), "* stored value")
		return nil
	})
}

// matchesPage compares name against the page title and its slug.
func matchesPage(page models.Page, name string) bool {
	return strings.EqualFold(page.Title, name) || utils.SanitizeName(page.Title) == utils.SanitizeName(name)
}

func runGet(cmd *cobra.Command, args []string) error {
	return withStore(func(_ *config.Config, schema *models.Schema, values store.Store) error {
		p, err := findPreference(schema, args[0])
		if err != nil {
			return err
		}

		value := store.Read(values, p)
		if outputJSON {
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"key":    p.Key,
				"value":  value,
				"stored": values.Contains(p.Key),
			})
		}

		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	})
}

func runSet(cmd *cobra.Command, args []string) error {
	return withStore(func(_ *config.Config, schema *models.Schema, values store.Store) error {
		p, err := findPreference(schema, args[0])
		if err != nil {
			return err
		}

		if err := store.Write(values, p, args[1]); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s set to %s\n", p.Key, store.Read(values, p))
		return nil
	})
}

func runReset(cmd *cobra.Command, args []string) error {
	return withStore(func(_ *config.Config, schema *models.Schema, values store.Store) error {
		p, err := findPreference(schema, args[0])
		if err != nil {
			return err
		}

		if err := values.Remove(p.Key); err != nil {
			return apperrors.NewStoreWriteError(p.Key, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s reset to %s\n", p.Key, store.Read(values, p))
		return nil
	})
}

func runCheck(cmd *cobra.Command, args []string) error {
	return withStore(func(_ *config.Config, schema *models.Schema, values store.Store) error {
		p, err := findPreference(schema, args[0])
		if err != nil {
			return err
		}
		if p.Kind != models.KindTimeRange {
			return apperrors.NewInvalidArgumentError(p.Key, p.Kind, "check needs a time_range preference")
		}

		at := now()
		clock := period.Time{Hour: at.Hour(), Minute: at.Minute()}
		if checkAt != "" {
			clock, err = period.ParseTime(checkAt)
			if err != nil {
				return err
			}
		}

		window := period.ParsePeriodOrZero(store.Read(values, p))
		inside, err := window.Contains(clock.Hour, clock.Minute)
		if err != nil {
			return err
		}

		if outputJSON {
			if err := printJSON(cmd.OutOrStdout(), map[string]any{
				"key":    p.Key,
				"period": window.String(),
				"at":     clock.String(),
				"inside": inside,
			}); err != nil {
				return err
			}
		} else {
			state := "outside"
			if inside {
				state = "inside"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is %s %s\n", clock, state, window)
		}

		if !inside {
			return ErrOutsidePeriod
		}
		return nil
	})
}
