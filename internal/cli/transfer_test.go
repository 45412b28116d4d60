package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dtg01100/prefedit/internal/models"
)

func TestExportImport(t *testing.T) {
	env := setupEnv(t)
	if err := env.values.PutString("quiet_hours", "23:00-6:00"); err != nil {
		t.Fatal(err)
	}
	if err := env.values.PutBool("quiet_hours_enabled", true); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "prefs.yaml")
	out, _, err := runCmd(t, rootCmd, "export", path)
	if err != nil {
		t.Fatalf("export error = %v", err)
	}
	if !strings.Contains(out, "Exported preferences") {
		t.Errorf("export output = %q", out)
	}
	if env.saved != 1 || env.cfg.Settings.RecentFiles[0] != path {
		t.Errorf("recent files = %v (saved %d times)", env.cfg.Settings.RecentFiles, env.saved)
	}

	if _, _, err := runCmd(t, rootCmd, "export", path); err == nil {
		t.Error("export over an existing file should need --force")
	}
	if _, _, err := runCmd(t, rootCmd, "export", "--force", path); err != nil {
		t.Errorf("export --force error = %v", err)
	}

	// Change a value, then import without --replace keeps it.
	if err := env.values.PutString("quiet_hours", "1:00-2:00"); err != nil {
		t.Fatal(err)
	}
	out, _, err = runCmd(t, rootCmd, "import", path)
	if err != nil {
		t.Fatalf("import error = %v", err)
	}
	if !strings.Contains(out, "use --replace") {
		t.Errorf("import output = %q", out)
	}
	if got := env.values.GetString("quiet_hours", ""); got != "1:00-2:00" {
		t.Errorf("merge overwrote quiet_hours: %q", got)
	}

	if err := env.values.PutInt("snooze_length", 30); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCmd(t, rootCmd, "import", "--replace", path); err != nil {
		t.Fatalf("import --replace error = %v", err)
	}
	if got := env.values.GetString("quiet_hours", ""); got != "23:00-6:00" {
		t.Errorf("replace left quiet_hours = %q", got)
	}
	if env.values.Contains("snooze_length") {
		t.Error("replace should reset keys missing from the file")
	}
}

func TestImport_InvalidFileWritesNothing(t *testing.T) {
	env := setupEnv(t)

	path := filepath.Join(t.TempDir(), "bad.json")
	data := `{"version":"1","values":{"quiet_hours":"23:00-6:00","snooze_length":"900"}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := runCmd(t, rootCmd, "import", path); err == nil {
		t.Fatal("import of an out of range value should fail")
	}
	if env.values.Contains("quiet_hours") {
		t.Error("a failed import wrote values")
	}
	if env.saved != 0 {
		t.Error("a failed import touched the recent files")
	}
}

func TestSchemaCommand(t *testing.T) {
	setupEnv(t)

	out, _, err := runCmd(t, rootCmd, "schema")
	if err != nil {
		t.Fatalf("schema error = %v", err)
	}

	schema, err := models.ParseSchema([]byte(out))
	if err != nil {
		t.Fatalf("schema output does not parse: %v\n%s", err, out)
	}
	if schema.Find("quiet_hours") == nil {
		t.Error("schema output lost quiet_hours")
	}
}
