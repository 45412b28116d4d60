package models

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/dtg01100/prefedit/internal/errors"
	"github.com/google/go-cmp/cmp"
)

func intPtr(n int) *int { return &n }

func TestDefaultSchema(t *testing.T) {
	s, err := DefaultSchema()
	if err != nil {
		t.Fatalf("DefaultSchema() error = %v", err)
	}

	if len(s.Pages) == 0 {
		t.Fatal("default schema has no pages")
	}

	for _, kind := range Kinds {
		found := false
		for _, p := range s.All() {
			if p.Kind == kind {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("default schema has no %s preference", kind)
		}
	}

	qh := s.Find("quiet_hours")
	if qh == nil {
		t.Fatal("Find(quiet_hours) returned nil")
	}
	if qh.Kind != KindTimeRange {
		t.Errorf("quiet_hours kind = %q, want %q", qh.Kind, KindTimeRange)
	}
	if s.Find("missing") != nil {
		t.Error("Find(missing) should return nil")
	}

	deps := s.Dependents("quiet_hours_enabled")
	if diff := cmp.Diff([]string{"quiet_hours"}, deps); diff != "" {
		t.Errorf("Dependents mismatch (-want +got):\n%s", diff)
	}
}

func TestKind_Valid(t *testing.T) {
	for _, k := range Kinds {
		if !k.Valid() {
			t.Errorf("%q.Valid() = false", k)
		}
	}
	if Kind("slider").Valid() {
		t.Error(`Kind("slider").Valid() = true`)
	}
}

func TestPreference_Bounds(t *testing.T) {
	p := Preference{Key: "n", Kind: KindNumber, Min: intPtr(1), Max: intPtr(10)}
	lo, hi := p.Bounds()
	if lo != 1 || hi != 10 {
		t.Errorf("Bounds() = %d, %d, want 1, 10", lo, hi)
	}

	unbounded := Preference{Key: "n", Kind: KindNumber}
	lo, hi = unbounded.Bounds()
	if lo >= 0 || hi <= 0 {
		t.Errorf("unbounded Bounds() = %d, %d", lo, hi)
	}
}

func TestPreference_Defaults(t *testing.T) {
	tests := []struct {
		name string
		pref Preference
		want int
	}{
		{"parsed", Preference{Default: "42"}, 42},
		{"fallback to min", Preference{Default: "x", Min: intPtr(5)}, 5},
		{"fallback to zero", Preference{}, 0},
	}
	for _, tt := range tests {
		if got := tt.pref.DefaultInt(); got != tt.want {
			t.Errorf("%s: DefaultInt() = %d, want %d", tt.name, got, tt.want)
		}
	}

	if !(Preference{Default: "true"}).DefaultBool() {
		t.Error("DefaultBool() = false for \"true\"")
	}
	if (Preference{Default: "maybe"}).DefaultBool() {
		t.Error("DefaultBool() = true for \"maybe\"")
	}
}

func TestPreference_Choices(t *testing.T) {
	p := Preference{Choices: []Choice{{Label: "Chime", Value: "chime"}, {Label: "Bell", Value: "bell"}}}

	if got := p.ChoiceIndex("bell"); got != 1 {
		t.Errorf("ChoiceIndex(bell) = %d, want 1", got)
	}
	if got := p.ChoiceIndex("gong"); got != -1 {
		t.Errorf("ChoiceIndex(gong) = %d, want -1", got)
	}
	if got := p.ChoiceLabel("chime"); got != "Chime" {
		t.Errorf("ChoiceLabel(chime) = %q, want Chime", got)
	}
	if got := p.ChoiceLabel("gong"); got != "gong" {
		t.Errorf("ChoiceLabel(gong) = %q, want gong", got)
	}
}

func TestSplitJoinValues(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"", []string{}},
		{"mon", []string{"mon"}},
		{"mon,tue", []string{"mon", "tue"}},
		{",mon,,tue,", []string{"mon", "tue"}},
	}

	for _, tt := range tests {
		got := SplitValues(tt.text)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("SplitValues(%q) mismatch (-want +got):\n%s", tt.text, diff)
		}
	}

	if got := JoinValues([]string{"mon", "tue"}); got != "mon,tue" {
		t.Errorf("JoinValues() = %q, want mon,tue", got)
	}
	if got := (Preference{Default: "sat,sun"}).DefaultValues(); len(got) != 2 {
		t.Errorf("DefaultValues() = %v", got)
	}
}

func TestParseSchema_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		contains string
	}{
		{
			name:     "no pages",
			yaml:     "version: \"1\"\npages: []\n",
			contains: "no pages",
		},
		{
			name: "unknown field",
			yaml: `pages:
  - title: P
    preferences:
      - key: a
        kind: switch
        colour: red
`,
			contains: "cannot decode",
		},
		{
			name: "unknown kind",
			yaml: `pages:
  - title: P
    preferences:
      - key: a
        kind: slider
`,
			contains: "unknown kind",
		},
		{
			name: "duplicate key",
			yaml: `pages:
  - title: P
    preferences:
      - key: a
        kind: switch
  - title: Q
    preferences:
      - key: a
        kind: text
`,
			contains: "duplicate key",
		},
		{
			name: "list without choices",
			yaml: `pages:
  - title: P
    preferences:
      - key: a
        kind: list
`,
			contains: "at least one choice",
		},
		{
			name: "multi list default not a choice",
			yaml: `pages:
  - title: P
    preferences:
      - key: a
        kind: multi_list
        default: mon,fun
        choices:
          - {label: Mon, value: mon}
`,
			contains: "not one of the choices",
		},
		{
			name: "multi list value with separator",
			yaml: `pages:
  - title: P
    preferences:
      - key: a
        kind: multi_list
        choices:
          - {label: Both, value: "a,b"}
`,
			contains: "contains",
		},
		{
			name: "int list with text value",
			yaml: `pages:
  - title: P
    preferences:
      - key: a
        kind: list
        int_values: true
        choices:
          - {label: Five, value: five}
`,
			contains: "not an integer",
		},
		{
			name: "int values on a text preference",
			yaml: `pages:
  - title: P
    preferences:
      - key: a
        kind: text
        int_values: true
`,
			contains: "only applies to list",
		},
		{
			name: "number default out of bounds",
			yaml: `pages:
  - title: P
    preferences:
      - key: a
        kind: number
        min: 1
        max: 5
        default: "9"
`,
			contains: "outside",
		},
		{
			name: "min above max",
			yaml: `pages:
  - title: P
    preferences:
      - key: a
        kind: number
        min: 6
        max: 5
`,
			contains: "greater than max",
		},
		{
			name: "bad time range default",
			yaml: `pages:
  - title: P
    preferences:
      - key: a
        kind: time_range
        default: "22:00"
`,
			contains: "not a time range",
		},
		{
			name: "dependency on non-switch",
			yaml: `pages:
  - title: P
    preferences:
      - key: a
        kind: text
      - key: b
        kind: time
        depends_on: a
`,
			contains: "not a switch",
		},
		{
			name: "dependency on unknown key",
			yaml: `pages:
  - title: P
    preferences:
      - key: b
        kind: time
        depends_on: ghost
`,
			contains: "unknown key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSchema([]byte(tt.yaml))
			if err == nil {
				t.Fatal("ParseSchema() expected error")
			}
			if !errors.Is(err, apperrors.ErrSchemaInvalid) {
				t.Errorf("error = %v, want ErrSchemaInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.contains)
			}
		})
	}
}

func TestLoadSchema(t *testing.T) {
	t.Run("empty path uses default", func(t *testing.T) {
		s, err := LoadSchema("")
		if err != nil {
			t.Fatalf("LoadSchema(\"\") error = %v", err)
		}
		if s.Find("quiet_hours") == nil {
			t.Error("expected built-in schema")
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schema.yaml")
		content := `version: "2"
pages:
  - title: Only
    preferences:
      - key: alarm
        title: Alarm
        kind: time
        default: "6:30"
`
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}

		s, err := LoadSchema(path)
		if err != nil {
			t.Fatalf("LoadSchema() error = %v", err)
		}
		want := &Schema{
			Version: "2",
			Pages: []Page{{
				Title:       "Only",
				Preferences: []Preference{{Key: "alarm", Title: "Alarm", Kind: KindTime, Default: "6:30"}},
			}},
		}
		if diff := cmp.Diff(want, s); diff != "" {
			t.Errorf("LoadSchema mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSchema(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, apperrors.ErrSchemaInvalid) {
			t.Errorf("error = %v, want ErrSchemaInvalid", err)
		}
	})
}

func TestSchema_MarshalRoundTrip(t *testing.T) {
	s, err := DefaultSchema()
	if err != nil {
		t.Fatal(err)
	}

	data, err := s.Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	again, err := ParseSchema(data)
	if err != nil {
		t.Fatalf("ParseSchema(Marshal()) error = %v", err)
	}
	if diff := cmp.Diff(s, again); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
