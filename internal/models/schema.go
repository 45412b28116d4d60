package models

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	apperrors "github.com/dtg01100/prefedit/internal/errors"
	"github.com/dtg01100/prefedit/internal/period"
	"gopkg.in/yaml.v3"
)

//go:embed default_schema.yaml
var defaultSchema []byte

// DefaultSchema returns the built-in schema.
func DefaultSchema() (*Schema, error) {
	return ParseSchema(defaultSchema)
}

// LoadSchema reads a schema from path. An empty path selects the built-in
// schema.
func LoadSchema(path string) (*Schema, error) {
	if path == "" {
		return DefaultSchema()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewSchemaInvalidError(fmt.Sprintf("cannot read %s", path), err)
	}

	return ParseSchema(data)
}

// ParseSchema decodes YAML and validates the result. Unknown fields are
// rejected so typos surface early.
func ParseSchema(data []byte) (*Schema, error) {
	var s Schema

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, apperrors.NewSchemaInvalidError("cannot decode YAML", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return &s, nil
}

// Marshal encodes the schema as YAML.
func (s *Schema) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate checks every preference and the cross references between them.
func (s *Schema) Validate() error {
	if len(s.Pages) == 0 {
		return apperrors.NewSchemaInvalidError("no pages defined", nil)
	}

	kinds := make(map[string]Kind)

	for _, page := range s.Pages {
		if strings.TrimSpace(page.Title) == "" {
			return apperrors.NewSchemaInvalidError("page title is required", nil)
		}
		for _, p := range page.Preferences {
			if err := p.Validate(); err != nil {
				return err
			}
			if _, dup := kinds[p.Key]; dup {
				return apperrors.NewSchemaInvalidError(fmt.Sprintf("duplicate key %q", p.Key), nil)
			}
			kinds[p.Key] = p.Kind
		}
	}

	for _, p := range s.All() {
		if p.DependsOn == "" {
			continue
		}
		kind, ok := kinds[p.DependsOn]
		if !ok {
			return apperrors.NewSchemaInvalidError(
				fmt.Sprintf("%q depends on unknown key %q", p.Key, p.DependsOn), nil)
		}
		if kind != KindSwitch {
			return apperrors.NewSchemaInvalidError(
				fmt.Sprintf("%q depends on %q, which is not a switch", p.Key, p.DependsOn), nil)
		}
		if p.DependsOn == p.Key {
			return apperrors.NewSchemaInvalidError(fmt.Sprintf("%q depends on itself", p.Key), nil)
		}
	}

	return nil
}

// Validate checks a single preference in isolation.
func (p Preference) Validate() error {
	if strings.TrimSpace(p.Key) == "" {
		return apperrors.NewSchemaInvalidError("preference key is required", nil)
	}
	if !p.Kind.Valid() {
		return apperrors.NewSchemaInvalidError(fmt.Sprintf("%q has unknown kind %q", p.Key, p.Kind), nil)
	}

	invalid := func(format string, args ...any) error {
		return apperrors.NewSchemaInvalidError(fmt.Sprintf("%q: ", p.Key)+fmt.Sprintf(format, args...), nil)
	}

	if p.IntValues && p.Kind != KindList {
		return invalid("int_values only applies to list preferences")
	}

	switch p.Kind {
	case KindSwitch:
		if p.Default != "" {
			if _, err := strconv.ParseBool(p.Default); err != nil {
				return invalid("default %q is not a boolean", p.Default)
			}
		}
	case KindList, KindMultiList:
		if len(p.Choices) == 0 {
			return invalid("list needs at least one choice")
		}
		seen := make(map[string]bool)
		for _, c := range p.Choices {
			if seen[c.Value] {
				return invalid("duplicate choice value %q", c.Value)
			}
			seen[c.Value] = true
			if p.Kind == KindMultiList && strings.Contains(c.Value, ValueSeparator) {
				return invalid("choice value %q contains %q", c.Value, ValueSeparator)
			}
			if p.IntValues {
				if _, err := strconv.Atoi(c.Value); err != nil {
					return invalid("choice value %q is not an integer", c.Value)
				}
			}
		}
		if p.Kind == KindMultiList {
			for _, v := range p.DefaultValues() {
				if p.ChoiceIndex(v) < 0 {
					return invalid("default %q is not one of the choices", v)
				}
			}
		} else if p.Default != "" && p.ChoiceIndex(p.Default) < 0 {
			return invalid("default %q is not one of the choices", p.Default)
		}
	case KindNumber:
		lo, hi := p.Bounds()
		if lo > hi {
			return invalid("min %d is greater than max %d", lo, hi)
		}
		if p.Default != "" {
			n, err := strconv.Atoi(p.Default)
			if err != nil {
				return invalid("default %q is not an integer", p.Default)
			}
			if n < lo || n > hi {
				return invalid("default %d is outside [%d, %d]", n, lo, hi)
			}
		}
	case KindTime:
		if p.Default != "" {
			if _, err := period.ParseTime(p.Default); err != nil {
				return invalid("default %q is not a time", p.Default)
			}
		}
	case KindTimeRange:
		if p.Default != "" {
			if _, err := period.ParsePeriod(p.Default); err != nil {
				return invalid("default %q is not a time range", p.Default)
			}
		}
	}

	return nil
}
