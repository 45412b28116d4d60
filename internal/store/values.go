package store

import (
	"strconv"

	apperrors "github.com/dtg01100/prefedit/internal/errors"
	"github.com/dtg01100/prefedit/internal/models"
	"github.com/dtg01100/prefedit/internal/period"
)

// Read returns the canonical text of p's current value, falling back to the
// default when nothing usable is stored.
func Read(values Store, p models.Preference) string {
	switch p.Kind {
	case models.KindSwitch:
		return strconv.FormatBool(values.GetBool(p.Key, p.DefaultBool()))
	case models.KindNumber:
		return strconv.Itoa(values.GetInt(p.Key, p.DefaultInt()))
	case models.KindList:
		if p.IntValues && values.Contains(p.Key) {
			return strconv.Itoa(values.GetInt(p.Key, p.DefaultInt()))
		}
		return values.GetString(p.Key, p.Default)
	case models.KindMultiList:
		return models.JoinValues(values.GetStrings(p.Key, p.DefaultValues()))
	case models.KindTime:
		return period.ParseTimeOrZero(values.GetString(p.Key, p.Default)).String()
	case models.KindTimeRange:
		return period.ParsePeriodOrZero(values.GetString(p.Key, p.Default)).String()
	default:
		return values.GetString(p.Key, p.Default)
	}
}

// Write validates text against p and stores it in canonical form.
func Write(values Store, p models.Preference, text string) error {
	switch p.Kind {
	case models.KindSwitch:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return apperrors.NewInvalidArgumentError(p.Key, text, "expected true or false")
		}
		return values.PutBool(p.Key, b)

	case models.KindList:
		if p.ChoiceIndex(text) < 0 {
			return apperrors.NewInvalidArgumentError(p.Key, text, "not one of the choices")
		}
		if p.IntValues {
			// Choice values were checked as integers when the schema loaded.
			n, _ := strconv.Atoi(text)
			return values.PutInt(p.Key, n)
		}
		return values.PutString(p.Key, text)

	case models.KindMultiList:
		selected, err := ChoiceValues(p, models.SplitValues(text))
		if err != nil {
			return err
		}
		return values.PutStrings(p.Key, selected)

	case models.KindNumber:
		n, err := strconv.Atoi(text)
		if err != nil {
			return apperrors.NewInvalidArgumentError(p.Key, text, "expected an integer")
		}
		lo, hi := p.Bounds()
		if n < lo || n > hi {
			return apperrors.NewInvalidArgumentError(p.Key, n, "outside "+strconv.Itoa(lo)+".."+strconv.Itoa(hi))
		}
		return values.PutInt(p.Key, n)

	case models.KindTime:
		t, err := period.ParseTime(text)
		if err != nil {
			return err
		}
		return values.PutString(p.Key, t.String())

	case models.KindTimeRange:
		r, err := period.ParsePeriod(text)
		if err != nil {
			return err
		}
		return values.PutString(p.Key, r.String())

	default:
		return values.PutString(p.Key, text)
	}
}

// ChoiceValues validates a multi selection against p's choices and returns it
// deduplicated in choice order.
func ChoiceValues(p models.Preference, selected []string) ([]string, error) {
	chosen := make(map[string]bool, len(selected))
	for _, v := range selected {
		if p.ChoiceIndex(v) < 0 {
			return nil, apperrors.NewInvalidArgumentError(p.Key, v, "not one of the choices")
		}
		chosen[v] = true
	}

	out := make([]string, 0, len(chosen))
	for _, c := range p.Choices {
		if chosen[c.Value] {
			out = append(out, c.Value)
		}
	}
	return out, nil
}
