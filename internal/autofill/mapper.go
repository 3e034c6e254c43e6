// Package autofill maps a user profile onto detected form fields.
//
// Every produced value carries a fixed, rule-assigned confidence and a
// provenance label. Mapping is deterministic: the same fields and profile
// always yield the same mappings.
package autofill

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"job-copilot-backend/internal/domain"
)

// HighConfidence is the threshold counted by MappingSummary.HighConfidenceCount
const HighConfidence = 0.9

// Mapper resolves fields against a rule table
type Mapper struct {
	byAlias map[string]*Rule
}

// normalize folds case and drops everything that is not a letter or digit,
// so "Email Address", "email_address" and "emailAddress" compare equal.
func normalize(s string) string {
	s = cases.Fold().String(s) // a Caser is not safe for concurrent use
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NewMapper indexes rules by alias. Later rules never override an alias
// claimed by an earlier one.
func NewMapper(rules []Rule) *Mapper {
	m := &Mapper{byAlias: make(map[string]*Rule)}
	for i := range rules {
		r := &rules[i]
		for _, a := range r.Aliases {
			key := normalize(a)
			if _, taken := m.byAlias[key]; !taken {
				m.byAlias[key] = r
			}
		}
	}
	return m
}

var defaultMapper = NewMapper(DefaultRules)

// Map resolves fields against the default rule table
func Map(fields []domain.FieldDescriptor, profile *domain.Profile) ([]domain.FieldMapping, error) {
	return defaultMapper.Map(fields, profile)
}

// ruleFor matches the field id first, then its label
func (m *Mapper) ruleFor(f domain.FieldDescriptor) *Rule {
	if r, ok := m.byAlias[normalize(f.ID)]; ok {
		return r
	}
	if r, ok := m.byAlias[normalize(f.Label)]; ok {
		return r
	}
	return nil
}

// Map produces one FieldMapping per field, in input order. A nil profile is
// a precondition failure and yields domain.ErrMissingProfile with no result.
// Fields no rule recognises get confidence 0 and an empty value.
func (m *Mapper) Map(fields []domain.FieldDescriptor, profile *domain.Profile) ([]domain.FieldMapping, error) {
	if profile == nil {
		return nil, domain.ErrMissingProfile
	}

	out := make([]domain.FieldMapping, len(fields))
	for i, f := range fields {
		var res Resolution
		if r := m.ruleFor(f); r != nil {
			res = r.Resolve(profile)
		}
		res = constrain(f, res)

		desc := f
		desc.Options = append([]string(nil), f.Options...)
		out[i] = domain.FieldMapping{
			FieldDescriptor: desc,
			MappedValue:     res.Value,
			Confidence:      res.Confidence,
			Source:          res.Source,
			AIFilled:        res.Confidence >= domain.AutoFillThreshold,
		}
	}
	return out, nil
}

// constrain keeps select values inside the declared options and enforces
// that a zero confidence never carries a value.
func constrain(f domain.FieldDescriptor, res Resolution) Resolution {
	if res.Confidence <= 0 || res.Value == "" {
		return Resolution{}
	}
	if f.Type == domain.FieldTypeSelect && len(f.Options) > 0 {
		want := normalize(res.Value)
		for _, opt := range f.Options {
			if opt == res.Value || normalize(opt) == want {
				res.Value = opt
				return res
			}
		}
		return Resolution{}
	}
	return res
}

var fourDigitYear = regexp.MustCompile(`\d{4}`)

// TotalYears sums end-start over every experience whose duration contains
// exactly two four-digit years. Other durations contribute nothing.
func TotalYears(experience []domain.Experience) int {
	total := 0
	for _, e := range experience {
		years := fourDigitYear.FindAllString(e.Duration, -1)
		if len(years) != 2 {
			continue
		}
		start, err1 := strconv.Atoi(years[0])
		end, err2 := strconv.Atoi(years[1])
		if err1 != nil || err2 != nil {
			continue
		}
		total += end - start
	}
	return total
}

// YearsBuckets are the option values offered by typical experience selects
var YearsBuckets = []string{"0-1", "1-3", "3-5", "5-8", "8+"}

// YearsBucket maps a total to its bucket; upper bounds are inclusive.
func YearsBucket(years int) string {
	switch {
	case years <= 1:
		return "0-1"
	case years <= 3:
		return "1-3"
	case years <= 5:
		return "3-5"
	case years <= 8:
		return "5-8"
	default:
		return "8+"
	}
}

// ApplyEdit returns a copy of mappings with fieldID overwritten by value and
// marked as edited. Confidence, AIFilled and Source are left as created.
func ApplyEdit(mappings []domain.FieldMapping, fieldID, value string) ([]domain.FieldMapping, error) {
	idx := -1
	for i := range mappings {
		if mappings[i].ID == fieldID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrFieldNotFound
	}

	out := make([]domain.FieldMapping, len(mappings))
	copy(out, mappings)
	out[idx].MappedValue = value
	out[idx].AIEdited = true
	return out, nil
}

// Summarize derives the aggregate figures of a mapping session
func Summarize(mappings []domain.FieldMapping) domain.MappingSummary {
	s := domain.MappingSummary{Total: len(mappings)}
	if len(mappings) == 0 {
		return s
	}

	var sum float64
	for _, m := range mappings {
		sum += m.Confidence
		if m.Confidence > 0 {
			s.FilledCount++
		}
		if m.Confidence >= HighConfidence {
			s.HighConfidenceCount++
		}
	}
	s.OverallConfidence = sum / float64(len(mappings))
	s.NeedAttentionCount = s.Total - s.FilledCount
	return s
}

// Band is a display grouping of confidence values
type Band string

const (
	BandHigh    Band = "high"
	BandMedium  Band = "medium"
	BandLow     Band = "low"
	BandMissing Band = "missing"
)

// ConfidenceBand groups a confidence value and returns its display color
func ConfidenceBand(confidence float64) (Band, string) {
	switch {
	case confidence >= HighConfidence:
		return BandHigh, "#10b981"
	case confidence >= domain.AutoFillThreshold:
		return BandMedium, "#3b82f6"
	case confidence >= 0.4:
		return BandLow, "#f59e0b"
	default:
		return BandMissing, "#ef4444"
	}
}
